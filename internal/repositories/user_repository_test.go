package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eryss-app/backend/internal/models"
	"gorm.io/gorm"
)

func TestUserRepository_LookupByIDAndEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	alice := createTestUser(t, db, "alice")

	byID, err := repo.GetUserByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Name)

	byEmail, err := repo.GetUserByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = repo.GetUserByID("missing")
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestUserRepository_GetUserByFirebaseUID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	uid := "firebase-uid-123"
	user := &models.User{Name: "alice", Email: "alice@example.com", FirebaseUID: &uid}
	require.NoError(t, repo.CreateUser(user))

	found, err := repo.GetUserByFirebaseUID(uid)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetUserByFirebaseUID("unknown")
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestUserRepository_SearchUsersCaseInsensitive(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresUserRepository(db)

	createTestUser(t, db, "Sunset Chaser")
	createTestUser(t, db, "bob")

	for _, q := range []string{"sunset", "SUNSET"} {
		users, err := repo.SearchUsers(q)
		require.NoError(t, err)
		require.Len(t, users, 1, "query %q", q)
		assert.Equal(t, "Sunset Chaser", users[0].Name)
	}
}
