package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eryss-app/backend/internal/models"
)

func TestImageRepository_GetImagesNewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresImageRepository(db)

	user := createTestUser(t, db, "alice")
	base := time.Now().Add(-time.Hour)
	createTestImageAt(t, db, user.ID, "oldest", base)
	createTestImageAt(t, db, user.ID, "middle", base.Add(time.Minute))
	createTestImageAt(t, db, user.ID, "newest", base.Add(2*time.Minute))

	images, err := repo.GetImages()
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "newest", images[0].Title)
	assert.Equal(t, "middle", images[1].Title)
	assert.Equal(t, "oldest", images[2].Title)
	assert.Equal(t, "alice", images[0].User.Name)
}

func TestImageRepository_GetTrendingImages(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresImageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	popular := createTestImageAt(t, db, alice.ID, "popular", base)
	modest := createTestImageAt(t, db, alice.ID, "modest", base.Add(time.Minute))
	quiet := createTestImageAt(t, db, alice.ID, "quiet", base.Add(2*time.Minute))

	for _, u := range []*models.User{bob, carol} {
		require.NoError(t, db.Create(&models.Like{UserID: u.ID, ImageID: popular.ID}).Error)
	}
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, ImageID: modest.ID}).Error)

	images, err := repo.GetTrendingImages(20)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, popular.ID, images[0].ID)
	assert.Equal(t, modest.ID, images[1].ID)
	assert.Equal(t, quiet.ID, images[2].ID)

	// Truncation
	top, err := repo.GetTrendingImages(2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestImageRepository_DeleteImageCascadesEdges(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresImageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	image := createTestImage(t, db, alice.ID, "doomed")
	keeper := createTestImage(t, db, alice.ID, "keeper")

	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, ImageID: image.ID}).Error)
	require.NoError(t, db.Create(&models.Save{UserID: bob.ID, ImageID: image.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, ImageID: keeper.ID}).Error)

	require.NoError(t, repo.DeleteImage(image.ID))

	_, err := repo.GetImageByID(image.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	var likeCount, saveCount int64
	db.Model(&models.Like{}).Where("image_id = ?", image.ID).Count(&likeCount)
	db.Model(&models.Save{}).Where("image_id = ?", image.ID).Count(&saveCount)
	assert.Equal(t, int64(0), likeCount)
	assert.Equal(t, int64(0), saveCount)

	// Edges of other images are untouched.
	db.Model(&models.Like{}).Where("image_id = ?", keeper.ID).Count(&likeCount)
	assert.Equal(t, int64(1), likeCount)
}

func TestImageRepository_SearchImagesCaseInsensitive(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresImageRepository(db)

	user := createTestUser(t, db, "alice")
	createTestImage(t, db, user.ID, "Sunset Beach")
	img := &models.Image{
		UserID:      user.ID,
		Title:       "Morning fog",
		Description: "a SUNSET over the hills",
		ImageURL:    "https://res.cloudinary.com/demo/fog.jpg",
	}
	require.NoError(t, db.Create(img).Error)
	createTestImage(t, db, user.ID, "City lights")

	for _, q := range []string{"sunset", "SUNSET", "Sunset"} {
		images, err := repo.SearchImages(q)
		require.NoError(t, err)
		assert.Len(t, images, 2, "query %q", q)
	}

	images, err := repo.SearchImages("Beach")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "Sunset Beach", images[0].Title)
}

func TestImageRepository_GetImagesLikedByEdgeOrder(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresImageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	older := createTestImageAt(t, db, bob.ID, "older post", base)
	newer := createTestImageAt(t, db, bob.ID, "newer post", base.Add(time.Minute))

	// Alice likes the newer post first, then the older one: the liked
	// feed orders by like time, not post time.
	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, ImageID: newer.ID, CreatedAt: base.Add(10 * time.Minute)}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, ImageID: older.ID, CreatedAt: base.Add(20 * time.Minute)}).Error)

	images, err := repo.GetImagesLikedBy(alice.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, older.ID, images[0].ID)
	assert.Equal(t, newer.ID, images[1].ID)
}

func TestImageRepository_GetImagesSavedBy(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresImageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	saved := createTestImage(t, db, bob.ID, "bookmarked")
	createTestImage(t, db, bob.ID, "ignored")

	require.NoError(t, db.Create(&models.Save{UserID: alice.ID, ImageID: saved.ID}).Error)

	images, err := repo.GetImagesSavedBy(alice.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, saved.ID, images[0].ID)
}

func TestImageRepository_GetRecentImagesExcluding(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresImageRepository(db)

	user := createTestUser(t, db, "alice")
	current := createTestImage(t, db, user.ID, "current")
	createTestImage(t, db, user.ID, "other one")
	createTestImage(t, db, user.ID, "other two")

	images, err := repo.GetRecentImagesExcluding(current.ID, 20)
	require.NoError(t, err)
	require.Len(t, images, 2)
	for _, img := range images {
		assert.NotEqual(t, current.ID, img.ID)
	}
}

func TestImageRepository_GetLikeCountsBatch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewPostgresImageRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	first := createTestImage(t, db, alice.ID, "first")
	second := createTestImage(t, db, alice.ID, "second")

	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, ImageID: first.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, ImageID: first.ID}).Error)

	counts, err := repo.GetLikeCounts([]string{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[first.ID])
	assert.Equal(t, int64(0), counts[second.ID])
}
