package repositories

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eryss-app/backend/internal/models"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	dbPath := "./test_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.Like{},
		&models.Save{},
		&models.Follow{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	user := &models.User{
		Name:  name,
		Email: name + "@example.com",
	}
	err := db.Create(user).Error
	require.NoError(t, err)
	return user
}

func createTestImage(t *testing.T, db *gorm.DB, userID, title string) *models.Image {
	image := &models.Image{
		UserID:   userID,
		Title:    title,
		ImageURL: "https://res.cloudinary.com/demo/" + title + ".jpg",
	}
	err := db.Create(image).Error
	require.NoError(t, err)
	return image
}

func createTestImageAt(t *testing.T, db *gorm.DB, userID, title string, createdAt time.Time) *models.Image {
	image := &models.Image{
		UserID:    userID,
		Title:     title,
		ImageURL:  "https://res.cloudinary.com/demo/" + title + ".jpg",
		CreatedAt: createdAt,
	}
	err := db.Create(image).Error
	require.NoError(t, err)
	return image
}
