package repositories

import (
	"github.com/eryss-app/backend/internal/models"
	"gorm.io/gorm"
)

// ImageRepository defines the interface for image data operations
type ImageRepository interface {
	CreateImage(image *models.Image) error
	GetImageByID(id string) (*models.Image, error)
	GetImages() ([]models.Image, error)
	GetTrendingImages(limit int) ([]models.Image, error)
	GetImagesByUserID(userID string) ([]models.Image, error)
	GetRecentImagesExcluding(excludeID string, limit int) ([]models.Image, error)
	GetImagesLikedBy(userID string) ([]models.Image, error)
	GetImagesSavedBy(userID string) ([]models.Image, error)
	SearchImages(query string) ([]models.Image, error)
	GetImagesCountByUserID(userID string) (int64, error)
	GetLikeCounts(imageIDs []string) (map[string]int64, error)
	DeleteImage(id string) error
}

// PostgresImageRepository implements ImageRepository for PostgreSQL
type PostgresImageRepository struct {
	db *gorm.DB
}

// NewPostgresImageRepository creates a new PostgresImageRepository
func NewPostgresImageRepository(db *gorm.DB) *PostgresImageRepository {
	return &PostgresImageRepository{db: db}
}

func (r *PostgresImageRepository) CreateImage(image *models.Image) error {
	return r.db.Create(image).Error
}

func (r *PostgresImageRepository) GetImageByID(id string) (*models.Image, error) {
	var image models.Image
	if err := r.db.Preload("User").Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// GetImages returns every image, newest first.
func (r *PostgresImageRepository) GetImages() ([]models.Image, error) {
	var images []models.Image
	err := r.db.Preload("User").Order("created_at DESC").Find(&images).Error
	return images, err
}

// GetTrendingImages returns the top images by like count, ties broken
// by recency.
func (r *PostgresImageRepository) GetTrendingImages(limit int) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Preload("User").
		Select("images.*, COUNT(likes.id) AS like_count").
		Joins("LEFT JOIN likes ON likes.image_id = images.id").
		Group("images.id").
		Order("like_count DESC, images.created_at DESC").
		Limit(limit).
		Find(&images).Error
	return images, err
}

func (r *PostgresImageRepository) GetImagesByUserID(userID string) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Preload("User").Where("user_id = ?", userID).Order("created_at DESC").Find(&images).Error
	return images, err
}

// GetRecentImagesExcluding returns the most recent images other than
// the given one; the caller shuffles them for the related panel.
func (r *PostgresImageRepository) GetRecentImagesExcluding(excludeID string, limit int) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Preload("User").Where("id <> ?", excludeID).Order("created_at DESC").Limit(limit).Find(&images).Error
	return images, err
}

// GetImagesLikedBy returns the user's liked images, most recently
// liked first (edge creation order, not post order).
func (r *PostgresImageRepository) GetImagesLikedBy(userID string) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Preload("User").
		Joins("JOIN likes ON likes.image_id = images.id AND likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&images).Error
	return images, err
}

// GetImagesSavedBy returns the user's saved images, most recently
// saved first.
func (r *PostgresImageRepository) GetImagesSavedBy(userID string) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Preload("User").
		Joins("JOIN saves ON saves.image_id = images.id AND saves.user_id = ?", userID).
		Order("saves.created_at DESC").
		Find(&images).Error
	return images, err
}

// SearchImages finds images whose title or description contains the
// query, case-insensitively, newest first.
func (r *PostgresImageRepository) SearchImages(query string) ([]models.Image, error) {
	var images []models.Image
	pattern := "%" + query + "%"
	err := r.db.Preload("User").
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Find(&images).Error
	return images, err
}

func (r *PostgresImageRepository) GetImagesCountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Image{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetLikeCounts returns like counts for the given image ids in one
// grouped query.
func (r *PostgresImageRepository) GetLikeCounts(imageIDs []string) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(imageIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		ImageID string
		Count   int64
	}
	err := r.db.Model(&models.Like{}).
		Select("image_id, COUNT(*) AS count").
		Where("image_id IN ?", imageIDs).
		Group("image_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ImageID] = row.Count
	}
	return result, nil
}

// DeleteImage removes an image and its like/save edges in one
// transaction so no orphan edges survive.
func (r *PostgresImageRepository) DeleteImage(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", id).Delete(&models.Save{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Image{}).Error
	})
}
