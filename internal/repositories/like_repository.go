package repositories

import (
	"fmt"

	"github.com/eryss-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like edge operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(userID, imageID string) error
	HasUserLikedImage(userID, imageID string) (bool, error)
	GetLikesCountByImageID(imageID string) (int64, error)
	GetLikesCountByUserID(userID string) (int64, error)
	GetLikedImageIDs(userID string, imageIDs []string) (map[string]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PostgresLikeRepository) DeleteLike(userID, imageID string) error {
	res := r.db.Where("user_id = ? AND image_id = ?", userID, imageID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like not found")
	}
	return nil
}

func (r *PostgresLikeRepository) HasUserLikedImage(userID, imageID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ? AND image_id = ?", userID, imageID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresLikeRepository) GetLikesCountByImageID(imageID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("image_id = ?", imageID).Count(&count).Error
	return count, err
}

// GetLikesCountByUserID counts the likes a user has given out.
func (r *PostgresLikeRepository) GetLikesCountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetLikedImageIDs returns which of the given image ids the user has
// liked, as one query regardless of how many ids the page shows.
func (r *PostgresLikeRepository) GetLikedImageIDs(userID string, imageIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(imageIDs) == 0 {
		return result, nil
	}
	var likes []models.Like
	err := r.db.Where("user_id = ? AND image_id IN ?", userID, imageIDs).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.ImageID] = true
	}
	return result, nil
}
