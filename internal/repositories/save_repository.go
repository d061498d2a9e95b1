package repositories

import (
	"fmt"

	"github.com/eryss-app/backend/internal/models"
	"gorm.io/gorm"
)

// SaveRepository defines the interface for save (bookmark) edge operations
type SaveRepository interface {
	CreateSave(save *models.Save) error
	DeleteSave(userID, imageID string) error
	HasUserSavedImage(userID, imageID string) (bool, error)
	GetSavesCountByImageID(imageID string) (int64, error)
	GetSavedImageIDs(userID string, imageIDs []string) (map[string]bool, error)
}

// PostgresSaveRepository implements SaveRepository for PostgreSQL
type PostgresSaveRepository struct {
	db *gorm.DB
}

// NewPostgresSaveRepository creates a new PostgresSaveRepository
func NewPostgresSaveRepository(db *gorm.DB) *PostgresSaveRepository {
	return &PostgresSaveRepository{db: db}
}

func (r *PostgresSaveRepository) CreateSave(save *models.Save) error {
	return r.db.Create(save).Error
}

func (r *PostgresSaveRepository) DeleteSave(userID, imageID string) error {
	res := r.db.Where("user_id = ? AND image_id = ?", userID, imageID).Delete(&models.Save{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("save not found")
	}
	return nil
}

func (r *PostgresSaveRepository) HasUserSavedImage(userID, imageID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Save{}).Where("user_id = ? AND image_id = ?", userID, imageID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresSaveRepository) GetSavesCountByImageID(imageID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Save{}).Where("image_id = ?", imageID).Count(&count).Error
	return count, err
}

// GetSavedImageIDs returns which of the given image ids the user has
// saved, as one query keyed by the displayed id set.
func (r *PostgresSaveRepository) GetSavedImageIDs(userID string, imageIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(imageIDs) == 0 {
		return result, nil
	}
	var saves []models.Save
	err := r.db.Where("user_id = ? AND image_id IN ?", userID, imageIDs).Find(&saves).Error
	if err != nil {
		return nil, err
	}
	for _, s := range saves {
		result[s.ImageID] = true
	}
	return result, nil
}
