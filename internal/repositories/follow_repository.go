package repositories

import (
	"fmt"

	"github.com/eryss-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID string) error
	IsFollowing(followerID, followingID string) (bool, error)
	GetFollowersCount(userID string) (int64, error)
	GetFollowersCounts(userIDs []string) (map[string]int64, error)
	GetFollowingCount(userID string) (int64, error)
	GetFollowedIDs(followerID string, userIDs []string) (map[string]bool, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID string) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresFollowRepository) GetFollowersCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFollowersCounts returns follower counts for the given user ids in
// one grouped query.
func (r *PostgresFollowRepository) GetFollowersCounts(userIDs []string) (map[string]int64, error) {
	result := make(map[string]int64)
	if len(userIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		FollowingID string
		Count       int64
	}
	err := r.db.Model(&models.Follow{}).
		Select("following_id, COUNT(*) AS count").
		Where("following_id IN ?", userIDs).
		Group("following_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.FollowingID] = row.Count
	}
	return result, nil
}

func (r *PostgresFollowRepository) GetFollowingCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// GetFollowedIDs returns which of the given user ids the follower
// follows, batched into a single query.
func (r *PostgresFollowRepository) GetFollowedIDs(followerID string, userIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(userIDs) == 0 {
		return result, nil
	}
	var follows []models.Follow
	err := r.db.Where("follower_id = ? AND following_id IN ?", followerID, userIDs).Find(&follows).Error
	if err != nil {
		return nil, err
	}
	for _, f := range follows {
		result[f.FollowingID] = true
	}
	return result, nil
}
