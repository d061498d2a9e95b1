package models

import "time"

// Save is a user→image bookmark edge, independent of Like.
type Save struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:36;index;uniqueIndex:idx_save_user_image"`
	ImageID   string    `json:"image_id" gorm:"size:36;index;uniqueIndex:idx_save_user_image"`
	CreatedAt time.Time `json:"created_at"`
}
