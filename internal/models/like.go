package models

import "time"

// Like is a user→image edge. The composite unique index is the safety
// net against duplicate edges under concurrent toggles.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:36;index;uniqueIndex:idx_like_user_image"`
	ImageID   string    `json:"image_id" gorm:"size:36;index;uniqueIndex:idx_like_user_image"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleImageRequest defines the request body for the like and save toggles
type ToggleImageRequest struct {
	ImageID string `json:"imageId" validate:"required"`
}
