package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image is an uploaded picture. The binary itself lives at the media
// host; ImageURL is the opaque retrieval URL it handed back.
type Image struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	UserID      string    `json:"user_id" gorm:"size:36;index"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// CreateImageRequest defines the request body for POST /images.
// ImageBase64 is a data URI ("data:image/...;base64,...").
type CreateImageRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=300"`
	ImageBase64 string `json:"imageBase64" validate:"required"`
}

func (r *CreateImageRequest) Trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// MaxImagePayloadBytes caps the decoded upload size at 10MB.
const MaxImagePayloadBytes = 10 * 1024 * 1024

// ValidatePayload checks the parts of the upload the validate tags
// cannot express: the payload must declare an image media type and
// decode to at most MaxImagePayloadBytes.
func (r *CreateImageRequest) ValidatePayload() string {
	if !strings.HasPrefix(r.ImageBase64, "data:image/") {
		return "Invalid image format. Must be a valid base64 image."
	}
	if len(r.ImageBase64)*3/4 > MaxImagePayloadBytes {
		return "Image too large. Maximum size is 10MB."
	}
	return ""
}
