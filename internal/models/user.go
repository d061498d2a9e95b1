package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Bio         string    `json:"bio,omitempty"`
	Image       string    `json:"image,omitempty"` // avatar URL
	Password    string    `json:"-"`               // bcrypt hash, empty for federated accounts
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserCompact is the public slice of a user attached to images and search results.
type UserCompact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, Image: u.Image}
}

// UpdateProfileRequest defines the request body for PUT /profile
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=3,max=20"`
	Bio  string `json:"bio,omitempty" validate:"omitempty,max=160"`
}

// Trim normalizes the request before validation so the length limits
// apply to the trimmed values.
func (r *UpdateProfileRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Bio = strings.TrimSpace(r.Bio)
}

// SignupRequest defines the request body for local account registration
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for local sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
