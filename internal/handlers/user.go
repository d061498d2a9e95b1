package handlers

import (
	"net/http"

	"github.com/eryss-app/backend/internal/models"
	"github.com/eryss-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository   repositories.UserRepository
	imageRepository  repositories.ImageRepository
	likeRepository   repositories.LikeRepository
	saveRepository   repositories.SaveRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	imageRepo repositories.ImageRepository,
	likeRepo repositories.LikeRepository,
	saveRepo repositories.SaveRepository,
	followRepo repositories.FollowRepository,
) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		imageRepository:  imageRepo,
		likeRepository:   likeRepo,
		saveRepository:   saveRepo,
		followRepository: followRepo,
	}
}

// RegisterProfileRoutes registers the authenticated profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}

// RegisterPublicUserRoutes registers the public user routes
func (h *UserHandler) RegisterPublicUserRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetUser)
}

// GetProfile retrieves the authenticated user's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's name and bio
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in to update your profile")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Trim()
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}

	user.Name = req.Name
	user.Bio = req.Bio
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// GetUser returns a public profile: the user's fields, graph counts,
// the viewer's follow state and the user's images.
func (h *UserHandler) GetUser(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	targetID := c.Param("id")

	user, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
	}

	followersCount, err := h.followRepository.GetFollowersCount(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
	}
	followingCount, err := h.followRepository.GetFollowingCount(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
	}
	imagesCount, err := h.imageRepository.GetImagesCountByUserID(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
	}
	likesCount, err := h.likeRepository.GetLikesCountByUserID(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
	}

	isFollowed := false
	if viewerID != "" && viewerID != targetID {
		isFollowed, err = h.followRepository.IsFollowing(viewerID, targetID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
		}
	}

	images, err := h.imageRepository.GetImagesByUserID(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
	}
	enriched, err := annotateImages(images, viewerID, h.imageRepository, h.likeRepository, h.saveRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve profile")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":    user.ID,
			"name":  user.Name,
			"bio":   user.Bio,
			"image": user.Image,
		},
		"followers_count": followersCount,
		"following_count": followingCount,
		"images_count":    imagesCount,
		"likes_count":     likesCount,
		"is_followed":     isFollowed,
		"images":          enriched,
	})
}
