package handlers

import (
	"net/http"

	"github.com/eryss-app/backend/internal/models"
	"github.com/eryss-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// InteractionHandler flips like/save/follow edges. Each toggle looks up
// the existing edge, deletes it if present or creates it if absent, and
// reports the new state together with the recomputed count so clients
// never have to apply deltas themselves.
type InteractionHandler struct {
	likeRepository   repositories.LikeRepository
	saveRepository   repositories.SaveRepository
	followRepository repositories.FollowRepository
	imageRepository  repositories.ImageRepository
	userRepository   repositories.UserRepository
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(
	likeRepo repositories.LikeRepository,
	saveRepo repositories.SaveRepository,
	followRepo repositories.FollowRepository,
	imageRepo repositories.ImageRepository,
	userRepo repositories.UserRepository,
) *InteractionHandler {
	return &InteractionHandler{
		likeRepository:   likeRepo,
		saveRepository:   saveRepo,
		followRepository: followRepo,
		imageRepository:  imageRepo,
		userRepository:   userRepo,
	}
}

// RegisterInteractionRoutes registers the toggle routes
func (h *InteractionHandler) RegisterInteractionRoutes(g *echo.Group) {
	g.POST("/like", h.ToggleLike)
	g.POST("/save", h.ToggleSave)
	g.POST("/profile/:userId/follow", h.ToggleFollow)
}

// ToggleLike flips the viewer's like on an image
func (h *InteractionHandler) ToggleLike(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in to like images")
	}

	var req models.ToggleImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.imageRepository.GetImageByID(req.ImageID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Image not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like image")
	}

	liked, err := h.likeRepository.HasUserLikedImage(userID, req.ImageID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like image")
	}

	if liked {
		if err := h.likeRepository.DeleteLike(userID, req.ImageID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like image")
		}
	} else {
		like := &models.Like{UserID: userID, ImageID: req.ImageID}
		// The unique index rejects a duplicate edge if a concurrent
		// toggle won the race.
		if err := h.likeRepository.CreateLike(like); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like image")
		}
	}

	count, err := h.likeRepository.GetLikesCountByImageID(req.ImageID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like image")
	}

	return c.JSON(http.StatusOK, echo.Map{"liked": !liked, "likeCount": count})
}

// ToggleSave flips the viewer's save on an image
func (h *InteractionHandler) ToggleSave(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in to save images")
	}

	var req models.ToggleImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.imageRepository.GetImageByID(req.ImageID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Image not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save image")
	}

	saved, err := h.saveRepository.HasUserSavedImage(userID, req.ImageID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save image")
	}

	if saved {
		if err := h.saveRepository.DeleteSave(userID, req.ImageID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save image")
		}
	} else {
		save := &models.Save{UserID: userID, ImageID: req.ImageID}
		if err := h.saveRepository.CreateSave(save); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save image")
		}
	}

	count, err := h.saveRepository.GetSavesCountByImageID(req.ImageID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save image")
	}

	return c.JSON(http.StatusOK, echo.Map{"saved": !saved, "saveCount": count})
}

// ToggleFollow flips the viewer's follow on another user. Following
// yourself is rejected before any edge is touched.
func (h *InteractionHandler) ToggleFollow(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in to follow users")
	}

	targetID := c.Param("userId")
	if targetID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	}
	if targetID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
	}

	following, err := h.followRepository.IsFollowing(userID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
	}

	message := "Followed successfully."
	if following {
		if err := h.followRepository.DeleteFollow(userID, targetID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
		}
		message = "Unfollowed successfully."
	} else {
		follow := &models.Follow{FollowerID: userID, FollowingID: targetID}
		if err := h.followRepository.CreateFollow(follow); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
		}
	}

	count, err := h.followRepository.GetFollowersCount(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"followed":      !following,
		"followerCount": count,
		"message":       message,
	})
}
