package handlers

import (
	"net/http"

	"github.com/eryss-app/backend/internal/models"
	"github.com/eryss-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SearchHandler serves the combined image and creator search
type SearchHandler struct {
	imageRepository  repositories.ImageRepository
	userRepository   repositories.UserRepository
	likeRepository   repositories.LikeRepository
	saveRepository   repositories.SaveRepository
	followRepository repositories.FollowRepository
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(
	imageRepo repositories.ImageRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	saveRepo repositories.SaveRepository,
	followRepo repositories.FollowRepository,
) *SearchHandler {
	return &SearchHandler{
		imageRepository:  imageRepo,
		userRepository:   userRepo,
		likeRepository:   likeRepo,
		saveRepository:   saveRepo,
		followRepository: followRepo,
	}
}

// RegisterSearchRoutes registers the search route
func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// EnrichedUser is a user search result with follower count and the
// viewer's follow state.
type EnrichedUser struct {
	models.UserCompact
	Bio            string `json:"bio,omitempty"`
	FollowersCount int64  `json:"followers_count"`
	IsFollowed     bool   `json:"is_followed"`
}

// Search matches images by title or description and users by name,
// both case-insensitive substring matches.
func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}
	viewerID := getUserIDFromContext(c)

	images, err := h.imageRepository.SearchImages(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search")
	}
	enrichedImages, err := annotateImages(images, viewerID, h.imageRepository, h.likeRepository, h.saveRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search")
	}

	userIDs := make([]string, len(users))
	for i, u := range users {
		userIDs[i] = u.ID
	}
	followerCounts, err := h.followRepository.GetFollowersCounts(userIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search")
	}
	followedMap := map[string]bool{}
	if viewerID != "" {
		followedMap, err = h.followRepository.GetFollowedIDs(viewerID, userIDs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search")
		}
	}

	enrichedUsers := make([]EnrichedUser, len(users))
	for i, u := range users {
		enrichedUsers[i] = EnrichedUser{
			UserCompact:    u.ToCompact(),
			Bio:            u.Bio,
			FollowersCount: followerCounts[u.ID],
			IsFollowed:     followedMap[u.ID],
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"images": enrichedImages,
		"users":  enrichedUsers,
	})
}
