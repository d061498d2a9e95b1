package handlers

import (
	"hash/fnv"
	"math/rand"
	"net/http"

	"github.com/eryss-app/backend/internal/models"
	"github.com/eryss-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// EnrichedImage is an image with its author and the viewer's
// interaction state.
type EnrichedImage struct {
	models.Image
	Author     models.UserCompact `json:"author"`
	LikesCount int64              `json:"likes_count"`
	IsLiked    bool               `json:"is_liked"`
	IsSaved    bool               `json:"is_saved"`
}

// annotateImages attaches like counts and, for a signed-in viewer, the
// liked/saved flags. All lookups are batched over the page's id set so
// the query count stays constant regardless of page size.
func annotateImages(
	images []models.Image,
	viewerID string,
	imageRepo repositories.ImageRepository,
	likeRepo repositories.LikeRepository,
	saveRepo repositories.SaveRepository,
) ([]EnrichedImage, error) {
	imageIDs := make([]string, len(images))
	for i, img := range images {
		imageIDs[i] = img.ID
	}

	likeCounts, err := imageRepo.GetLikeCounts(imageIDs)
	if err != nil {
		return nil, err
	}

	likedMap := map[string]bool{}
	savedMap := map[string]bool{}
	if viewerID != "" {
		if likedMap, err = likeRepo.GetLikedImageIDs(viewerID, imageIDs); err != nil {
			return nil, err
		}
		if savedMap, err = saveRepo.GetSavedImageIDs(viewerID, imageIDs); err != nil {
			return nil, err
		}
	}

	enriched := make([]EnrichedImage, len(images))
	for i, img := range images {
		enriched[i] = EnrichedImage{
			Image:      img,
			Author:     img.User.ToCompact(),
			LikesCount: likeCounts[img.ID],
			IsLiked:    likedMap[img.ID],
			IsSaved:    savedMap[img.ID],
		}
	}
	return enriched, nil
}

// shuffleImages reorders the related set with a seed derived from the
// viewer and the current image, so a reload shows the same order while
// different viewers see different ones.
func shuffleImages(images []EnrichedImage, viewerID, imageID string) {
	h := fnv.New64a()
	h.Write([]byte(viewerID))
	h.Write([]byte(imageID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	rng.Shuffle(len(images), func(i, j int) {
		images[i], images[j] = images[j], images[i]
	})
}

// FeedHandler serves the viewer's liked and saved feeds
type FeedHandler struct {
	imageRepository repositories.ImageRepository
	likeRepository  repositories.LikeRepository
	saveRepository  repositories.SaveRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	imageRepo repositories.ImageRepository,
	likeRepo repositories.LikeRepository,
	saveRepo repositories.SaveRepository,
) *FeedHandler {
	return &FeedHandler{
		imageRepository: imageRepo,
		likeRepository:  likeRepo,
		saveRepository:  saveRepo,
	}
}

// RegisterFeedRoutes registers the personal feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/likes", h.GetLikedImages)
	g.GET("/saved", h.GetSavedImages)
}

// GetLikedImages returns the viewer's liked images, most recently
// liked first.
func (h *FeedHandler) GetLikedImages(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	images, err := h.imageRepository.GetImagesLikedBy(viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve liked images")
	}

	enriched, err := annotateImages(images, viewerID, h.imageRepository, h.likeRepository, h.saveRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve liked images")
	}

	return c.JSON(http.StatusOK, echo.Map{"images": enriched})
}

// GetSavedImages returns the viewer's saved images, most recently
// saved first.
func (h *FeedHandler) GetSavedImages(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	images, err := h.imageRepository.GetImagesSavedBy(viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve saved images")
	}

	enriched, err := annotateImages(images, viewerID, h.imageRepository, h.likeRepository, h.saveRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve saved images")
	}

	return c.JSON(http.StatusOK, echo.Map{"images": enriched})
}
