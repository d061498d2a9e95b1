package handlers

import (
	"net/http"

	"github.com/eryss-app/backend/internal/models"
	"github.com/eryss-app/backend/internal/repositories"
	"github.com/eryss-app/backend/pkg/media"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// trendingLimit caps the trending feed at the top 20 images.
const trendingLimit = 20

// relatedLimit is the size of the related set on the detail view.
const relatedLimit = 20

// ImageHandler handles HTTP requests related to images
type ImageHandler struct {
	imageRepository repositories.ImageRepository
	likeRepository  repositories.LikeRepository
	saveRepository  repositories.SaveRepository
	userRepository  repositories.UserRepository
	uploader        media.Uploader
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(
	imageRepo repositories.ImageRepository,
	likeRepo repositories.LikeRepository,
	saveRepo repositories.SaveRepository,
	userRepo repositories.UserRepository,
	uploader media.Uploader,
) *ImageHandler {
	return &ImageHandler{
		imageRepository: imageRepo,
		likeRepository:  likeRepo,
		saveRepository:  saveRepo,
		userRepository:  userRepo,
		uploader:        uploader,
	}
}

// RegisterPublicImageRoutes registers the read routes, which tolerate
// an anonymous viewer.
func (h *ImageHandler) RegisterPublicImageRoutes(g *echo.Group) {
	g.GET("/images", h.ListImages)
	g.GET("/images/trending", h.TrendingImages)
	g.GET("/images/:id", h.GetImage)
}

// RegisterProtectedImageRoutes registers the mutating routes
func (h *ImageHandler) RegisterProtectedImageRoutes(g *echo.Group) {
	g.POST("/images", h.CreateImage)
	g.DELETE("/images/:id", h.DeleteImage)
}

// ListImages returns all images, newest first
func (h *ImageHandler) ListImages(c echo.Context) error {
	viewerID := getUserIDFromContext(c)

	images, err := h.imageRepository.GetImages()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve images")
	}

	enriched, err := annotateImages(images, viewerID, h.imageRepository, h.likeRepository, h.saveRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve images")
	}

	return c.JSON(http.StatusOK, echo.Map{"images": enriched})
}

// TrendingImages returns the most liked images
func (h *ImageHandler) TrendingImages(c echo.Context) error {
	viewerID := getUserIDFromContext(c)

	images, err := h.imageRepository.GetTrendingImages(trendingLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve images")
	}

	enriched, err := annotateImages(images, viewerID, h.imageRepository, h.likeRepository, h.saveRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve images")
	}

	return c.JSON(http.StatusOK, echo.Map{"images": enriched})
}

// GetImage returns one image plus a related set for the detail view
func (h *ImageHandler) GetImage(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	imageID := c.Param("id")

	image, err := h.imageRepository.GetImageByID(imageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Image not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve image")
	}

	enriched, err := annotateImages([]models.Image{*image}, viewerID, h.imageRepository, h.likeRepository, h.saveRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve image")
	}

	related, err := h.imageRepository.GetRecentImagesExcluding(imageID, relatedLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve image")
	}

	enrichedRelated, err := annotateImages(related, viewerID, h.imageRepository, h.likeRepository, h.saveRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve image")
	}
	shuffleImages(enrichedRelated, viewerID, imageID)

	return c.JSON(http.StatusOK, echo.Map{
		"image":   enriched[0],
		"related": enrichedRelated,
	})
}

// CreateImage validates the upload, hands the payload to the media
// host and persists the returned URL.
func (h *ImageHandler) CreateImage(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in to upload images")
	}

	var req models.CreateImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Trim()
	if err := c.Validate(&req); err != nil {
		return err
	}
	if msg := req.ValidatePayload(); msg != "" {
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	}

	owner, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	imageURL, err := h.uploader.Upload(c.Request().Context(), req.ImageBase64)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}

	image := &models.Image{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
	}
	if err := h.imageRepository.CreateImage(image); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create image")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Image uploaded successfully",
		"image": EnrichedImage{
			Image:  *image,
			Author: owner.ToCompact(),
		},
	})
}

// DeleteImage removes an image. Only the owner may delete it; the
// like/save edges go with it.
func (h *ImageHandler) DeleteImage(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in to delete images")
	}

	imageID := c.Param("id")
	image, err := h.imageRepository.GetImageByID(imageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Image not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete image")
	}

	if image.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this image")
	}

	if err := h.imageRepository.DeleteImage(imageID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete image")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
