package media

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores an image payload at the media host and returns the
// stable retrieval URL. The application never touches pixel data.
type Uploader interface {
	Upload(ctx context.Context, dataURI string) (string, error)
}

// CloudinaryUploader implements Uploader against Cloudinary
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader creates an uploader from a CLOUDINARY_URL
// style connection string.
func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL not provided")
	}
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("error initializing cloudinary client: %w", err)
	}
	return &CloudinaryUploader{client: client, folder: "eryss/images"}, nil
}

// Upload sends a base64 data URI to Cloudinary and returns the secure URL
func (u *CloudinaryUploader) Upload(ctx context.Context, dataURI string) (string, error) {
	resp, err := u.client.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		Folder:       u.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return resp.SecureURL, nil
}
