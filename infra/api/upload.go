package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// imageField is the multipart field name the backend binds uploads to.
const imageField = "ImageFile"

// uploadService implements app.UploadService.
type uploadService struct {
	client *Client
}

// NewUploadService creates an UploadService backed by the feed API.
func NewUploadService(client *Client) *uploadService {
	return &uploadService{client: client}
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

func (s *uploadService) UploadImage(ctx context.Context, img domain.Image) (string, error) {
	if len(img.Data) == 0 {
		return "", domain.ErrUnsupportedImage
	}
	if len(img.Data) > domain.MaxImageSize {
		return "", domain.ErrImageTooLarge
	}

	var ur uploadResponse
	if err := s.client.PostFile(ctx, "/upload/image", imageField, img, &ur); err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	if strings.TrimSpace(ur.ImageURL) == "" {
		return "", fmt.Errorf("uploading image: no URL returned from API")
	}
	return strings.TrimSpace(ur.ImageURL), nil
}

type deleteImageRequest struct {
	ImageURL string `json:"ImageUrl"`
}

func (s *uploadService) DeleteImage(ctx context.Context, imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return fmt.Errorf("deleting image: empty URL")
	}
	if err := s.client.Delete(ctx, "/upload/image", deleteImageRequest{ImageURL: imageURL}, nil); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}
