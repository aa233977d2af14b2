package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// LoadImage reads a local image and checks its type and size before upload.
func LoadImage(path string) (domain.Image, error) {
	path = strings.TrimSpace(path)
	info, err := os.Stat(path)
	if err != nil {
		return domain.Image{}, fmt.Errorf("reading image %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.Image{}, fmt.Errorf("%s: %w", path, domain.ErrUnsupportedImage)
	}
	if info.Size() > domain.MaxImageSize {
		return domain.Image{}, domain.ErrImageTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Image{}, fmt.Errorf("reading image %s: %w", path, err)
	}

	contentType := http.DetectContentType(data)
	if !domain.SupportedImageType(contentType) {
		return domain.Image{}, domain.ErrUnsupportedImage
	}

	return domain.Image{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
