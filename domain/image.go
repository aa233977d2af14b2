package domain

// MaxImageSize is the largest image the client will upload (5 MiB).
const MaxImageSize = 5 * 1024 * 1024

// Image is a locally selected file waiting to be uploaded.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Draft is what the compose view hands to the publisher.
type Draft struct {
	Title   string
	Content string
	Image   *Image // Local image to upload first, if any
	// ImageURL is the remote image kept from the post being edited.
	ImageURL string
}

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// SupportedImageType reports whether a sniffed content type may be uploaded.
func SupportedImageType(contentType string) bool {
	return supportedImageTypes[contentType]
}
