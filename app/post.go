package app

import (
	"context"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// PostService publishes and edits posts on the backend.
type PostService interface {
	Create(ctx context.Context, in domain.PostInput) (domain.Post, error)
	Edit(ctx context.Context, id int64, in domain.PostInput) (domain.Post, error)

	// MyPosts returns a page of the caller's own posts.
	MyPosts(ctx context.Context, page, pageSize int) (domain.Page, error)
}

// UploadService stores images and returns their remote URL.
type UploadService interface {
	UploadImage(ctx context.Context, img domain.Image) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}
