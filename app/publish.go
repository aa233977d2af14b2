package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// Publisher sequences an optional image upload before a create or edit call.
// The two calls are not transactional: if the post call fails after a
// successful upload, the uploaded image is left on the server.
type Publisher struct {
	posts   PostService
	uploads UploadService
	now     func() time.Time
}

// NewPublisher creates a Publisher.
func NewPublisher(posts PostService, uploads UploadService) *Publisher {
	return &Publisher{posts: posts, uploads: uploads, now: time.Now}
}

// Publish creates a new post. With a local image it uploads first and only
// creates the post once the upload has returned a URL.
func (p *Publisher) Publish(ctx context.Context, d domain.Draft) (domain.Post, error) {
	if err := domain.ValidateDraft(d); err != nil {
		return domain.Post{}, err
	}

	in, err := p.input(ctx, d)
	if err != nil {
		return domain.Post{}, err
	}

	post, err := p.posts.Create(ctx, in)
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return post, nil
}

// Edit updates an existing post with the same upload sequencing as Publish.
// A remote image dropped or replaced by the edit is deleted afterwards.
func (p *Publisher) Edit(ctx context.Context, id int64, d domain.Draft, previousImageURL string) (domain.Post, error) {
	if err := domain.ValidateDraft(d); err != nil {
		return domain.Post{}, err
	}

	in, err := p.input(ctx, d)
	if err != nil {
		return domain.Post{}, err
	}

	post, err := p.posts.Edit(ctx, id, in)
	if err != nil {
		return domain.Post{}, fmt.Errorf("editing post: %w", err)
	}

	if previousImageURL != "" && previousImageURL != in.ImageURL {
		if err := p.uploads.DeleteImage(ctx, previousImageURL); err != nil {
			log.Warnf("[publisher] failed to delete replaced image %s: %v", previousImageURL, err)
		}
	}
	return post, nil
}

func (p *Publisher) input(ctx context.Context, d domain.Draft) (domain.PostInput, error) {
	in := domain.PostInput{
		Title:    strings.TrimSpace(d.Title),
		Content:  d.Content,
		ImageURL: strings.TrimSpace(d.ImageURL),
	}
	if in.Title == "" {
		in.Title = "Post " + p.now().Format("Jan 2, 2006")
	}

	if d.Image != nil {
		url, err := p.uploads.UploadImage(ctx, *d.Image)
		if err != nil {
			return domain.PostInput{}, fmt.Errorf("uploading image: %w", err)
		}
		in.ImageURL = url
	}
	return in, nil
}
