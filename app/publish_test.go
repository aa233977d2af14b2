package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/CrestNiraj12/socialfeed/domain"
)

type call struct {
	op  string
	arg string
}

type recorder struct {
	calls     []call
	uploadURL string
	uploadErr error
	createErr error
	deleteErr error
	lastInput domain.PostInput
}

func (r *recorder) Create(_ context.Context, in domain.PostInput) (domain.Post, error) {
	r.calls = append(r.calls, call{op: "create", arg: in.ImageURL})
	r.lastInput = in
	if r.createErr != nil {
		return domain.Post{}, r.createErr
	}
	return domain.Post{ID: 1, Title: in.Title, Content: in.Content, ImageURL: in.ImageURL}, nil
}

func (r *recorder) Edit(_ context.Context, id int64, in domain.PostInput) (domain.Post, error) {
	r.calls = append(r.calls, call{op: "edit", arg: in.ImageURL})
	r.lastInput = in
	return domain.Post{ID: id, Content: in.Content, ImageURL: in.ImageURL}, nil
}

func (r *recorder) MyPosts(context.Context, int, int) (domain.Page, error) {
	return domain.Page{}, nil
}

func (r *recorder) UploadImage(_ context.Context, img domain.Image) (string, error) {
	r.calls = append(r.calls, call{op: "upload", arg: img.Name})
	if r.uploadErr != nil {
		return "", r.uploadErr
	}
	return r.uploadURL, nil
}

func (r *recorder) DeleteImage(_ context.Context, url string) error {
	r.calls = append(r.calls, call{op: "delete", arg: url})
	return r.deleteErr
}

func (r *recorder) ops() string {
	parts := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		parts = append(parts, c.op)
	}
	return strings.Join(parts, ",")
}

func newTestPublisher(r *recorder) *Publisher {
	p := NewPublisher(r, r)
	p.now = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }
	return p
}

func TestPublish_WithoutImageCreatesOnce(t *testing.T) {
	r := &recorder{}
	post, err := newTestPublisher(r).Publish(context.Background(), domain.Draft{Content: "hello"})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if r.ops() != "create" {
		t.Fatalf("expected a single create call, got %q", r.ops())
	}
	if post.ImageURL != "" {
		t.Fatalf("expected no image url, got %q", post.ImageURL)
	}
	if r.lastInput.Title != "Post Mar 4, 2026" {
		t.Fatalf("expected default title, got %q", r.lastInput.Title)
	}
}

func TestPublish_UploadsThenCreatesWithReturnedURL(t *testing.T) {
	r := &recorder{uploadURL: "https://cdn.example/a.png"}
	img := &domain.Image{Name: "a.png", ContentType: "image/png", Data: []byte("x")}

	_, err := newTestPublisher(r).Publish(context.Background(), domain.Draft{Title: "T", Content: "hi", Image: img})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if r.ops() != "upload,create" {
		t.Fatalf("expected upload then create, got %q", r.ops())
	}
	if r.calls[1].arg != "https://cdn.example/a.png" {
		t.Fatalf("create must use uploaded url, got %q", r.calls[1].arg)
	}
	if r.lastInput.Title != "T" {
		t.Fatalf("explicit title must be kept, got %q", r.lastInput.Title)
	}
}

func TestPublish_UploadFailureSkipsCreate(t *testing.T) {
	r := &recorder{uploadErr: errors.New("boom")}
	img := &domain.Image{Name: "a.png"}

	_, err := newTestPublisher(r).Publish(context.Background(), domain.Draft{Content: "hi", Image: img})
	if err == nil {
		t.Fatalf("expected upload error")
	}
	if r.ops() != "upload" {
		t.Fatalf("create must not run after failed upload, got %q", r.ops())
	}
}

func TestPublish_CreateFailureLeavesUploadedImage(t *testing.T) {
	r := &recorder{uploadURL: "https://cdn.example/a.png", createErr: errors.New("nope")}
	img := &domain.Image{Name: "a.png"}

	if _, err := newTestPublisher(r).Publish(context.Background(), domain.Draft{Content: "hi", Image: img}); err == nil {
		t.Fatalf("expected create error")
	}
	if r.ops() != "upload,create" {
		t.Fatalf("expected no cleanup call, got %q", r.ops())
	}
}

func TestPublish_UnauthorizedUploadStopsSequence(t *testing.T) {
	r := &recorder{uploadErr: domain.ErrUnauthorized}
	img := &domain.Image{Name: "a.png"}

	_, err := newTestPublisher(r).Publish(context.Background(), domain.Draft{Content: "hi", Image: img})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized to propagate, got %v", err)
	}
	if len(r.calls) != 1 {
		t.Fatalf("expected no further calls, got %q", r.ops())
	}
}

func TestPublish_EmptyContentMakesNoCalls(t *testing.T) {
	r := &recorder{}
	_, err := newTestPublisher(r).Publish(context.Background(), domain.Draft{Content: " "})
	if !errors.Is(err, domain.ErrEmptyPost) {
		t.Fatalf("expected empty post error, got %v", err)
	}
	if len(r.calls) != 0 {
		t.Fatalf("validation failure must not reach the backend: %q", r.ops())
	}
}

func TestEdit_DeletesReplacedImage(t *testing.T) {
	r := &recorder{uploadURL: "https://cdn.example/new.png"}
	img := &domain.Image{Name: "new.png"}

	_, err := newTestPublisher(r).Edit(context.Background(), 7, domain.Draft{Content: "hi", Image: img}, "https://cdn.example/old.png")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if r.ops() != "upload,edit,delete" {
		t.Fatalf("unexpected call order: %q", r.ops())
	}
	if r.calls[2].arg != "https://cdn.example/old.png" {
		t.Fatalf("expected old image deleted, got %q", r.calls[2].arg)
	}
}

func TestEdit_KeepsUnchangedImage(t *testing.T) {
	r := &recorder{deleteErr: errors.New("should not be called")}
	old := "https://cdn.example/old.png"

	_, err := newTestPublisher(r).Edit(context.Background(), 7, domain.Draft{Content: "hi", ImageURL: old}, old)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if r.ops() != "edit" {
		t.Fatalf("expected edit only, got %q", r.ops())
	}
}
