package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// postService implements app.PostService.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the feed API.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

func newPostRequest(in domain.PostInput) (postRequest, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return postRequest{}, domain.ErrEmptyPost
	}
	return postRequest{
		Title:   strings.TrimSpace(in.Title),
		Content: content,
		Image:   strings.TrimSpace(in.ImageURL),
	}, nil
}

func (s *postService) Create(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	req, err := newPostRequest(in)
	if err != nil {
		return domain.Post{}, err
	}

	var wp wirePost
	if err := s.client.Post(ctx, "/posts", req, &wp); err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return wp.toDomain(true), nil
}

func (s *postService) Edit(ctx context.Context, id int64, in domain.PostInput) (domain.Post, error) {
	req, err := newPostRequest(in)
	if err != nil {
		return domain.Post{}, err
	}

	var wp wirePost
	path := fmt.Sprintf("/posts/%d", id)
	if err := s.client.Put(ctx, path, req, &wp); err != nil {
		return domain.Post{}, fmt.Errorf("editing post: %w", err)
	}
	return wp.toDomain(true), nil
}

func (s *postService) MyPosts(ctx context.Context, page, pageSize int) (domain.Page, error) {
	p, err := fetchPage(ctx, s.client, "/my-posts", page, pageSize, true)
	if err != nil {
		return domain.Page{}, fmt.Errorf("fetching my posts: %w", err)
	}
	return p, nil
}
