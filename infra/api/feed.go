package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// feedService implements app.FeedService and app.InteractionService.
type feedService struct {
	client *Client
}

// NewFeedService creates a FeedService backed by the feed API.
func NewFeedService(client *Client) *feedService {
	return &feedService{client: client}
}

func (s *feedService) FetchPosts(ctx context.Context, page, pageSize int) (domain.Page, error) {
	p, err := fetchPage(ctx, s.client, "/posts", page, pageSize, false)
	if err != nil {
		return domain.Page{}, fmt.Errorf("fetching feed: %w", err)
	}
	return p, nil
}

type commentRequest struct {
	Content string `json:"content"`
}

func (s *feedService) Comment(ctx context.Context, postID int64, content string) (domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	var wc wireComment
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if err := s.client.Post(ctx, path, commentRequest{Content: content}, &wc); err != nil {
		return domain.Comment{}, fmt.Errorf("commenting on post: %w", err)
	}

	c := domain.Comment{ID: wc.ID, PostID: wc.PostID, Content: sanitizeForTerminal(wc.Content)}
	if c.PostID == 0 {
		c.PostID = postID
	}
	c.Author.ID = wc.UserID
	if wc.User != nil {
		c.Author = domain.Author{ID: wc.User.ID, Name: sanitizeForTerminal(wc.User.Name)}
	}
	return c, nil
}

type reactionRequest struct {
	Type string `json:"type"`
}

type reactionResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

func (s *feedService) React(ctx context.Context, postID int64, reactionType string) (domain.ReactionResult, error) {
	if reactionType == "" {
		reactionType = domain.ReactionLike
	}

	var rr reactionResponse
	path := fmt.Sprintf("/posts/%d/reaction", postID)
	if err := s.client.Post(ctx, path, reactionRequest{Type: reactionType}, &rr); err != nil {
		return domain.ReactionResult{}, fmt.Errorf("reacting to post: %w", err)
	}
	return domain.ReactionResult{Liked: rr.Liked, Count: rr.Count}, nil
}

// fetchPage is shared by the feed and my-posts listings.
func fetchPage(ctx context.Context, c *Client, path string, page, pageSize int, own bool) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var posts []wirePost
	meta := envelopeMeta{Data: &posts}
	if err := c.Get(ctx, path, q, &meta); err != nil {
		return domain.Page{}, err
	}

	return domain.Page{
		Number:  page,
		Size:    pageSize,
		Posts:   mapPosts(posts, own),
		Message: meta.Message,
		Status:  meta.Status,
	}, nil
}
