package api

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/socialfeed/domain"
)

type wireUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// wirePost accepts both post shapes the backend returns: /posts sends
// author and counts, /my-posts sends user plus comment and reaction arrays.
type wirePost struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Image         string            `json:"image"`
	CreatedAt     string            `json:"createdAt"`
	Author        *wireUser         `json:"author"`
	User          *wireUser         `json:"user"`
	UserID        int64             `json:"userId"`
	CommentCount  *int              `json:"commentCount"`
	ReactionCount *int              `json:"reactionCount"`
	Comments      []json.RawMessage `json:"comments"`
	Reactions     []json.RawMessage `json:"reactions"`
}

type wireComment struct {
	ID      int64     `json:"id"`
	PostID  int64     `json:"postId"`
	UserID  int64     `json:"userId"`
	User    *wireUser `json:"user"`
	Content string    `json:"content"`
}

type wireProfile struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	CreatedAt     string `json:"createdAt"`
	PostCount     int    `json:"postCount"`
	CommentCount  int    `json:"commentCount"`
	ReactionCount int    `json:"reactionCount"`
}

func (w wirePost) toDomain(own bool) domain.Post {
	author := domain.Author{ID: w.UserID}
	switch {
	case w.Author != nil:
		author = domain.Author{ID: w.Author.ID, Name: sanitizeForTerminal(w.Author.Name)}
	case w.User != nil:
		author = domain.Author{ID: w.User.ID, Name: sanitizeForTerminal(w.User.Name)}
	}

	comments := len(w.Comments)
	if w.CommentCount != nil {
		comments = *w.CommentCount
	}
	reactions := len(w.Reactions)
	if w.ReactionCount != nil {
		reactions = *w.ReactionCount
	}

	return domain.Post{
		ID:            w.ID,
		Author:        author,
		Title:         sanitizeForTerminal(w.Title),
		Content:       sanitizeForTerminal(w.Content),
		ImageURL:      strings.TrimSpace(w.Image),
		CreatedAt:     parseTime(w.CreatedAt),
		CommentCount:  comments,
		ReactionCount: reactions,
		IsOwn:         own,
	}
}

func mapPosts(in []wirePost, own bool) []domain.Post {
	out := make([]domain.Post, 0, len(in))
	for _, w := range in {
		out = append(out, w.toDomain(own))
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
}

// parseTime returns the zero time for missing or unparseable timestamps.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// sanitizeForTerminal strips escape sequences and control characters so server
// text cannot drive the terminal. Newlines and tabs are kept.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
