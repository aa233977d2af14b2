package domain

import "time"

// Author is the public identity attached to posts and comments.
type Author struct {
	ID   int64
	Name string
}

// Post is a server-owned snapshot of a single feed item.
type Post struct {
	ID            int64
	Author        Author
	Title         string
	Content       string
	ImageURL      string    // Empty when the post has no image
	CreatedAt     time.Time // Zero when the server omitted it
	CommentCount  int
	ReactionCount int
	IsOwn         bool // True when listed from the caller's own posts
}

// HasImage reports whether the post carries a remote image.
func (p Post) HasImage() bool {
	return p.ImageURL != ""
}

// Comment is created once per mutation and never edited client-side.
type Comment struct {
	ID      int64
	PostID  int64
	Author  Author
	Content string
}

// ReactionLike is the only reaction type the client sends.
const ReactionLike = "like"

// Reaction is a single reaction record as stored by the server.
type Reaction struct {
	ID     int64
	PostID int64
	UserID int64
	Type   string
}

// ReactionResult is the server's answer to a reaction toggle.
type ReactionResult struct {
	Liked bool
	Count int
}

// Page is one page of posts plus the envelope metadata it arrived with.
type Page struct {
	Number  int
	Size    int
	Posts   []Post
	Message string
	Status  int
}

// PostInput is the create/edit payload.
type PostInput struct {
	Title    string
	Content  string
	ImageURL string
}
