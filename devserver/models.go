package devserver

import "time"

type envelope struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data"`
}

type userJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// feedPostJSON is the /posts item shape.
type feedPostJSON struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Author        userJSON  `json:"author"`
	CommentCount  int       `json:"commentCount"`
	ReactionCount int       `json:"reactionCount"`
}

// ownPostJSON is the /my-posts item shape with nested comments and reactions.
type ownPostJSON struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"userId"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Image     string         `json:"image,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	User      userJSON       `json:"user"`
	Comments  []commentJSON  `json:"comments"`
	Reactions []reactionJSON `json:"reactions"`
}

type commentJSON struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	User      *userJSON `json:"user,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type reactionJSON struct {
	ID     int64  `json:"id"`
	PostID int64  `json:"postId"`
	UserID int64  `json:"userId"`
	Type   string `json:"type"`
}

type profileJSON struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"createdAt"`
	PostCount     int       `json:"postCount"`
	CommentCount  int       `json:"commentCount"`
	ReactionCount int       `json:"reactionCount"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userJSON `json:"user"`
}

type registerRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	ConfirmPassword   string `json:"confirmPassword"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

type registerResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    userJSON `json:"user"`
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type commentRequest struct {
	Content string `json:"content"`
}

type reactionRequest struct {
	Type string `json:"type"`
}

type reactionResponse struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

type deleteImageRequest struct {
	ImageURL string `json:"ImageUrl"`
}
