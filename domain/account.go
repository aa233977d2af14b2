package domain

import "time"

// User is the account record returned by login and register.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  User
}

// Registration holds the sign-up form.
type Registration struct {
	Name              string
	Email             string
	Password          string
	ConfirmPassword   string
	ProfilePictureURL string
}

// Profile is the caller's account with aggregate activity counts.
type Profile struct {
	ID            int64
	Name          string
	Email         string
	CreatedAt     time.Time
	PostCount     int
	CommentCount  int
	ReactionCount int
}
