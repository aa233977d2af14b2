package app

import (
	"context"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// AuthService exchanges credentials with the backend.
type AuthService interface {
	// Login returns a bearer token for the given credentials.
	Login(ctx context.Context, email, password string) (domain.Session, error)

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, r domain.Registration) (domain.User, error)
}

// ProfileService provides information about the authenticated user.
type ProfileService interface {
	// CurrentProfile returns the caller's profile and aggregate counts.
	CurrentProfile(ctx context.Context) (domain.Profile, error)
}
