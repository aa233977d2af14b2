package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// authService implements app.AuthService.
type authService struct {
	client *Client
}

// NewAuthService creates an AuthService backed by the feed API.
func NewAuthService(client *Client) *authService {
	return &authService{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    *wireUser `json:"user"`
}

func (s *authService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var data loginData
	err := s.client.Post(ctx, "/Auth/login", loginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}, &data)
	if err != nil {
		return domain.Session{}, fmt.Errorf("logging in: %w", err)
	}
	if strings.TrimSpace(data.Token) == "" {
		return domain.Session{}, domain.ErrNoToken
	}

	sess := domain.Session{Token: strings.TrimSpace(data.Token)}
	if data.User != nil {
		sess.User = domain.User{ID: data.User.ID, Name: data.User.Name, Email: data.User.Email}
	}
	return sess, nil
}

type registerRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	ConfirmPassword   string `json:"confirmPassword,omitempty"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

type registerData struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *wireUser `json:"user"`
}

func (s *authService) Register(ctx context.Context, r domain.Registration) (domain.User, error) {
	var data registerData
	err := s.client.Post(ctx, "/Auth/register", registerRequest{
		Name:              strings.TrimSpace(r.Name),
		Email:             strings.TrimSpace(r.Email),
		Password:          r.Password,
		ConfirmPassword:   r.ConfirmPassword,
		ProfilePictureURL: strings.TrimSpace(r.ProfilePictureURL),
	}, &data)
	if err != nil {
		return domain.User{}, fmt.Errorf("registering: %w", err)
	}
	if data.User == nil {
		return domain.User{}, fmt.Errorf("registering: no user returned from API")
	}
	return domain.User{ID: data.User.ID, Name: data.User.Name, Email: data.User.Email}, nil
}
