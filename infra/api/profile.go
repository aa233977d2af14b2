package api

import (
	"context"
	"fmt"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// profileService implements app.ProfileService.
type profileService struct {
	client *Client
}

// NewProfileService creates a ProfileService backed by the feed API.
func NewProfileService(client *Client) *profileService {
	return &profileService{client: client}
}

func (s *profileService) CurrentProfile(ctx context.Context) (domain.Profile, error) {
	var wp wireProfile
	if err := s.client.Get(ctx, "/profile", nil, &wp); err != nil {
		return domain.Profile{}, fmt.Errorf("fetching profile: %w", err)
	}
	return domain.Profile{
		ID:            wp.ID,
		Name:          sanitizeForTerminal(wp.Name),
		Email:         sanitizeForTerminal(wp.Email),
		CreatedAt:     parseTime(wp.CreatedAt),
		PostCount:     wp.PostCount,
		CommentCount:  wp.CommentCount,
		ReactionCount: wp.ReactionCount,
	}, nil
}
