package app

import (
	"context"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// PageLoader fetches one page of posts. Pages start at 1.
type PageLoader func(ctx context.Context, page, pageSize int) (domain.Page, error)

// FeedService fetches the shared post feed.
type FeedService interface {
	// FetchPosts returns the requested feed page in server order.
	FetchPosts(ctx context.Context, page, pageSize int) (domain.Page, error)
}

// InteractionService creates comments and toggles reactions on posts.
type InteractionService interface {
	Comment(ctx context.Context, postID int64, content string) (domain.Comment, error)

	// React toggles a reaction. Repeated calls are reconciled by the server.
	React(ctx context.Context, postID int64, reactionType string) (domain.ReactionResult, error)
}
