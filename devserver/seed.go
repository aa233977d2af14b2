package devserver

import (
	"context"
	"fmt"
)

// Demo account created by Seed.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo1234"
)

var seedAuthors = []struct {
	name  string
	email string
}{
	{"Demo User", DemoEmail},
	{"Ada Byron", "ada@example.com"},
	{"Linus Pauling", "linus@example.com"},
}

// Seed creates the demo accounts and n posts spread across them.
func (api *API) Seed(ctx context.Context, n int) error {
	ids := make([]int64, 0, len(seedAuthors))
	for _, a := range seedAuthors {
		hash, err := api.hasher.Hash(DemoPassword)
		if err != nil {
			return fmt.Errorf("hashing seed password: %w", err)
		}
		u, err := api.db.AddUser(ctx, User{
			Name:              a.name,
			Email:             a.email,
			PasswordHash:      hash,
			ProfilePictureURL: "https://example.com/avatars/default.png",
		})
		if err != nil {
			return fmt.Errorf("adding seed user %s: %w", a.email, err)
		}
		ids = append(ids, u.ID)
	}

	for i := 1; i <= n; i++ {
		author := ids[i%len(ids)]
		p, err := api.db.AddPost(ctx, Post{
			UserID:  author,
			Title:   fmt.Sprintf("Seed post #%d", i),
			Content: fmt.Sprintf("This is seeded post number %d.", i),
		})
		if err != nil {
			return fmt.Errorf("adding seed post: %w", err)
		}
		if i%3 == 0 {
			if _, err := api.db.AddComment(ctx, Comment{PostID: p.ID, UserID: ids[(i+1)%len(ids)], Content: "Nice one!"}); err != nil {
				return fmt.Errorf("adding seed comment: %w", err)
			}
		}
	}
	return nil
}
