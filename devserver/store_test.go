package devserver

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*Store, User) {
	t.Helper()
	db := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	db.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	u, err := db.AddUser(context.Background(), User{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	return db, u
}

func TestStore_LatestPostsPagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	db, u := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := db.AddPost(ctx, Post{UserID: u.ID, Content: "x"}); err != nil {
			t.Fatalf("AddPost: %v", err)
		}
	}

	first, pages, err := db.LatestPosts(ctx, 1, 2)
	if err != nil {
		t.Fatalf("LatestPosts: %v", err)
	}
	if pages != 3 || len(first) != 2 {
		t.Fatalf("expected 3 pages and 2 items, got %d pages %d items", pages, len(first))
	}
	if !first[0].CreatedAt.After(first[1].CreatedAt) {
		t.Fatalf("expected newest first: %+v", first)
	}

	last, _, _ := db.LatestPosts(ctx, 3, 2)
	if len(last) != 1 {
		t.Fatalf("expected one item on last page, got %d", len(last))
	}
	beyond, _, _ := db.LatestPosts(ctx, 4, 2)
	if len(beyond) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(beyond))
	}
}

func TestStore_AddUserRejectsDuplicateEmail(t *testing.T) {
	db, _ := newTestStore(t)
	_, err := db.AddUser(context.Background(), User{Name: "Other", Email: "ANA@example.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestStore_ToggleReactionPerUser(t *testing.T) {
	ctx := context.Background()
	db, u := newTestStore(t)
	other, _ := db.AddUser(ctx, User{Name: "Bo", Email: "bo@example.com"})
	p, _ := db.AddPost(ctx, Post{UserID: u.ID, Content: "x"})

	liked, count, err := db.ToggleReaction(ctx, p.ID, u.ID, "like")
	if err != nil || !liked || count != 1 {
		t.Fatalf("first toggle: liked=%v count=%d err=%v", liked, count, err)
	}
	liked, count, _ = db.ToggleReaction(ctx, p.ID, other.ID, "like")
	if !liked || count != 2 {
		t.Fatalf("second user toggle: liked=%v count=%d", liked, count)
	}
	liked, count, _ = db.ToggleReaction(ctx, p.ID, u.ID, "like")
	if liked || count != 1 {
		t.Fatalf("untoggle: liked=%v count=%d", liked, count)
	}

	if _, _, err := db.ToggleReaction(ctx, 999, u.ID, "like"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestStore_UpdatePostChecksOwner(t *testing.T) {
	ctx := context.Background()
	db, u := newTestStore(t)
	other, _ := db.AddUser(ctx, User{Name: "Bo", Email: "bo@example.com"})
	p, _ := db.AddPost(ctx, Post{UserID: u.ID, Content: "x"})

	if _, err := db.UpdatePost(ctx, other.ID, Post{ID: p.ID, Content: "y"}); !errors.Is(err, ErrNotPostOwner) {
		t.Fatalf("expected ErrNotPostOwner, got %v", err)
	}
	got, err := db.UpdatePost(ctx, u.ID, Post{ID: p.ID, Content: "y", Image: "img"})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if got.Content != "y" || got.Image != "img" || !got.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestStore_UserStats(t *testing.T) {
	ctx := context.Background()
	db, u := newTestStore(t)
	p1, _ := db.AddPost(ctx, Post{UserID: u.ID, Content: "a"})
	_, _ = db.AddPost(ctx, Post{UserID: u.ID, Content: "b"})
	_, _ = db.AddComment(ctx, Comment{PostID: p1.ID, UserID: u.ID, Content: "c"})
	_, _, _ = db.ToggleReaction(ctx, p1.ID, u.ID, "like")

	posts, comments, reactions := db.UserStats(ctx, u.ID)
	if posts != 2 || comments != 1 || reactions != 1 {
		t.Fatalf("unexpected stats: %d %d %d", posts, comments, reactions)
	}
}

func TestStore_PagePastEndIsEmpty(t *testing.T) {
	ctx := context.Background()
	db, u := newTestStore(t)
	if _, err := db.AddPost(ctx, Post{UserID: u.ID, Content: "x"}); err != nil {
		t.Fatalf("AddPost: %v", err)
	}

	for _, page := range []int{2, math.MaxInt} {
		got, pages, err := db.LatestPosts(ctx, page, 10)
		if err != nil {
			t.Fatalf("LatestPosts(%d): %v", page, err)
		}
		if len(got) != 0 || pages != 1 {
			t.Fatalf("page %d: expected empty page of 1, got %d items, %d pages", page, len(got), pages)
		}
	}
}
