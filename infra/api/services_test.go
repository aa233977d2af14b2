package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/h2non/gock"

	"github.com/CrestNiraj12/socialfeed/domain"
)

const gockBase = "http://feed.test"

func newGockClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(gockBase+"/api", staticToken("tok"))
	gock.InterceptClient(c.http)
	t.Cleanup(func() {
		gock.RestoreClient(c.http)
		gock.Off()
	})
	return c
}

func TestFeedService_FetchPosts_SendsPageParams(t *testing.T) {
	c := newGockClient(t)

	gock.New(gockBase).
		Get("/api/posts").
		MatchParam("page", "2").
		MatchParam("pageSize", "3").
		MatchHeader("Authorization", "Bearer tok").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"message": "Posts fetched",
			"status":  200,
			"data": []map[string]any{
				{"id": 7, "title": "t", "content": "c", "author": map[string]any{"id": 1, "name": "Ana"}, "commentCount": 2, "reactionCount": 5},
				{"id": 6, "title": "t2", "content": "c2", "author": map[string]any{"id": 2, "name": "Bo"}},
			},
		})

	page, err := NewFeedService(c).FetchPosts(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Number != 2 || page.Size != 3 || page.Message != "Posts fetched" || page.Status != 200 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}
	if len(page.Posts) != 2 || page.Posts[0].ID != 7 || page.Posts[1].ID != 6 {
		t.Fatalf("expected server order preserved: %+v", page.Posts)
	}
	if page.Posts[0].ReactionCount != 5 || page.Posts[0].CommentCount != 2 || page.Posts[0].Author.Name != "Ana" {
		t.Fatalf("unexpected mapping: %+v", page.Posts[0])
	}
	if page.Posts[0].IsOwn {
		t.Fatal("home feed posts must not be marked own")
	}
	if !gock.IsDone() {
		t.Fatal("expected all mocks consumed")
	}
}

func TestFeedService_FetchPosts_Unauthorized(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).Get("/api/posts").Reply(http.StatusUnauthorized)

	_, err := NewFeedService(c).FetchPosts(context.Background(), 1, 10)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestFeedService_Comment(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Post("/api/posts/42/comments").
		MatchType("json").
		JSON(map[string]string{"content": "nice"}).
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "Comment added", "status": 201, "data": map[string]any{
			"id": 9, "postId": 42, "userId": 3, "content": "nice",
		}})

	cm, err := NewFeedService(c).Comment(context.Background(), 42, "nice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cm.ID != 9 || cm.PostID != 42 || cm.Author.ID != 3 || cm.Content != "nice" {
		t.Fatalf("unexpected comment: %+v", cm)
	}
}

func TestFeedService_CommentRejectsEmptyWithoutRequest(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).Post("/api/posts/1/comments").Reply(http.StatusOK)

	_, err := NewFeedService(c).Comment(context.Background(), 1, "   ")
	if !errors.Is(err, domain.ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
	if gock.IsDone() {
		t.Fatal("expected no request for an empty comment")
	}
}

func TestFeedService_ReactDefaultsToLike(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Post("/api/posts/5/reaction").
		MatchType("json").
		JSON(map[string]string{"type": "like"}).
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "Reacted", "status": 200, "data": map[string]any{"liked": true, "count": 4}})

	res, err := NewFeedService(c).React(context.Background(), 5, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Liked || res.Count != 4 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPostService_CreateAndEdit(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Post("/api/posts").
		MatchType("json").
		JSON(map[string]string{"title": "Hi", "content": "body", "image": "http://img/1.png"}).
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "Created", "status": 201, "data": map[string]any{"id": 11, "title": "Hi", "content": "body", "image": "http://img/1.png"}})
	gock.New(gockBase).
		Put("/api/posts/11").
		MatchType("json").
		JSON(map[string]string{"title": "Hi", "content": "edited"}).
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "Updated", "status": 200, "data": map[string]any{"id": 11, "title": "Hi", "content": "edited"}})

	svc := NewPostService(c)
	p, err := svc.Create(context.Background(), domain.PostInput{Title: "Hi", Content: "body", ImageURL: "http://img/1.png"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != 11 || p.ImageURL != "http://img/1.png" || !p.IsOwn {
		t.Fatalf("unexpected created post: %+v", p)
	}

	p, err = svc.Edit(context.Background(), 11, domain.PostInput{Title: "Hi", Content: "edited"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if p.Content != "edited" || p.HasImage() {
		t.Fatalf("unexpected edited post: %+v", p)
	}
	if !gock.IsDone() {
		t.Fatal("expected create and edit requests")
	}
}

func TestPostService_CreateRejectsEmptyContent(t *testing.T) {
	c := newGockClient(t)
	_, err := NewPostService(c).Create(context.Background(), domain.PostInput{Title: "x", Content: " \n"})
	if !errors.Is(err, domain.ErrEmptyPost) {
		t.Fatalf("expected ErrEmptyPost, got %v", err)
	}
}

func TestPostService_MyPostsUsesArrayShape(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Get("/api/my-posts").
		MatchParam("page", "1").
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "ok", "status": 200, "data": []map[string]any{{
			"id":        3,
			"content":   "mine",
			"user":      map[string]any{"id": 1, "name": "Me"},
			"comments":  []map[string]any{{"id": 1}, {"id": 2}},
			"reactions": []map[string]any{{"id": 1}},
		}}})

	page, err := NewPostService(c).MyPosts(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Posts) != 1 {
		t.Fatalf("expected one post, got %d", len(page.Posts))
	}
	p := page.Posts[0]
	if !p.IsOwn || p.Author.Name != "Me" || p.CommentCount != 2 || p.ReactionCount != 1 {
		t.Fatalf("unexpected mapping: %+v", p)
	}
}

func TestProfileService_CurrentProfile(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Get("/api/profile").
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "ok", "status": 200, "data": map[string]any{
			"id": 1, "name": "Ana", "email": "ana@example.com", "createdAt": "2024-05-01T10:00:00Z",
			"postCount": 3, "commentCount": 4, "reactionCount": 5,
		}})

	p, err := NewProfileService(c).CurrentProfile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Ana" || p.PostCount != 3 || p.CommentCount != 4 || p.ReactionCount != 5 || p.CreatedAt.IsZero() {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestAuthService_LoginReturnsToken(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Post("/api/Auth/login").
		MatchType("json").
		JSON(map[string]string{"email": "ana@example.com", "password": "secret"}).
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "ok", "status": 200, "data": map[string]any{
			"success": true, "token": "jwt-token", "user": map[string]any{"id": 1, "name": "Ana", "email": "ana@example.com"},
		}})

	sess, err := NewAuthService(c).Login(context.Background(), " ana@example.com ", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "jwt-token" || sess.User.Name != "Ana" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestAuthService_LoginWithoutTokenFails(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Post("/api/Auth/login").
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "ok", "status": 200, "data": map[string]any{"success": true}})

	_, err := NewAuthService(c).Login(context.Background(), "ana@example.com", "secret")
	if !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestAuthService_LoginBadCredentials(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Post("/api/Auth/login").
		Reply(http.StatusBadRequest).
		JSON(map[string]any{"message": "Invalid credentials", "status": 400, "data": nil})

	_, err := NewAuthService(c).Login(context.Background(), "ana@example.com", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid credentials" {
		t.Fatalf("expected APIError with server message, got %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Post("/api/Auth/register").
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "Registered", "status": 201, "data": map[string]any{
			"success": true, "user": map[string]any{"id": 4, "name": "Bo", "email": "bo@example.com"},
		}})

	u, err := NewAuthService(c).Register(context.Background(), domain.Registration{
		Name: "Bo", Email: "bo@example.com", Password: "pass", ConfirmPassword: "pass", ProfilePictureURL: "https://pics/bo.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 4 || u.Email != "bo@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUploadService_DeleteImageSendsURLBody(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Delete("/api/upload/image").
		MatchType("json").
		JSON(map[string]string{"ImageUrl": "http://img/old.png"}).
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "Deleted", "status": 0})

	if err := NewUploadService(c).DeleteImage(context.Background(), "http://img/old.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gock.IsDone() {
		t.Fatal("expected delete request")
	}
}

func TestUploadService_UploadImageRejectsOversize(t *testing.T) {
	c := newGockClient(t)
	big := make([]byte, domain.MaxImageSize+1)
	_, err := NewUploadService(c).UploadImage(context.Background(), domain.Image{Name: "x.png", Data: big})
	if !errors.Is(err, domain.ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestUploadService_UploadImageMissingURL(t *testing.T) {
	c := newGockClient(t)
	gock.New(gockBase).
		Post("/api/upload/image").
		Reply(http.StatusOK).
		JSON(map[string]any{"message": "ok", "status": 0, "data": map[string]any{}})

	_, err := NewUploadService(c).UploadImage(context.Background(), domain.Image{Name: "x.png", ContentType: "image/png", Data: []byte("x")})
	if err == nil {
		t.Fatal("expected error when no URL returned")
	}
}
