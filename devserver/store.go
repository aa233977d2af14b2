package devserver

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostOwner  = errors.New("post belongs to another user")
	ErrImageNotFound = errors.New("image not found")
)

type User struct {
	ID                int64
	Name              string
	Email             string
	PasswordHash      string
	ProfilePictureURL string
	CreatedAt         time.Time
}

type Post struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

type Reaction struct {
	ID     int64
	PostID int64
	UserID int64
	Type   string
}

type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

type reactionKey struct {
	postID int64
	userID int64
}

// Store keeps every record in memory behind one mutex.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	nextID    int64
	users     map[int64]User
	posts     map[int64]Post
	comments  map[int64][]Comment
	reactions map[reactionKey]Reaction
	images    map[string]Image
}

func NewStore() *Store {
	return &Store{
		now:       time.Now,
		users:     make(map[int64]User),
		posts:     make(map[int64]Post),
		comments:  make(map[int64][]Comment),
		reactions: make(map[reactionKey]Reaction),
		images:    make(map[string]Image),
	}
}

func (db *Store) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *Store) AddUser(ctx context.Context, u User) (User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return User{}, ErrEmailTaken
		}
	}
	u.ID = db.id()
	u.CreatedAt = db.now().UTC()
	db.users[u.ID] = u
	return u, nil
}

func (db *Store) User(ctx context.Context, id int64) (User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (db *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (db *Store) AddPost(ctx context.Context, p Post) (Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[p.UserID]; !ok {
		return Post{}, ErrUserNotFound
	}
	p.ID = db.id()
	p.CreatedAt = db.now().UTC()
	p.UpdatedAt = p.CreatedAt
	db.posts[p.ID] = p
	return p, nil
}

// UpdatePost replaces title, content, and image of a post owned by userID.
func (db *Store) UpdatePost(ctx context.Context, userID int64, p Post) (Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cur, ok := db.posts[p.ID]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	if cur.UserID != userID {
		return Post{}, ErrNotPostOwner
	}
	cur.Title = p.Title
	cur.Content = p.Content
	cur.Image = p.Image
	cur.UpdatedAt = db.now().UTC()
	db.posts[cur.ID] = cur
	return cur, nil
}

func (db *Store) Post(ctx context.Context, id int64) (Post, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.posts[id]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	return p, nil
}

// LatestPosts returns one page of all posts, newest first.
func (db *Store) LatestPosts(ctx context.Context, page, limit int) ([]Post, int, error) {
	return db.pagePosts(page, limit, func(Post) bool { return true })
}

// UserPosts returns one page of the posts written by userID, newest first.
func (db *Store) UserPosts(ctx context.Context, userID int64, page, limit int) ([]Post, int, error) {
	return db.pagePosts(page, limit, func(p Post) bool { return p.UserID == userID })
}

func (db *Store) pagePosts(page, limit int, keep func(Post) bool) ([]Post, int, error) {
	if limit <= 0 {
		return []Post{}, 0, nil
	}

	db.mu.Lock()
	all := make([]Post, 0, len(db.posts))
	for _, p := range db.posts {
		if keep(p) {
			all = append(all, p)
		}
	}
	db.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	numPages := (total + limit - 1) / limit

	pageIndex := page - 1
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex >= numPages {
		return []Post{}, numPages, nil
	}
	start := pageIndex * limit
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], numPages, nil
}

func (db *Store) AddComment(ctx context.Context, c Comment) (Comment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.posts[c.PostID]; !ok {
		return Comment{}, ErrPostNotFound
	}
	c.ID = db.id()
	c.CreatedAt = db.now().UTC()
	db.comments[c.PostID] = append(db.comments[c.PostID], c)
	return c, nil
}

func (db *Store) Comments(ctx context.Context, postID int64) []Comment {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]Comment, len(db.comments[postID]))
	copy(out, db.comments[postID])
	return out
}

// ToggleReaction adds the user's reaction to a post or removes it when one
// already exists. It returns the new state and the post's reaction count.
func (db *Store) ToggleReaction(ctx context.Context, postID, userID int64, kind string) (bool, int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.posts[postID]; !ok {
		return false, 0, ErrPostNotFound
	}

	key := reactionKey{postID: postID, userID: userID}
	_, liked := db.reactions[key]
	if liked {
		delete(db.reactions, key)
	} else {
		db.reactions[key] = Reaction{ID: db.id(), PostID: postID, UserID: userID, Type: kind}
	}
	return !liked, db.reactionCountLocked(postID), nil
}

func (db *Store) Reactions(ctx context.Context, postID int64) []Reaction {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []Reaction
	for k, r := range db.reactions {
		if k.postID == postID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Counts returns the comment and reaction totals for a post.
func (db *Store) Counts(ctx context.Context, postID int64) (comments, reactions int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.comments[postID]), db.reactionCountLocked(postID)
}

func (db *Store) reactionCountLocked(postID int64) int {
	n := 0
	for k := range db.reactions {
		if k.postID == postID {
			n++
		}
	}
	return n
}

// UserStats counts what a user has written: posts, comments, and reactions.
func (db *Store) UserStats(ctx context.Context, userID int64) (posts, comments, reactions int) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.posts {
		if p.UserID == userID {
			posts++
		}
	}
	for _, cs := range db.comments {
		for _, c := range cs {
			if c.UserID == userID {
				comments++
			}
		}
	}
	for k := range db.reactions {
		if k.userID == userID {
			reactions++
		}
	}
	return posts, comments, reactions
}

func (db *Store) SaveImage(ctx context.Context, img Image) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.images[img.Name] = img
}

func (db *Store) Image(ctx context.Context, name string) (Image, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	img, ok := db.images[name]
	if !ok {
		return Image{}, ErrImageNotFound
	}
	return img, nil
}

func (db *Store) DeleteImage(ctx context.Context, name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.images[name]; !ok {
		return ErrImageNotFound
	}
	delete(db.images, name)
	return nil
}
