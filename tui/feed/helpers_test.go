package feed

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// countingLoader serves fixed pages and records every request.
type countingLoader struct {
	mu    sync.Mutex
	pages map[int][]domain.Post
	fail  map[int]error
	calls []int
}

func newCountingLoader(pages ...[]domain.Post) *countingLoader {
	l := &countingLoader{pages: map[int][]domain.Post{}, fail: map[int]error{}}
	for i, p := range pages {
		l.pages[i+1] = p
	}
	return l
}

func (l *countingLoader) Load(_ context.Context, page, size int) (domain.Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, page)
	if err := l.fail[page]; err != nil {
		return domain.Page{}, err
	}
	return domain.Page{Number: page, Size: size, Posts: l.pages[page]}, nil
}

func (l *countingLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

type stubInteractions struct {
	mu         sync.Mutex
	commentErr error
	reactErr   error
	comments   []string
	commentIDs []int64
	reactions  []int64
}

func (s *stubInteractions) Comment(_ context.Context, postID int64, content string) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, content)
	s.commentIDs = append(s.commentIDs, postID)
	if s.commentErr != nil {
		return domain.Comment{}, s.commentErr
	}
	return domain.Comment{ID: 1, PostID: postID, Content: content}, nil
}

func (s *stubInteractions) React(_ context.Context, postID int64, _ string) (domain.ReactionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions = append(s.reactions, postID)
	if s.reactErr != nil {
		return domain.ReactionResult{}, s.reactErr
	}
	return domain.ReactionResult{Liked: true, Count: 99}, nil
}

var errBoom = errors.New("boom")

// collect runs cmd and returns every message it produces, flattening batches.
// Spinner ticks are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// loaded builds a model with the given pages already appended.
func loaded(l *countingLoader, ix *stubInteractions, size int, pages ...[]domain.Post) Model {
	m := New(SourceHome, l.Load, ix, size, 1)
	m.loading = false
	for i, p := range pages {
		m.pager.Append(i+1, p)
	}
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(keyRune(r))
	}
	return m
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
