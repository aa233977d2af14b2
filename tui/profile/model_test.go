package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/tui/common"
	"github.com/CrestNiraj12/socialfeed/tui/feed"
)

type stubProfiles struct {
	calls int
	err   error
}

func (s *stubProfiles) CurrentProfile(context.Context) (domain.Profile, error) {
	s.calls++
	if s.err != nil {
		return domain.Profile{}, s.err
	}
	return domain.Profile{
		ID:            1,
		Name:          "Ana",
		Email:         "ana@example.com",
		CreatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		PostCount:     2,
		CommentCount:  3,
		ReactionCount: 4,
	}, nil
}

type noInteractions struct{}

func (noInteractions) Comment(context.Context, int64, string) (domain.Comment, error) {
	return domain.Comment{}, nil
}

func (noInteractions) React(context.Context, int64, string) (domain.ReactionResult, error) {
	return domain.ReactionResult{}, nil
}

func ownPosts(_ context.Context, page, size int) (domain.Page, error) {
	if page > 1 {
		return domain.Page{Number: page, Size: size}, nil
	}
	return domain.Page{Number: 1, Size: size, Posts: []domain.Post{{ID: 1, Content: "mine", IsOwn: true}}}, nil
}

func TestProfile_LoadsHeader(t *testing.T) {
	svc := &stubProfiles{}
	m := New(svc, ownPosts, noInteractions{}, 5, 1)

	m, _ = m.Update(m.fetchProfile()())
	p, ok := m.Profile()
	if !ok || p.Name != "Ana" {
		t.Fatalf("expected profile loaded, got %+v", p)
	}
	v := ansi.Strip(m.View())
	for _, want := range []string{"Ana", "ana@example.com", "Joined March 2024", "2 posts", "3 comments", "4 reactions"} {
		if !strings.Contains(v, want) {
			t.Fatalf("expected %q in:\n%s", want, v)
		}
	}
}

func TestProfile_UnauthorizedRedirects(t *testing.T) {
	m := New(&stubProfiles{err: domain.ErrUnauthorized}, ownPosts, noInteractions{}, 5, 1)
	_, cmd := m.Update(m.fetchProfile()())
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(common.UnauthorizedMsg); !ok {
		t.Fatal("expected UnauthorizedMsg")
	}
}

func TestProfile_ErrorShown(t *testing.T) {
	m := New(&stubProfiles{err: errors.New("down")}, ownPosts, noInteractions{}, 5, 1)
	m, _ = m.Update(m.fetchProfile()())
	if !strings.Contains(ansi.Strip(m.View()), "Failed to load profile: down") {
		t.Fatal("expected error header")
	}
}

func TestProfile_StaleGenerationDropped(t *testing.T) {
	m := New(&stubProfiles{}, ownPosts, noInteractions{}, 5, 2)
	m, _ = m.Update(LoadedMsg{Gen: 1, Profile: domain.Profile{Name: "Old"}})
	if _, ok := m.Profile(); ok {
		t.Fatal("message from an old session must be ignored")
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func TestProfile_RefetchReloadsCounts(t *testing.T) {
	svc := &stubProfiles{}
	m := New(svc, ownPosts, noInteractions{}, 5, 1)

	_, cmd := m.Update(feed.RefetchedMsg{Source: feed.SourceMine, Gen: 1, Pages: [][]domain.Post{{{ID: 1}}}})
	collect(cmd)
	if svc.calls != 1 {
		t.Fatalf("expected one profile call, got %d", svc.calls)
	}
}

func TestProfile_RefetchFromOtherSourceIgnored(t *testing.T) {
	svc := &stubProfiles{}
	m := New(svc, ownPosts, noInteractions{}, 5, 1)

	_, cmd := m.Update(feed.RefetchedMsg{Source: feed.SourceHome, Gen: 1})
	collect(cmd)
	if svc.calls != 0 {
		t.Fatalf("expected no profile call, got %d", svc.calls)
	}
}

func TestProfile_RefreshKeyReloadsBoth(t *testing.T) {
	svc := &stubProfiles{}
	m := New(svc, ownPosts, noInteractions{}, 5, 1)
	m, _ = m.Update(feed.PageLoadedMsg{Source: feed.SourceMine, Gen: 1, Page: domain.Page{Number: 1, Posts: []domain.Post{{ID: 1}}}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	var sawPage bool
	for _, msg := range collect(cmd) {
		if _, ok := msg.(feed.PageLoadedMsg); ok {
			sawPage = true
		}
	}
	if !sawPage || svc.calls != 1 {
		t.Fatalf("expected page reload and profile call, sawPage=%v calls=%d", sawPage, svc.calls)
	}
}
