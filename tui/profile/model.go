package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/app"
	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/tui/common"
	"github.com/CrestNiraj12/socialfeed/tui/feed"
)

// LoadedMsg carries the result of GET /profile.
type LoadedMsg struct {
	Gen     int
	Profile domain.Profile
	Err     error
}

// Model shows the caller's profile above a list of their own posts.
type Model struct {
	gen      int
	profiles app.ProfileService
	posts    feed.Model
	profile  domain.Profile
	loaded   bool
	err      error
	keys     common.KeyMap
}

// New creates the profile view. myPosts loads pages of the caller's posts.
func New(profiles app.ProfileService, myPosts app.PageLoader, interactions app.InteractionService, pageSize, gen int) Model {
	return Model{
		gen:      gen,
		profiles: profiles,
		posts:    feed.New(feed.SourceMine, myPosts, interactions, pageSize, gen),
		keys:     common.DefaultKeyMap(),
	}
}

// Init loads the profile and the first page of posts.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchProfile(), m.posts.Init())
}

// Profile returns the last loaded profile.
func (m Model) Profile() (domain.Profile, bool) {
	return m.profile, m.loaded
}

// Posts returns the embedded post list.
func (m Model) Posts() feed.Model {
	return m.posts
}

// Commenting reports whether the comment box has focus.
func (m Model) Commenting() bool {
	return m.posts.Commenting()
}

// Refresh reloads the profile and the own-post list, e.g. after an edit.
func (m *Model) Refresh() tea.Cmd {
	return tea.Batch(m.fetchProfile(), m.posts.Reload())
}

func (m Model) fetchProfile() tea.Cmd {
	svc := m.profiles
	gen := m.gen
	return func() tea.Msg {
		p, err := svc.CurrentProfile(context.Background())
		return LoadedMsg{Gen: gen, Profile: p, Err: err}
	}
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrUnauthorized) {
				return m, func() tea.Msg { return common.UnauthorizedMsg{} }
			}
			log.Warnf("[profile] load failed: %v", msg.Err)
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.profile = msg.Profile
		m.loaded = true
		return m, nil

	case feed.RefetchedMsg:
		// Counts shown in the header change with every mutation.
		var cmd tea.Cmd
		m.posts, cmd = m.posts.Update(msg)
		if msg.Source != feed.SourceMine || msg.Gen != m.gen {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.fetchProfile())

	case tea.KeyMsg:
		if !m.posts.Commenting() && key.Matches(msg, m.keys.Refresh) {
			var cmd tea.Cmd
			m.posts, cmd = m.posts.Update(msg)
			return m, tea.Batch(cmd, m.fetchProfile())
		}
	}

	var cmd tea.Cmd
	m.posts, cmd = m.posts.Update(msg)
	return m, cmd
}

// View renders the profile header and the post list.
func (m Model) View() string {
	var b strings.Builder
	switch {
	case m.err != nil && !m.loaded:
		b.WriteString(common.ErrorStyle.Render("  Failed to load profile: "+m.err.Error()) + "\n\n")
	case !m.loaded:
		b.WriteString("  Loading profile...\n\n")
	default:
		b.WriteString(m.header())
	}
	b.WriteString(m.posts.View())
	return b.String()
}

func (m Model) header() string {
	p := m.profile
	var b strings.Builder
	b.WriteString("  " + common.AuthorStyle.Render(p.Name))
	if p.Email != "" {
		b.WriteString("  " + common.MetadataStyle.Render(p.Email))
	}
	b.WriteString("\n")

	stats := fmt.Sprintf("%d posts • %d comments • %d reactions", p.PostCount, p.CommentCount, p.ReactionCount)
	if !p.CreatedAt.IsZero() {
		stats = "Joined " + p.CreatedAt.Local().Format("January 2006") + " • " + stats
	}
	b.WriteString("  " + common.MetadataStyle.Render(stats) + "\n\n")
	return b.String()
}
