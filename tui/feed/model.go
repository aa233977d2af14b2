package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/socialfeed/app"
	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/tui/common"
)

// Source selects which listing a feed model pages through.
type Source int

const (
	SourceHome Source = iota // GET /posts
	SourceMine               // GET /my-posts
)

func (s Source) String() string {
	if s == SourceMine {
		return "my posts"
	}
	return "feed"
}

// --- Messages ---
//
// Every message carries the Source and session generation of the model that
// issued it. Models ignore messages that are not theirs.

// PageLoadedMsg is sent when a single page request succeeds.
type PageLoadedMsg struct {
	Source Source
	Gen    int
	Page   domain.Page
}

// PageErrorMsg is sent when a single page request fails.
type PageErrorMsg struct {
	Source Source
	Gen    int
	Page   int
	Err    error
}

// RefetchedMsg carries pages 1..N reloaded after a mutation.
type RefetchedMsg struct {
	Source Source
	Gen    int
	Pages  [][]domain.Post
}

// RefetchErrorMsg is sent when a post-mutation refetch fails.
type RefetchErrorMsg struct {
	Source Source
	Gen    int
	Err    error
}

// CommentResultMsg is sent after a comment create attempt.
type CommentResultMsg struct {
	Source Source
	Gen    int
	PostID int64
	Err    error
}

// ReactionResultMsg is sent after a reaction toggle attempt.
type ReactionResultMsg struct {
	Source Source
	Gen    int
	PostID int64
	Result domain.ReactionResult
	Err    error
}

// EditPostMsg asks the root to open the composer for an own post.
type EditPostMsg struct {
	Post      domain.Post
	UseInline bool
}

// --- Model ---

// Model holds the state for a paged post list with comment and like actions.
type Model struct {
	source       Source
	gen          int
	load         app.PageLoader
	interactions app.InteractionService

	pager       Pager
	cursor      int
	startIndex  int
	loading     bool // First page or full reload in flight
	loadingMore bool
	refetching  bool
	sending     bool // Comment create in flight
	reacting    bool // Reaction toggle in flight
	err         error
	failedPage  int
	endNotice   string

	commenting    bool
	commentPostID int64 // Post the comment box was opened for
	comment       textinput.Model
	drafts        map[int64]string // Unsent comment text per post

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// New creates a feed model. gen is the session generation that owns it.
func New(source Source, load app.PageLoader, interactions app.InteractionService, pageSize, gen int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	ti := textinput.New()
	ti.Placeholder = "Write a comment..."
	ti.CharLimit = 1000
	ti.Width = 60

	return Model{
		source:       source,
		gen:          gen,
		load:         load,
		interactions: interactions,
		pager:        NewPager(pageSize),
		loading:      true,
		comment:      ti,
		drafts:       make(map[int64]string),
		keys:         common.DefaultKeyMap(),
		spinner:      s,
	}
}

// Init starts the first page fetch. New models begin in the loading state.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPage(1),
		m.spinner.Tick,
	)
}

// Items returns the concatenated posts of every loaded page.
func (m Model) Items() []domain.Post {
	return m.pager.Items()
}

// HasMore reports whether "load more" is offered.
func (m Model) HasMore() bool {
	return m.pager.HasMore()
}

// Loading reports whether a page request is in flight.
func (m Model) Loading() bool {
	return m.loading || m.loadingMore
}

// Err returns the page load failure that stopped the feed, if any.
func (m Model) Err() error {
	return m.err
}

// Cursor returns the selected index.
func (m Model) Cursor() int {
	return m.cursor
}

// Commenting reports whether the comment box has focus. The root uses this to
// keep global keys away from the text input.
func (m Model) Commenting() bool {
	return m.commenting
}

// SelectedPost returns the highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	items := m.pager.Items()
	if len(items) == 0 || m.cursor < 0 || m.cursor >= len(items) {
		return domain.Post{}, false
	}
	return items[m.cursor], true
}

// SetSize records the terminal size for layout.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) owns(source Source, gen int) bool {
	return source == m.source && gen == m.gen
}

// hasPost reports whether id is among the loaded posts.
func (m Model) hasPost(id int64) bool {
	for _, p := range m.pager.Items() {
		if p.ID == id {
			return true
		}
	}
	return false
}
