package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/app"
	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/infra/config"
	"github.com/CrestNiraj12/socialfeed/infra/editor"
	"github.com/CrestNiraj12/socialfeed/infra/session"
	"github.com/CrestNiraj12/socialfeed/tui/common"
	"github.com/CrestNiraj12/socialfeed/tui/compose"
	"github.com/CrestNiraj12/socialfeed/tui/feed"
	"github.com/CrestNiraj12/socialfeed/tui/login"
	"github.com/CrestNiraj12/socialfeed/tui/profile"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Auth         app.AuthService
	Feed         app.FeedService
	Interactions app.InteractionService
	Posts        app.PostService
	Profile      app.ProfileService
	Publisher    *app.Publisher
	Session      *session.Store
	Editor       *editor.EnvEditor
	PageSize     int
	StatePath    string // UI state file; empty disables persistence
	InitialView  string // "feed" or "profile"
}

type activeView int

const (
	loginView activeView = iota
	feedView
	profileView
	composeView
)

const viewProfile = "profile"

// publishedMsg is sent after a create or edit went through the publisher.
type publishedMsg struct {
	gen    int
	post   domain.Post
	isEdit bool
	err    error
}

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps     Deps
	active   activeView
	returnTo activeView // View to show after compose
	gen      int        // Session generation; bumped on login and logout

	login   login.Model
	feed    feed.Model
	profile profile.Model
	compose compose.Model

	keys       common.KeyMap
	status     string // One-line status bar
	statusErr  bool
	publishing bool
	width      int
	height     int
	now        func() time.Time
}

// NewApp creates the root model with all dependencies wired. A stored session
// that is missing or already expired starts at the login view.
func NewApp(deps Deps) App {
	a := App{
		deps: deps,
		keys: common.DefaultKeyMap(),
		now:  time.Now,
	}
	if deps.Session.Authenticated(a.now()) {
		a.startSession()
	} else {
		a.active = loginView
		a.login = login.New(deps.Auth, "")
	}
	return a
}

// Init starts the active view.
func (a App) Init() tea.Cmd {
	if a.active == loginView {
		return a.login.Init()
	}
	return tea.Batch(a.feed.Init(), a.profile.Init())
}

// startSession builds fresh list views for a new session generation.
func (a *App) startSession() {
	a.gen++
	a.buildLists()

	a.active = feedView
	if a.deps.InitialView == viewProfile {
		a.active = profileView
	}
	a.returnTo = a.active
}

// endSession forgets the token and shows the login form. The list views are
// rebuilt for the new generation so results still in flight are dropped.
func (a *App) endSession(info string) tea.Cmd {
	if err := a.deps.Session.Clear(); err != nil {
		log.Warnf("[app] %v", err)
	}
	a.gen++
	a.active = loginView
	a.publishing = false
	a.login = login.New(a.deps.Auth, info)
	a.buildLists()
	a.status = ""
	return a.login.Init()
}

func (a *App) buildLists() {
	a.feed = feed.New(feed.SourceHome, a.deps.Feed.FetchPosts, a.deps.Interactions, a.deps.PageSize, a.gen)
	a.profile = profile.New(a.deps.Profile, a.deps.Posts.MyPosts, a.deps.Interactions, a.deps.PageSize, a.gen)
	a.resize()
}

// guard checks the session before a guarded view is shown.
func (a *App) guard() (tea.Cmd, bool) {
	if a.deps.Session.Authenticated(a.now()) {
		return nil, true
	}
	return a.endSession("Session expired. Please log in again."), false
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case spinner.TickMsg:
		// Each spinner only accepts ticks carrying its own ID.
		var cmds [3]tea.Cmd
		a.feed, cmds[0] = a.feed.Update(msg)
		a.profile, cmds[1] = a.profile.Update(msg)
		a.login, cmds[2] = a.login.Update(msg)
		return a, tea.Batch(cmds[:]...)

	case common.NoticeMsg:
		a.status = msg.Text
		a.statusErr = msg.IsErr
		return a, nil

	case common.UnauthorizedMsg:
		if a.active == loginView {
			return a, nil
		}
		log.Infof("[app] session rejected by server, returning to login")
		cmd := a.endSession(common.ErrorText(domain.ErrUnauthorized))
		return a, cmd

	case login.LoggedInMsg:
		if err := a.deps.Session.Set(msg.Session.Token); err != nil {
			a.status = "Error: " + err.Error()
			a.statusErr = true
			return a, nil
		}
		a.startSession()
		a.status = "Logged in as " + loggedInName(msg.Session, a.deps.Session.Claims())
		a.statusErr = false
		cmd := tea.Batch(a.feed.Init(), a.profile.Init())
		return a, cmd

	case feed.EditPostMsg:
		cmd, ok := a.guard()
		if !ok {
			return a, cmd
		}
		a.returnTo = a.active
		a.active = composeView
		a.status = ""
		if msg.UseInline {
			a.compose = compose.NewInlineForPost(msg.Post)
		} else {
			a.compose = compose.NewEditorForPost(a.deps.Editor, msg.Post)
		}
		cmd = a.compose.Init()
		return a, cmd

	case compose.DoneMsg:
		a.active = a.returnTo
		switch {
		case msg.Err != nil:
			a.status = common.ErrorText(msg.Err)
			a.statusErr = true
			return a, nil
		case msg.Cancelled:
			a.status = "Cancelled."
			a.statusErr = false
			return a, nil
		}
		a.publishing = true
		a.status = "Publishing..."
		a.statusErr = false
		return a, a.publish(msg)

	case publishedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.publishing = false
		if msg.err != nil {
			if errors.Is(msg.err, domain.ErrUnauthorized) {
				cmd := a.endSession(common.ErrorText(msg.err))
				return a, cmd
			}
			log.Warnf("[app] publish failed: %v", msg.err)
			a.status = common.ErrorText(msg.err)
			a.statusErr = true
			return a, nil
		}
		a.status = "Post published!"
		if msg.isEdit {
			a.status = "Post updated."
		}
		a.statusErr = false
		cmd := tea.Batch(a.feed.Reload(), a.profile.Refresh())
		return a, cmd

	case profile.LoadedMsg:
		var cmd tea.Cmd
		a.profile, cmd = a.profile.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if source, ok := listSource(msg); ok {
		return a.routeList(source, msg)
	}
	return a.updateActive(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.active {
	case loginView, composeView:
		return a.updateActive(msg)
	}

	if a.commenting() {
		return a.updateActive(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.SwitchView):
		cmd, ok := a.guard()
		if !ok {
			return a, cmd
		}
		if a.active == feedView {
			a.active = profileView
		} else {
			a.active = feedView
		}
		a.returnTo = a.active
		a.saveUIState()
		return a, nil

	case key.Matches(msg, a.keys.NewEditor), key.Matches(msg, a.keys.NewInline):
		if a.publishing {
			return a, common.Notice("Still publishing the previous post...", false)
		}
		cmd, ok := a.guard()
		if !ok {
			return a, cmd
		}
		a.returnTo = a.active
		a.active = composeView
		a.status = ""
		if key.Matches(msg, a.keys.NewInline) {
			a.compose = compose.NewInline()
		} else {
			a.compose = compose.NewEditor(a.deps.Editor)
		}
		cmd = a.compose.Init()
		return a, cmd

	case key.Matches(msg, a.keys.Logout):
		cmd := a.endSession("Logged out.")
		return a, cmd
	}

	return a.updateActive(msg)
}

func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case loginView:
		a.login, cmd = a.login.Update(msg)
	case feedView:
		a.feed, cmd = a.feed.Update(msg)
	case profileView:
		a.profile, cmd = a.profile.Update(msg)
	case composeView:
		a.compose, cmd = a.compose.Update(msg)
	}
	return a, cmd
}

// routeList delivers a list message to the view that issued it, whether or
// not that view is showing.
func (a App) routeList(source feed.Source, msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if source == feed.SourceMine {
		a.profile, cmd = a.profile.Update(msg)
	} else {
		a.feed, cmd = a.feed.Update(msg)
	}
	return a, cmd
}

func listSource(msg tea.Msg) (feed.Source, bool) {
	switch msg := msg.(type) {
	case feed.PageLoadedMsg:
		return msg.Source, true
	case feed.PageErrorMsg:
		return msg.Source, true
	case feed.RefetchedMsg:
		return msg.Source, true
	case feed.RefetchErrorMsg:
		return msg.Source, true
	case feed.CommentResultMsg:
		return msg.Source, true
	case feed.ReactionResultMsg:
		return msg.Source, true
	}
	return 0, false
}

func (a App) commenting() bool {
	switch a.active {
	case feedView:
		return a.feed.Commenting()
	case profileView:
		return a.profile.Commenting()
	}
	return false
}

func (a App) publish(msg compose.DoneMsg) tea.Cmd {
	pub := a.deps.Publisher
	gen := a.gen
	return func() tea.Msg {
		ctx := context.Background()
		var (
			post domain.Post
			err  error
		)
		if msg.IsEdit() {
			post, err = pub.Edit(ctx, msg.EditID, msg.Draft, msg.PreviousImageURL)
		} else {
			post, err = pub.Publish(ctx, msg.Draft)
		}
		return publishedMsg{gen: gen, post: post, isEdit: msg.IsEdit(), err: err}
	}
}

func (a *App) resize() {
	if a.width == 0 {
		return
	}
	// Title bar and status line.
	size := tea.WindowSizeMsg{Width: a.width, Height: a.height - 4}
	a.feed, _ = a.feed.Update(size)
	a.login, _ = a.login.Update(size)
	a.profile, _ = a.profile.Update(tea.WindowSizeMsg{Width: a.width, Height: size.Height - 3})
}

func (a App) saveUIState() {
	if a.deps.StatePath == "" {
		return
	}
	view := "feed"
	if a.active == profileView {
		view = viewProfile
	}
	if err := config.SaveUIState(a.deps.StatePath, config.UIState{View: view}); err != nil {
		log.Warnf("[app] %v", err)
	}
}

func loggedInName(s domain.Session, c session.Claims) string {
	switch {
	case s.User.Name != "":
		return s.User.Name
	case c.Name != "":
		return c.Name
	case s.User.Email != "":
		return s.User.Email
	default:
		return c.Email
	}
}
