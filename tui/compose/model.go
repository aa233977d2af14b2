package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/socialfeed/app"
	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// Inline form fields in tab order.
const (
	fieldTitle = iota
	fieldContent
	fieldImage
	fieldCount
)

const maxContentLen = 5000

// --- Messages ---

// DoneMsg is sent when composing is complete (submit, cancel, or failure).
// The root hands a submitted Draft to the publisher.
type DoneMsg struct {
	Draft            domain.Draft
	EditID           int64  // Zero for a new post
	PreviousImageURL string // Image of the post being edited
	Cancelled        bool
	Err              error
}

// IsEdit reports whether the draft replaces an existing post.
func (d DoneMsg) IsEdit() bool {
	return d.EditID != 0
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode   mode
	editor *editor.EnvEditor
	status string
	err    error // Inline validation error; blocks submit

	title     textinput.Model
	body      textarea.Model
	imagePath textinput.Model
	focus     int

	tmpPath   string      // Temp file path for editor mode
	original  domain.Post // Post being edited, zero for a new post
	dropImage bool        // Remove the original image on submit

	loadImage func(path string) (domain.Image, error)
}

// NewEditor creates a compose model that opens $EDITOR via tea.Exec.
func NewEditor(ed *editor.EnvEditor) Model {
	return Model{
		mode:      editorMode,
		editor:    ed,
		status:    "Opening editor...",
		loadImage: app.LoadImage,
	}
}

// NewEditorForPost opens $EDITOR on the content of an existing own post.
// Title and image are kept.
func NewEditorForPost(ed *editor.EnvEditor, p domain.Post) Model {
	m := NewEditor(ed)
	m.original = p
	return m
}

// NewInline creates a compose model with inline title, content and image
// inputs.
func NewInline() Model {
	title := textinput.New()
	title.Placeholder = "Title (optional)"
	title.CharLimit = 200
	title.Width = 60

	ta := textarea.New()
	ta.Placeholder = "What's on your mind?"
	ta.CharLimit = maxContentLen
	ta.SetWidth(72)
	ta.SetHeight(6)

	img := textinput.New()
	img.Placeholder = "Path to a JPEG, PNG, GIF or WebP (optional)"
	img.CharLimit = 1024
	img.Width = 60

	m := Model{
		mode:      inlineMode,
		title:     title,
		body:      ta,
		imagePath: img,
		loadImage: app.LoadImage,
	}
	m.focusField(fieldContent)
	return m
}

// NewInlineForPost creates an inline form prefilled from an existing post.
func NewInlineForPost(p domain.Post) Model {
	m := NewInline()
	m.original = p
	m.title.SetValue(p.Title)
	m.body.SetValue(p.Content)
	return m
}

// Init returns the initial command for the active mode.
func (m *Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

func (m Model) isEdit() bool {
	return m.original.ID != 0
}

// keptImageURL is the remote image that survives the edit, if any.
func (m Model) keptImageURL() string {
	if m.dropImage {
		return ""
	}
	return m.original.ImageURL
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.original.Content)
	if err != nil {
		return done(DoneMsg{Err: fmt.Errorf("preparing editor: %w", err), EditID: m.original.ID})
	}
	m.tmpPath = tmpPath

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

func (m *Model) focusField(field int) tea.Cmd {
	if field < 0 {
		field = fieldCount - 1
	}
	if field >= fieldCount {
		field = 0
	}
	m.focus = field
	m.title.Blur()
	m.body.Blur()
	m.imagePath.Blur()
	switch field {
	case fieldTitle:
		return m.title.Focus()
	case fieldImage:
		return m.imagePath.Focus()
	default:
		return m.body.Focus()
	}
}

// draft builds the post from the inline form, loading the image if a path
// was given.
func (m Model) draft() (domain.Draft, error) {
	d := domain.Draft{
		Title:    strings.TrimSpace(m.title.Value()),
		Content:  m.body.Value(),
		ImageURL: m.keptImageURL(),
	}
	if err := domain.ValidateDraft(d); err != nil {
		return domain.Draft{}, err
	}
	if path := strings.TrimSpace(m.imagePath.Value()); path != "" {
		img, err := m.loadImage(path)
		if err != nil {
			return domain.Draft{}, err
		}
		d.Image = &img
	}
	return d, nil
}

// unchanged reports whether an edit would not modify the post.
func (m Model) unchanged(d domain.Draft) bool {
	return m.isEdit() &&
		d.Image == nil &&
		d.ImageURL == m.original.ImageURL &&
		d.Title == m.original.Title &&
		d.Content == m.original.Content
}

func (m Model) submitted(d domain.Draft) DoneMsg {
	return DoneMsg{Draft: d, EditID: m.original.ID, PreviousImageURL: m.original.ImageURL}
}

func (m Model) cancelled() DoneMsg {
	return DoneMsg{Cancelled: true, EditID: m.original.ID}
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
