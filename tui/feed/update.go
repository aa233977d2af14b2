package feed

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/tui/common"
)

const endOfFeedNotice = "You've reached the end of the feed."

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.ensureCursorVisible()
		return m, nil

	case PageLoadedMsg:
		if !m.owns(msg.Source, msg.Gen) {
			return m, nil
		}
		return m.handlePageLoaded(msg)

	case PageErrorMsg:
		if !m.owns(msg.Source, msg.Gen) {
			return m, nil
		}
		m.loading = false
		m.loadingMore = false
		if errors.Is(msg.Err, domain.ErrUnauthorized) {
			return m, unauthorized
		}
		log.Warnf("[feed] %s page %d failed: %v", m.source, msg.Page, msg.Err)
		m.err = msg.Err
		m.failedPage = msg.Page
		return m, nil

	case RefetchedMsg:
		if !m.owns(msg.Source, msg.Gen) {
			return m, nil
		}
		m.refetching = false
		m.pager.Replace(msg.Pages)
		m.clampCursor()
		m.closeStaleComment()
		return m, nil

	case RefetchErrorMsg:
		if !m.owns(msg.Source, msg.Gen) {
			return m, nil
		}
		m.refetching = false
		if errors.Is(msg.Err, domain.ErrUnauthorized) {
			return m, unauthorized
		}
		log.Warnf("[feed] %s refetch failed: %v", m.source, msg.Err)
		return m, common.Notice("Couldn't refresh the list: "+msg.Err.Error(), true)

	case CommentResultMsg:
		if !m.owns(msg.Source, msg.Gen) {
			return m, nil
		}
		m.sending = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrUnauthorized) {
				return m, unauthorized
			}
			return m, common.Notice("Failed to add comment: "+msg.Err.Error(), true)
		}
		delete(m.drafts, msg.PostID)
		if m.commentPostID == msg.PostID {
			m.comment.Reset()
			m.commenting = false
			m.comment.Blur()
		}
		m.refetching = true
		return m, tea.Batch(common.Notice("Comment added.", false), m.refetch())

	case ReactionResultMsg:
		if !m.owns(msg.Source, msg.Gen) {
			return m, nil
		}
		m.reacting = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrUnauthorized) {
				return m, unauthorized
			}
			return m, common.Notice("Failed to update reaction: "+msg.Err.Error(), true)
		}
		text := "Like removed."
		if msg.Result.Liked {
			text = "Liked."
		}
		m.refetching = true
		return m, tea.Batch(common.Notice(text, false), m.refetch())

	case tea.KeyMsg:
		if m.commenting {
			return m.handleCommentKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.commenting {
		var cmd tea.Cmd
		m.comment, cmd = m.comment.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (Model, tea.Cmd) {
	m.loading = false
	m.loadingMore = false
	if !m.pager.Append(msg.Page.Number, msg.Page.Posts) {
		log.Debugf("[feed] dropped out-of-order %s page %d", m.source, msg.Page.Number)
		return m, nil
	}
	m.err = nil
	m.failedPage = 0
	if msg.Page.Number > 1 && len(msg.Page.Posts) == 0 {
		m.endNotice = endOfFeedNotice
	}
	m.clampCursor()
	m.closeStaleComment()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.pager.Items())-1 {
			m.cursor++
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Refresh):
		if m.loading || m.loadingMore {
			break
		}
		if m.err != nil && m.failedPage > 1 {
			m.err = nil
			m.loadingMore = true
			return m, m.fetchPage(m.failedPage)
		}
		return m, m.startLoad()

	case key.Matches(msg, m.keys.LoadMore):
		if m.loading || m.loadingMore || m.refetching || m.err != nil {
			break
		}
		if !m.pager.HasMore() {
			if m.pager.Loaded() > 0 {
				m.endNotice = endOfFeedNotice
			}
			break
		}
		m.loadingMore = true
		return m, m.fetchPage(m.pager.NextPage())

	case key.Matches(msg, m.keys.Like):
		p, ok := m.SelectedPost()
		if !ok || m.reacting {
			break
		}
		m.reacting = true
		return m, m.toggleLike(p.ID)

	case key.Matches(msg, m.keys.Comment):
		p, ok := m.SelectedPost()
		if !ok {
			break
		}
		m.commenting = true
		m.commentPostID = p.ID
		m.comment.SetValue(m.drafts[p.ID])
		m.comment.CursorEnd()
		return m, m.comment.Focus()

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.EditInline):
		p, ok := m.SelectedPost()
		if !ok || !p.IsOwn {
			break
		}
		inline := key.Matches(msg, m.keys.EditInline)
		return m, func() tea.Msg { return EditPostMsg{Post: p, UseInline: inline} }
	}

	return m, nil
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.commentPostID

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.drafts[id] = m.comment.Value()
		m.closeComment()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.sending {
			return m, nil
		}
		if !m.hasPost(id) {
			m.drafts[id] = m.comment.Value()
			m.closeComment()
			return m, common.Notice("That post is no longer in the list.", true)
		}
		content := m.comment.Value()
		if strings.TrimSpace(content) == "" {
			return m, common.Notice(capitalize(domain.ErrEmptyComment.Error())+".", true)
		}
		m.drafts[id] = content
		m.sending = true
		return m, m.submitComment(id, content)
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	m.drafts[id] = m.comment.Value()
	return m, cmd
}

func (m *Model) closeComment() {
	m.commenting = false
	m.comment.Blur()
}

// closeStaleComment closes the comment box once its post has left the list.
// The typed text stays in drafts.
func (m *Model) closeStaleComment() {
	if !m.commenting || m.sending || m.hasPost(m.commentPostID) {
		return
	}
	m.drafts[m.commentPostID] = m.comment.Value()
	m.closeComment()
}

func (m *Model) clampCursor() {
	n := len(m.pager.Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls so the selected card is on screen.
func (m *Model) ensureCursorVisible() {
	visible := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+visible {
		m.startIndex = m.cursor - visible + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}

func unauthorized() tea.Msg {
	return common.UnauthorizedMsg{}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
