package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// startLoad resets the list and fetches page 1.
func (m *Model) startLoad() tea.Cmd {
	m.pager.Reset()
	m.cursor = 0
	m.startIndex = 0
	m.err = nil
	m.failedPage = 0
	m.endNotice = ""
	m.loading = true
	return m.fetchPage(1)
}

func (m Model) fetchPage(number int) tea.Cmd {
	load := m.load
	size := m.pager.Size()
	source, gen := m.source, m.gen
	return func() tea.Msg {
		page, err := load(context.Background(), number, size)
		if err != nil {
			return PageErrorMsg{Source: source, Gen: gen, Page: number, Err: err}
		}
		page.Number = number
		return PageLoadedMsg{Source: source, Gen: gen, Page: page}
	}
}

// refetch reloads every loaded page inside one command so the list is
// replaced in a single step.
func (m Model) refetch() tea.Cmd {
	load := m.load
	size := m.pager.Size()
	count := m.pager.Loaded()
	if count < 1 {
		count = 1
	}
	source, gen := m.source, m.gen
	return func() tea.Msg {
		pages := make([][]domain.Post, 0, count)
		for n := 1; n <= count; n++ {
			page, err := load(context.Background(), n, size)
			if err != nil {
				return RefetchErrorMsg{Source: source, Gen: gen, Err: err}
			}
			pages = append(pages, page.Posts)
		}
		return RefetchedMsg{Source: source, Gen: gen, Pages: pages}
	}
}

func (m Model) submitComment(postID int64, content string) tea.Cmd {
	svc := m.interactions
	source, gen := m.source, m.gen
	return func() tea.Msg {
		_, err := svc.Comment(context.Background(), postID, content)
		return CommentResultMsg{Source: source, Gen: gen, PostID: postID, Err: err}
	}
}

func (m Model) toggleLike(postID int64) tea.Cmd {
	svc := m.interactions
	source, gen := m.source, m.gen
	return func() tea.Msg {
		res, err := svc.React(context.Background(), postID, domain.ReactionLike)
		return ReactionResultMsg{Source: source, Gen: gen, PostID: postID, Result: res, Err: err}
	}
}

// Reload drops the loaded pages and fetches page 1 again.
func (m *Model) Reload() tea.Cmd {
	return m.startLoad()
}
