package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/tui/common"
)

const (
	cardLines      = 7 // Title, author, two body lines, counts, border
	reservedLines  = 10
	defaultVisible = 5
	maxCardWidth   = 76
)

// View renders the post list. The root adds the title bar and status line.
func (m Model) View() string {
	var b strings.Builder
	items := m.pager.Items()

	switch {
	case m.loading && len(items) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading %s...\n", m.spinner.View(), m.source))
	case m.err != nil && m.failedPage <= 1:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Failed to load %s: %v", m.source, m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
		return b.String()
	case len(items) == 0:
		if m.source == SourceMine {
			b.WriteString("  You haven't posted anything yet. Press p to write your first post.\n")
		} else {
			b.WriteString("  No posts yet. Be the first!\n")
		}
	default:
		b.WriteString(m.renderList(items))
		b.WriteString("\n")
	}

	if m.commenting {
		b.WriteString("\n  " + common.FocusedLabelStyle.Render("Comment") + " " + m.comment.View())
		hint := "enter: send • esc: close"
		if m.sending {
			hint = m.spinner.View() + " Sending..."
		}
		b.WriteString("\n  " + common.MetadataStyle.Render(hint) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Failed to load page %d: %v", m.failedPage, m.err)))
		b.WriteString("\n  Press r to retry.\n")
	case m.loadingMore:
		b.WriteString(fmt.Sprintf("  %s Loading more...\n", m.spinner.View()))
	case m.loading || m.refetching:
		b.WriteString(fmt.Sprintf("  %s Refreshing...\n", m.spinner.View()))
	case m.endNotice != "":
		b.WriteString(common.MetadataStyle.Render("  "+m.endNotice) + "\n")
	case m.pager.HasMore():
		b.WriteString(common.MetadataStyle.Render("  m: load more") + "\n")
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderList(items []domain.Post) string {
	visible := m.visibleCount()
	start := m.startIndex
	if start >= len(items) {
		start = len(items) - 1
	}
	if start < 0 {
		start = 0
	}
	end := min(start+visible, len(items))

	cardWidth := m.cardWidth()
	var list strings.Builder
	for i := start; i < end; i++ {
		card := renderPost(items[i], cardWidth-4)
		if i == m.cursor {
			card = common.SelectedStyle.Width(cardWidth).Render(card)
		} else {
			card = common.UnselectedStyle.Width(cardWidth).Render(card)
		}
		list.WriteString(card)
		list.WriteString("\n")
	}

	out := strings.TrimSuffix(list.String(), "\n")
	if len(items) > visible {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, "  "+scrollBar(len(items), start, visible, lipgloss.Height(out)))
	}
	return out
}

func renderPost(p domain.Post, width int) string {
	var b strings.Builder

	if p.Title != "" {
		b.WriteString(common.TitleStyle.Render(clampLinesToWidth(p.Title, width)) + "\n")
	}

	author := authorStyleFor(p.Author.Name, p.IsOwn).Render(displayName(p.Author))
	if p.IsOwn {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	if ts := common.FormatTimestamp(p.CreatedAt); ts != "" {
		author += "  " + common.TimestampStyle.Render(ts)
	}
	b.WriteString(author + "\n")

	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")
	for _, line := range strings.Split(truncateToTwoLines(p.Content, width-2), "\n") {
		b.WriteString(indicator + common.ContentStyle.Render(line) + "\n")
	}

	meta := fmt.Sprintf("♥ %d  💬 %d", p.ReactionCount, p.CommentCount)
	if p.HasImage() {
		meta += "  🖼 " + clampLinesToWidth(p.ImageURL, max(width-20, 10))
	}
	b.WriteString(common.MetadataStyle.Render(meta))
	return b.String()
}

func displayName(a domain.Author) string {
	if strings.TrimSpace(a.Name) != "" {
		return a.Name
	}
	if a.ID != 0 {
		return fmt.Sprintf("user #%d", a.ID)
	}
	return "unknown"
}

func scrollBar(total, start, visible, height int) string {
	thumb := max(int(float64(visible)/float64(total)*float64(height)), 1)
	thumbStart := int(float64(start) / float64(total) * float64(height))
	if thumbStart+thumb > height {
		thumbStart = height - thumb
	}

	on := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8700")).Render("┃")
	off := lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")).Render("┃")
	lines := make([]string, height)
	for j := range lines {
		if j >= thumbStart && j < thumbStart+thumb {
			lines[j] = on
		} else {
			lines[j] = off
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) visibleCount() int {
	if m.height <= 0 {
		return defaultVisible
	}
	return max((m.height-reservedLines)/cardLines, 1)
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return maxCardWidth
	}
	return max(min(m.width-6, maxCardWidth), 20)
}

func (m Model) helpView() string {
	var items []string
	switch {
	case m.commenting:
		return ""
	case len(m.pager.Items()) > 0:
		items = []string{"j/k: move", "l: like", "c: comment"}
		if m.source == SourceMine {
			items = append(items, "e/E: edit")
		}
		items = append(items, "m: more", "r: refresh", "p/P: post", "tab: switch", "x: logout", "q: quit")
	default:
		items = []string{"r: refresh", "p/P: post", "tab: switch", "x: logout", "q: quit"}
	}

	width := m.width - 2
	if width < 16 {
		width = maxCardWidth
	}
	return common.StatusBarStyle.Width(width).Render("  " + strings.Join(items, " • "))
}
