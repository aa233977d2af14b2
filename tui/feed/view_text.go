package feed

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// truncateToTwoLines wraps text to width and keeps at most two lines.
func truncateToTwoLines(text string, width int) string {
	if width < 12 {
		width = 12
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= 2 {
		return wrapped
	}
	return strings.Join(lines[:2], "\n") + "..."
}

func authorStyleFor(name string, isOwn bool) lipgloss.Style {
	if isOwn {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6DA95"))
	}
	palette := []string{
		"#7DC4E4", "#8BD5CA", "#F5A97F", "#C6A0F6", "#EBA0AC",
		"#A6DA95", "#F9E2AF", "#89B4FA", "#F38BA8", "#94E2D5",
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	idx := int(h.Sum32() % uint32(len(palette)))
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(palette[idx]))
}

func clampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}
