package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stt-frontend/internal/app/card"
	"stt-frontend/internal/app/model"
	"stt-frontend/internal/app/shell"
)

const (
	headerTitle    = "Speech Transcriber"
	headerSubtitle = "Record or upload audio and get a transcript"
	dropHint       = "Drop audio here (paste file paths) or press u to upload"
	dropActiveHint = "Release to transcribe"

	// lines a rendered card takes besides its wrapped body
	cardChrome = 4
	// lines used by everything above and below the card list
	layoutChrome = 12
)

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(headerTitle))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(headerSubtitle))
	b.WriteString("\n\n")

	if m.state.Error != "" {
		b.WriteString(errorStyle.Render("✗ " + m.state.Error))
		b.WriteString(helpStyle.Render("  esc to dismiss"))
		b.WriteString("\n")
	}
	if m.state.Notice != "" {
		b.WriteString(noticeStyle.Render("✓ " + m.state.Notice))
		b.WriteString("\n")
	}

	b.WriteString(m.renderControls())
	b.WriteString("\n")
	b.WriteString(m.renderDropZone())
	b.WriteString("\n\n")
	b.WriteString(m.renderHistory())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderControls() string {
	label := m.shell.Catalog().Label(m.state.Provider)
	provider := keyStyle.Render("Provider: ") + bodyStyle.Render(label)
	if m.state.Busy {
		provider += metaStyle.Render(" (locked)")
	}

	var status string
	switch {
	case m.state.Recording:
		status = recordingStyle.Render("● Recording… press r to stop")
	case m.state.Busy:
		status = m.spinner.View() + " Transcribing…"
	}

	line := provider
	if status != "" {
		line += "   " + status
	}
	if m.inputting {
		line += "\n" + m.input.View()
	}
	return line
}

func (m Model) renderDropZone() string {
	style, hint := dropZoneStyle, dropHint
	if m.state.DraggingOver {
		style, hint = dropZoneActiveStyle, dropActiveHint
	}
	return style.Width(m.contentWidth()).Render(hint)
}

func (m Model) renderHistory() string {
	if len(m.state.Items) == 0 {
		return metaStyle.Render(shell.EmptyHistory)
	}

	start, end := m.visibleRange()
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, m.renderCard(m.state.Items[i], i == m.selected))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, cards...)
	if start > 0 || end < len(m.state.Items) {
		out += "\n" + metaStyle.Render(fmt.Sprintf("%d–%d of %d", start+1, end, len(m.state.Items)))
	}
	return out
}

func (m Model) renderCard(item model.Transcript, selected bool) string {
	c := card.New(item, nil)

	var meta []string
	if ts := c.Timestamp(); ts != "" {
		meta = append(meta, ts)
	}
	if p := c.Provider(); p != "" {
		meta = append(meta, p)
	}

	body := bodyStyle.Render(c.Body())
	if c.Empty() {
		body = placeholderStyle.Render(c.Body())
	}

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	width := m.contentWidth()
	return style.Width(width).Render(
		metaStyle.Render(strings.Join(meta, " · ")) + "\n" + lipgloss.NewStyle().Width(width-2).Render(body),
	)
}

// visibleRange keeps the selected card on screen.
func (m Model) visibleRange() (int, int) {
	n := len(m.state.Items)
	capacity := max(1, (m.height-layoutChrome)/cardChrome)
	if n <= capacity {
		return 0, n
	}
	start := m.selected - capacity/2
	start = max(0, min(start, n-capacity))
	return start, start + capacity
}

func (m Model) contentWidth() int {
	return max(30, m.width-4)
}

func (m Model) renderHelp() string {
	var keys []string
	if m.inputting {
		keys = append(keys, "enter", "Upload", "esc", "Cancel")
	} else {
		if m.state.Recording {
			keys = append(keys, "r", "Stop")
		} else {
			keys = append(keys, "r", "Record")
		}
		keys = append(keys, "u", "Upload", "p", "Provider")
		if len(m.state.Items) > 0 {
			keys = append(keys, "↑/↓", "Select", "c", "Copy", "s", "Save", "x", "Delete")
		}
		keys = append(keys, "q", "Quit")
	}

	var parts []string
	for i := 0; i < len(keys); i += 2 {
		parts = append(parts, keyStyle.Render(keys[i])+" "+helpStyle.Render(keys[i+1]))
	}
	return helpStyle.Render(strings.Join(parts, "  |  "))
}
