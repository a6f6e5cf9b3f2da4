package components

import (
	"fmt"
	"strings"

	"multilaunch/internal/hints"
	"multilaunch/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// HintBar displays the hint for the current query
type HintBar struct {
	Hint    *hints.Hint
	Width   int
	Visible bool
}

// NewHintBar creates a new hint bar
func NewHintBar() *HintBar {
	return &HintBar{
		Width:   80,
		Visible: true,
	}
}

// SetHint updates the current hint
func (s *HintBar) SetHint(h *hints.Hint) {
	s.Hint = h
}

// SetWidth sets the width of the bar
func (s *HintBar) SetWidth(width int) {
	s.Width = width
}

// IsVisible returns whether the bar is visible
func (s *HintBar) IsVisible() bool {
	return s.Visible && !s.Hint.IsEmpty()
}

// View renders the hint bar
func (s *HintBar) View() string {
	if !s.IsVisible() {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderIcon())
	b.WriteString(" ")
	b.WriteString(s.Hint.Message)

	if len(s.Hint.Actions) > 0 {
		b.WriteString("   ")
		for i, action := range s.Hint.Actions {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(renderAction(action))
		}
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.borderColor()).
		Padding(0, 1).
		Width(max(s.Width-2, 10))

	return style.Render(b.String())
}

func (s *HintBar) borderColor() lipgloss.Color {
	switch s.Hint.Type {
	case hints.TypeReady:
		return ui.Success
	case hints.TypePartial:
		return ui.Warning
	case hints.TypeWithheld, hints.TypeStray:
		return ui.Error
	case hints.TypeIdle:
		return ui.Primary
	default:
		return ui.Muted
	}
}

func (s *HintBar) renderIcon() string {
	return lipgloss.NewStyle().Foreground(s.borderColor()).Bold(true).Render(s.Hint.Icon())
}

func renderAction(action hints.Action) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(ui.Foreground).
		Background(ui.Border).
		Padding(0, 1).
		Bold(true)

	return fmt.Sprintf("%s %s", keyStyle.Render(action.Key), ui.MutedStyle.Render(action.Label))
}

// Height returns the height of the hint bar
func (s *HintBar) Height() int {
	if !s.IsVisible() {
		return 0
	}
	return 3 // Border top + content + border bottom
}
