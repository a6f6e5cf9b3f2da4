package components

import (
	"fmt"
	"strings"

	"multilaunch/internal/groups"
	"multilaunch/internal/ui"
)

// ChangeView displays the change set of the last committed group edit
type ChangeView struct {
	Width  int
	Height int

	Changes groups.ChangeSet

	ScrollOffset int

	highlighter     *ui.Highlighter
	enableHighlight bool
}

// NewChangeView creates a new ChangeView
func NewChangeView() *ChangeView {
	return &ChangeView{
		Width:           60,
		Height:          12,
		highlighter:     ui.NewJSONHighlighter(),
		enableHighlight: true,
	}
}

// SetChanges sets the change set to display
func (d *ChangeView) SetChanges(cs groups.ChangeSet) {
	d.Changes = cs
	d.ScrollOffset = 0
}

// ScrollUp scrolls the view up
func (d *ChangeView) ScrollUp() {
	if d.ScrollOffset > 0 {
		d.ScrollOffset--
	}
}

// ScrollDown scrolls the view down
func (d *ChangeView) ScrollDown() {
	if d.ScrollOffset < len(d.Changes.Lines)-1 {
		d.ScrollOffset++
	}
}

// ToggleHighlight toggles syntax highlighting of unchanged lines
func (d *ChangeView) ToggleHighlight() {
	d.enableHighlight = !d.enableHighlight
}

// HasChanges returns true if there are differences
func (d *ChangeView) HasChanges() bool {
	return d.Changes.HasChanges()
}

// View renders the change view
func (d *ChangeView) View() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("Last change"))
	b.WriteString("  ")
	b.WriteString(d.renderStats())
	b.WriteString("\n")

	if !d.HasChanges() {
		b.WriteString(ui.MutedStyle.Render("  No changes saved yet"))
		return b.String()
	}

	visible := d.Height - 2
	if visible < 1 {
		visible = 10
	}
	lines := d.Changes.Lines
	start := min(d.ScrollOffset, len(lines))
	end := min(start+visible, len(lines))

	rendered := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		rendered = append(rendered, d.formatLine(line))
	}
	b.WriteString(strings.Join(rendered, "\n"))
	return b.String()
}

func (d *ChangeView) renderStats() string {
	if !d.HasChanges() {
		return ui.MutedStyle.Render(d.Changes.Summary())
	}
	return ui.AddedStyle.Render(fmt.Sprintf("+%d", d.Changes.Added)) + " " +
		ui.RemovedStyle.Render(fmt.Sprintf("-%d", d.Changes.Removed))
}

func (d *ChangeView) formatLine(line groups.ChangeLine) string {
	content := line.Text
	maxWidth := d.Width - 4
	if r := []rune(content); maxWidth > 5 && len(r) > maxWidth {
		content = string(r[:maxWidth-3]) + "..."
	}

	switch line.Kind {
	case groups.ChangeAdded:
		return ui.AddedStyle.Render("+ " + content)
	case groups.ChangeRemoved:
		return ui.RemovedStyle.Render("- " + content)
	default:
		if d.enableHighlight && d.highlighter != nil {
			content = d.highlighter.HighlightLine(content)
		}
		return "  " + content
	}
}
