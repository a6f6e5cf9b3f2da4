package components

import (
	"fmt"
	"strings"

	"multilaunch/internal/groups"
	"multilaunch/internal/ui"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is the input of a row that has focus
type Field int

const (
	FieldKey Field = iota
	FieldTokens
)

// GroupRow is one editable group
type GroupRow struct {
	Key    textinput.Model
	Tokens textinput.Model
}

// GroupList is the preferences list of group rows
type GroupList struct {
	Rows    []*GroupRow
	Cursor  int
	Field   Field
	Width   int
	Height  int
	Focused bool
	Title   string
}

// NewGroupList creates a group list
func NewGroupList() *GroupList {
	return &GroupList{
		Width:   60,
		Height:  15,
		Focused: true,
		Title:   "Groups",
	}
}

func newRow(key, tokens string) *GroupRow {
	k := textinput.New()
	k.Placeholder = "group name"
	k.Prompt = ""
	k.CharLimit = 64
	k.SetValue(key)

	t := textinput.New()
	t.Placeholder = "app, app, ..."
	t.Prompt = ""
	t.SetValue(tokens)

	return &GroupRow{Key: k, Tokens: t}
}

// SetGroups replaces all rows
func (l *GroupList) SetGroups(gs []groups.Group) {
	l.Rows = make([]*GroupRow, 0, len(gs))
	for _, g := range gs {
		l.Rows = append(l.Rows, newRow(g.Name, strings.Join(g.Tokens, ", ")))
	}
	if l.Cursor >= len(l.Rows) {
		l.Cursor = max(0, len(l.Rows)-1)
	}
	l.syncFocus()
}

// Add appends an empty row and moves the cursor to its key
func (l *GroupList) Add() {
	l.Rows = append(l.Rows, newRow("", ""))
	l.Cursor = len(l.Rows) - 1
	l.Field = FieldKey
	l.syncFocus()
}

// RemoveCurrent drops the row under the cursor
func (l *GroupList) RemoveCurrent() bool {
	if l.Current() == nil {
		return false
	}
	l.Rows = append(l.Rows[:l.Cursor], l.Rows[l.Cursor+1:]...)
	if l.Cursor >= len(l.Rows) {
		l.Cursor = max(0, len(l.Rows)-1)
	}
	l.syncFocus()
	return true
}

// Groups returns the rows as typed, top to bottom. Rows with an empty key
// are included; the editor skips them.
func (l *GroupList) Groups() []groups.Group {
	out := make([]groups.Group, 0, len(l.Rows))
	for _, row := range l.Rows {
		out = append(out, groups.Group{
			Name:   row.Key.Value(),
			Tokens: groups.SplitTokens(row.Tokens.Value()),
		})
	}
	return out
}

// Current returns the row under the cursor
func (l *GroupList) Current() *GroupRow {
	if l.Cursor >= 0 && l.Cursor < len(l.Rows) {
		return l.Rows[l.Cursor]
	}
	return nil
}

// MoveUp moves cursor up
func (l *GroupList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
		l.syncFocus()
	}
}

// MoveDown moves cursor down
func (l *GroupList) MoveDown() {
	if l.Cursor < len(l.Rows)-1 {
		l.Cursor++
		l.syncFocus()
	}
}

// NextField switches between the key and tokens input
func (l *GroupList) NextField() {
	if l.Field == FieldKey {
		l.Field = FieldTokens
	} else {
		l.Field = FieldKey
	}
	l.syncFocus()
}

func (l *GroupList) syncFocus() {
	for i, row := range l.Rows {
		row.Key.Blur()
		row.Tokens.Blur()
		if i != l.Cursor || !l.Focused {
			continue
		}
		if l.Field == FieldKey {
			row.Key.Focus()
		} else {
			row.Tokens.Focus()
		}
	}
}

// Update forwards msg to the focused input and reports whether any text
// changed.
func (l *GroupList) Update(msg tea.Msg) (bool, tea.Cmd) {
	row := l.Current()
	if row == nil {
		return false, nil
	}

	oldKey, oldTokens := row.Key.Value(), row.Tokens.Value()

	var cmd tea.Cmd
	if l.Field == FieldKey {
		row.Key, cmd = row.Key.Update(msg)
	} else {
		row.Tokens, cmd = row.Tokens.Update(msg)
	}

	changed := row.Key.Value() != oldKey || row.Tokens.Value() != oldTokens
	return changed, cmd
}

// View renders the group list
func (l *GroupList) View() string {
	var b strings.Builder

	title := l.Title
	if len(l.Rows) > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, len(l.Rows))
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.Divider(l.Width - 2))
	b.WriteString("\n")

	if len(l.Rows) == 0 {
		b.WriteString(ui.ItemStyle.Render("No groups yet, press ctrl+a to add one"))
		return l.wrapInPanel(b.String())
	}

	visibleHeight := l.Height - 3
	if visibleHeight < 1 {
		visibleHeight = len(l.Rows)
	}
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.Rows))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderRow(l.Rows[i], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(l.Rows) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return l.wrapInPanel(b.String())
}

func (l *GroupList) renderRow(row *GroupRow, isCursor bool) string {
	keyWidth := min(20, max(8, l.Width/3))
	row.Key.Width = keyWidth
	row.Tokens.Width = max(10, l.Width-keyWidth-10)

	cursor := "  "
	if isCursor && l.Focused {
		cursor = ui.CursorStyle.Render("> ")
	}

	key := row.Key.View()
	if !row.Key.Focused() {
		key = ui.GroupNameStyle.Render(row.Key.Value())
		if row.Key.Value() == "" {
			key = ui.MutedStyle.Render(row.Key.Placeholder)
		}
	}
	tokens := row.Tokens.View()
	if !row.Tokens.Focused() {
		tokens = ui.TokenStyle.Render(row.Tokens.Value())
	}

	return cursor + key + ui.MutedStyle.Render(" → ") + tokens
}

// wrapInPanel wraps content in a panel border
func (l *GroupList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
