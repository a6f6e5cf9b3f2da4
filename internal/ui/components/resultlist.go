package components

import (
	"fmt"
	"strings"

	"multilaunch/internal/models"
	"multilaunch/internal/ui"
)

// ResultList shows the applications the current query resolved to
type ResultList struct {
	Apps      []models.Application
	Missing   []string // Tokens without a match
	Kind      string   // "group" or "manual", empty when the query is not a request
	Presented bool     // Whether the result passes the presentation gate
	Width     int
	Height    int
	Focused   bool
	Title     string
}

// NewResultList creates an empty result list
func NewResultList() *ResultList {
	return &ResultList{
		Width:   40,
		Height:  12,
		Focused: true,
		Title:   "Multi Launch",
	}
}

// SetResult replaces the displayed result
func (l *ResultList) SetResult(kind string, apps []models.Application, missing []string, presented bool) {
	l.Kind = kind
	l.Apps = apps
	l.Missing = missing
	l.Presented = presented
}

// Clear drops the displayed result
func (l *ResultList) Clear() {
	l.SetResult("", nil, nil, false)
}

// Summary joins the resolved display names
func (l *ResultList) Summary() string {
	names := make([]string, len(l.Apps))
	for i, app := range l.Apps {
		names[i] = app.Name()
	}
	return strings.Join(names, " + ")
}

// View renders the result list
func (l *ResultList) View() string {
	var b strings.Builder

	title := l.Title
	if l.Kind != "" {
		title = fmt.Sprintf("%s (%s)", l.Title, l.Kind)
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.Divider(l.Width - 2))
	b.WriteString("\n")

	if l.Kind == "" {
		b.WriteString(ui.ItemStyle.Render(ui.MutedStyle.Render("Type a group name or apps joined by ; or +")))
		return l.wrapInPanel(b.String())
	}

	if len(l.Apps) == 0 && len(l.Missing) == 0 {
		b.WriteString(ui.ItemStyle.Render("No apps matched"))
		return l.wrapInPanel(b.String())
	}

	rows := make([]string, 0, len(l.Apps)+len(l.Missing)+2)
	if l.Presented {
		rows = append(rows, ui.ItemStyle.Render("Open: "+ui.AppNameStyle.Render(l.Summary())))
	} else {
		rows = append(rows, ui.ItemStyle.Render(ui.MutedStyle.Render("Not enough apps matched to launch")))
	}

	for i, app := range l.Apps {
		rows = append(rows, l.renderApp(i, app))
	}
	for _, token := range l.Missing {
		rows = append(rows, ui.ItemStyle.Render(ui.MissingStyle.Render("✗ "+token)))
	}

	visible := l.Height - 3 // Minus title and divider
	if visible < 1 {
		visible = len(rows)
	}
	if len(rows) > visible {
		hidden := len(rows) - visible + 1
		rows = append(rows[:visible-1], ui.MutedStyle.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	b.WriteString(strings.Join(rows, "\n"))

	return l.wrapInPanel(b.String())
}

func (l *ResultList) renderApp(i int, app models.Application) string {
	name := app.Name()
	maxNameLen := l.Width - 8
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen-3]) + "..."
	}

	line := fmt.Sprintf("%d. %s", i+1, ui.AppNameStyle.Render(name))
	if id := app.ID(); id != "" {
		line += " " + ui.AppIDStyle.Render(id)
	}
	return ui.ItemStyle.Render(line)
}

// wrapInPanel wraps content in a panel border
func (l *ResultList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
