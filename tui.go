package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"multilaunch/internal/groups"
	"multilaunch/internal/hints"
	"multilaunch/internal/provider"
	"multilaunch/internal/settings"
	"multilaunch/internal/ui"
	"multilaunch/internal/ui/components"
)

// Screen represents different screens in the app
type Screen int

const (
	ScreenSearch  Screen = iota
	ScreenGroups         // Group preferences
	ScreenHelp           // Keyboard shortcuts
	ScreenPreview        // Highlighted config preview
)

// Model is the interactive launcher
type Model struct {
	env  *env
	keys ui.KeyMap

	// UI Components
	query    textinput.Model
	results  *components.ResultList
	hintBar  *components.HintBar
	groups   *components.GroupList
	changes  *components.ChangeView
	spinner  spinner.Model
	help     help.Model
	viewport viewport.Model

	editor  *groups.Editor
	outcome provider.Outcome

	// State
	screen     Screen
	scanning   bool
	status     string
	statusType string
	width      int
	height     int

	settingsCh chan struct{}
	sub        *settings.Subscription
}

type refreshCompleteMsg struct {
	err error
}

type launchCompleteMsg struct {
	total  int
	failed int
	err    error
}

type settingsChangedMsg struct{}

func newModel(e *env) *Model {
	q := textinput.New()
	q.Placeholder = "group name, or firefox + terminal"
	q.Prompt = "› "
	q.CharLimit = 256
	q.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.Primary)

	m := &Model{
		env:        e,
		keys:       ui.DefaultKeyMap(),
		query:      q,
		results:    components.NewResultList(),
		hintBar:    components.NewHintBar(),
		groups:     components.NewGroupList(),
		changes:    components.NewChangeView(),
		spinner:    s,
		help:       help.New(),
		scanning:   true,
		settingsCh: make(chan struct{}, 1),
	}

	// Subscribed after the provider so its group store has reloaded by the
	// time the listener searches again.
	m.sub = e.settings.Subscribe(settings.KeyGroups, func() {
		select {
		case m.settingsCh <- struct{}{}:
		default:
		}
	})

	m.runSearch()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.refreshApps, m.waitForSettings)
}

func (m *Model) refreshApps() tea.Msg {
	return refreshCompleteMsg{err: m.env.catalog.Refresh(context.Background())}
}

func (m *Model) waitForSettings() tea.Msg {
	<-m.settingsCh
	return settingsChangedMsg{}
}

// launch starts the apps shown when enter was pressed, even if the query
// changes before the command runs
func (m *Model) launch() tea.Cmd {
	out, p := m.outcome, m.env.provider
	return func() tea.Msg {
		failed, err := p.Launch(out)
		return launchCompleteMsg{total: len(out.Apps), failed: failed, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case refreshCompleteMsg:
		m.scanning = false
		if msg.err != nil {
			m.setStatus("error", fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.setStatus("info", fmt.Sprintf("%d apps available", len(m.env.catalog.Entries())))
		}
		m.runSearch()

	case launchCompleteMsg:
		switch {
		case msg.err != nil:
			m.setStatus("error", fmt.Sprintf("Error: %v", msg.err))
		case msg.failed > 0:
			m.setStatus("warning", fmt.Sprintf("%d of %d launches failed, see %s", msg.failed, msg.total, m.env.cfg.LogPath()))
		default:
			m.setStatus("success", fmt.Sprintf("Launched %d apps", msg.total))
			m.query.SetValue("")
			m.runSearch()
		}

	case settingsChangedMsg:
		m.runSearch()
		cmds = append(cmds, m.waitForSettings)
	}

	if m.screen == ScreenSearch {
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenGroups:
		return m.handleGroupKeys(msg)
	case ScreenHelp, ScreenPreview:
		if key.Matches(msg, m.keys.Escape, m.keys.Help, m.keys.Preview) {
			m.screen = m.returnScreen()
			return m, nil
		}
		// Forward to viewport for scrolling
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m.handleSearchKeys(msg)
}

// returnScreen is where help and preview go back to
func (m *Model) returnScreen() Screen {
	if m.editor != nil {
		return ScreenGroups
	}
	return ScreenSearch
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.openViewport(ScreenHelp, m.renderHelp())
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.openGroups()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		if m.scanning {
			return m, nil
		}
		m.scanning = true
		return m, tea.Batch(m.spinner.Tick, m.refreshApps)

	case key.Matches(msg, m.keys.Enter):
		if !m.outcome.Present {
			return m, nil
		}
		return m, m.launch()

	case key.Matches(msg, m.keys.Escape):
		m.query.SetValue("")
		m.status = ""
		m.runSearch()
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != before {
		m.runSearch()
	}
	return m, cmd
}

func (m *Model) handleGroupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeGroups()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.openViewport(ScreenHelp, m.renderHelp())
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		h := ui.NewJSONHighlighter()
		m.openViewport(ScreenPreview, h.Highlight(groups.Indent(m.editor.Working())))
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.groups.MoveUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.groups.MoveDown()
		return m, nil

	case key.Matches(msg, m.keys.Field):
		m.groups.NextField()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.groups.Field == components.FieldKey {
			m.groups.NextField()
		} else {
			m.groups.MoveDown()
		}
		return m, nil

	case key.Matches(msg, m.keys.NewGroup):
		m.groups.Add()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		if m.groups.RemoveCurrent() {
			m.saveRows()
		}
		return m, nil

	case msg.Type == tea.KeyPgUp:
		m.changes.ScrollUp()
		return m, nil

	case msg.Type == tea.KeyPgDown:
		m.changes.ScrollDown()
		return m, nil
	}

	changed, cmd := m.groups.Update(msg)
	if changed {
		m.saveRows()
	}
	return m, cmd
}

// openGroups seeds a fresh editor from the live configuration
func (m *Model) openGroups() {
	current := m.env.provider.Groups()
	m.editor = groups.NewEditor(m.env.settings, settings.KeyGroups, current)
	m.groups.SetGroups(current.Groups())
	m.groups.Focused = true
	m.changes.SetChanges(groups.ChangeSet{})
	m.query.Blur()
	m.screen = ScreenGroups
	m.status = ""
}

func (m *Model) closeGroups() {
	m.editor = nil
	m.groups.Focused = false
	m.query.Focus()
	m.screen = ScreenSearch
	m.runSearch()
}

// saveRows rebuilds the configuration from every row on screen and writes
// it. The settings subscription re-runs the search once the store has picked
// it up.
func (m *Model) saveRows() {
	m.editor.SetRows(m.groups.Groups())
	if err := m.editor.Commit(); err != nil {
		m.env.logger.Error("commit groups", "error", err)
		m.setStatus("error", fmt.Sprintf("Error: %v", err))
		return
	}
	cs := m.editor.LastChange()
	m.changes.SetChanges(cs)
	if cs.HasChanges() {
		m.setStatus("success", "Saved: "+cs.Summary())
	}
}

func (m *Model) openViewport(screen Screen, content string) {
	m.viewport = viewport.New(max(20, m.width-4), max(5, m.height-4))
	m.viewport.SetContent(content)
	m.screen = screen
}

func (m *Model) terms() []string {
	return strings.Fields(m.query.Value())
}

// runSearch classifies the current query and refreshes the result panels
func (m *Model) runSearch() {
	terms := m.terms()
	m.outcome = m.env.provider.Search(terms)
	if m.outcome.Matched {
		m.results.SetResult(m.outcome.Classification.Kind.String(), m.outcome.Apps, m.outcome.Unresolved, m.outcome.Present)
	} else {
		m.results.Clear()
	}
	m.hintBar.SetHint(hints.Analyze(terms, m.outcome))
}

func (m *Model) setStatus(kind, text string) {
	m.statusType = kind
	m.status = text
}

func (m *Model) updateSizes() {
	contentWidth := max(20, m.width-4)
	m.query.Width = contentWidth - 4
	m.results.Width = contentWidth
	m.results.Height = max(5, m.height-10)
	m.hintBar.SetWidth(contentWidth)

	listHeight := max(5, (m.height-8)*3/5)
	m.groups.Width = contentWidth
	m.groups.Height = listHeight
	m.changes.Width = contentWidth
	m.changes.Height = max(4, m.height-8-listHeight)

	if m.screen == ScreenHelp || m.screen == ScreenPreview {
		m.viewport.Width = contentWidth
		m.viewport.Height = max(5, m.height-4)
	}
}

func (m *Model) View() string {
	switch m.screen {
	case ScreenHelp, ScreenPreview:
		return ui.AppStyle.Render(m.viewport.View() + "\n" + ui.MutedStyle.Render("esc back • ↑/↓ scroll"))
	case ScreenGroups:
		return m.renderGroups()
	default:
		return m.renderSearch()
	}
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("Multi Launch")
	ver := ui.VersionStyle.Render("v" + version)
	path := ui.MutedStyle.Render("  " + m.env.settings.Path())
	return ui.HeaderStyle.Render(title + "  " + ver + path)
}

func (m *Model) renderStatusBar() string {
	var parts []string
	if m.scanning {
		parts = append(parts, m.spinner.View()+" Scanning applications...")
	} else if m.status != "" {
		parts = append(parts, ui.RenderNotification(m.statusType, strings.TrimPrefix(m.status, "Error: ")))
	}
	parts = append(parts, fmt.Sprintf("Groups: %d", m.env.provider.Groups().Len()))
	return ui.StatusBarStyle.Render(strings.Join(parts, "  •  "))
}

func (m *Model) renderSearch() string {
	sections := []string{
		m.renderHeader(),
		m.query.View(),
		m.results.View(),
	}
	if m.hintBar.IsVisible() {
		sections = append(sections, m.hintBar.View())
	}
	sections = append(sections, m.renderStatusBar(), m.help.ShortHelpView(m.keys.ShortHelp()))
	return ui.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderGroups() string {
	bindings := []key.Binding{m.keys.Field, m.keys.NewGroup, m.keys.Delete, m.keys.Preview, m.keys.Escape}
	return ui.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.groups.View(),
		m.changes.View(),
		m.renderStatusBar(),
		m.help.ShortHelpView(bindings),
	))
}

func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, column := range m.keys.FullHelp() {
		for _, binding := range column {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				ui.HelpKeyStyle.Width(10).Render(h.Key),
				ui.HelpDescStyle.Render(h.Desc),
			))
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.MutedStyle.Render("  ─── Queries ───"))
	b.WriteString("\n")
	queries := []struct {
		example string
		desc    string
	}{
		{"work", "Launch the saved group named work"},
		{"firefox + term", "Launch every app named, in order"},
		{"firefox; term", "Same, with ; as the separator"},
	}
	for _, q := range queries {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			ui.HelpKeyStyle.Width(16).Render(q.example),
			ui.HelpDescStyle.Render(q.desc),
		))
	}
	b.WriteString("\n")
	b.WriteString(ui.MutedStyle.Render("  Apps match by id or name. A group needs one app found, a typed list two."))
	return b.String()
}

// runTUI starts the interactive launcher
func runTUI(cmd *cobra.Command, _ []string) error {
	e, err := setupEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.provider.Enable(); err != nil {
		return err
	}
	e.settings.Watch(e.cfg.Poll())

	m := newModel(e)
	defer m.sub.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
	_, err = p.Run()
	return err
}
