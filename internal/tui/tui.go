// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides the terminal user interface for Courseplanner.
// This file holds the top-level model that routes messages to the
// active view.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/abcu/courseplanner/internal/core"
	"github.com/abcu/courseplanner/internal/i18n"
	"github.com/abcu/courseplanner/internal/logging"
	"github.com/abcu/courseplanner/internal/model"
	"github.com/abcu/courseplanner/util/mapst"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// viewState represents which part of the UI is currently active.
type viewState int

const (
	// menuView is the main dashboard and navigation menu.
	menuView viewState = iota
	listView
	inputView
	detailView
	auditView
	languageView
)

// Menu entries, in display order.
const (
	menuLoad = iota
	menuList
	menuDescribe
	menuChain
	menuAudit
	menuLanguage
	menuExit
)

// Options wires the TUI to the planner.
type Options struct {
	Planner *core.Planner
	// CatalogFile is loaded when the load prompt is confirmed empty.
	CatalogFile string
	// Audit is optional; without it the audit view stays empty.
	Audit core.AuditReader
}

type dashboardDataMsg struct {
	data core.DashboardData
	err  error
}

type catalogLoadedMsg struct {
	count int
	path  string
	err   error
}

type auditEntriesMsg struct {
	entries []model.AuditLogEntry
	err     error
}

// languageChangedMsg signals that the UI must be rebuilt with new strings.
type languageChangedMsg struct{}

// mainModel is the top-level model. It acts as a state machine and router,
// delegating updates and rendering to the active sub-model.
type mainModel struct {
	opts      Options
	state     viewState
	menu      menuModel
	list      courseListModel
	input     inputModel
	detail    detailModel
	audit     auditModel
	language  languageModel
	dashboard core.DashboardData
	status    string
	statusErr bool
	width     int
	height    int
}

type menuModel struct {
	choices []string
	cursor  int
}

type languageModel struct {
	choices     map[string]string // lang code to display name
	orderedKeys []string
	cursor      int
}

func initialModel(opts Options) mainModel {
	return mainModel{
		opts:  opts,
		state: menuView,
		menu: menuModel{
			choices: []string{
				i18n.T("menu.load"),
				i18n.T("menu.list"),
				i18n.T("menu.course"),
				i18n.T("menu.chain"),
				i18n.T("menu.audit"),
				i18n.T("menu.language"),
				i18n.T("menu.exit"),
			},
		},
	}
}

func refreshDashboardCmd(opts Options) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		data, err := core.BuildDashboardData(ctx, opts.Planner, opts.Audit)
		return dashboardDataMsg{data: data, err: err}
	}
}

func loadCatalogCmd(p *core.Planner, path string) tea.Cmd {
	return func() tea.Msg {
		n, err := p.LoadFile(path)
		return catalogLoadedMsg{count: n, path: path, err: err}
	}
}

func loadAuditCmd(r core.AuditReader) tea.Cmd {
	return func() tea.Msg {
		if r == nil {
			return auditEntriesMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := r.RecentActions(ctx, 100)
		return auditEntriesMsg{entries: entries, err: err}
	}
}

// Init loads the dashboard.
func (m mainModel) Init() tea.Cmd {
	return refreshDashboardCmd(m.opts)
}

func (m *mainModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m mainModel) backToMenu() (tea.Model, tea.Cmd) {
	m.state = menuView
	return m, refreshDashboardCmd(m.opts)
}

// Update handles global messages and delegates the rest to the active view.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		switch m.state {
		case listView:
			m.list.resize(msg.Width, msg.Height)
		case auditView:
			m.audit.resize(msg.Width, msg.Height)
		}
	case dashboardDataMsg:
		m.dashboard = msg.data
		if msg.err != nil {
			logging.Warnf("dashboard: %v", msg.err)
		}
		return m, nil
	case catalogLoadedMsg:
		if msg.err != nil {
			m.setStatus(i18n.T("catalog.file_not_found"), true)
		} else {
			m.setStatus(i18n.T("catalog.loaded", msg.count, msg.path), false)
		}
		return m, refreshDashboardCmd(m.opts)
	case auditEntriesMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		}
		m.audit.setEntries(msg.entries)
		return m, nil
	case languageChangedMsg:
		// Rebuild everything so new translations apply, keeping the layout.
		newModel := initialModel(m.opts)
		newModel.width = m.width
		newModel.height = m.height
		return newModel, newModel.Init()
	}

	switch m.state {
	case listView:
		return m.updateList(msg)
	case inputView:
		return m.updateInput(msg)
	case detailView:
		return m.updateDetail(msg)
	case auditView:
		return m.updateAudit(msg)
	case languageView:
		return m.updateLanguage(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m mainModel) catalogLoaded() bool {
	return m.opts.Planner.Status().Loaded
}

func (m mainModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case "down", "j":
		if m.menu.cursor < len(m.menu.choices)-1 {
			m.menu.cursor++
		}
	case "L":
		m.state = languageView
		m.language = newLanguageModel()
	case "enter":
		m.setStatus("", false)
		switch m.menu.cursor {
		case menuLoad:
			m.state = inputView
			m.input = newInputModel(loadPurpose, i18n.T("catalog.file_prompt", m.opts.CatalogFile), m.opts.CatalogFile)
			cmd := m.input.focus()
			return m, cmd
		case menuList:
			if !m.catalogLoaded() {
				m.setStatus(i18n.T("catalog.not_loaded"), true)
				return m, nil
			}
			m.state = listView
			m.list = newCourseListModel(m.opts.Planner.ListCourses())
			m.list.resize(m.width, m.height)
		case menuDescribe, menuChain:
			if !m.catalogLoaded() {
				m.setStatus(i18n.T("catalog.not_loaded"), true)
				return m, nil
			}
			purpose := describePurpose
			if m.menu.cursor == menuChain {
				purpose = chainPurpose
			}
			m.state = inputView
			m.input = newInputModel(purpose, i18n.T("course.prompt"), "")
			cmd := m.input.focus()
			return m, cmd
		case menuAudit:
			m.state = auditView
			m.audit = newAuditModel()
			m.audit.resize(m.width, m.height)
			return m, loadAuditCmd(m.opts.Audit)
		case menuLanguage:
			m.state = languageView
			m.language = newLanguageModel()
		case menuExit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m mainModel) updateLanguage(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "q":
		return m.backToMenu()
	case "up", "k":
		if m.language.cursor > 0 {
			m.language.cursor--
		}
	case "down", "j":
		if m.language.cursor < len(m.language.orderedKeys)-1 {
			m.language.cursor++
		}
	case "enter":
		if len(m.language.orderedKeys) == 0 {
			return m.backToMenu()
		}
		i18n.SetLang(m.language.orderedKeys[m.language.cursor])
		return m, func() tea.Msg { return languageChangedMsg{} }
	}
	return m, nil
}

// View renders the active view.
func (m mainModel) View() string {
	switch m.state {
	case listView:
		return m.list.View(m.width)
	case inputView:
		return m.input.View(m.width)
	case detailView:
		return m.detail.View(m.width)
	case auditView:
		return m.audit.View(m.width)
	case languageView:
		return m.language.View()
	default:
		return m.menu.View(m.dashboard, m.statusLine(), m.width, m.height)
	}
}

func (m mainModel) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return statusMessageStyle.Render(m.status)
}

// View renders the main menu and dashboard.
func (m menuModel) View(data core.DashboardData, status string, width, height int) string {
	title := mainTitleStyle.Render(i18n.T("tui.title"))
	subTitle := helpStyle.Render(i18n.T("tui.subtitle"))
	header := lipgloss.JoinVertical(lipgloss.Left, title, subTitle)

	menuItems := []string{paneTitleStyle.Render(i18n.T("tui.navigation")), ""}
	for i, choice := range m.choices {
		if m.cursor == i {
			menuItems = append(menuItems, selectedItemStyle.Render("▸ "+choice))
		} else {
			menuItems = append(menuItems, itemStyle.Render("  "+choice))
		}
	}
	menuContent := lipgloss.JoinVertical(lipgloss.Left, menuItems...)

	origin := data.Origin
	if origin == "" {
		origin = "-"
	}
	courses := i18n.T("tui.status_courses", data.CourseCount)
	if data.Loaded {
		courses = successStyle.Render(courses)
	} else {
		courses = errorStyle.Render(courses)
	}
	dashItems := []string{
		paneTitleStyle.Render(i18n.T("tui.status")), "",
		courses,
		i18n.T("tui.status_file", origin),
		i18n.T("tui.with_prereqs", data.WithPrereqs),
		i18n.T("tui.max_prereqs", data.MaxPrerequisites),
		"", paneTitleStyle.Render(i18n.T("tui.recent")), "",
	}

	menuWidth := 34
	dashboardWidth := width - 4 - menuWidth - 2
	if dashboardWidth < 30 {
		dashboardWidth = 30
	}
	if len(data.RecentLogs) == 0 {
		dashItems = append(dashItems, helpStyle.Render(i18n.T("tui.no_recent")))
	}
	for _, e := range data.RecentLogs {
		ts := e.Timestamp
		if len(ts) >= 16 {
			ts = ts[5:16] // MM-DD HH:MM
		}
		detailsWidth := dashboardWidth - 6 - len(ts) - len(e.Action) - 2
		if detailsWidth < 10 {
			detailsWidth = 10
		}
		details := e.Details
		if len(details) > detailsWidth {
			details = details[:detailsWidth-3] + "..."
		}
		dashItems = append(dashItems, lipgloss.JoinHorizontal(lipgloss.Left,
			helpStyle.Render(ts), " ", auditActionStyle(e.Action).Render(e.Action), " ", helpStyle.Render(details)))
	}
	dashContent := lipgloss.JoinVertical(lipgloss.Left, dashItems...)

	paneHeight := height - lipgloss.Height(header) - 4
	if paneHeight < len(menuItems) {
		paneHeight = len(menuItems)
	}
	leftPane := paneStyle.Width(menuWidth).Height(paneHeight).Render(menuContent)
	rightPane := paneStyle.Width(dashboardWidth).Height(paneHeight).MarginLeft(2).Render(dashContent)
	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	parts := []string{header, mainArea}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, renderFooter(i18n.T("tui.footer"), width))
	return lipgloss.JoinVertical(lipgloss.Top, parts...)
}

func newLanguageModel() languageModel {
	choices := i18n.GetAvailableLocales()
	keys := mapst.SortedKeys(choices)

	cursor := 0
	for i, k := range keys {
		if k == i18n.GetLang() {
			cursor = i
		}
	}
	return languageModel{choices: choices, orderedKeys: keys, cursor: cursor}
}

// View renders the language selection.
func (m languageModel) View() string {
	title := mainTitleStyle.Render(i18n.T("menu.language"))

	items := []string{titleStyle.Render(i18n.T("language.select")), ""}
	for i, code := range m.orderedKeys {
		line := fmt.Sprintf("%s (%s)", m.choices[code], code)
		if m.cursor == i {
			items = append(items, selectedItemStyle.Render("▸ "+line))
		} else {
			items = append(items, itemStyle.Render("  "+line))
		}
	}
	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", listPane, "", renderFooter(i18n.T("language.help"), 60))
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	if opts.Planner == nil {
		opts.Planner = core.NewPlanner()
	}
	if _, err := tea.NewProgram(initialModel(opts), tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		return err
	}
	return nil
}
