// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"strings"

	"github.com/abcu/courseplanner/internal/catalog"
	"github.com/abcu/courseplanner/internal/i18n"
	"github.com/abcu/courseplanner/internal/model"
	"github.com/abcu/courseplanner/internal/ui"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// --- course list ---

// courseListModel shows the sorted course list in a scrollable viewport
// with an optional substring filter.
type courseListModel struct {
	rows      []model.CourseSummary
	viewport  viewport.Model
	filter    textinput.Model
	filtering bool
}

func newCourseListModel(rows []model.CourseSummary) courseListModel {
	f := textinput.New()
	f.Prompt = i18n.T("tui.filter")
	m := courseListModel{rows: rows, viewport: viewport.New(80, 20), filter: f}
	m.refresh()
	return m
}

func (m *courseListModel) resize(width, height int) {
	if width > 4 {
		m.viewport.Width = width - 4
	}
	if height > 10 {
		m.viewport.Height = height - 10
	}
}

// content is the text shown in the viewport for the current filter.
func (m courseListModel) content() string {
	return strings.Join(ui.CourseListLines(ui.FilterSummaries(m.rows, m.filter.Value())), "\n")
}

func (m *courseListModel) refresh() {
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

func (m mainModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.list.filtering {
			switch key.String() {
			case "enter":
				m.list.filtering = false
				m.list.filter.Blur()
				return m, nil
			case "esc":
				m.list.filtering = false
				m.list.filter.Blur()
				m.list.filter.SetValue("")
				m.list.refresh()
				return m, nil
			}
			m.list.filter, cmd = m.list.filter.Update(msg)
			m.list.refresh()
			return m, cmd
		}
		switch key.String() {
		case "esc", "q":
			return m.backToMenu()
		case "/":
			m.list.filtering = true
			cmd = m.list.filter.Focus()
			return m, cmd
		}
	}
	m.list.viewport, cmd = m.list.viewport.Update(msg)
	return m, cmd
}

// View renders the list.
func (m courseListModel) View(width int) string {
	parts := []string{titleStyle.Render(i18n.T("menu.list")), m.viewport.View()}
	if m.filtering || m.filter.Value() != "" {
		parts = append(parts, m.filter.View())
	}
	parts = append(parts, renderFooter(i18n.T("tui.list_footer"), width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// --- input prompt ---

type inputPurpose int

const (
	loadPurpose inputPurpose = iota
	describePurpose
	chainPurpose
)

// inputModel is a single-line prompt for a file name or course number.
type inputModel struct {
	purpose inputPurpose
	prompt  string
	input   textinput.Model
}

func newInputModel(purpose inputPurpose, prompt, placeholder string) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 50
	return inputModel{purpose: purpose, prompt: prompt, input: ti}
}

func (m *inputModel) focus() tea.Cmd { return m.input.Focus() }

func (m mainModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m.backToMenu()
		case "enter":
			return m.submitInput(strings.TrimSpace(m.input.input.Value()))
		}
	}
	var cmd tea.Cmd
	m.input.input, cmd = m.input.input.Update(msg)
	return m, cmd
}

func (m mainModel) submitInput(value string) (tea.Model, tea.Cmd) {
	switch m.input.purpose {
	case loadPurpose:
		if value == "" {
			value = m.opts.CatalogFile
		}
		m.state = menuView
		return m, loadCatalogCmd(m.opts.Planner, value)
	case describePurpose:
		c, err := m.opts.Planner.DescribeCourse(value)
		if errors.Is(err, catalog.ErrNotFound) {
			m.detail = newDetailModel(i18n.T("menu.course"), []string{ui.NotFoundLine(value)})
		} else {
			m.detail = newDetailModel(i18n.T("menu.course"), ui.CourseDetailLines(c))
		}
	case chainPurpose:
		chain, err := m.opts.Planner.PrerequisiteChain(value)
		if errors.Is(err, catalog.ErrNotFound) {
			m.detail = newDetailModel(i18n.T("menu.chain"), []string{ui.NotFoundLine(value)})
		} else {
			m.detail = newDetailModel(i18n.T("menu.chain"), []string{ui.ChainLine(value, chain)})
		}
	}
	m.state = detailView
	return m, nil
}

// View renders the prompt.
func (m inputModel) View(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.prompt),
		paneStyle.Render(m.input.View()),
		renderFooter(i18n.T("tui.input_footer"), width))
}

// --- detail ---

// detailModel shows the result of a lookup.
type detailModel struct {
	title  string
	lines  []string
	notice string
}

func newDetailModel(title string, lines []string) detailModel {
	return detailModel{title: title, lines: lines}
}

func (m mainModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "q", "enter":
		return m.backToMenu()
	case "y":
		if err := writeClipboard(strings.Join(m.detail.lines, "\n")); err != nil {
			m.detail.notice = errorStyle.Render(err.Error())
		} else {
			m.detail.notice = successStyle.Render(i18n.T("course.copied"))
		}
	}
	return m, nil
}

// View renders the lookup result.
func (m detailModel) View(width int) string {
	parts := []string{
		titleStyle.Render(m.title),
		paneStyle.Render(strings.Join(m.lines, "\n")),
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	parts = append(parts, renderFooter(i18n.T("tui.detail_footer"), width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// --- audit log ---

// auditModel lists recent audit entries in a table.
type auditModel struct {
	table   table.Model
	entries []model.AuditLogEntry
}

func auditColumns(width int) []table.Column {
	details := width - 20 - 12 - 22 - 10
	if details < 20 {
		details = 20
	}
	return []table.Column{
		{Title: i18n.T("audit.col_time"), Width: 20},
		{Title: i18n.T("audit.col_user"), Width: 12},
		{Title: i18n.T("audit.col_action"), Width: 22},
		{Title: i18n.T("audit.col_details"), Width: details},
	}
}

func newAuditModel() auditModel {
	t := table.New(
		table.WithColumns(auditColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	return auditModel{table: t}
}

func (m *auditModel) resize(width, height int) {
	if width > 0 {
		m.table.SetColumns(auditColumns(width))
	}
	if height > 10 {
		m.table.SetHeight(height - 10)
	}
}

func (m *auditModel) setEntries(entries []model.AuditLogEntry) {
	m.entries = entries
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{e.Timestamp, e.Username, e.Action, e.Details})
	}
	m.table.SetRows(rows)
}

func (m mainModel) updateAudit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q":
			return m.backToMenu()
		}
	}
	var cmd tea.Cmd
	m.audit.table, cmd = m.audit.table.Update(msg)
	return m, cmd
}

// View renders the audit table.
func (m auditModel) View(width int) string {
	body := m.table.View()
	if len(m.entries) == 0 {
		body = helpStyle.Render(i18n.T("audit.empty"))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(i18n.T("menu.audit")),
		body,
		renderFooter(i18n.T("tui.audit_footer"), width))
}
