// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abcu/courseplanner/internal/catalog"
	"github.com/abcu/courseplanner/internal/core"
	"github.com/abcu/courseplanner/internal/i18n"
	"github.com/abcu/courseplanner/internal/ui"
)

// Menu is the numbered, line-oriented menu used when stdin is not a
// terminal or --plain is given. It only dispatches to the planner.
type Menu struct {
	planner     *core.Planner
	in          *bufio.Scanner
	out         io.Writer
	defaultFile string
}

// NewMenu returns a menu reading choices from in and writing to out.
// defaultFile is loaded when the user accepts the file prompt unchanged.
func NewMenu(p *core.Planner, in io.Reader, out io.Writer, defaultFile string) *Menu {
	return &Menu{planner: p, in: bufio.NewScanner(in), out: out, defaultFile: defaultFile}
}

// Run shows the menu until the user picks 9 or input ends.
func (m *Menu) Run() error {
	fmt.Fprintln(m.out, i18n.T("app.welcome"))
	for {
		m.printOptions()
		choice, ok := m.readToken()
		if !ok {
			fmt.Fprintln(m.out)
			return m.in.Err()
		}
		switch choice {
		case "1":
			m.load()
		case "2":
			if m.requireLoaded() {
				for _, l := range ui.CourseListLines(m.planner.ListCourses()) {
					fmt.Fprintln(m.out, l)
				}
			}
		case "3":
			m.describe()
		case "4":
			m.chain()
		case "9":
			fmt.Fprintln(m.out, i18n.T("app.goodbye"))
			return nil
		default:
			fmt.Fprintln(m.out, i18n.T("menu.invalid_option", choice))
		}
	}
}

func (m *Menu) printOptions() {
	fmt.Fprintln(m.out)
	fmt.Fprintf(m.out, "1. %s\n", i18n.T("menu.load"))
	fmt.Fprintf(m.out, "2. %s\n", i18n.T("menu.list"))
	fmt.Fprintf(m.out, "3. %s\n", i18n.T("menu.course"))
	fmt.Fprintf(m.out, "4. %s\n", i18n.T("menu.chain"))
	fmt.Fprintf(m.out, "9. %s\n", i18n.T("menu.exit"))
	fmt.Fprintln(m.out)
	fmt.Fprint(m.out, i18n.T("menu.prompt"))
}

// readLine returns the next input line with surrounding blanks removed.
func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// readToken returns the first blank-separated word of the next non-empty
// line.
func (m *Menu) readToken() (string, bool) {
	for {
		line, ok := m.readLine()
		if !ok {
			return "", false
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields[0], true
		}
	}
}

func (m *Menu) requireLoaded() bool {
	if m.planner.Status().Loaded {
		return true
	}
	fmt.Fprintln(m.out, i18n.T("catalog.not_loaded"))
	return false
}

func (m *Menu) load() {
	fmt.Fprint(m.out, i18n.T("catalog.file_prompt", m.defaultFile))
	path, _ := m.readLine()
	if path == "" {
		path = m.defaultFile
	}
	n, err := m.planner.LoadFile(path)
	if err != nil {
		fmt.Fprintln(m.out, i18n.T("catalog.file_not_found"))
		return
	}
	fmt.Fprintln(m.out, i18n.T("catalog.loaded", n, path))
}

func (m *Menu) describe() {
	if !m.requireLoaded() {
		return
	}
	fmt.Fprint(m.out, i18n.T("course.prompt"))
	id, ok := m.readToken()
	if !ok {
		return
	}
	c, err := m.planner.DescribeCourse(id)
	if errors.Is(err, catalog.ErrNotFound) {
		fmt.Fprintln(m.out, ui.NotFoundLine(id))
		return
	}
	for _, l := range ui.CourseDetailLines(c) {
		fmt.Fprintln(m.out, l)
	}
}

func (m *Menu) chain() {
	if !m.requireLoaded() {
		return
	}
	fmt.Fprint(m.out, i18n.T("course.prompt"))
	id, ok := m.readToken()
	if !ok {
		return
	}
	chain, err := m.planner.PrerequisiteChain(id)
	if errors.Is(err, catalog.ErrNotFound) {
		fmt.Fprintln(m.out, ui.NotFoundLine(id))
		return
	}
	fmt.Fprintln(m.out, ui.ChainLine(id, chain))
}
