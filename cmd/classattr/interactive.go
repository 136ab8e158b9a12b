package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/jvm-classfile/classfile"
	"github.com/wippyai/jvm-classfile/dump"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	markerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	stateDetail
)

type row struct {
	doc   *dump.Doc
	depth int
}

type interactiveModel struct {
	err      error
	expanded map[*dump.Doc]bool
	filename string
	nodes    []classfile.Node
	docs     []*dump.Doc
	rows     []row
	filter   textinput.Model
	selected int
	width    int
	height   int
	loaded   bool
	state    modelState
}

type builtMsg struct {
	err  error
	docs []*dump.Doc
}

func newInteractiveModel(filename string, nodes []classfile.Node) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "kind or field"
	ti.Width = 40

	m := &interactiveModel{
		expanded: make(map[*dump.Doc]bool),
		filename: filename,
		nodes:    nodes,
		filter:   ti,
		width:    80,
		height:   24,
		state:    stateBrowse,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = w, h
	}
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.buildDocs
}

func (m *interactiveModel) buildDocs() tea.Msg {
	docs := make([]*dump.Doc, 0, len(m.nodes))
	for _, n := range m.nodes {
		d, err := dump.Build(n)
		if err != nil {
			return builtMsg{err: err}
		}
		docs = append(docs, d)
	}
	return builtMsg{docs: docs}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case builtMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.docs = msg.docs
		for _, d := range m.docs {
			m.expanded[d] = true
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter", " ":
			if m.state == stateBrowse {
				m.toggle()
			}

		case "tab":
			switch m.state {
			case stateBrowse:
				if len(m.rows) > 0 {
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateBrowse
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateBrowse
			case stateBrowse:
				if m.filter.Value() != "" {
					m.filter.SetValue("")
					m.refresh()
				}
			}
		}
	}
	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.filter.Blur()
		m.state = stateBrowse
		return m, nil
	case "esc":
		m.filter.Blur()
		m.filter.SetValue("")
		m.state = stateBrowse
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *interactiveModel) toggle() {
	if m.selected >= len(m.rows) {
		return
	}
	d := m.rows[m.selected].doc
	if len(d.Children) == 0 || m.filter.Value() != "" {
		return
	}
	m.expanded[d] = !m.expanded[d]
	m.refresh()
}

// refresh rebuilds the visible rows. A non-empty filter lists every
// matching structure regardless of expansion.
func (m *interactiveModel) refresh() {
	var current *dump.Doc
	if m.selected < len(m.rows) {
		current = m.rows[m.selected].doc
	}

	m.rows = m.rows[:0]
	query := strings.ToLower(m.filter.Value())
	var visit func(d *dump.Doc, depth int)
	visit = func(d *dump.Doc, depth int) {
		if query == "" || strings.Contains(strings.ToLower(dump.Line(d, false)), query) {
			m.rows = append(m.rows, row{doc: d, depth: depth})
		}
		if query != "" || m.expanded[d] {
			for _, c := range d.Children {
				visit(c, depth+1)
			}
		}
	}
	for _, d := range m.docs {
		visit(d, 0)
	}

	m.selected = 0
	for i, r := range m.rows {
		if r.doc == current {
			m.selected = i
			break
		}
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Decoding..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("classattr"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf(" (%d structures)", len(m.docs)))
	b.WriteString("\n\n")

	switch m.state {
	case stateDetail:
		d := m.rows[m.selected].doc
		b.WriteString(dump.Text(d, dump.TextOptions{Styled: true}))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab/esc back • q quit"))

	default:
		if len(m.rows) == 0 {
			b.WriteString("No matching structures.\n")
		}
		first, last := m.window()
		for i := first; i < last; i++ {
			b.WriteString(m.renderRow(i))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n")
		}
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("enter apply • esc clear"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter expand • tab details • / filter • q quit"))
		}
	}
	return b.String()
}

// window returns the row range that fits on screen around the selection.
func (m *interactiveModel) window() (int, int) {
	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	if len(m.rows) <= visible {
		return 0, len(m.rows)
	}
	first := m.selected - visible/2
	if first < 0 {
		first = 0
	}
	if first+visible > len(m.rows) {
		first = len(m.rows) - visible
	}
	return first, first + visible
}

func (m *interactiveModel) renderRow(i int) string {
	r := m.rows[i]
	marker := "  "
	if len(r.doc.Children) > 0 && m.filter.Value() == "" {
		marker = "▸ "
		if m.expanded[r.doc] {
			marker = "▾ "
		}
	}
	indent := strings.Repeat("  ", r.depth)
	clip := lipgloss.NewStyle().MaxWidth(m.width)
	if i == m.selected {
		return clip.Render(selectedStyle.Render(indent + marker + dump.Line(r.doc, false)))
	}
	return clip.Render(indent + markerStyle.Render(marker) + dump.Line(r.doc, true))
}

func runInteractive(filename string, nodes []classfile.Node) error {
	p := tea.NewProgram(newInteractiveModel(filename, nodes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
