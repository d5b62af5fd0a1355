package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/idl-codec/borsh"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type entry struct {
	layout        *borsh.Node
	kind          string
	name          string
	size          string
	discriminator string
}

type modelState int

const (
	stateSelect modelState = iota
	stateInput
	stateShowResult
)

type interactiveModel struct {
	err      error
	session  *session
	result   string
	entries  []entry
	input    textinput.Model
	selected int
	state    modelState
}

type encodedMsg struct {
	err  error
	data []byte
}

// catalog lists every named record of the session with its size and
// discriminator precomputed.
func catalog(s *session) []entry {
	var entries []entry
	add := func(kind, name string) {
		e := entry{kind: kind, name: name}
		e.layout, _ = s.layout(kind, name)
		if info, err := s.size(kind, name); err == nil {
			e.size = describeSize(info)
		}
		if disc, err := s.discriminator(kind, name); err == nil {
			e.discriminator = disc
		}
		entries = append(entries, e)
	}

	l := s.list()
	for _, name := range l.Instructions {
		add(kindInstruction, name)
	}
	for _, name := range l.Accounts {
		add(kindAccount, name)
	}
	for _, name := range l.Types {
		add(kindType, name)
	}
	for _, name := range l.Events {
		add(kindEvent, name)
	}
	if l.State != "" {
		add(kindState, l.State)
	}
	return entries
}

func describeSize(info sizeInfo) string {
	var parts []string
	if info.Span != nil {
		parts = append(parts, fmt.Sprintf("%d bytes", *info.Span))
	} else {
		parts = append(parts, fmt.Sprintf("%d bytes + payload", info.Prefix))
	}
	if info.Declared > 0 {
		parts = append(parts, fmt.Sprintf("declared %d", info.Declared))
	}
	return strings.Join(parts, ", ")
}

func newInteractiveModel(s *session) *interactiveModel {
	return &interactiveModel{
		session: s,
		entries: catalog(s),
		state:   stateSelect,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInput {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelect && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelect && m.selected < len(m.entries)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelect:
				if len(m.entries) == 0 {
					return m, nil
				}
				m.prepareInput()
				m.state = stateInput
				return m, textinput.Blink

			case stateInput:
				return m, m.encode

			case stateShowResult:
				m.state = stateSelect
				m.result = ""
				m.err = nil
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInput:
				m.state = stateSelect
			case stateShowResult:
				m.state = stateInput
				m.result = ""
				m.err = nil
			}
			return m, nil
		}

	case encodedMsg:
		m.err = msg.err
		m.result = fmt.Sprintf("%x", msg.data)
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) prepareInput() {
	e := m.entries[m.selected]
	ti := textinput.New()
	ti.Placeholder = placeholder(e.layout)
	ti.Prompt = "value: "
	ti.Width = 60
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) encode() tea.Msg {
	e := m.entries[m.selected]
	var value any
	if text := strings.TrimSpace(m.input.Value()); text != "" {
		v, err := parseValue(text)
		if err != nil {
			return encodedMsg{err: err}
		}
		value = v
	}
	data, err := m.session.encode(e.kind, e.name, value)
	return encodedMsg{data: data, err: err}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("IDL Inspector"))
	b.WriteString(" ")
	b.WriteString(m.session.schema.Name)
	if m.session.program != "" {
		b.WriteString(" ")
		b.WriteString(helpStyle.Render(m.session.program))
	}
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString("Program declares nothing to inspect.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelect:
		for i, e := range m.entries {
			line := fmt.Sprintf("%-12s %s", e.kind, e.name)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.formatEntry(m.entries[m.selected]))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter encode • q quit"))

	case stateInput:
		b.WriteString(m.formatEntry(m.entries[m.selected]))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter encode • esc back"))

	case stateShowResult:
		e := m.entries[m.selected]
		b.WriteString(fmt.Sprintf("Encoded %s:\n\n", nameStyle.Render(e.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc edit • enter list • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(e entry) string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(e.name))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(e.kind))
	b.WriteString("\n")
	if e.size != "" {
		b.WriteString("  size:          " + e.size + "\n")
	}
	if e.discriminator != "" {
		b.WriteString("  discriminator: " + e.discriminator + "\n")
	}
	if e.layout != nil {
		for _, f := range e.layout.Fields {
			b.WriteString("  " + f.Name + ": " + typeStyle.Render(f.Node.TypeName()) + "\n")
		}
		for i, v := range e.layout.Variants {
			b.WriteString(fmt.Sprintf("  %d %s\n", i, v.Name))
		}
	}
	return b.String()
}

// placeholder sketches the JSON shape a layout expects.
func placeholder(n *borsh.Node) string {
	if n == nil {
		return "{}"
	}
	switch n.Kind {
	case borsh.KindEnum:
		if len(n.Variants) > 0 {
			return fmt.Sprintf("%q", n.Variants[0].Name)
		}
	case borsh.KindStruct:
		parts := make([]string, 0, len(n.Fields))
		for _, f := range n.Fields {
			parts = append(parts, fmt.Sprintf("%q: %s", f.Name, f.Node.TypeName()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return n.TypeName()
}

func runInteractive(s *session) error {
	p := tea.NewProgram(newInteractiveModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
