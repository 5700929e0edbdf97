package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/nativeobjects/binding"
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

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectContract modelState = iota
	stateShowSlots
	stateShowSource
)

// entry is one contract and the outcome of generating it.
type entry struct {
	err      error
	artifact *binding.Artifact
	name     string
}

type loadedMsg struct {
	err     error
	pkg     string
	entries []entry
}

type inspectModel struct {
	err      error
	filter   textinput.Model
	source   viewport.Model
	cfg      config
	pkg      string
	entries  []entry
	visible  []int
	selected int
	width    int
	height   int
	state    modelState
	loaded   bool
}

func newInspectModel(cfg config) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 30
	ti.Focus()
	return &inspectModel{
		cfg:    cfg,
		filter: ti,
		source: viewport.New(80, 20),
		state:  stateSelectContract,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return tea.Batch(m.load, textinput.Blink)
}

func (m *inspectModel) load() tea.Msg {
	reg, opts, err := loadRegistry(m.cfg)
	if err != nil {
		return loadedMsg{err: err}
	}
	entries := make([]entry, 0, reg.Len())
	for _, c := range reg.Contracts() {
		a, err := binding.Generate(c, opts)
		entries = append(entries, entry{name: c.Name, artifact: a, err: err})
	}
	return loadedMsg{pkg: opts.Namespace, entries: entries}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.source.Width = msg.Width
		m.source.Height = max(msg.Height-4, 1)

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.pkg = msg.pkg
		m.entries = msg.entries
		m.loaded = true
		m.applyFilter()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateSelectContract || m.err != nil {
				return m, tea.Quit
			}

		case "up":
			if m.state == stateSelectContract && m.selected > 0 {
				m.selected--
			}

		case "down":
			if m.state == stateSelectContract && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectContract:
				if len(m.visible) > 0 {
					m.state = stateShowSlots
				}
			case stateShowSlots:
				if e := m.current(); e != nil && e.artifact != nil {
					m.source.SetContent(string(e.artifact.Source))
					m.source.GotoTop()
					m.state = stateShowSource
				}
			}
			return m, nil

		case "esc":
			switch m.state {
			case stateShowSlots:
				m.state = stateSelectContract
			case stateShowSource:
				m.state = stateShowSlots
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectContract:
		prev := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != prev {
			m.applyFilter()
		}
	case stateShowSource:
		m.source, cmd = m.source.Update(msg)
	}
	return m, cmd
}

func (m *inspectModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if strings.Contains(strings.ToLower(e.name), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *inspectModel) current() *entry {
	if m.selected >= len(m.visible) {
		return nil
	}
	return &m.entries[m.visible[m.selected]]
}

func (m *inspectModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading manifest..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("nativeobjgen"))
	b.WriteString(" ")
	b.WriteString(m.cfg.manifest)
	b.WriteString(" ")
	b.WriteString(typeStyle.Render("package " + m.pkg))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectContract:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for i, idx := range m.visible {
			e := m.entries[idx]
			line := "  " + m.formatEntry(e)
			if i == m.selected {
				line = selectedStyle.Render("> " + e.name)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter slots • ctrl+c quit"))

	case stateShowSlots:
		e := m.current()
		b.WriteString(fmt.Sprintf("Vtable of %s\n\n", nameStyle.Render(e.name)))
		if e.err != nil {
			b.WriteString(errorStyle.Render(e.err.Error()))
		} else {
			b.WriteString(m.formatSlots(e.artifact))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter source • esc back • q quit"))

	case stateShowSource:
		b.WriteString(m.source.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func (m *inspectModel) formatEntry(e entry) string {
	if e.err != nil {
		return nameStyle.Render(e.name) + " " + errorStyle.Render("error")
	}
	l := e.artifact.Layout
	return nameStyle.Render(e.name) + " " +
		typeStyle.Render(fmt.Sprintf("%d slots, %d records", l.VTable.Slots, len(l.Records)))
}

func (m *inspectModel) formatSlots(a *binding.Artifact) string {
	var b strings.Builder
	l := a.Layout
	fmt.Fprintf(&b, "object %d bytes (vtable @%d, handle @%d), vtable %d bytes\n\n",
		l.Object.Size, l.Object.VTableOffset, l.Object.HandleOffset, l.VTable.Size)
	for i, s := range l.Slots {
		owner := ""
		if s.Owner != a.Name {
			owner = helpStyle.Render(" from " + s.Owner)
		}
		fmt.Fprintf(&b, "%3d +%-3d %s%s\n      %s\n",
			s.Index, s.Offset,
			nameStyle.Render(s.Method.String()), owner,
			typeStyle.Render(a.Signatures[i].FuncType()))
	}
	for _, r := range l.Records {
		fmt.Fprintf(&b, "\nrecord %s: %d bytes, align %d\n", nameStyle.Render(r.Record.Name), r.Size, r.Align)
		for i, f := range r.Record.Fields {
			fmt.Fprintf(&b, "  +%-3d %s %s\n", r.Offsets[i], f.Name, typeStyle.Render(f.Type.Name))
		}
	}
	return b.String()
}

func runInteractive(cfg config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInspectModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
