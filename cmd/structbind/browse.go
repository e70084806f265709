package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wippyai/structbind/transcoder"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <input>",
		Short: "Interactively decode hex input as any public type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBundle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m := newBrowseModel(filepath.Base(args[0]), b, newStyles(os.Stdout, a.cfg.Color), a.cfg.Raw)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type browseState int

const (
	stateSelectType browseState = iota
	stateInputHex
	stateShowResult
)

type browseModel struct {
	err      error
	st       styles
	source   string
	result   string
	types    []*transcoder.Public
	input    textinput.Model
	selected int
	state    browseState
	raw      bool
}

func newBrowseModel(source string, b *transcoder.Bundle, st styles, raw bool) *browseModel {
	types := append([]*transcoder.Public(nil), b.Public...)
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return &browseModel{
		st:     st,
		source: source,
		types:  types,
		state:  stateSelectType,
		raw:    raw,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputHex {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.types)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				if len(m.types) == 0 {
					return m, nil
				}
				m.prepareInput()
				m.state = stateInputHex
				return m, textinput.Blink

			case stateInputHex:
				m.decode()
				m.state = stateShowResult
				return m, nil

			case stateShowResult:
				m.state = stateInputHex
				m.result = ""
				m.err = nil
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputHex:
				m.state = stateSelectType
			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.err = nil
			}
			return m, nil
		}
	}

	if m.state == stateInputHex {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *browseModel) prepareInput() {
	p := m.types[m.selected]
	ti := textinput.New()
	ti.Prompt = "hex: "
	ti.Placeholder = fmt.Sprintf("%d bytes", p.Unit.Size())
	ti.CharLimit = int(p.Unit.Size())*3 + 2
	ti.Width = 60
	ti.Focus()
	m.input = ti
}

func (m *browseModel) decode() {
	p := m.types[m.selected]
	data, err := parseHex(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	v, err := p.FromBytes(data)
	if err != nil {
		m.err = err
		return
	}
	out, err := formatValue(p.Unit, v, "yaml", m.raw)
	if err != nil {
		m.err = err
		return
	}
	m.result = strings.TrimRight(string(out), "\n")
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(m.st.title.Render("structbind"))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString("\n\n")

	if len(m.types) == 0 {
		b.WriteString("No public types.\n\n")
		b.WriteString(m.st.help.Render("q quit"))
		return b.String()
	}

	p := m.types[m.selected]
	switch m.state {
	case stateSelectType:
		b.WriteString("Select a type to decode:\n\n")
		for i, t := range m.types {
			line := m.formatType(t)
			if i == m.selected {
				b.WriteString(m.st.selected.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.st.help.Render("↑/↓ select • enter decode • q quit"))

	case stateInputHex:
		fmt.Fprintf(&b, "Decoding %s\n\n", m.formatType(p))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.st.help.Render("enter decode • esc back"))

	case stateShowResult:
		fmt.Fprintf(&b, "%s:\n\n", m.formatType(p))
		if m.err != nil {
			b.WriteString(m.st.err.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.st.result.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(m.st.help.Render("enter try again • esc types • q quit"))
	}

	return b.String()
}

func (m *browseModel) formatType(p *transcoder.Public) string {
	return m.st.name.Render(p.Name) + " " + m.st.kind.Render(fmt.Sprintf("%s, %d bytes", p.Kind(), p.Unit.Size()))
}
