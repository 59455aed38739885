package main

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/jagged/layout"
	"github.com/wippyai/jagged/slice"
	"github.com/wippyai/jagged/witform"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	treeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var errNotTerminal = errors.New("explore needs an interactive terminal")

// ExploreCmd opens the interactive slicer.
type ExploreCmd struct {
	File  string `arg:"" help:"Layout file" type:"existingfile"`
	Array string `short:"a" help:"Array name when the file holds several"`
}

func (cmd *ExploreCmd) Run(ctx *Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	c, err := loadArray(ctx, cmd.File, cmd.Array)
	if err != nil {
		return err
	}
	name := cmd.Array
	if name == "" {
		name = cmd.File
	}
	p := tea.NewProgram(newExploreModel(ctx.Logger, name, c), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type exploreModel struct {
	err     error
	logger  *zap.Logger
	content layout.Content
	name    string
	result  string
	witType string
	tree    []string
	history []string
	input   textinput.Model
	histIdx int
	width   int
}

type evalResultMsg struct {
	err     error
	expr    string
	result  string
	witType string
}

func newExploreModel(logger *zap.Logger, name string, c layout.Content) *exploreModel {
	ti := textinput.New()
	ti.Prompt = "x["
	ti.Placeholder = `0, 1:, "field"`
	ti.Width = 60
	ti.Focus()
	return &exploreModel{
		logger:  logger,
		content: c,
		name:    name,
		tree:    tree(c),
		input:   ti,
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			expr := strings.TrimSpace(m.input.Value())
			if expr == "" {
				return m, nil
			}
			return m, m.evaluate(expr)

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.SetValue("")
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case evalResultMsg:
		m.err = msg.err
		m.result = msg.result
		m.witType = msg.witType
		if len(m.history) == 0 || m.history[len(m.history)-1] != msg.expr {
			m.history = append(m.history, msg.expr)
		}
		m.histIdx = len(m.history)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *exploreModel) evaluate(expr string) tea.Cmd {
	return func() tea.Msg {
		s, err := slice.Parse(expr)
		if err != nil {
			return evalResultMsg{expr: expr, err: err}
		}
		out, err := layout.Getitem(m.content, s)
		if err != nil {
			m.logger.Debug("slice failed", zap.String("expr", expr), zap.Error(err))
			return evalResultMsg{expr: expr, err: err}
		}
		formatted, err := layout.Format(out)
		if err != nil {
			return evalResultMsg{expr: expr, err: err}
		}
		msg := evalResultMsg{expr: expr, result: formatted}
		if c, ok := out.(layout.Content); ok {
			if t, err := witform.Type(c); err == nil {
				msg.witType = witform.Render(t)
			}
		}
		return msg
	}
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("jagged"))
	b.WriteString(" ")
	b.WriteString(m.name)
	b.WriteString("\n\n")

	for _, line := range m.tree {
		b.WriteString(treeStyle.Render(fit(line, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("]\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fit("Error: "+m.err.Error(), m.width)))
		b.WriteString("\n")
	case m.result != "":
		b.WriteString(resultStyle.Render(fit(m.result, m.width)))
		b.WriteString("\n")
		if m.witType != "" {
			b.WriteString(typeStyle.Render(fit(m.witType, m.width)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter slice • ↑/↓ history • esc quit"))
	return b.String()
}
