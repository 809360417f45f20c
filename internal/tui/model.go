// Package tui is the interactive full-screen calculator built on bubbletea.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/expr"
)

// Layout constants.
const (
	historyWidthPercent = 65
	maxHistory          = 500
	minBodyHeight       = 4
	// chrome is the number of rows used by the title, the input panel and
	// the help line.
	chrome = 6
)

// Config holds the settings of a TUI session.
type Config struct {
	// Timeout bounds each evaluation; 0 disables it.
	Timeout time.Duration
	// Dump starts with the internals dump enabled.
	Dump    bool
	Version string
}

// entry is one evaluated input in the history panel.
type entry struct {
	src   string
	lines []string
	err   bool
}

// evalResultMsg carries the outcome of an asynchronous evaluation.
type evalResultMsg struct {
	gen uint64
	src string
	res *bigint.Int
	err error
	dur time.Duration
}

// Model is the root bubbletea model of the calculator.
type Model struct {
	input  textinput.Model
	help   help.Model
	keymap KeyMap

	eval *expr.Evaluator
	cfg  Config

	parentCtx context.Context
	cancel    context.CancelFunc
	gen       uint64
	busy      bool

	history []entry
	inputs  []string
	recall  int
	scroll  int
	dump    bool

	width  int
	height int
}

// NewModel returns a calculator model over ev.
func NewModel(ctx context.Context, ev *expr.Evaluator, cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = "big> "
	ti.Placeholder = "x = 2 << 100; x * 3 - 1"
	ti.Focus()

	return Model{
		input:     ti,
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		eval:      ev,
		cfg:       cfg,
		parentCtx: ctx,
		dump:      cfg.Dump,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-len(m.input.Prompt)-4)
		return m, nil

	case evalResultMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		m.cancel = nil
		m.addEntry(m.render(msg))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		src := strings.TrimSpace(m.input.Value())
		if src == "" || m.busy {
			return m, nil
		}
		m.inputs = append(m.inputs, src)
		m.recall = len(m.inputs)
		m.input.Reset()
		return m.start(src)

	case key.Matches(msg, m.keymap.Prev):
		if m.recall > 0 {
			m.recall--
			m.input.SetValue(m.inputs[m.recall])
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Next):
		if m.recall < len(m.inputs)-1 {
			m.recall++
			m.input.SetValue(m.inputs[m.recall])
			m.input.CursorEnd()
		} else {
			m.recall = len(m.inputs)
			m.input.Reset()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.history = nil
		m.scroll = 0
		return m, nil

	case key.Matches(msg, m.keymap.Dump):
		m.dump = !m.dump
		return m, nil

	case key.Matches(msg, m.keymap.PageUp):
		m.scroll = min(m.scroll+m.historyHeight()/2, max(0, m.historyLines()-m.historyHeight()))
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		m.scroll = max(0, m.scroll-m.historyHeight()/2)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// start launches the evaluation of src in a command, tagged with a new
// generation so a result arriving after a newer submission is ignored.
func (m Model) start(src string) (tea.Model, tea.Cmd) {
	m.gen++
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if m.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(m.parentCtx, m.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(m.parentCtx)
	}
	m.cancel = cancel
	m.busy = true
	return m, evalCmd(ctx, cancel, m.eval, src, m.gen)
}

func evalCmd(ctx context.Context, cancel context.CancelFunc, ev *expr.Evaluator, src string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		start := time.Now()
		res, err := ev.Eval(ctx, src)
		return evalResultMsg{gen: gen, src: src, res: res, err: err, dur: time.Since(start)}
	}
}

func (m Model) render(msg evalResultMsg) entry {
	e := entry{src: msg.src}
	if msg.err != nil {
		e.err = true
		e.lines = []string{msg.err.Error()}
		return e
	}
	e.lines = []string{
		cli.FormatResult(msg.res, false),
		cli.FormatSummary(msg.res, msg.dur, language.English),
	}
	if m.dump {
		var buf bytes.Buffer
		if err := msg.res.Dump(&buf); err == nil {
			e.lines = append(e.lines, strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")...)
		}
	}
	return e
}

func (m *Model) addEntry(e entry) {
	m.history = append(m.history, e)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.scroll = 0
}

func (m Model) historyHeight() int {
	return max(minBodyHeight, m.height-chrome)
}

func (m Model) historyLines() int {
	n := 0
	for _, e := range m.history {
		n += 1 + len(e.lines)
	}
	return n
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	status := statusOKStyle.Render("ready")
	if m.busy {
		status = statusBusyStyle.Render("evaluating...")
	}
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("bigcalc "+m.cfg.Version),
		dimStyle.Render(fmt.Sprintf("  %d-bit words  ", bigint.WordBits)),
		status)

	histWidth := m.width * historyWidthPercent / 100
	varsWidth := m.width - histWidth
	bodyHeight := m.historyHeight()

	hist := panelStyle.Width(histWidth - 2).Height(bodyHeight - 2).Render(m.viewHistory(bodyHeight - 2))
	vars := panelStyle.Width(varsWidth - 2).Height(bodyHeight - 2).Render(m.viewVars(bodyHeight-2, varsWidth-4))
	body := lipgloss.JoinHorizontal(lipgloss.Top, hist, vars)

	input := panelStyle.Width(m.width - 2).Render(m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, input, m.help.View(m.keymap))
}

func (m Model) viewHistory(height int) string {
	var lines []string
	for _, e := range m.history {
		lines = append(lines, exprStyle.Render("> "+e.src))
		style := resultStyle
		if e.err {
			style = errorStyle
		}
		for i, l := range e.lines {
			if i > 0 && !e.err {
				style = dimStyle
			}
			lines = append(lines, style.Render("  "+l))
		}
	}
	end := max(0, len(lines)-m.scroll)
	start := max(0, end-height)
	return strings.Join(lines[start:end], "\n")
}

func (m Model) viewVars(height, width int) string {
	lines := []string{titleStyle.Render("variables")}
	for _, name := range m.eval.Names() {
		if len(lines) >= height {
			lines = append(lines, dimStyle.Render("..."))
			break
		}
		v, _ := m.eval.Get(name)
		text := v.String()
		if room := width - len(name) - 3; room > 3 && len(text) > room {
			text = text[:room-3] + "..."
		}
		lines = append(lines, varNameStyle.Render(name)+" = "+text)
	}
	return strings.Join(lines, "\n")
}

// Run starts the full-screen calculator and blocks until the user quits.
func Run(ctx context.Context, ev *expr.Evaluator, cfg Config) error {
	// Rebuild styles from the theme chosen by the application.
	initTUIStyles()

	p := tea.NewProgram(NewModel(ctx, ev, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(Model); ok && m.cancel != nil {
		m.cancel()
	}
	return err
}
