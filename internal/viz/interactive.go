package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/lensim/internal/lens"
)

const (
	stateMenu = iota
	stateConfig
	stateLive
)

// picker walks the user through model selection and slider setup before
// handing over to the live view.
type picker struct {
	state, cursor int
	models        []lens.Model
	base          Options
	ctrl          lens.Controls
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	live          Model
	err           error
}

// NewInteractiveApp returns a picker that starts live views from base.
func NewInteractiveApp(base Options) *picker {
	return &picker{
		state:  stateMenu,
		models: lens.Models(),
		base:   base,
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateLive {
			next, cmd := m.live.Update(msg)
			m.live = next.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m picker) handleKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateLive:
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.models)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.ctrl = lens.DefaultControls(m.models[m.cursor])
		m.paramNames = m.ctrl.ParamKeys()
		m.state, m.paramCursor = stateConfig, 0
	}
	return m, nil
}

func (m picker) configKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64); err == nil {
				m.err = m.ctrl.SetParam(m.paramNames[m.paramCursor], v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%.3f", m.ctrl.GetParams()[m.paramNames[m.paramCursor]])
	case "left", "h":
		m.err = m.ctrl.Nudge(m.paramNames[m.paramCursor], -1)
	case "right", "l":
		m.err = m.ctrl.Nudge(m.paramNames[m.paramCursor], 1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m picker) start() (picker, tea.Cmd) {
	opts := m.base
	opts.Controls = m.ctrl
	live, err := NewModel(opts)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live, m.state, m.err = live, stateLive, nil
	return m, m.live.Init()
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2ff")).Bold(true)
	subStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5a6480"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	pickStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	pickDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd37a"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	idleDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	keyDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
)

func (m picker) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateLive:
		return m.live.View()
	}
	return ""
}

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + keyDescStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m picker) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("LENSIM") + "\n    " + subStyle.Render("gravitational lensing visualizer") + "\n    " + subStyle.Render("────────────────────────────────") + "\n\n")
	for i, model := range m.models {
		name, desc := fmt.Sprintf("%-8s", model), modelInfo[model]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), pickStyle.Render(name), pickDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render("  "+name), idleDesc.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m picker) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.ctrl.Model.String())) + "\n    " + subStyle.Render(modelInfo[m.ctrl.Model]) + "\n    " + subStyle.Render("────────────────────────────────") + "\n\n")
	values := m.ctrl.GetParams()
	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%8.3f", values[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), pickStyle.Render(fmt.Sprintf("%-12s", name)), pickDesc.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-12s", name)), idleDesc.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + pickDesc.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive starts the model picker.
func RunInteractive(base Options) error {
	_, err := tea.NewProgram(NewInteractiveApp(base), tea.WithAltScreen()).Run()
	return err
}
