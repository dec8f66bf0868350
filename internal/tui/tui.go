// Package tui plays a game in the terminal. Mouse presses, motion and
// releases drive the same drag machine the browser uses, with the board
// measured in character cells.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/solitaire/internal/controller"
	"github.com/lox/solitaire/internal/drag"
)

// HeaderLines is the number of lines drawn above the board. Controllers
// driven by this package should use Geometry(HeaderLines).
const HeaderLines = 2

const logLines = 4

type logEntry struct {
	text  string
	style lipgloss.Style
}

type tickMsg time.Time

// Model is the Bubble Tea model for one game.
type Model struct {
	ctrl   *controller.Controller
	logger *log.Logger

	keys        keyMap
	help        help.Model
	logViewport viewport.Model
	gameLog     []logEntry

	width    int
	height   int
	quitting bool
}

// NewModel creates a model playing ctrl. The controller should already be
// dealt.
func NewModel(ctrl *controller.Controller, logger *log.Logger) *Model {
	vp := viewport.New(80, logLines)
	vp.SetContent("")

	return &Model{
		ctrl:        ctrl,
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
	}
}

// Run plays ctrl in the terminal until the user quits.
func Run(ctrl *controller.Controller, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(ctrl, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init starts the clock display.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = max(msg.Width, 1)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.ctrl.Abort()
			return m, tea.Quit
		case key.Matches(msg, m.keys.NewGame):
			if err := m.ctrl.NewGame(); err != nil {
				m.addLog(ErrorStyle, "New game failed: %v", err)
			} else {
				m.addLog(InfoStyle, "New game dealt")
			}
		case key.Matches(msg, m.keys.Restart):
			if err := m.ctrl.Restart(); err != nil {
				m.addLog(ErrorStyle, "Restart failed: %v", err)
			} else {
				m.addLog(InfoStyle, "Deal restarted")
			}
		case key.Matches(msg, m.keys.Cancel):
			m.record(m.ctrl.Abort())
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.MouseMsg:
		ev, ok := pointerEvent(msg)
		if !ok {
			return m, nil
		}
		effects, err := m.ctrl.Dispatch(ev)
		if err != nil {
			m.addLog(ErrorStyle, "%v", err)
			return m, nil
		}
		m.record(effects)
	}

	return m, nil
}

// pointerEvent maps terminal mouse input onto drag events. Only the left
// button starts a drag; any release ends one.
func pointerEvent(msg tea.MouseMsg) (drag.Event, bool) {
	var kind drag.EventKind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return drag.Event{}, false
		}
		kind = drag.PointerDown
	case tea.MouseActionMotion:
		kind = drag.PointerMove
	case tea.MouseActionRelease:
		kind = drag.PointerUp
	default:
		return drag.Event{}, false
	}
	return drag.At(kind, float64(msg.X), float64(msg.Y)), true
}

func (m *Model) record(effects []drag.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case drag.DragStarted:
			m.logger.Debug("Picked up cards", "source", e.Source, "cards", len(e.Cards))
		case drag.DropCommitted:
			m.addLog(SuccessStyle, "Moved %s from %s to %s", plural(len(e.Cards)), e.Source, e.Target)
		case drag.DropReverted:
			m.addLog(WarningStyle, "Returned %s to %s (%s)", plural(len(e.Cards)), e.Source, e.Reason)
		case drag.RunSelected:
			m.addLog(InfoStyle, "Selected %s on %s", plural(len(e.Cards)), e.Source)
		}
	}
}

func plural(n int) string {
	if n == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", n)
}

func (m *Model) addLog(style lipgloss.Style, format string, args ...any) {
	m.gameLog = append(m.gameLog, logEntry{text: fmt.Sprintf(format, args...), style: style})

	lines := make([]string, len(m.gameLog))
	for i, e := range m.gameLog {
		lines[i] = e.style.Render(e.text)
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	m.logViewport.GotoBottom()
}

// Log returns the plain text of every log entry.
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	for i, e := range m.gameLog {
		out[i] = e.text
	}
	return out
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(strings.Repeat("\n", HeaderLines-1))
	b.WriteString("\n")
	b.WriteString(RenderBoard(m.ctrl.Board().Render()))
	b.WriteString("\n\n")
	b.WriteString(m.logViewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderHeader() string {
	game := m.ctrl.Game()
	header := HeaderStyle.Render(" " + game.Title() + " ")
	if game.UseTimer() {
		elapsed := m.ctrl.Elapsed().Truncate(time.Second)
		header += "  " + TimerStyle.Render(fmt.Sprintf("%02d:%02d", int(elapsed.Minutes()), int(elapsed.Seconds())%60))
	}
	return header
}
