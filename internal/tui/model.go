package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keydrill/internal/model"
	"keydrill/internal/session"
)

// tickInterval bounds how often the countdown and termination condition are
// re-evaluated between keystrokes.
const tickInterval = 100 * time.Millisecond

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = pendingStyle.Copy().Underline(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model implements the real-time typing session UI. Key and tick messages
// are delivered serially, so the engine and pending-word buffer are only
// ever touched from one goroutine.
type Model struct {
	engine *session.Engine

	width  int
	height int

	buffer []rune
	prog   progress.Model

	done   bool
	result model.SessionResult
	err    error
}

// NewModel constructs the session UI around a ready engine.
func NewModel(engine *session.Engine) *Model {
	return &Model{
		engine: engine,
		prog:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Result returns the session result once the session has finished.
func (m *Model) Result() (model.SessionResult, bool) {
	return m.result, m.done
}

// Err returns a fatal session error, if any.
func (m *Model) Err() error { return m.err }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if err := m.engine.EnsureAhead(session.LookAhead); err != nil {
		m.err = err
		return tea.Quit
	}
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prog.Width = m.contentWidth()
		return m, nil
	case tickMsg:
		if m.done {
			return m, nil
		}
		// Termination is evaluated at iteration entry, before any new
		// input is applied.
		if reason, ok := m.engine.EndReason(m.engine.Now()); ok {
			m.finish(reason)
			return m, nil
		}
		return m, tickCmd()
	case tea.KeyMsg:
		return m.updateKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.finish(model.EndUserQuit)
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		// Removes the buffered character only; an already-scored
		// character is never unscored.
		if len(m.buffer) > 0 {
			m.buffer = m.buffer[:len(m.buffer)-1]
		}
		return m, nil
	case tea.KeySpace, tea.KeyEnter:
		m.commitBuffer()
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.engine.ScoreKey(len(m.buffer), r)
			m.buffer = append(m.buffer, r)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) commitBuffer() {
	if len(m.buffer) == 0 {
		return
	}
	if _, err := m.engine.CommitPrescored(string(m.buffer)); err != nil {
		m.err = err
		m.done = true
		return
	}
	m.buffer = m.buffer[:0]
	if reason, ok := m.engine.EndReason(m.engine.Now()); ok {
		m.finish(reason)
		return
	}
	if err := m.engine.EnsureAhead(session.LookAhead); err != nil {
		m.err = err
		m.done = true
	}
}

// finish performs one forced commit of a non-empty partial word so no typed
// keystrokes are silently discarded, then snapshots the result.
func (m *Model) finish(reason model.EndReason) {
	if len(m.buffer) > 0 {
		if _, err := m.engine.CommitPrescored(string(m.buffer)); err != nil {
			m.err = err
		}
		m.buffer = m.buffer[:0]
	}
	m.result = m.engine.Finish(reason)
	m.done = true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("session error: %v\n", m.err)
	}
	if m.done {
		return m.viewEndScreen()
	}
	targets := m.engine.Targets()
	if len(targets) == 0 {
		return ""
	}
	line := buildTypingLine(targets, m.buffer)
	content := wrapStyledRunes(line, m.contentWidth())
	if m.width == 0 || m.height == 0 {
		return content
	}
	header := headerStyle.Render(m.headerLine())
	footer := footerStyle.Render(m.footerLine())
	body := lipgloss.NewStyle().Width(m.contentWidth()).Render(content)
	if m.height < 5 {
		return body
	}
	middle := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, body)
	top := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, header)
	bottom := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return top + "\n" + middle + "\n" + bottom
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) headerLine() string {
	now := m.engine.Now()
	stats := m.engine.Stats()
	cfg := m.engine.Config()
	var progressPart string
	if cfg.Mode.Kind == model.ModeTimed {
		progressPart = fmt.Sprintf("%.0fs left", m.engine.RemainingSeconds(now))
	} else {
		progressPart = fmt.Sprintf("%d/%d words", m.engine.Committed(), cfg.Mode.Count)
	}
	return fmt.Sprintf("%s · %s · %.1f WPM · %.1f%% · %d errors",
		cfg.Mode.Describe(), progressPart, stats.NetWPM(now), stats.Accuracy()*100, stats.Errors)
}

func (m *Model) footerLine() string {
	bar := m.prog.ViewAs(m.progressRatio())
	return bar + "  " + "esc to quit"
}

func (m *Model) progressRatio() float64 {
	cfg := m.engine.Config()
	var ratio float64
	switch cfg.Mode.Kind {
	case model.ModeTimed:
		ratio = m.engine.Stats().ElapsedSeconds(m.engine.Now()) / float64(cfg.Mode.Seconds)
	case model.ModeWordCount:
		ratio = float64(m.engine.Committed()) / float64(cfg.Mode.Count)
	}
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

func (m *Model) viewEndScreen() string {
	res := m.result
	lines := []string{
		titleStyle.Render("Session complete"),
		"",
		fmt.Sprintf("Mode        %s", res.Config.Mode.Describe()),
		fmt.Sprintf("Elapsed     %.1fs", res.ElapsedSeconds),
		fmt.Sprintf("Net WPM     %.2f", res.NetWPM),
		fmt.Sprintf("Raw WPM     %.2f", res.RawWPM),
		fmt.Sprintf("Accuracy    %.1f%%", res.Accuracy*100),
		fmt.Sprintf("Consistency %.1f%%", res.Consistency*100),
		fmt.Sprintf("Errors      %d", res.Errors),
		fmt.Sprintf("Chars       %d", res.TotalChars),
	}
	if res.HasPreviousBest {
		lines = append(lines, fmt.Sprintf("Best so far %.2f", res.PreviousBest))
	}
	if res.NewHighscore {
		lines = append(lines, "", noticeStyle.Render("New highscore!"))
	}
	lines = append(lines, "", footerStyle.Render("press any key to exit"))
	content := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
