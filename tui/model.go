// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/audloop/looper"
)

const (
	defaultTick = 50 * time.Millisecond
	logLines    = 8
	nudge       = 10 * time.Millisecond
	barWidth    = 40
)

// Model is the root bubbletea model of the looper controller.
type Model struct {
	ctrl   *looper.Controller
	rate   int
	tick   time.Duration
	onNote func(looper.Notification)

	status looper.Status
	stats  looper.Stats
	events []string
	errMsg string

	width    int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithTickInterval sets how often notifications are pumped.
func WithTickInterval(d time.Duration) Option {
	return func(m *Model) { m.tick = d }
}

// WithNotificationHook passes every serviced notification to fn as well.
func WithNotificationHook(fn func(looper.Notification)) Option {
	return func(m *Model) { m.onNote = fn }
}

// New returns a model controlling ctrl at the given session rate.
func New(ctrl *looper.Controller, sampleRate int, opts ...Option) Model {
	m := Model{ctrl: ctrl, rate: sampleRate, tick: defaultTick}
	for _, opt := range opts {
		opt(&m)
	}
	m.status = ctrl.Status()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		m.refresh()
		return m, m.tickCmd()
	}
	return m, nil
}

// refresh drains notifications and reloads the status and counters.
func (m *Model) refresh() {
	m.ctrl.Pump(func(n looper.Notification) {
		if line := m.describe(n); line != "" {
			m.events = append(m.events, line)
			if len(m.events) > logLines {
				m.events = m.events[len(m.events)-logLines:]
			}
		}
		if m.onNote != nil {
			m.onNote(n)
		}
	})
	m.status = m.ctrl.Status()
	m.stats = m.ctrl.Stats()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var sent bool
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		m.quitting = true
		m.ctrl.Stop()
		return m, tea.Quit

	case KeyCycle:
		sent = m.ctrl.Cycle()
	case KeyRecord:
		sent = m.ctrl.Record()
	case KeyMark:
		sent = m.ctrl.MarkLoop()
	case KeyOverdub:
		sent = m.ctrl.Overdub()
	case KeyPlay:
		sent = m.ctrl.Play()
	case KeyStop:
		sent = m.ctrl.Stop()

	case KeyShorten, KeyLengthen, KeyShiftLeft, KeyShiftRight:
		if !m.status.HasLoop {
			return m, nil
		}
		sent = m.ctrl.Send(m.nudged(msg.String()))

	default:
		return m, nil
	}

	if sent {
		m.errMsg = ""
	} else {
		m.errMsg = "command queue full, try again"
	}
	return m, nil
}

// nudged returns the region change for a nudge key. The engine rejects
// regions that fall outside the history, so no bounds are enforced here.
func (m Model) nudged(key string) looper.Message {
	r := m.status.Region
	d := m.ctrl.SamplesFor(nudge)
	switch key {
	case KeyShorten:
		r.End -= min(d, r.End)
	case KeyLengthen:
		r.End += d
	case KeyShiftLeft:
		d = min(d, r.Start)
		r.Start -= d
		r.End -= d
	case KeyShiftRight:
		r.Start += d
		r.End += d
	}
	return looper.SetLoopRegion(r.Start, r.End)
}

func (m Model) describe(n looper.Notification) string {
	at := m.seconds(n.SampleTime)
	switch n.Kind {
	case looper.StateChanged:
		return fmt.Sprintf("%s  %s → %s", at, n.From, n.To)
	case looper.LoopLengthResolved:
		return fmt.Sprintf("%s  loop %s (%d samples)", at, m.seconds(n.Length), n.Length)
	case looper.Rejected:
		return fmt.Sprintf("%s  rejected %s: %s", at, n.Msg.String(), n.Reason)
	case looper.CapacityExceeded:
		return fmt.Sprintf("%s  history full at %s", at, m.seconds(n.Size))
	}
	return ""
}

func (m Model) seconds(samples uint64) string {
	return fmt.Sprintf("%.2fs", looper.DurationOf(m.rate, samples).Seconds())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("audloop"))
	b.WriteString("  ")
	b.WriteString(stateStyle(m.status.State).Render(strings.ToUpper(m.status.State.String())))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if len(m.events) > 0 {
		b.WriteString(LogStyle.Render(strings.Join(m.events, "\n")))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderStatus() string {
	row := func(label, value string) string {
		return LabelStyle.Render(fmt.Sprintf("%-9s", label)) + ValueStyle.Render(value)
	}

	loop := "none"
	if m.status.HasLoop {
		r := m.status.Region
		loop = fmt.Sprintf("%s – %s (%s)", m.seconds(r.Start), m.seconds(r.End), m.seconds(r.Len()))
	}

	rows := []string{
		row("time", m.seconds(m.status.SampleTime)),
		row("history", m.seconds(m.status.Size)),
		row("loop", loop),
	}
	if m.status.HasLoop {
		rows = append(rows, row("", m.renderBar()))
	}
	if m.stats.NotificationsDropped > 0 || m.stats.SegmentsAllocated > 0 {
		rows = append(rows, row("warn", fmt.Sprintf("%d dropped, %d allocated on callback",
			m.stats.NotificationsDropped, m.stats.SegmentsAllocated)))
	}
	return PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderBar shows the playback position inside the loop region.
func (m Model) renderBar() string {
	r := m.status.Region
	filled := 0
	if n := r.Len(); n > 0 && m.status.Position >= r.Start {
		filled = int((m.status.Position - r.Start) * barWidth / n)
	}
	filled = min(filled, barWidth)
	return BarFillStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m Model) renderFooter() string {
	parts := make([]string, 0, len(help))
	for _, h := range help {
		parts = append(parts, FooterKeyStyle.Render(h.key)+" "+FooterDescStyle.Render(h.desc))
	}
	return strings.Join(parts, "  ")
}
