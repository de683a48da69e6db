// Package watch implements the live sensor view: a table of classified
// readings refreshed on a timer, with a short value history per sensor.
package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/hwbench/internal/sensor"
	"github.com/rileyhilliard/hwbench/internal/ui"
)

// historyLen bounds the per-sensor value history used by sparklines.
const historyLen = 60

// SampleFunc fetches a fresh set of readings.
type SampleFunc func(ctx context.Context) ([]sensor.Reading, error)

type tickMsg time.Time

type readingsMsg struct {
	readings []sensor.Reading
	err      error
}

// Model is the bubbletea model for the live view.
type Model struct {
	sample   SampleFunc
	interval time.Duration

	spinner  spinner.Model
	readings []sensor.Reading
	history  map[string][]float64
	lastErr  error
	loaded   bool
	width    int
	quitting bool
}

// NewModel creates a live view refreshing at the given interval.
func NewModel(sample SampleFunc, interval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorInfo)

	return Model{
		sample:   sample,
		interval: interval,
		spinner:  sp,
		history:  make(map[string][]float64),
	}
}

// Init starts the first fetch, the refresh timer, and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick(), m.spinner.Tick)
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.interval)
		defer cancel()
		readings, err := m.sample(ctx)
		return readingsMsg{readings: readings, err: err}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())

	case readingsMsg:
		m.loaded = true
		m.lastErr = msg.err
		if msg.err == nil {
			m.readings = msg.readings
			m.recordHistory(msg.readings)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// recordHistory appends each reading's value to its bounded history.
func (m *Model) recordHistory(readings []sensor.Reading) {
	for _, r := range readings {
		h := append(m.history[r.Name], r.Value)
		if len(h) > historyLen {
			h = h[len(h)-historyLen:]
		}
		m.history[r.Name] = h
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(ui.ColorInfo).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	errStyle    = lipgloss.NewStyle().Foreground(ui.ColorError)
	critStyle   = lipgloss.NewStyle().Foreground(ui.ColorError).Bold(true)
)

// View renders the sensor table.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("hwbench watch"))
	b.WriteString("\n")

	if !m.loaded {
		b.WriteString(fmt.Sprintf("%s fetching sensors...\n", m.spinner.View()))
		return b.String()
	}
	if m.lastErr != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("fetch failed: %v", m.lastErr)))
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-32s %12s  %-16s %s", "SENSOR", "VALUE", "HISTORY", "MAX")))
	b.WriteString("\n")

	for _, r := range m.readings {
		value := fmt.Sprintf("%.2f %s", r.Value, r.Unit())
		if r.HasMax && r.Value > r.Max {
			value = critStyle.Render(value)
		}

		max := "—"
		threshold := 0.0
		if r.HasMax {
			max = fmt.Sprintf("%.0f %s", r.Max, r.Unit())
			threshold = r.Max
		}

		spark := ui.RenderSparkline(m.history[r.Name], 16, threshold)
		b.WriteString(fmt.Sprintf("%-32s %12s  %-16s %s\n", truncate(r.Name, 32), value, spark, max))
	}

	b.WriteString(headerStyle.Render("\nq to quit"))
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the live view and blocks until the user quits.
func Run(sample SampleFunc, interval time.Duration) error {
	p := tea.NewProgram(NewModel(sample, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
