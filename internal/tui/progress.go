package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"copycolors/internal/processor"
)

// pollInterval is how often the gauge reads the shared counter. Updates
// between two polls coalesce into one redraw.
const pollInterval = time.Second / 15

// ProgressModel draws a gauge for a running batch. It never talks to the
// workers directly; it only polls processor.Progress.
type ProgressModel struct {
	progress  *processor.Progress
	cancel    context.CancelFunc
	started   time.Time
	width     int
	snap      processor.Snapshot
	quitting  bool
	cancelled bool
}

type tickMsg time.Time

// NewProgressModel watches progress. cancel is called when the user quits
// before the batch is complete.
func NewProgressModel(progress *processor.Progress, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		progress: progress,
		cancel:   cancel,
		started:  time.Now(),
		snap:     progress.Snapshot(),
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.snap = m.progress.Snapshot()
		if m.snap.Percent >= 100 {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "esc", "ctrl+c":
			m.quitting = true
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

// Cancelled reports whether the user quit before the batch finished.
func (m ProgressModel) Cancelled() bool {
	return m.cancelled
}

func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render("Loading, please wait ..."),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.snap.Completed, m.snap.Total)) +
			dimStyle.Render(fmt.Sprintf("  %s", m.snap.Last)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(renderBar(barWidth, m.snap.Ratio())) + valueStyle.Render(fmt.Sprintf(" %d %%", m.snap.Percent)),
		dimStyle.Render("press q to stop"),
	}

	return strings.Join(lines, "\n")
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
