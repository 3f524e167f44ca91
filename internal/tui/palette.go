package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorInk    = lipgloss.Color("#E5E9F0")
	ColorDim    = lipgloss.Color("#7A8291")
	ColorAccent = lipgloss.Color("#7CFC00")
	ColorError  = lipgloss.Color("#BF616A")
	ColorWarn   = lipgloss.Color("#EBCB8B")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorInk)
	labelStyle  = lipgloss.NewStyle().Foreground(ColorInk)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorDim)
	keyStyle    = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	barStyle    = lipgloss.NewStyle().Foreground(ColorAccent)
	noticeStyle = lipgloss.NewStyle().Foreground(ColorWarn).Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFFFF")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)

	errorPanelStyle = panelStyle.BorderForeground(ColorError)
)
