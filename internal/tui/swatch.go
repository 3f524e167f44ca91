package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"copycolors/internal/colour"
)

const (
	defaultWidth  = 80
	canvasSpacing = 2
)

var textColors = []colour.Color{colour.Black, colour.White}

// Swatch renders the colour label on its own colour, in black or white
// depending on which reads better.
func Swatch(c colour.Color, rgb bool) string {
	fg := c.BestContrast(textColors)
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(c.Hex())).
		Render(c.Format(rgb))
}

// Inline renders every colour as a swatch, comma separated.
func Inline(colors []colour.Color, rgb bool) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = Swatch(c, rgb)
	}
	return strings.Join(parts, ",")
}

// Canvas draws one labelled square per colour, as many per row as fit in
// width. A short last row is centred.
func Canvas(colors []colour.Color, rgb bool, width int) string {
	if len(colors) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}

	side := 4
	if rgb {
		side = 8
	}
	cell := 2 * side
	perRow := width / (cell + canvasSpacing)
	if perRow < 1 {
		perRow = 1
	}
	if perRow > len(colors) {
		perRow = len(colors)
	}
	rowWidth := perRow * (cell + canvasSpacing)

	labelStyle := lipgloss.NewStyle().Bold(true).Width(cell)
	gap := lipgloss.NewStyle().MarginLeft(canvasSpacing)

	var rows []string
	for start := 0; start < len(colors); start += perRow {
		end := min(start+perRow, len(colors))

		blocks := make([]string, 0, end-start)
		for _, c := range colors[start:end] {
			square := lipgloss.NewStyle().
				Width(cell).
				Height(side).
				Background(lipgloss.Color(c.Hex())).
				Render("")
			block := lipgloss.JoinVertical(lipgloss.Left, "", labelStyle.Render(c.Format(rgb)), square)
			blocks = append(blocks, gap.Render(block))
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
		if end-start < perRow {
			row = lipgloss.PlaceHorizontal(rowWidth, lipgloss.Center, row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// TerminalWidth is the width of stdout, or 80 columns when stdout is not a
// terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
