package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"copycolors/internal/processor"
)

type SummaryRow struct {
	Label string
	Value string
}

// BatchRows lays out the end-of-batch counters for RenderSummary.
func BatchRows(s processor.Summary) []SummaryRow {
	return []SummaryRow{
		{Label: "Image files found", Value: fmt.Sprintf("%d", s.Total)},
		{Label: "Palettes extracted", Value: fmt.Sprintf("%d", s.Processed-s.Errors)},
		{Label: "Failed files", Value: fmt.Sprintf("%d", s.Errors)},
		{Label: "Elapsed", Value: s.Elapsed.Round(time.Millisecond).String()},
	}
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
