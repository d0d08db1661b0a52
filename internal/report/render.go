package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avasek/smesim/internal/gridconv"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)
)

// Render formats a summary as a bordered terminal panel.
func Render(s Summary) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("strong convergence: %s", s.Scheme)))
	sb.WriteString("\n\n")

	row := func(label string, format string, v float64) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", label)))
		sb.WriteString(valueStyle.Render(fmt.Sprintf(format, v)))
		sb.WriteString("\n")
	}
	row("mean", "%.4f", s.Mean)
	row("std", "%.4f", s.Std)
	row("median", "%.4f", s.Median)
	row("min", "%.4f", s.Min)
	row("max", "%.4f", s.Max)

	sb.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", "batch")))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%d", s.Count)))
	if s.Failed > 0 {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("  (%d failed)", s.Failed)))
	}

	return panelStyle.Render(sb.String())
}

// RenderHistogram plots the rate distribution of a batch.
func RenderHistogram(results []gridconv.TrajectoryRate, bins int) string {
	hist := Histogram(results, bins)
	if hist == nil {
		return ""
	}
	return asciigraph.Plot(hist,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("rate distribution"),
	)
}
