package main

import (
	"fmt"
	"strings"

	batch "Ductwork/internal/calc/batch"
	duct "Ductwork/internal/calc/duct"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorDanger  = lipgloss.Color("#FF6B6B")
	colorSuccess = lipgloss.Color("#6BCF7F")
	colorMuted   = lipgloss.Color("#6C757D")
	colorBorder  = lipgloss.Color("#4A90E2")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	errorPaneStyle = paneStyle.
			BorderForeground(colorDanger)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	unitStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)
)

// renderResult draws one duct's entries as an aligned three-column table.
func renderResult(res duct.Result) string {
	title := res.Name
	if title == "" {
		title = "Duct"
	}

	if res.Entries.Failed() {
		body := errorStyle.Render(duct.ErrorLabel+":") + " " + res.Entries[0].Value
		return errorPaneStyle.Render(titleStyle.Render(title) + "\n" + body)
	}

	labelWidth, valueWidth := 0, 0
	for _, e := range res.Entries {
		labelWidth = max(labelWidth, lipgloss.Width(e.Label))
		valueWidth = max(valueWidth, lipgloss.Width(e.Value))
	}

	rows := make([]string, 0, len(res.Entries)+1)
	rows = append(rows, titleStyle.Render(title))
	for _, e := range res.Entries {
		label := labelStyle.Width(labelWidth).Render(e.Label)
		value := lipgloss.NewStyle().Width(valueWidth).Align(lipgloss.Right).Render(e.Value)
		rows = append(rows, strings.TrimRight(label+"  "+value+" "+unitStyle.Render(e.Unit), " "))
	}
	return paneStyle.Render(strings.Join(rows, "\n"))
}

func renderSummary(res batch.Result) string {
	ok := res.Count - res.Failed
	line := successStyle.Render(fmt.Sprintf("%d ok", ok))
	if res.Failed > 0 {
		line += ", " + errorStyle.Render(fmt.Sprintf("%d failed", res.Failed))
	}
	return fmt.Sprintf("%d ducts: %s", res.Count, line)
}
