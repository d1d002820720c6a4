// SPDX-License-Identifier: MIT

package main

import "github.com/charmbracelet/lipgloss"

// Palette for stderr summaries; results on stdout stay unstyled.
const (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorKey     = lipgloss.Color("#3B82F6")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorKey)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// summaryLine renders "key: value" for stderr.
func summaryLine(key string, value any) string {
	return KeyStyle.Render(key) + ": " + ValueStyle.Render(fmtValue(value))
}
