// SPDX-License-Identifier: EPL-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/audloop/looper"
)

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	BarFillStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	LogStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimGray).
			Padding(0, 1)
)

// stateStyle returns the badge style for a transport state.
func stateStyle(s looper.State) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch s {
	case looper.Recording:
		return base.Foreground(ColorWhite).Background(ColorRed)
	case looper.Overdubbing:
		return base.Foreground(lipgloss.Color("#000000")).Background(ColorYellow)
	case looper.Playing:
		return base.Foreground(lipgloss.Color("#000000")).Background(ColorGreen)
	default:
		return base.Foreground(ColorWhite).Background(ColorDimGray)
	}
}
