package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication (ANSI codes for broad terminal support)
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// ColorMuted is used for details and timings.
const ColorMuted lipgloss.Color = "8" // Gray (bright black)

// GradientColors are cycled by the spinner: pink, purple, cyan, green.
var GradientColors = []lipgloss.Color{
	lipgloss.Color("#FF2E97"),
	lipgloss.Color("#BF40FF"),
	lipgloss.Color("#00FFFF"),
	lipgloss.Color("#39FF14"),
}
