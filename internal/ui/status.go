package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Success prints a green check line.
func Success(w io.Writer, format string, args ...interface{}) {
	statusLine(w, SymbolSuccess, ColorSuccess, format, args...)
}

// Warn prints a yellow line for recoverable problems.
func Warn(w io.Writer, format string, args ...interface{}) {
	statusLine(w, SymbolSkipped, ColorWarning, format, args...)
}

// Info prints a muted informational line.
func Info(w io.Writer, format string, args ...interface{}) {
	statusLine(w, SymbolPending, ColorInfo, format, args...)
}

func statusLine(w io.Writer, symbol string, color lipgloss.Color, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", lipgloss.NewStyle().Foreground(color).Render(symbol), fmt.Sprintf(format, args...))
}
