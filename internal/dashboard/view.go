package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rileyhilliard/cpubars/internal/refresh"
	"github.com/rileyhilliard/cpubars/internal/view"
)

const (
	coreLabelWidth  = 7
	defaultBarWidth = 30
	maxBarWidth     = 60
	minBarWidth     = 10
	// label + gap + padded value + margins
	rowChrome = coreLabelWidth + 1 + view.PaddedWidth + 4
)

// WaitingText is shown until the first frame arrives.
const WaitingText = "waiting for data"

func barWidth(termWidth int) int {
	w := termWidth - rowChrome
	if w > maxBarWidth {
		w = maxBarWidth
	}
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if !m.hasFrame {
		b.WriteString(WaitingStyle.Render(WaitingText))
	} else {
		b.WriteString(m.renderCores())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title, mode, core count and data age.
func (m Model) renderHeader() string {
	title := TitleStyle.Render("cpubars")

	parts := []string{m.mode.String()}
	if m.hasFrame {
		parts = append(parts,
			pluralCores(len(view.Cores(m.tree))),
			"updated "+m.age(),
		)
	}

	stats := StatsStyle.Render(" | " + strings.Join(parts, " | "))
	return HeaderStyle.Render(title + stats)
}

// age is the time since the displayed tree arrived, in words.
func (m Model) age() string {
	now := m.now()
	if now.Sub(m.updated) < tickInterval {
		return "just now"
	}
	return humanize.RelTime(m.updated, now, "ago", "from now")
}

func pluralCores(n int) string {
	if n == 1 {
		return "1 core"
	}
	return humanize.Comma(int64(n)) + " cores"
}

// renderCores renders one line per list item in the displayed tree.
func (m Model) renderCores() string {
	cores := view.Cores(m.tree)
	if len(cores) == 0 {
		return LabelStyle.Padding(0, 1).Render("no cores reported")
	}

	lines := make([]string, 0, len(cores))
	for _, c := range cores {
		lines = append(lines, m.renderCore(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderCore(c view.Core) string {
	label := CoreLabelStyle.Render(fmt.Sprintf("cpu%d", c.Index))
	load := displayedLoad(c.Text)

	if m.style == view.StylePlain {
		return " " + label + " " + ValueStyle.Render(c.Text)
	}

	return " " + label + " " + m.bar.ViewAs(barFraction(load)) + " " + MetricStyle(load).Render(c.Text)
}

// displayedLoad reads the number back out of the value text so the bar and
// color always agree with what is printed. Unparseable text counts as 0.
func displayedLoad(text string) float64 {
	s := strings.TrimLeft(text, string(view.PadRune))
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) {
		return 0
	}
	return x
}

// barFraction clamps a percentage to [0, 1] for bar geometry only.
func barFraction(percent float64) float64 {
	switch {
	case percent <= 0:
		return 0
	case percent >= 100:
		return 1
	default:
		return percent / 100
	}
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"? help",
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

func modeHint(mode refresh.Mode) string {
	if mode == refresh.ModePush {
		return "Live updates over WebSocket"
	}
	return fmt.Sprintf("Polling every %s", refresh.Interval)
}
