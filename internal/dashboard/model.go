package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/cpubars/internal/reading"
	"github.com/rileyhilliard/cpubars/internal/refresh"
	"github.com/rileyhilliard/cpubars/internal/view"
)

// FrameMsg carries a freshly built View Tree from the refresh sink.
type FrameMsg struct {
	Tree view.Node
	At   time.Time
}

// tickMsg refreshes the "updated N ago" header.
type tickMsg time.Time

// tickInterval is how often the header age is recomputed.
const tickInterval = time.Second

// Model is the Bubble Tea model for the CPU dashboard.
type Model struct {
	tree     view.Node
	hasFrame bool
	updated  time.Time

	mode  refresh.Mode
	style view.Style

	bar      progress.Model
	width    int
	height   int
	showHelp bool
	quitting bool

	now func() time.Time
}

// NewModel creates a dashboard that shows "waiting for data" until the
// first frame arrives.
func NewModel(mode refresh.Mode, style view.Style) Model {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(defaultBarWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(ColorBorder)

	return Model{
		mode:  mode,
		style: style,
		bar:   bar,
		now:   time.Now,
	}
}

// Init starts the header clock.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = barWidth(m.width)

	case tickMsg:
		return m, m.tickCmd()

	case FrameMsg:
		// Replace, never merge: the tree on screen is exactly the last one received.
		m.tree = msg.Tree
		m.updated = msg.At
		m.hasFrame = true
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Tree returns the View Tree currently displayed and whether one has
// arrived yet.
func (m Model) Tree() (view.Node, bool) {
	return m.tree, m.hasFrame
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Forward returns a refresh sink that builds the View Tree for each
// vector and hands it to send (normally tea.Program.Send). The build
// happens on the refresh goroutine; only the finished tree crosses over.
func Forward(send func(tea.Msg), style view.Style, now func() time.Time) refresh.Sink {
	if now == nil {
		now = time.Now
	}
	return func(v reading.Vector) {
		send(FrameMsg{Tree: view.Build(v, style), At: now()})
	}
}
