// Package dashboard is the terminal host for the per-core CPU view.
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: holds the most recently displayed View Tree, when it arrived,
//     the refresh mode and view style, and the terminal size
//   - Update: processes keystrokes, window resizes, clock ticks and frames
//   - View: renders the current tree to a string for display
//
// # Message Flow
//
// The refresh loop runs on its own goroutine and owns the network. On each
// successful refresh its sink builds a View Tree and hands it to the
// program as a FrameMsg (see Forward). Bubble Tea delivers messages one at
// a time, so frames replace each other in arrival order and a render never
// overlaps another. Failed refreshes never produce a frame; the previous
// tree stays on screen.
//
// A one second tickMsg only refreshes the "updated N ago" header.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	?           - Toggle help overlay
//	Esc         - Close help
package dashboard
