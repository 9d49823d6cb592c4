// Package monitor implements the live dashboard: the scheduling loop, resize
// detection, and the renderers that draw probe results in the terminal.
//
// # Architecture
//
// A Loop owns the schedule. Each cycle it asks a Prober (the probe pool) for
// results, reads the terminal size, computes a layout.Geometry, and hands a
// Frame to a Renderer. Between cycles it waits for the refresh interval in
// small steps, leaving early when a resize is flagged or the context ends.
//
//	Idle -> Probing -> Rendering -> Waiting -> Probing -> ... -> Cancelled
//
// # Key Components
//
//	Loop          - Cycle scheduler and state machine
//	ResizeFlag    - Atomic flag plus last width, shared with the resize watcher
//	Watch         - SIGWINCH subscription (size polling on Windows)
//	TerminalSize  - x/term size source with a 100x30 fallback
//	View          - Pure frame-to-string rendering with lipgloss
//	PlainRenderer - Writes frames to a stream, clearing between them
//	TeaRenderer   - Bubble Tea program wrapping Model
//
// # Bubble Tea Integration
//
// The Bubble Tea program only displays. The Loop runs in its own goroutine
// and sends frameMsg, clearMsg and stateMsg through TeaRenderer. In the other
// direction, Model turns tea.WindowSizeMsg and the r key into ResizeFlag sets,
// and q / Ctrl+C into a context cancel. On a size change the model re-lays out
// the last frame at once, then the loop re-probes and sends a fresh one.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Check again now
//	?           - Toggle help overlay
package monitor
