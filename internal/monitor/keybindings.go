package monitor

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeyCollapse   = "esc"
	KeyToggleHelp = "?"
)

const footerHints = "q quit | r refresh | ? help"

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		if m.cancel != nil {
			m.cancel()
		}
		return true, tea.Quit

	case KeyRefresh:
		// same path as a resize: the loop stops waiting and redraws from scratch
		if m.flag != nil {
			m.flag.Refresh()
		}
		return true, nil
	}

	return false, nil
}
