package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames animate the header while a cycle is probing.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// frameMsg carries a new frame from the loop.
type frameMsg Frame

// clearMsg asks the program to wipe the screen before the next frame.
type clearMsg struct{}

// stateMsg reports a loop state transition.
type stateMsg State

// Model is the Bubble Tea model for the dashboard. It only displays what the
// Loop sends it; probing and scheduling happen outside the program.
type Model struct {
	flag   *ResizeFlag
	cancel context.CancelFunc

	frame    Frame
	hasFrame bool
	sites    int

	width    int
	height   int
	state    State
	spinner  spinner.Model
	showHelp bool
	quitting bool
}

// NewModel creates a dashboard model. Window size changes and the refresh key
// are reported through flag; quitting calls cancel.
func NewModel(flag *ResizeFlag, cancel context.CancelFunc, sites int) Model {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		flag:    flag,
		cancel:  cancel,
		sites:   sites,
		state:   StateIdle,
		spinner: sp,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.flag != nil {
			m.flag.Set(msg.Width)
		}
		// re-lay out the last results right away; the loop will re-probe shortly
		if m.hasFrame {
			m.frame = m.frame.Resize(m.width, m.height)
		}

	case frameMsg:
		m.frame = Frame(msg)
		m.hasFrame = true
		if m.width > 0 && (m.frame.Header.Cols != m.width || m.frame.Header.Rows != m.height) {
			m.frame = m.frame.Resize(m.width, m.height)
		}

	case clearMsg:
		return m, tea.ClearScreen

	case stateMsg:
		m.state = State(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
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
	if !m.hasFrame {
		return fmt.Sprintf("%s %s", m.spinner.View(), HeaderInfoStyle.Render(fmt.Sprintf("checking %d sites...", m.sites)))
	}

	opts := ViewOptions{Footer: footerHints}
	if m.state == StateProbing {
		opts.Indicator = m.spinner.View()
	}
	return View(m.frame, opts)
}

// State returns the last loop state the model was told about.
func (m Model) State() State {
	return m.state
}

// TeaRenderer drives a Bubble Tea program as the loop's Renderer.
type TeaRenderer struct {
	program *tea.Program
}

// NewTeaRenderer wraps model in a program. Call Run to start it.
func NewTeaRenderer(model Model, opts ...tea.ProgramOption) *TeaRenderer {
	return &TeaRenderer{program: tea.NewProgram(model, opts...)}
}

// Run blocks until the program exits.
func (r *TeaRenderer) Run() error {
	_, err := r.program.Run()
	return err
}

// Quit stops the program.
func (r *TeaRenderer) Quit() {
	r.program.Quit()
}

// Clear schedules a full-screen clear.
func (r *TeaRenderer) Clear() {
	r.program.Send(clearMsg{})
}

// Render hands a frame to the program, which redraws at its own frame rate.
func (r *TeaRenderer) Render(f Frame) error {
	r.program.Send(frameMsg(f))
	return nil
}

// OnState forwards loop transitions so the header can show progress.
func (r *TeaRenderer) OnState(s State) {
	r.program.Send(stateMsg(s))
}
