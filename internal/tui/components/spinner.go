package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/tvload/internal/tui"
)

// Spinner is an embeddable loading indicator that settles into a
// success or failure line when a SpinnerDoneMsg arrives.
type Spinner struct {
	spinner spinner.Model
	message string
	done    bool
	success bool
	result  string
	err     error
}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = tui.SpinnerStyle

	return Spinner{
		spinner: s,
		message: message,
	}
}

// Init implements tea.Model.
func (s Spinner) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update handles tick and completion messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerDoneMsg:
		s.done = true
		s.success = msg.Success
		s.result = msg.Result
		s.err = msg.Err
		return s, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View implements tea.Model.
func (s Spinner) View() string {
	if s.done {
		if s.success {
			return tui.SuccessStyle.Render(tui.SymbolCheck + " " + s.result)
		}
		return tui.ErrorStyle.Render(tui.SymbolCross + " " + s.err.Error())
	}
	return s.spinner.View() + " " + s.message
}

// SpinnerDoneMsg signals that the spinner operation is complete.
type SpinnerDoneMsg struct {
	Success bool
	Result  string
	Err     error
}

// SpinnerDone creates a success message.
func SpinnerDone(result string) SpinnerDoneMsg {
	return SpinnerDoneMsg{Success: true, Result: result}
}

// SpinnerFailed creates a failure message.
func SpinnerFailed(err error) SpinnerDoneMsg {
	return SpinnerDoneMsg{Success: false, Err: err}
}

// SetMessage updates the spinner message.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// IsDone returns true if the spinner is done.
func (s Spinner) IsDone() bool {
	return s.done
}

// IsSuccess returns true if the spinner completed successfully.
func (s Spinner) IsSuccess() bool {
	return s.success
}

// Result returns the success line shown when the operation completed.
func (s Spinner) Result() string {
	return s.result
}

// Error returns the error if the spinner failed.
func (s Spinner) Error() error {
	return s.err
}
