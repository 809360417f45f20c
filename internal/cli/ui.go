//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerDelay is how long an evaluation may run before a spinner appears.
const SpinnerDelay = 250 * time.Millisecond

// Spinner abstracts a terminal spinner so evaluation display can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts briandowns/spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

// NewSpinner returns a spinner drawing on w.
func NewSpinner(w io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w), spinner.WithHiddenCursor(true))
	return &realSpinner{s}
}

// RunWithSpinner runs fn and shows s while it runs, but only once fn has
// taken longer than delay, so fast evaluations never flicker. A nil s runs
// fn directly.
func RunWithSpinner(s Spinner, delay time.Duration, label string, fn func() error) error {
	if s == nil {
		return fn()
	}
	done := make(chan error, 1)
	go func() { done <- fn() }()

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
	}

	s.UpdateSuffix(" " + label)
	s.Start()
	err := <-done
	s.Stop()
	return err
}
