package cli

import (
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WithSpinner runs fn behind a progress spinner unless quiet output was
// requested. On failure the spinner line is replaced with a red marker;
// the error itself is left to the caller to report.
func WithSpinner(quiet bool, message string, fn func() error) error {
	if quiet {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message + "..."
	s.Start()

	err := fn()
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint(message+" failed") + "\n"
	}
	s.Stop()
	return err
}
