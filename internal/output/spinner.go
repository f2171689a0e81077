package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stdout and stderr are both terminals.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// RunWithSpinner executes an action with a spinner on a terminal, or
// directly otherwise. Returns the action's error if any.
func RunWithSpinner(ctx context.Context, title string, action func() error) error {
	if !IsTTY() {
		return action()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action()
	}()

	var actionErr error
	done := false
	spinnerErr := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() {
			select {
			case <-ctx.Done():
			case actionErr = <-errCh:
				done = true
			}
		}).
		Run()

	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	if !done {
		return ctx.Err()
	}
	return actionErr
}
