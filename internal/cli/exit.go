package cli

import (
	"errors"

	"github.com/vv-dsp/verify/internal/oracle"
)

// Process exit codes. ExitSkip follows the automake convention for a test
// whose prerequisites are absent.
const (
	ExitPass  = 0
	ExitFail  = 1
	ExitUsage = 2
	ExitSkip  = 77
)

// ExitError carries a resolved exit code out of a command's RunE so the
// entry point can distinguish validation failures and skips from usage
// errors.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// CodeFor maps a validation error to the exit code contract: nil passes,
// an unavailable subject skips, anything else is a validation failure.
func CodeFor(err error) int {
	switch {
	case err == nil:
		return ExitPass
	case errors.Is(err, oracle.ErrUnavailable):
		return ExitSkip
	default:
		return ExitFail
	}
}

// exitCode resolves the final process exit code from a root command
// execution. Errors not wrapped in ExitError come from argument parsing
// and report as usage errors.
func exitCode(err error) int {
	if err == nil {
		return ExitPass
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}
