// Package oracle invokes the subject vv-dsp dump tools and captures their
// output for comparison against the reference computations.
//
// The subject executables are opaque transform oracles reached only through
// process invocation and the line-oriented exchange protocol. Invocation is
// blocking and is never retried: a failing or flaky subject binary is
// exactly what the harness exists to report.
package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrUnavailable marks a subject tool that cannot be run at all (missing or
// not executable). Callers translate it into the distinguished skip exit
// code rather than a failure: a validation that cannot run has not failed.
var ErrUnavailable = errors.New("subject tool unavailable")

// ExecError reports a subject process that terminated with a non-zero exit
// status. Partial output must not be interpreted after such a failure.
type ExecError struct {
	Cmd      string
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", e.Cmd, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Invoke runs a subject executable to completion and returns its standard
// output split into ordered lines. Line order is the sample index and is
// preserved exactly. stdin may be nil when the tool reads from a file.
//
// There is deliberately no timeout: a hung subject stalls the run, matching
// the blocking contract of the harness. The context lets a caller impose
// cancellation without changing this API.
func Invoke(ctx context.Context, exe string, args []string, stdin []byte) ([]string, error) {
	cmd := exec.CommandContext(ctx, exe, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExecError{
				Cmd:      exe,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, exe, err)
	}

	return SplitLines(stdout.String()), nil
}

// SplitLines splits captured output on line boundaries, trimming trailing
// whitespace from the whole payload and carriage returns per line.
func SplitLines(s string) []string {
	s = strings.TrimRight(s, " \t\r\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, "\r")
	}
	return lines
}

// Probe checks that a subject tool exists and looks runnable. A probe
// failure means "dependency unavailable": the validation is skipped, not
// failed. Probing happens once, before any other work in a driver.
func Probe(exe string) error {
	if exe == "" {
		return fmt.Errorf("%w: no tool path given", ErrUnavailable)
	}
	info, err := os.Stat(exe)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, exe, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnavailable, exe)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrUnavailable, exe)
	}
	return nil
}
