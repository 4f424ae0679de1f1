package cli

import (
	"errors"

	"github.com/benedict2310/anchorctl/pkg/anchor"
)

// Exit codes: 0 success, 1 runtime failure (I/O, journal, rendering),
// 2 bad invocation (flags, config values, selectors).
const (
	exitFailure = 1
	exitUsage   = 2
)

type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: exitUsage, Err: err}
}

// ExitCode maps err to the process exit code. Unusable scan targets count as
// bad invocations even when the command did not wrap them: they are caller
// input, never document state.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded *ExitError
	if errors.As(err, &coded) && coded.Code > 0 {
		return coded.Code
	}
	var target *anchor.TargetError
	if errors.As(err, &target) {
		return exitUsage
	}
	return exitFailure
}
