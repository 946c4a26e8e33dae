package cli

import (
	"errors"

	"github.com/yaklabco/jrewrite/pkg/runner"
)

// Exit codes for jrewrite.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitRewriteFailed indicates that a file errored or its rewrite was
	// skipped.
	ExitRewriteFailed = 1

	// ExitChangesPending indicates changes that were not written, when
	// --fail-on-change is set.
	ExitChangesPending = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or script errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrRewriteFailed signals a run with failed or skipped files.
	ErrRewriteFailed = errors.New("rewrite failed")

	// ErrChangesPending signals changes left unwritten.
	ErrChangesPending = errors.New("changes pending")
)

// ExitError attaches an exit code to a command error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRewriteFailed):
		return ExitRewriteFailed
	case errors.Is(err, ErrChangesPending):
		return ExitChangesPending
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only carries an exit status and needs no
// log line.
func IsSignal(err error) bool {
	return errors.Is(err, ErrRewriteFailed) || errors.Is(err, ErrChangesPending)
}

// ExitCodeFromResult determines the exit code of a run.
func ExitCodeFromResult(result *runner.Result, written, failOnChange bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitRewriteFailed
	case failOnChange && !written && result.HasChanges():
		return ExitChangesPending
	default:
		return ExitSuccess
	}
}
