package adb

import (
	"github.com/d1ced/adbexec/wire"
)

// Result holds the normalized output of a single adb invocation.
type Result struct {
	// Args is the full argument vector, starting with the adb path.
	Args []string
	// ExitCode is -1 if adb was killed by a signal.
	ExitCode int
	// Output holds the trimmed, non-blank lines of stdout. nil if stdout was empty.
	Output []string
	// Error is the raw stderr text. Empty means adb wrote nothing to stderr.
	Error string
}

// Failed reports whether the invocation produced no output, some error text
// and a non-zero exit code.
func (r *Result) Failed() bool {
	return r.Output == nil && r.Error != "" && r.ExitCode != 0
}

// exitError returns an *ExitError if adb exited non-zero.
func (r *Result) exitError() error {
	if r.ExitCode == 0 {
		return nil
	}
	e := &ExitError{
		Args:     r.Args,
		ExitCode: r.ExitCode,
		Stderr:   r.Error,
	}
	if wire.DeviceNotFoundMessagePattern.MatchString(r.Error) {
		e.Err = ErrDeviceNotFound
	}
	return e
}
