package adb

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
)

// Sentinel error values used by this package
var (
	// No adb executable was configured.
	ErrPathNotSet = errors.New("adb path not set")
	// The configured path is missing or not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
	// adb could not be found in any of the usual places.
	ErrExecutableNotFound = errors.New("adb executable not found")
	// adb did not exit before the configured timeout.
	ErrTimeout = errors.New("timeout")
	// More than one device is known and none was selected.
	ErrTargetRequired = errors.New("must set target device first")
	// SelectDevice was called before the device list was read.
	ErrDevicesUnknown = errors.New("must get device list first")
	// The serial is not part of the known device list.
	ErrUnknownDevice = errors.New("unknown device")
	// adb reported that the selected device does not exist.
	ErrDeviceNotFound = errors.New("device not found")
	// A required argument is missing or malformed.
	ErrAssertionViolation = errors.New("assertion violation")
	// adb printed something we don't understand.
	ErrParsing = errors.New("parse error")

	ErrInvalidRebootMode = errors.New("mode must be RebootRecovery or RebootBootloader")
	ErrBinaryNotFound    = errors.New("binary not found")
	ErrWhichNotFound     = errors.New("which binary not found")
)

// ConfigurationError is returned when the adb executable can't be used.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("adb path %q: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Cause() error  { return e.Err }
func (e *ConfigurationError) Unwrap() error { return e.Err }

// ExecutionError is returned when adb could not be started or did not finish.
type ExecutionError struct {
	Args []string
	Err  error
}

func (e *ExecutionError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("exec adb: %v", e.Err)
	}
	return fmt.Sprintf("exec %s: %v", shellquote.Join(e.Args...), e.Err)
}

func (e *ExecutionError) Cause() error  { return e.Err }
func (e *ExecutionError) Unwrap() error { return e.Err }

// ParseError is returned when the output of adb has an unexpected shape.
type ParseError struct {
	Command string
	Output  []string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse output of %q: %v", e.Command, e.Err)
}

func (e *ParseError) Cause() error  { return e.Err }
func (e *ParseError) Unwrap() error { return e.Err }

// SelectionError is returned for a missing or invalid target device.
type SelectionError struct {
	Serial string
	Err    error
}

func (e *SelectionError) Error() string {
	if e.Serial == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("select %q: %v", e.Serial, e.Err)
}

func (e *SelectionError) Cause() error  { return e.Err }
func (e *SelectionError) Unwrap() error { return e.Err }

// ExitError is returned by the convenience methods when adb exits non-zero.
// Err is ErrDeviceNotFound if adb complained about a missing device, nil otherwise.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExitError) Unwrap() error { return e.Err }

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exit code %d", shellquote.Join(e.Args...), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}
