package adb

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/d1ced/adbexec/wire"
)

// devicesCommand is the only subcommand allowed before a target is selected.
const devicesCommand = "devices"

// waitDelay bounds how long Run waits for stdout and stderr to close after
// adb was killed on timeout.
const waitDelay = time.Second

// Run runs adb with subcommand and args and waits for it to exit.
//
// The argument vector is the adb path, the flags selecting the target device
// (if one was selected), subcommand and args. No shell is involved.
//
// A non-zero exit code is not an error of Run, it is reported in the Result.
// Run fails with an *ExecutionError if no path is configured, adb can't be
// started or the timeout elapses; with a *SelectionError if more than one
// device is known and none was selected.
func (c *Client) Run(subcommand string, args ...string) (*Result, error) {
	c.last = nil

	if c.path == "" {
		return nil, &ExecutionError{Err: ErrPathNotSet}
	}
	if isBlank(subcommand) {
		return nil, errors.Wrap(ErrAssertionViolation, "subcommand cannot be empty")
	}
	if err := c.checkTarget(subcommand); err != nil {
		return nil, err
	}

	argv := c.buildArgs(subcommand, args)
	log := c.logger().WithField("cmd", shellquote.Join(argv...))
	log.Debug("Running adb")

	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.WaitDelay = waitDelay
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		log.WithField("timeout", c.timeout).Debug("adb timed out")
		return nil, &ExecutionError{Args: argv, Err: errors.Wrapf(ErrTimeout, "after %s", c.timeout)}
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, &ExecutionError{Args: argv, Err: err}
	}

	res := &Result{
		Args:     argv,
		ExitCode: cmd.ProcessState.ExitCode(),
		Output:   wire.SplitLines(stdout.Bytes()),
		Error:    stderr.String(),
	}
	c.last = res

	log.WithFields(logrus.Fields{
		"exitcode": res.ExitCode,
		"lines":    len(res.Output),
	}).Debug("adb finished")

	return res, nil
}

// output runs the subcommand and returns its output lines. A non-zero exit
// code is returned as *ExitError along with whatever adb printed.
func (c *Client) output(subcommand string, args ...string) ([]string, error) {
	res, err := c.Run(subcommand, args...)
	if err != nil {
		return nil, err
	}
	return res.Output, res.exitError()
}

// call runs the subcommand and discards its output.
func (c *Client) call(subcommand string, args ...string) error {
	_, err := c.output(subcommand, args...)
	return err
}

func (c *Client) checkTarget(subcommand string) error {
	if subcommand == devicesCommand {
		return nil
	}
	if len(c.devices) > 1 && c.target == AnyDevice {
		return &SelectionError{Err: ErrTargetRequired}
	}
	return nil
}

func (c *Client) buildArgs(subcommand string, args []string) []string {
	targetArgs := c.target.args()
	argv := make([]string, 0, 2+len(targetArgs)+len(args))
	argv = append(argv, c.path)
	argv = append(argv, targetArgs...)
	argv = append(argv, subcommand)
	return append(argv, args...)
}
