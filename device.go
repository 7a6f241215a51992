package adb

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"

	"github.com/d1ced/adbexec/wire"
)

// RebootMode selects what the device reboots into.
type RebootMode int

const (
	RebootRecovery RebootMode = iota + 1
	RebootBootloader
)

func (m RebootMode) String() string {
	switch m {
	case RebootRecovery:
		return "recovery"
	case RebootBootloader:
		return "bootloader"
	default:
		return "RebootMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// transferMarker is part of the summary old adb versions print to stderr
// after a successful push or pull.
const transferMarker = "bytes in"

// Transfer is the outcome of Push or Pull.
type Transfer struct {
	Output []string
	// Bytes is -1 if adb didn't report the amount transferred.
	Bytes int64
}

// State returns the state of the target device.
func (c *Client) State() (DeviceState, error) {
	lines, err := c.output("get-state")
	if err != nil {
		return StateInvalid, errors.WithMessage(err, "State")
	}
	if len(lines) == 0 {
		return StateInvalid, &ParseError{Command: "get-state", Err: ErrParsing}
	}
	return parseDeviceState(lines[0]), nil
}

// SerialNo returns the serial number of the target device.
func (c *Client) SerialNo() (string, error) {
	return c.attribute("get-serialno")
}

// DevPath returns the device path of the target device.
func (c *Client) DevPath() (string, error) {
	return c.attribute("get-devpath")
}

// attribute returns the first line printed by a get-* subcommand.
func (c *Client) attribute(subcommand string) (string, error) {
	lines, err := c.output(subcommand)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", &ParseError{Command: subcommand, Err: ErrParsing}
	}
	return lines[0], nil
}

// Reboot reboots the target device into recovery or the bootloader.
func (c *Client) Reboot(mode RebootMode) ([]string, error) {
	if mode != RebootRecovery && mode != RebootBootloader {
		return nil, errors.Wrapf(ErrInvalidRebootMode, "got %s", mode)
	}
	return c.output("reboot", mode.String())
}

// Root restarts adbd with root permissions.
func (c *Client) Root() ([]string, error) {
	return c.output("root")
}

/*
Remount, from the official adb command’s docs:

	Ask adbd to remount the device's filesystem in read-write mode,
	instead of read-only. This is usually necessary before performing
	an "adb sync" or "adb push" request.
	This request may not succeed on certain builds which do not allow
	that.
*/
func (c *Client) Remount() ([]string, error) {
	return c.output("remount")
}

// Pull copies remote from the device to local. If local is empty adb
// writes into the current directory.
func (c *Client) Pull(remote, local string) (Transfer, error) {
	if isBlank(remote) {
		return Transfer{Bytes: -1}, errors.Wrap(ErrAssertionViolation, "remote path cannot be empty")
	}
	args := []string{remote}
	if local != "" {
		args = append(args, local)
	}
	return c.transfer("pull", args...)
}

// Push copies local to remote on the device.
func (c *Client) Push(local, remote string) (Transfer, error) {
	if isBlank(local) || isBlank(remote) {
		return Transfer{Bytes: -1}, errors.Wrap(ErrAssertionViolation, "local and remote path are required")
	}
	return c.transfer("push", local, remote)
}

// transfer runs push or pull. Old adb versions report success on stderr,
// "1234 KB/s (5678 bytes in 0.004s)"; such a message is the output, not an error.
func (c *Client) transfer(subcommand string, args ...string) (Transfer, error) {
	res, err := c.Run(subcommand, args...)
	if err != nil {
		return Transfer{Bytes: -1}, err
	}
	if strings.Contains(res.Error, transferMarker) {
		res.Output = wire.SplitLines([]byte(res.Error))
		res.Error = ""
		return Transfer{Output: res.Output, Bytes: wire.TransferBytes(res.Output)}, nil
	}
	if err := res.exitError(); err != nil {
		return Transfer{Output: res.Output, Bytes: -1}, err
	}
	return Transfer{Output: res.Output, Bytes: wire.TransferBytes(res.Output)}, nil
}

// Shell runs cmd with args in a shell on the device.
// adb joins the arguments with spaces, quote them as the remote shell expects.
func (c *Client) Shell(cmd string, args ...string) ([]string, error) {
	if isBlank(cmd) {
		return nil, errors.Wrap(ErrAssertionViolation, "command cannot be empty")
	}
	return c.output("shell", append([]string{cmd}, args...)...)
}

// USB restarts adbd listening on USB.
func (c *Client) USB() ([]string, error) {
	return c.output("usb")
}

// TCPIP restarts adbd listening on TCP port. Zero means DefaultTCPPort.
func (c *Client) TCPIP(port int) ([]string, error) {
	if port <= 0 {
		port = DefaultTCPPort
	}
	return c.output("tcpip", strconv.Itoa(port))
}

// BugReport returns everything the device includes in a bug report.
func (c *Client) BugReport() ([]string, error) {
	return c.output("bugreport")
}

// JDWP lists the pids of processes hosting a JDWP transport.
func (c *Client) JDWP() ([]int, error) {
	lines, err := c.output("jdwp")
	if err != nil {
		return nil, err
	}
	pids := make([]int, 0, len(lines))
	for _, line := range lines {
		pid, err := strconv.Atoi(line)
		if err != nil {
			return nil, &ParseError{Command: "jdwp", Output: lines, Err: errors.Wrapf(ErrParsing, "pid %q", line)}
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// Logcat dumps the device log. filter holds space separated filterspecs
// like "ActivityManager:I *:S", or logcat flags.
func (c *Client) Logcat(filter string) ([]string, error) {
	args, err := splitArgs(filter)
	if err != nil {
		return nil, err
	}
	return c.output("logcat", args...)
}

// Emu runs an emulator console command, e.g. "kill".
func (c *Client) Emu(cmd string) ([]string, error) {
	args, err := splitArgs(cmd)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, errors.Wrap(ErrAssertionViolation, "emulator command cannot be empty")
	}
	return c.output("emu", args...)
}

func splitArgs(s string) ([]string, error) {
	args, err := shellquote.Split(s)
	if err != nil {
		return nil, errors.Wrapf(ErrAssertionViolation, "%q: %v", s, err)
	}
	return args, nil
}

// PPP runs PPP over USB on tty.
func (c *Client) PPP(tty string, params ...string) ([]string, error) {
	if isBlank(tty) {
		return nil, errors.Wrap(ErrAssertionViolation, "tty cannot be empty")
	}
	return c.output("ppp", append([]string{tty}, params...)...)
}

// Sync copies host to device only if changed. dir is one of "system",
// "vendor", "oem", "data" or "all"; empty syncs everything.
func (c *Client) Sync(dir string) ([]string, error) {
	if dir == "" {
		return c.output("sync")
	}
	return c.output("sync", dir)
}

// InstallOptions map to the flags of "adb install".
type InstallOptions struct {
	// ForwardLock forward-locks the app (-l).
	ForwardLock bool
	// Reinstall keeps the app's data (-r).
	Reinstall bool
	// SDCard installs on the sdcard instead of internal storage (-s).
	SDCard bool
}

func (o InstallOptions) args() []string {
	var args []string
	if o.ForwardLock {
		args = append(args, "-l")
	}
	if o.Reinstall {
		args = append(args, "-r")
	}
	if o.SDCard {
		args = append(args, "-s")
	}
	return args
}

// Install pushes the package file to the device and installs it.
func (c *Client) Install(file string, opts InstallOptions) ([]string, error) {
	if isBlank(file) {
		return nil, errors.Wrap(ErrAssertionViolation, "package file cannot be empty")
	}
	return c.output("install", append(opts.args(), file)...)
}

// Uninstall removes the package from the device. With keepData the data
// and cache directories are kept (-k).
func (c *Client) Uninstall(pkg string, keepData bool) ([]string, error) {
	if isBlank(pkg) {
		return nil, errors.Wrap(ErrAssertionViolation, "package cannot be empty")
	}
	args := []string{pkg}
	if keepData {
		args = []string{"-k", pkg}
	}
	return c.output("uninstall", args...)
}

// FindBinary returns the path of the named binary on the device.
func (c *Client) FindBinary(name string) (string, error) {
	if isBlank(name) {
		return "", errors.Wrap(ErrAssertionViolation, "binary name cannot be empty")
	}
	res, err := c.Run("shell", "which", name)
	if err != nil {
		return "", err
	}
	if len(res.Output) == 0 {
		return "", errors.Wrapf(ErrBinaryNotFound, "%q", name)
	}
	if strings.HasSuffix(res.Output[0], "which: not found") {
		return "", ErrWhichNotFound
	}
	return res.Output[0], nil
}
