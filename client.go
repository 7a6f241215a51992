package adb

import (
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/d1ced/adbexec/wire"
)

const (
	// DefaultExecutableName is the name of the adb executable on the PATH.
	DefaultExecutableName = "adb"
	// DefaultTCPHost is used by Connect and Disconnect when no host is given.
	DefaultTCPHost = "localhost"
	// DefaultTCPPort is the port adbd listens on in TCP/IP mode.
	DefaultTCPPort = 5555
)

// Client runs the adb executable.
// Use New or NewDefault to create one.
type Client struct {
	path    string
	timeout time.Duration
	log     logrus.FieldLogger

	// nil until the device list was read.
	devices []string
	target  DeviceDescriptor
	last    *Result
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout kills adb if it runs longer than d. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger invocations are traced to at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewDefault creates a Client for the first adb executable found in $ADB,
// the Android SDK named by $ANDROID_SDK_ROOT or $ANDROID_HOME, or the PATH.
func NewDefault(opts ...Option) (*Client, error) {
	path, err := findExecutable()
	if err != nil {
		return nil, err
	}
	return New(path, opts...)
}

// New creates a Client for the adb executable at path.
func New(path string, opts ...Option) (*Client, error) {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.SetPath(path); err != nil {
		return nil, err
	}
	return c, nil
}

func findExecutable() (string, error) {
	name := DefaultExecutableName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	candidates := []string{os.Getenv("ADB")}
	for _, root := range []string{os.Getenv("ANDROID_SDK_ROOT"), os.Getenv("ANDROID_HOME")} {
		if root != "" {
			candidates = append(candidates, filepath.Join(root, "platform-tools", name))
		}
	}
	for _, candidate := range candidates {
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", &ConfigurationError{Path: name, Err: ErrExecutableNotFound}
	}
	return path, nil
}

// SetPath sets the adb executable. The path must name a regular file;
// whether it is executable is only found out by running it.
func (c *Client) SetPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ConfigurationError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &ConfigurationError{Path: path, Err: ErrNotRegularFile}
	}
	c.path = path
	return nil
}

// Path returns the adb executable in use.
func (c *Client) Path() string {
	return c.path
}

// LastResult returns the Result of the last invocation, or nil if it failed
// before adb exited.
func (c *Client) LastResult() *Result {
	return c.last
}

func (c *Client) logger() logrus.FieldLogger {
	if c.log == nil {
		return logrus.StandardLogger()
	}
	return c.log
}

// Version returns the version of the adb executable,
// e.g. "1.0.41" for "Android Debug Bridge version 1.0.41".
func (c *Client) Version() (string, error) {
	lines, err := c.output("version")
	if err != nil {
		return "", err
	}
	v, err := wire.ParseVersion(lines)
	if err != nil {
		return "", &ParseError{Command: "version", Output: lines, Err: err}
	}
	return v, nil
}

// CheckPath reports whether the configured executable answers "adb version".
func (c *Client) CheckPath() bool {
	v, err := c.Version()
	return err == nil && v != ""
}

// StartServer starts the adb server if it is not running.
func (c *Client) StartServer() ([]string, error) {
	return c.output("start-server")
}

// KillServer tells the server to quit immediately.
func (c *Client) KillServer() error {
	return c.call("kill-server")
}

// RestartServer kills and starts the server.
func (c *Client) RestartServer() ([]string, error) {
	if err := c.KillServer(); err != nil {
		return nil, err
	}
	return c.StartServer()
}

// Help returns the usage text of adb.
func (c *Client) Help() ([]string, error) {
	res, err := c.Run("help")
	if err != nil {
		return nil, err
	}
	// Older versions print the usage to stderr.
	if res.Output == nil {
		return wire.SplitLines([]byte(res.Error)), res.exitError()
	}
	return res.Output, res.exitError()
}

// Devices reads the serial numbers of all attached devices and remembers
// them as the known targets. With no device attached the result is empty.
func (c *Client) Devices() ([]string, error) {
	if _, err := c.listDevices(parseDeviceShort); err != nil {
		return nil, err
	}
	return c.devices, nil
}

// ListDevices is like Devices but returns the product, model and transport
// details reported by "adb devices -l".
func (c *Client) ListDevices() ([]DeviceInfo, error) {
	return c.listDevices(parseDeviceLong, "-l")
}

func (c *Client) listDevices(lineParseFunc func(string) (DeviceInfo, error), args ...string) ([]DeviceInfo, error) {
	c.devices = nil

	lines, err := c.output(devicesCommand, args...)
	if err != nil {
		return nil, err
	}
	deviceLines, err := wire.DeviceLines(lines)
	if err != nil {
		return nil, &ParseError{Command: devicesCommand, Output: lines, Err: err}
	}
	devices, err := parseDeviceList(deviceLines, lineParseFunc)
	if err != nil {
		return nil, &ParseError{Command: devicesCommand, Output: lines, Err: err}
	}

	serials := make([]string, len(devices))
	for i, dev := range devices {
		serials[i] = dev.Serial
	}
	c.devices = serials

	if serial := c.target.serial; serial != "" && !contains(serials, serial) {
		c.logger().WithField("serial", serial).Debug("Selected device is gone")
		c.target = AnyDevice
	}
	return devices, nil
}

// SelectDevice makes serial the target of all following commands.
// The serial must be part of the list read by Devices or ListDevices.
func (c *Client) SelectDevice(serial string) error {
	if c.devices == nil {
		return &SelectionError{Serial: serial, Err: ErrDevicesUnknown}
	}
	if !contains(c.devices, serial) {
		return &SelectionError{Serial: serial, Err: ErrUnknownDevice}
	}
	c.target = DeviceWithSerial(serial)
	return nil
}

// SelectUSB directs all following commands to the only USB device (adb -d).
func (c *Client) SelectUSB() {
	c.target = AnyUSBDevice
}

// SelectEmulator directs all following commands to the only emulator (adb -e).
func (c *Client) SelectEmulator() {
	c.target = AnyLocalDevice
}

// Target returns the serial of the selected device, or "" if none was selected.
func (c *Client) Target() string {
	return c.target.serial
}

// Descriptor returns how the target device is addressed.
func (c *Client) Descriptor() DeviceDescriptor {
	return c.target
}

// Restore restores device contents from a backup archive.
func (c *Client) Restore(file string) ([]string, error) {
	if isBlank(file) {
		return nil, errors.Wrap(ErrAssertionViolation, "backup file cannot be empty")
	}
	return c.output("restore", file)
}

// WaitForDevice blocks until the device is online.
func (c *Client) WaitForDevice() error {
	return c.call("wait-for-device")
}

// Connect connects to a device via TCP/IP. An empty host or a zero port
// fall back to DefaultTCPHost and DefaultTCPPort.
func (c *Client) Connect(host string, port int) ([]string, error) {
	return c.output("connect", tcpAddress(host, port))
}

// Disconnect disconnects from a TCP/IP device.
func (c *Client) Disconnect(host string, port int) ([]string, error) {
	return c.output("disconnect", tcpAddress(host, port))
}

func tcpAddress(host string, port int) string {
	if host == "" {
		host = DefaultTCPHost
	}
	if port <= 0 {
		port = DefaultTCPPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
