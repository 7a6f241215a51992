package adb

var _ ShellRunner = (*Client)(nil)

// ShellRunner runs commands in a shell on the device.
// Client implements it; package extra builds on it.
type ShellRunner interface {
	Shell(cmd string, args ...string) ([]string, error)
}
