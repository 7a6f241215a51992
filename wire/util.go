package wire

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DeviceNotFoundMessagePattern matches all possible error messages printed by adb to
// report that a matching device was not found.
//
// Old servers send "device not found", and newer ones "device 'serial' not found".
var DeviceNotFoundMessagePattern = regexp.MustCompile(`device( '.*')? not found`)

// DevicesHeader starts the first line adb prints for "adb devices".
const DevicesHeader = "List of devices attached"

// ErrMissingHeader is returned when a device listing does not start with DevicesHeader.
var ErrMissingHeader = errors.New("device list header missing")

var transferPattern = regexp.MustCompile(`\((\d+) bytes in `)

// SplitLines decodes the captured output of adb. Every line is trimmed and
// blank lines are dropped. Returns nil if nothing is left.
func SplitLines(b []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// LastField returns the last whitespace separated token of line or "".
func LastField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// ParseVersion extracts the version token from the output of "adb version".
// The first line looks like "Android Debug Bridge version 1.0.41".
func ParseVersion(lines []string) (string, error) {
	if len(lines) == 0 {
		return "", errors.New("empty version output")
	}
	v := LastField(lines[0])
	if v == "" {
		return "", errors.Errorf("malformed version line: %q", lines[0])
	}
	return v, nil
}

// DeviceLines strips the header of a device listing and returns one line per device.
// Daemon notices ("* daemon not running; starting now at tcp:5037") may precede the
// header and are skipped.
func DeviceLines(lines []string) ([]string, error) {
	for i, line := range lines {
		if strings.HasPrefix(line, "*") {
			continue
		}
		if !strings.HasPrefix(line, DevicesHeader) {
			return nil, errors.Wrapf(ErrMissingHeader, "first line %q", line)
		}
		devices := make([]string, 0, len(lines)-i-1)
		for _, dev := range lines[i+1:] {
			if strings.HasPrefix(dev, "*") {
				continue
			}
			devices = append(devices, dev)
		}
		return devices, nil
	}
	return nil, ErrMissingHeader
}

// TransferBytes returns the byte count of a push/pull summary like
// "3712 KB/s (1234 bytes in 0.003s)", or -1 if none of the lines has one.
func TransferBytes(lines []string) int64 {
	for _, line := range lines {
		m := transferPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return -1
		}
		return n
	}
	return -1
}
