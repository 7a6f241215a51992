package adb

import (
	"strings"

	"github.com/pkg/errors"
)

type DeviceInfo struct {
	// Always set.
	Serial string
	State  DeviceState
	// Product, device, and model are not set in the short form.
	Product    string
	Model      string
	DeviceInfo string
	// Only set for devices connected via USB.
	USB         string
	TransportID string
}

func newDevice(serial, state string, attrs map[string]string) (DeviceInfo, error) {
	if serial == "" {
		return DeviceInfo{}, errors.Wrap(ErrAssertionViolation, "device serial cannot be blank")
	}
	return DeviceInfo{
		Serial:      serial,
		State:       parseDeviceState(state),
		Product:     attrs["product"],
		Model:       attrs["model"],
		DeviceInfo:  attrs["device"],
		USB:         attrs["usb"],
		TransportID: attrs["transport_id"],
	}, nil
}

// IsUSB returns true if the device is connected via USB.
func (d DeviceInfo) IsUSB() bool {
	return d.USB != ""
}

func parseDeviceList(lines []string, lineParseFunc func(string) (DeviceInfo, error)) ([]DeviceInfo, error) {
	devices := []DeviceInfo{}
	for _, line := range lines {
		device, err := lineParseFunc(line)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}
	return devices, nil
}

// parseDeviceShort parses a line of "adb devices": "<serial>\t<state>".
// Some states are more than one word ("no permissions (...)"). Only the
// serial is required, a missing state is StateInvalid.
func parseDeviceShort(line string) (DeviceInfo, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return DeviceInfo{}, errors.Wrap(ErrParsing, "malformed device line, no serial")
	}
	var state string
	if len(fields) > 1 {
		state = fields[1]
	}
	return newDevice(fields[0], state, map[string]string{})
}

// parseDeviceLong parses a line of "adb devices -l":
// "<serial> <state> [usb:<bus>] product:<p> model:<m> device:<d> transport_id:<n>".
// Unauthorized devices don't report product, model and device.
func parseDeviceLong(line string) (DeviceInfo, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return DeviceInfo{}, errors.Wrapf(ErrParsing,
			"malformed device line, expected at least 2 fields but found %d", len(fields))
	}

	attrs := parseDeviceAttributes(fields[2:])
	return newDevice(fields[0], fields[1], attrs)
}

func parseDeviceAttributes(fields []string) map[string]string {
	attrs := map[string]string{}
	for _, field := range fields {
		key, val := parseKeyVal(field)
		if key == "" {
			continue
		}
		attrs[key] = val
	}
	return attrs
}

// Parses a key:val pair and returns key, val.
func parseKeyVal(pair string) (string, string) {
	split := strings.SplitN(pair, ":", 2)
	if len(split) != 2 {
		return "", ""
	}
	return split[0], split[1]
}
