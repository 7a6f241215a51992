package adb

import "fmt"

// DeviceDescriptor selects the device adb talks to.
// The zero value is AnyDevice.
type DeviceDescriptor struct {
	descriptor uint8
	// Only set by DeviceWithSerial.
	serial string
}

const (
	device = iota
	usbDevice
	localDevice
	serialDevice
)

var (
	// AnyDevice passes no selection flag to adb.
	AnyDevice = DeviceDescriptor{device, ""}
	// AnyUSBDevice represents adb -d
	AnyUSBDevice = DeviceDescriptor{usbDevice, ""}
	// AnyLocalDevice represents adb -e
	AnyLocalDevice = DeviceDescriptor{localDevice, ""}
)

// DeviceWithSerial represents adb -s <serial>
func DeviceWithSerial(serial string) DeviceDescriptor {
	return DeviceDescriptor{serialDevice, serial}
}

func (d DeviceDescriptor) String() string {
	switch d.descriptor {
	case device:
		return "Device"
	case usbDevice:
		return "DeviceUSB"
	case localDevice:
		return "DeviceLocal"
	case serialDevice:
		return fmt.Sprintf("DeviceSerial[%s]", d.serial)
	default:
		return "<invalid DeviceDescriptor>"
	}
}

// args returns the global adb flags for the descriptor.
func (d DeviceDescriptor) args() []string {
	switch d.descriptor {
	case usbDevice:
		return []string{"-d"}
	case localDevice:
		return []string{"-e"}
	case serialDevice:
		return []string{"-s", d.serial}
	default:
		return nil
	}
}
