package adb

// DeviceState represents one of the states adb will report devices in.
// A device can be communicated with when it's in StateOnline.
// A USB device will make the following state transitions:
//
//	Plugged in: StateDisconnected->StateOffline->StateOnline
//	Unplugged:  StateOnline->StateDisconnected
type DeviceState uint8

const (
	StateInvalid DeviceState = iota
	StateUnauthorized
	StateDisconnected
	StateOffline
	StateOnline
	StateBootloader
	StateRecovery
	StateSideload
)

var deviceStateStrings = map[string]DeviceState{
	"":             StateDisconnected,
	"offline":      StateOffline,
	"device":       StateOnline,
	"unauthorized": StateUnauthorized,
	"bootloader":   StateBootloader,
	"recovery":     StateRecovery,
	"sideload":     StateSideload,
}

func parseDeviceState(str string) DeviceState {
	return deviceStateStrings[str]
}

func (s DeviceState) String() string {
	switch s {
	case StateUnauthorized:
		return "StateUnauthorized"
	case StateDisconnected:
		return "StateDisconnected"
	case StateOffline:
		return "StateOffline"
	case StateOnline:
		return "StateOnline"
	case StateBootloader:
		return "StateBootloader"
	case StateRecovery:
		return "StateRecovery"
	case StateSideload:
		return "StateSideload"
	default:
		return "StateInvalid"
	}
}
