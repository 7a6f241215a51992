package adb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseDeviceList(t *testing.T) {
	devs, err := parseDeviceList([]string{
		"192.168.56.101:5555	device",
		"05856558	offline",
	}, parseDeviceShort)

	assert.NoError(t, err)
	assert.Len(t, devs, 2)
	assert.Equal(t, "192.168.56.101:5555", devs[0].Serial)
	assert.Equal(t, StateOnline, devs[0].State)
	assert.Equal(t, "05856558", devs[1].Serial)
	assert.Equal(t, StateOffline, devs[1].State)
}

func TestParseDevice(t *testing.T) {
	var tests = []struct {
		name      string
		parse     func(string) (DeviceInfo, error)
		parameter string
		want      DeviceInfo
	}{{
		name:      "Short",
		parse:     parseDeviceShort,
		parameter: "192.168.56.101:5555	device",
		want:      DeviceInfo{Serial: "192.168.56.101:5555", State: StateOnline},
	}, {
		name:      "NoPermissions",
		parse:     parseDeviceShort,
		parameter: "0123456789ABCDEF	no permissions (user in plugdev group; are your udev rules wrong?)",
		want:      DeviceInfo{Serial: "0123456789ABCDEF", State: StateInvalid},
	}, {
		name:      "Long",
		parse:     parseDeviceLong,
		parameter: "SERIAL    device product:PRODUCT model:MODEL device:DEVICE",
		want: DeviceInfo{
			Serial:     "SERIAL",
			State:      StateOnline,
			Product:    "PRODUCT",
			Model:      "MODEL",
			DeviceInfo: "DEVICE"},
	}, {
		name:      "LongUSB",
		parse:     parseDeviceLong,
		parameter: "SERIAL    device usb:1234 product:PRODUCT model:MODEL device:DEVICE transport_id:3",
		want: DeviceInfo{
			Serial:      "SERIAL",
			State:       StateOnline,
			Product:     "PRODUCT",
			Model:       "MODEL",
			DeviceInfo:  "DEVICE",
			USB:         "1234",
			TransportID: "3"},
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dev, err := test.parse(test.parameter)
			if err != nil {
				t.Errorf("got unexpected error: %v", err)
			}
			if dev != test.want {
				t.Errorf("want %+v, got %+v", test.want, dev)
			}
		})
	}
}

func TestParseDeviceSerialOnly(t *testing.T) {
	dev, err := parseDeviceShort("emulator-5554")
	assert.NoError(t, err)
	assert.Equal(t, DeviceInfo{Serial: "emulator-5554", State: StateInvalid}, dev)
}

func TestParseDeviceMalformed(t *testing.T) {
	_, err := parseDeviceShort("  ")
	assert.True(t, errors.Cause(err) == ErrParsing)
	_, err = parseDeviceLong("lonely")
	assert.True(t, errors.Cause(err) == ErrParsing)
}

func TestIsUSB(t *testing.T) {
	assert.True(t, DeviceInfo{USB: "1-1"}.IsUSB())
	assert.False(t, DeviceInfo{}.IsUSB())
}

func TestDeviceDescriptorArgs(t *testing.T) {
	var zero DeviceDescriptor
	assert.Equal(t, AnyDevice, zero)
	assert.Nil(t, AnyDevice.args())
	assert.Equal(t, []string{"-d"}, AnyUSBDevice.args())
	assert.Equal(t, []string{"-e"}, AnyLocalDevice.args())
	assert.Equal(t, []string{"-s", "abc"}, DeviceWithSerial("abc").args())
	assert.Equal(t, "DeviceSerial[abc]", DeviceWithSerial("abc").String())
}

func TestParseDeviceState(t *testing.T) {
	assert.Equal(t, StateOnline, parseDeviceState("device"))
	assert.Equal(t, StateUnauthorized, parseDeviceState("unauthorized"))
	assert.Equal(t, StateRecovery, parseDeviceState("recovery"))
	assert.Equal(t, StateInvalid, parseDeviceState("unknown"))
	assert.Equal(t, "StateOnline", StateOnline.String())
}
