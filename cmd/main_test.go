package main

import (
	"testing"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears the values left behind by an earlier parse, kingpin
// only resets flags and args that have a default.
func resetFlags() {
	*adbPath, *serial, *timeout, *debug = "", "", 0, false
	*devicesLongFlag = false
	*shellCommandArg = nil
	*logcatFilterArg = nil
	*pullRemoteArg, *pullLocalArg = "", ""
	*forwardListFlag = false
	*forwardLocalArg, *forwardRemoteArg = "", ""
	*installLockFlag, *installReinstallFlag, *installSDCardFlag, *installProgressFlag = false, false, false, false
	*installFilesArg = nil
	*uninstallKeepFlag = false
	*uninstallPackageArg = ""
}

func TestParseCommandLine(t *testing.T) {
	t.Setenv("ADB", "")
	t.Setenv("ANDROID_SERIAL", "")
	t.Setenv("ADBEXEC_TIMEOUT", "")

	tests := []struct {
		name    string
		args    []string
		command string
		check   func(t *testing.T)
	}{{
		name:    "Version",
		args:    []string{"version"},
		command: "version",
		check: func(t *testing.T) {
			assert.Equal(t, "", *serial)
		},
	}, {
		name:    "GlobalFlags",
		args:    []string{"--adb", "/opt/adb", "--timeout", "5s", "--debug", "start-server"},
		command: "start-server",
		check: func(t *testing.T) {
			assert.Equal(t, "/opt/adb", *adbPath)
			assert.Equal(t, 5*time.Second, *timeout)
			assert.True(t, *debug)
		},
	}, {
		name:    "DevicesLong",
		args:    []string{"devices", "-l"},
		command: "devices",
		check: func(t *testing.T) {
			assert.True(t, *devicesLongFlag)
		},
	}, {
		name:    "SerialShell",
		args:    []string{"-s", "SERIAL", "shell", "ls"},
		command: "shell",
		check: func(t *testing.T) {
			assert.Equal(t, "SERIAL", *serial)
			assert.Equal(t, []string{"ls"}, *shellCommandArg)
		},
	}, {
		name:    "ShellDashArgs",
		args:    []string{"shell", "--", "ls", "-la", "/sdcard"},
		command: "shell",
		check: func(t *testing.T) {
			assert.Equal(t, "", *serial)
			assert.Equal(t, []string{"ls", "-la", "/sdcard"}, *shellCommandArg)
		},
	}, {
		name:    "Reboot",
		args:    []string{"reboot", "bootloader"},
		command: "reboot",
		check: func(t *testing.T) {
			assert.Equal(t, "bootloader", *rebootModeArg)
		},
	}, {
		name:    "Pull",
		args:    []string{"pull", "/sdcard/log.txt"},
		command: "pull",
		check: func(t *testing.T) {
			assert.Equal(t, "/sdcard/log.txt", *pullRemoteArg)
			assert.Equal(t, "", *pullLocalArg)
		},
	}, {
		name:    "ConnectDefaults",
		args:    []string{"connect"},
		command: "connect",
		check: func(t *testing.T) {
			assert.Equal(t, "localhost", *connectHostArg)
			assert.Equal(t, 5555, *connectPortArg)
		},
	}, {
		name:    "ForwardList",
		args:    []string{"forward", "--list"},
		command: "forward",
		check: func(t *testing.T) {
			assert.True(t, *forwardListFlag)
		},
	}, {
		name:    "Forward",
		args:    []string{"forward", "tcp:9222", "localabstract:chrome_devtools_remote"},
		command: "forward",
		check: func(t *testing.T) {
			assert.False(t, *forwardListFlag)
			assert.Equal(t, "tcp:9222", *forwardLocalArg)
			assert.Equal(t, "localabstract:chrome_devtools_remote", *forwardRemoteArg)
		},
	}, {
		name:    "Install",
		args:    []string{"install", "-l", "-r", "--sdcard", "-p", "a.apk", "b.apk"},
		command: "install",
		check: func(t *testing.T) {
			assert.True(t, *installLockFlag)
			assert.True(t, *installReinstallFlag)
			assert.True(t, *installSDCardFlag)
			assert.True(t, *installProgressFlag)
			assert.Equal(t, []string{"a.apk", "b.apk"}, *installFilesArg)
			assert.Equal(t, "", *serial)
		},
	}, {
		name:    "InstallWithSerial",
		args:    []string{"install", "-s", "emulator-5554", "a.apk"},
		command: "install",
		check: func(t *testing.T) {
			assert.Equal(t, "emulator-5554", *serial)
			assert.False(t, *installSDCardFlag)
			assert.Equal(t, []string{"a.apk"}, *installFilesArg)
		},
	}, {
		name:    "Uninstall",
		args:    []string{"uninstall", "-k", "com.example.app"},
		command: "uninstall",
		check: func(t *testing.T) {
			assert.True(t, *uninstallKeepFlag)
			assert.Equal(t, "com.example.app", *uninstallPackageArg)
		},
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resetFlags()
			command, err := kingpin.CommandLine.Parse(test.args)
			require.NoError(t, err)
			assert.Equal(t, test.command, command)
			test.check(t)
		})
	}
}

func TestParseSerialFromEnvironment(t *testing.T) {
	t.Setenv("ANDROID_SERIAL", "0123456789ABCDEF")
	resetFlags()

	command, err := kingpin.CommandLine.Parse([]string{"state"})
	require.NoError(t, err)
	assert.Equal(t, stateCommand.FullCommand(), command)
	assert.Equal(t, "0123456789ABCDEF", *serial)
}

func TestParseRejectsBadRebootMode(t *testing.T) {
	resetFlags()
	_, err := kingpin.CommandLine.Parse([]string{"reboot", "fastboot"})
	assert.Error(t, err)
}
