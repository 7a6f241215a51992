/*
Package adb is a Go package for driving the Android Debug Bridge (adb)
command-line tool.

A Client owns the path of the adb executable and the device it talks to.
Every method builds an argument vector, runs adb once and waits for it to
exit. Output is normalized into a Result: stdout split into trimmed,
non-blank lines, and stderr kept as text.

	client, err := adb.NewDefault()
	if err != nil {
		return err
	}
	serials, err := client.Devices()
	...
	err = client.SelectDevice(serials[0])
	out, err := client.Shell("getprop", "ro.build.version.sdk")

A Client is not safe for concurrent use.
*/
package adb

// Version of this package.
const Version = "1.0.0"
