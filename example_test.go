// An app demonstrating most of the library's features.
package adb_test

import (
	"fmt"
	"time"

	adb "github.com/d1ced/adbexec"
)

func Example() {
	client, err := adb.NewDefault(adb.WithTimeout(time.Minute))
	if err != nil {
		fmt.Println(err)
		return
	}

	version, _ := client.Version()
	fmt.Println("adb version:", version)

	devices, _ := client.ListDevices()

	fmt.Println("Devices:")
	for _, device := range devices {
		fmt.Println(device.Serial, device.State, device.Model)
	}
	if len(devices) == 0 {
		return
	}

	if err := client.SelectDevice(devices[0].Serial); err != nil {
		fmt.Println(err)
		return
	}

	out, err := client.Shell("getprop", "ro.build.version.release")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Android", out)

	tr, err := client.Pull("/sdcard/Download/report.txt", "report.txt")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("pulled", tr.Bytes, "bytes")
}
