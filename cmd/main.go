package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin"
	"github.com/cheggaaa/pb"
	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"

	adb "github.com/d1ced/adbexec"
)

var (
	adbPath = kingpin.Flag("adb",
		"Path of the adb executable. Searched in the Android SDK and PATH if empty.").
		Envar("ADB").
		String()
	serial = kingpin.Flag("serial",
		"Connect to device by serial number.").
		Short('s').
		Envar("ANDROID_SERIAL").
		String()
	timeout = kingpin.Flag("timeout",
		"Kill adb if it runs longer than this.").
		Envar("ADBEXEC_TIMEOUT").
		Duration()
	debug = kingpin.Flag("debug",
		"Log every adb invocation.").
		Bool()

	versionCommand = kingpin.Command("version",
		"Show the version of the adb executable.")
	startServerCommand = kingpin.Command("start-server",
		"Ensure that there is a server running.")
	killServerCommand = kingpin.Command("kill-server",
		"Kill the server if it is running.")

	devicesCommand = kingpin.Command("devices",
		"List devices.")
	devicesLongFlag = devicesCommand.Flag("long",
		"Include extra detail about devices.").
		Short('l').
		Bool()

	stateCommand = kingpin.Command("state",
		"Print the device state.")
	serialnoCommand = kingpin.Command("serialno",
		"Print the device serial number.")

	rebootCommand = kingpin.Command("reboot",
		"Reboot the device into recovery or the bootloader.")
	rebootModeArg = rebootCommand.Arg("mode",
		"recovery or bootloader.").
		Required().
		Enum("recovery", "bootloader")

	rootCommand = kingpin.Command("root",
		"Restart adbd with root permissions.")
	remountCommand = kingpin.Command("remount",
		"Remount the system partitions read-write.")

	shellCommand = kingpin.Command("shell",
		"Run a shell command on the device.")
	shellCommandArg = shellCommand.Arg("command",
		"Command to run on device.").
		Strings()

	logcatCommand = kingpin.Command("logcat",
		"Dump the device log.")
	logcatFilterArg = logcatCommand.Arg("filter",
		"Filterspecs like ActivityManager:I *:S.").
		Strings()

	pullCommand = kingpin.Command("pull",
		"Pull a file from the device.")
	pullRemoteArg = pullCommand.Arg("remote",
		"Path of source file on device.").
		Required().
		String()
	pullLocalArg = pullCommand.Arg("local",
		"Path of destination file.").
		String()

	pushCommand = kingpin.Command("push",
		"Push a file to the device.")
	pushLocalArg = pushCommand.Arg("local",
		"Path of source file.").
		Required().
		String()
	pushRemoteArg = pushCommand.Arg("remote",
		"Path of destination file on device.").
		Required().
		String()

	connectCommand = kingpin.Command("connect",
		"Connect to a device via TCP/IP.")
	connectHostArg = connectCommand.Arg("host",
		"Host of the device.").
		Default(adb.DefaultTCPHost).
		String()
	connectPortArg = connectCommand.Arg("port",
		"Port adbd listens on.").
		Default("5555").
		Int()

	disconnectCommand = kingpin.Command("disconnect",
		"Disconnect from a TCP/IP device.")
	disconnectHostArg = disconnectCommand.Arg("host",
		"Host of the device.").
		Default(adb.DefaultTCPHost).
		String()
	disconnectPortArg = disconnectCommand.Arg("port",
		"Port adbd listens on.").
		Default("5555").
		Int()

	tcpipCommand = kingpin.Command("tcpip",
		"Restart adbd listening on TCP.")
	tcpipPortArg = tcpipCommand.Arg("port",
		"Port to listen on.").
		Default("5555").
		Int()

	forwardCommand = kingpin.Command("forward",
		"Forward socket connections.")
	forwardListFlag = forwardCommand.Flag("list",
		"List forwards").
		Short('l').
		Bool()
	forwardLocalArg = forwardCommand.Arg("local",
		"Local endpoint, e.g. tcp:8080.").
		String()
	forwardRemoteArg = forwardCommand.Arg("remote",
		"Remote endpoint, e.g. localabstract:chrome_devtools_remote.").
		String()

	installCommand = kingpin.Command("install",
		"Push packages to the device and install them.")
	installLockFlag = installCommand.Flag("lock",
		"Forward-lock the app.").
		Short('l').
		Bool()
	installReinstallFlag = installCommand.Flag("reinstall",
		"Replace an existing app, keeping its data.").
		Short('r').
		Bool()
	installSDCardFlag = installCommand.Flag("sdcard",
		"Install on the sdcard.").
		Bool()
	installProgressFlag = installCommand.Flag("progress",
		"Show progress.").
		Short('p').
		Bool()
	installFilesArg = installCommand.Arg("apk",
		"Package files.").
		Required().
		Strings()

	uninstallCommand = kingpin.Command("uninstall",
		"Remove an app from the device.")
	uninstallKeepFlag = uninstallCommand.Flag("keep",
		"Keep the data and cache directories.").
		Short('k').
		Bool()
	uninstallPackageArg = uninstallCommand.Arg("package",
		"Package name.").
		Required().
		String()

	whichCommand = kingpin.Command("which",
		"Find a binary on the device.")
	whichNameArg = whichCommand.Arg("name",
		"Binary name.").
		Required().
		String()
)

var client *adb.Client

func main() {
	kingpin.Version(adb.Version)
	cmd := kingpin.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	var err error
	opts := []adb.Option{adb.WithLogger(log), adb.WithTimeout(*timeout)}
	if *adbPath != "" {
		client, err = adb.New(*adbPath, opts...)
	} else {
		client, err = adb.NewDefault(opts...)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if *serial != "" && cmd != devicesCommand.FullCommand() {
		if err := selectDevice(*serial); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	var exitCode int
	switch cmd {
	case versionCommand.FullCommand():
		exitCode = printResult(wrap(client.Version()))
	case startServerCommand.FullCommand():
		exitCode = printLines(client.StartServer())
	case killServerCommand.FullCommand():
		exitCode = printLines(nil, client.KillServer())
	case devicesCommand.FullCommand():
		exitCode = listDevices(*devicesLongFlag)
	case stateCommand.FullCommand():
		state, err := client.State()
		exitCode = printResult([]string{strings.TrimPrefix(state.String(), "State")}, err)
	case serialnoCommand.FullCommand():
		exitCode = printResult(wrap(client.SerialNo()))
	case rebootCommand.FullCommand():
		mode := adb.RebootRecovery
		if *rebootModeArg == "bootloader" {
			mode = adb.RebootBootloader
		}
		exitCode = printLines(client.Reboot(mode))
	case rootCommand.FullCommand():
		exitCode = printLines(client.Root())
	case remountCommand.FullCommand():
		exitCode = printLines(client.Remount())
	case shellCommand.FullCommand():
		exitCode = runShellCommand(*shellCommandArg)
	case logcatCommand.FullCommand():
		exitCode = printLines(client.Logcat(shellquote.Join(*logcatFilterArg...)))
	case pullCommand.FullCommand():
		exitCode = printTransfer(client.Pull(*pullRemoteArg, *pullLocalArg))
	case pushCommand.FullCommand():
		exitCode = printTransfer(client.Push(*pushLocalArg, *pushRemoteArg))
	case connectCommand.FullCommand():
		exitCode = printLines(client.Connect(*connectHostArg, *connectPortArg))
	case disconnectCommand.FullCommand():
		exitCode = printLines(client.Disconnect(*disconnectHostArg, *disconnectPortArg))
	case tcpipCommand.FullCommand():
		exitCode = printLines(client.TCPIP(*tcpipPortArg))
	case forwardCommand.FullCommand():
		exitCode = forward(*forwardListFlag, *forwardLocalArg, *forwardRemoteArg)
	case installCommand.FullCommand():
		opts := adb.InstallOptions{
			ForwardLock: *installLockFlag,
			Reinstall:   *installReinstallFlag,
			SDCard:      *installSDCardFlag,
		}
		exitCode = install(*installFilesArg, opts, *installProgressFlag)
	case uninstallCommand.FullCommand():
		exitCode = printLines(client.Uninstall(*uninstallPackageArg, *uninstallKeepFlag))
	case whichCommand.FullCommand():
		exitCode = printResult(wrap(client.FindBinary(*whichNameArg)))
	}

	os.Exit(exitCode)
}

// selectDevice reads the device list so the serial can be checked against it.
func selectDevice(serial string) error {
	if _, err := client.Devices(); err != nil {
		return err
	}
	return client.SelectDevice(serial)
}

func wrap(s string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func printResult(lines []string, err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return 0
}

// printLines prints output even if adb failed, it usually explains why.
func printLines(lines []string, err error) int {
	for _, line := range lines {
		fmt.Println(line)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func printTransfer(tr adb.Transfer, err error) int {
	if code := printLines(tr.Output, err); code != 0 {
		return code
	}
	if tr.Bytes >= 0 {
		fmt.Fprintf(os.Stderr, "%d bytes\n", tr.Bytes)
	}
	return 0
}

func listDevices(long bool) int {
	if !long {
		serials, err := client.Devices()
		return printResult(serials, err)
	}

	devices, err := client.ListDevices()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	for _, device := range devices {
		if !device.IsUSB() {
			fmt.Printf("%s\t%s product:%s model:%s device:%s\n",
				device.Serial, device.State, device.Product, device.Model, device.DeviceInfo)
		} else {
			fmt.Printf("%s\t%s usb:%s product:%s model:%s device:%s\n",
				device.Serial, device.State, device.USB, device.Product, device.Model, device.DeviceInfo)
		}
	}
	return 0
}

func runShellCommand(commandAndArgs []string) int {
	if len(commandAndArgs) == 0 {
		fmt.Fprintln(os.Stderr, "error: no command")
		kingpin.Usage()
		return 1
	}

	// adb hands a single string to the remote shell, keep the words as typed.
	return printLines(client.Shell(shellquote.Join(commandAndArgs...)))
}

func forward(listForwards bool, local, remote string) int {
	if listForwards {
		fws, err := client.ForwardList()
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		for _, fw := range fws {
			fmt.Printf("%v %v %v\n", fw.Serial, fw.Local, fw.Remote)
		}
		return 0
	}

	l, err := adb.ParseForwardSpec(local)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: local:", err)
		kingpin.Usage()
		return 1
	}
	r, err := adb.ParseForwardSpec(remote)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: remote:", err)
		kingpin.Usage()
		return 1
	}
	return printLines(nil, client.Forward(l, r))
}

// install installs the packages one after the other.
// If showProgress is true and there is more than one, a progress bar is shown on stderr.
func install(files []string, opts adb.InstallOptions, showProgress bool) int {
	var progress *pb.ProgressBar
	if showProgress && len(files) > 1 {
		progress = pb.New(len(files))
		progress.Output = os.Stderr
		progress.ShowPercent = true
		progress.ShowTimeLeft = true
		progress.Start()
	}

	failed := 0
	for _, file := range files {
		out, err := client.Install(file, opts)
		if progress != nil {
			progress.Increment()
		}
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "error installing %s: %s\n", file, err)
			continue
		}
		if progress == nil {
			for _, line := range out {
				fmt.Println(line)
			}
		}
	}

	if progress != nil {
		progress.FinishPrint(fmt.Sprintf("%d of %d installed", len(files)-failed, len(files)))
	}
	if failed > 0 {
		return 1
	}
	return 0
}
