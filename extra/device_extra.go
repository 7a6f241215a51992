package extra

import (
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	adb "github.com/d1ced/adbexec"
)

type Process struct {
	User string
	Pid  int
	Name string
}

// ListProcesses return list of Process
func ListProcesses(d adb.ShellRunner) ([]Process, error) {
	// example output of command "ps":
	//     USER  PID  PPID  VSIZE  RSS  WCHAN     PC         NAME
	//     root    1     0    684  540  ffffffff  00000000 S /init
	//     root    2     0      0    0  ffffffff  00000000 S kthreadd
	// Since Android 8 "ps" only lists the processes of the shell, "ps -A" lists all.
	out, err := d.Shell("ps", "-A")
	if err != nil || len(out) <= 1 {
		out, err = d.Shell("ps")
	}
	if err != nil {
		return nil, err
	}
	return parseProcesses(out)
}

func parseProcesses(lines []string) ([]Process, error) {
	if len(lines) == 0 {
		return nil, errors.New("empty ps output")
	}

	fieldNames := strings.Fields(lines[0])
	pp := make([]Process, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		// The state column has no header on older versions.
		if len(fields) < len(fieldNames) {
			return nil, errors.Errorf("unexpected format: %q", line)
		}

		var process Process
		for index, name := range fieldNames {
			value := fields[index]
			switch strings.ToUpper(name) {
			case "PID":
				process.Pid, _ = strconv.Atoi(value)
			case "NAME":
				process.Name = fields[len(fields)-1]
			case "USER":
				process.User = value
			}
		}
		if process.Pid == 0 {
			continue
		}
		pp = append(pp, process)
	}
	return pp, nil
}

// KillProcessByName sends sig to every process called name.
func KillProcessByName(d adb.ShellRunner, name string, sig syscall.Signal) error {
	pp, err := ListProcesses(d)
	if err != nil {
		return err
	}
	for _, p := range pp {
		if p.Name != name {
			continue
		}
		_, err := d.Shell("kill", "-"+strconv.Itoa(int(sig)), strconv.Itoa(p.Pid))
		if err != nil {
			return errors.Wrapf(err, "kill %d", p.Pid)
		}
	}
	return nil
}

type PackageInfo struct {
	Name    string
	Path    string
	Version struct {
		Code int
		Name string
	}
}

var (
	rePkgPath = regexp.MustCompile(`codePath=([^\s]+)`)
	reVerCode = regexp.MustCompile(`versionCode=(\d+)`)
	reVerName = regexp.MustCompile(`versionName=([^\s]+)`)

	ErrPackageNotExist = errors.New("package does not exist")
)

// StatPackage returns PackageInfo
// If package not found, err will be ErrPackageNotExist
func StatPackage(d adb.ShellRunner, packageName string) (PackageInfo, error) {
	lines, err := d.Shell("dumpsys", "package", packageName)
	if err != nil {
		return PackageInfo{}, err
	}
	out := strings.Join(lines, "\n")

	matches := rePkgPath.FindStringSubmatch(out)
	if len(matches) == 0 {
		return PackageInfo{}, ErrPackageNotExist
	}
	var pi PackageInfo
	pi.Name = packageName
	pi.Path = matches[1]

	matches = reVerCode.FindStringSubmatch(out)
	if len(matches) == 0 {
		return PackageInfo{}, ErrPackageNotExist
	}
	pi.Version.Code, _ = strconv.Atoi(matches[1])

	matches = reVerName.FindStringSubmatch(out)
	if len(matches) == 0 {
		return PackageInfo{}, ErrPackageNotExist
	}
	pi.Version.Name = matches[1]

	return pi, nil
}
