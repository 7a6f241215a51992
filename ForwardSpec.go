package adb

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ForwardSpec protocols
const (
	FProtocolTCP        = "tcp"
	FProtocolLocal      = "local"
	FProtocolJDWP       = "jdwp"
	FProtocolAbstract   = "localabstract"
	FProtocolReserved   = "localreserved"
	FProtocolFilesystem = "localfilesystem"
	FProtocolDev        = "dev"
)

// ForwardSpec is a forward endpoint like "tcp:8080" or "localabstract:chrome_devtools_remote".
type ForwardSpec string

// TCPSpec returns the ForwardSpec for a tcp port.
func TCPSpec(port int) ForwardSpec {
	return ForwardSpec(FProtocolTCP + ":" + strconv.Itoa(port))
}

// Port returns -1 if the endpoint has no port.
func (f ForwardSpec) Port() int {
	fields := strings.SplitN(string(f), ":", 2)
	if len(fields) < 2 {
		return -1
	}
	if fields[0] != FProtocolTCP {
		return -1
	}
	p, err := strconv.Atoi(fields[1])
	if err != nil {
		return -1
	}
	return p
}

func (f ForwardSpec) Protocol() string {
	fields := strings.SplitN(string(f), ":", 2)
	return fields[0]
}

// ParseForwardSpec validates s as a forward endpoint.
func ParseForwardSpec(s string) (ForwardSpec, error) {
	fields := strings.SplitN(s, ":", 2)
	if len(fields) != 2 || fields[1] == "" {
		return "", errors.Wrapf(ErrParsing, "malformed forward spec: %q", s)
	}
	switch fields[0] {
	case FProtocolTCP, FProtocolJDWP:
		if _, err := strconv.Atoi(fields[1]); err != nil {
			return "", errors.Wrapf(ErrParsing, "malformed pid or port: %s", fields[1])
		}
		return ForwardSpec(s), nil
	case FProtocolLocal, FProtocolAbstract, FProtocolReserved, FProtocolFilesystem, FProtocolDev:
		return ForwardSpec(s), nil
	default:
		return "", errors.Wrapf(ErrParsing, "unrecognized protocol: %s", fields[0])
	}
}

// ForwardPair is one line of "adb forward --list".
type ForwardPair struct {
	Serial string
	Local  ForwardSpec
	Remote ForwardSpec
}

// Forward forwards connections on local to remote on the device.
func (c *Client) Forward(local, remote ForwardSpec) error {
	if local == "" || remote == "" {
		return errors.Wrap(ErrAssertionViolation, "local and remote endpoint are required")
	}
	return errors.WithMessage(c.call("forward", string(local), string(remote)), "Forward")
}

// ForwardList returns the active forwards. If a device was selected by
// serial only its forwards are returned.
func (c *Client) ForwardList() ([]ForwardPair, error) {
	lines, err := c.output("forward", "--list")
	if err != nil {
		return nil, err
	}

	fs := make([]ForwardPair, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, &ParseError{Command: "forward --list", Output: lines,
				Err: errors.Wrapf(ErrParsing, "expected 3 fields, got %q", line)}
		}
		// skip other device serial forwards
		if serial := c.Target(); serial != "" && fields[0] != serial {
			continue
		}
		local, err := ParseForwardSpec(fields[1])
		if err != nil {
			return nil, &ParseError{Command: "forward --list", Output: lines, Err: err}
		}
		remote, err := ParseForwardSpec(fields[2])
		if err != nil {
			return nil, &ParseError{Command: "forward --list", Output: lines, Err: err}
		}
		fs = append(fs, ForwardPair{fields[0], local, remote})
	}
	return fs, nil
}

// ForwardRemove removes the forward listening on local.
func (c *Client) ForwardRemove(local ForwardSpec) error {
	return errors.WithMessage(c.call("forward", "--remove", string(local)), "ForwardRemove")
}

// ForwardRemoveAll removes all forwards.
func (c *Client) ForwardRemoveAll() error {
	return errors.WithMessage(c.call("forward", "--remove-all"), "ForwardRemoveAll")
}

// ForwardToFreePort forwards a free local tcp port to remote and returns it.
// If remote is already forwarded the existing port is returned.
func (c *Client) ForwardToFreePort(remote ForwardSpec) (int, error) {
	fws, err := c.ForwardList()
	if err != nil {
		return 0, err
	}
	for _, fw := range fws {
		if fw.Remote == remote {
			if fw.Local.Port() == -1 {
				return 0, errors.Errorf("%s is forwarded from %s, not a tcp port", remote, fw.Local)
			}
			return fw.Local.Port(), nil
		}
	}
	port, err := getFreePort()
	if err != nil {
		return 0, err
	}
	return port, c.Forward(TCPSpec(port), remote)
}
