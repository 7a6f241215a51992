package adb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForwardSpec(t *testing.T) {
	var tests = []struct {
		in      string
		wantErr bool
		port    int
	}{
		{"tcp:8080", false, 8080},
		{"jdwp:1234", false, -1},
		{"localabstract:chrome_devtools_remote", false, -1},
		{"localfilesystem:/data/local/tmp/sock", false, -1},
		{"tcp:http", true, -1},
		{"tcp", true, -1},
		{"udp:53", true, -1},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			spec, err := ParseForwardSpec(test.in)
			if test.wantErr {
				assert.True(t, errors.Cause(err) == ErrParsing)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.port, spec.Port())
		})
	}
	assert.Equal(t, "localabstract", ForwardSpec("localabstract:foo").Protocol())
	assert.Equal(t, ForwardSpec("tcp:9222"), TCPSpec(9222))
}

const forwardList = `case "$1" in
devices) printf 'List of devices attached\nemulator-5554\tdevice\n0123456789ABCDEF\tdevice\n' ;;
forward)
  if [ "$2" = "--list" ]; then
    echo "emulator-5554 tcp:9222 localabstract:chrome_devtools_remote"
    echo "0123456789ABCDEF tcp:8700 jdwp:4321"
  fi ;;
esac`

func TestForwardList(t *testing.T) {
	c, argsFile := newFakeClient(t, forwardList)

	fws, err := c.ForwardList()
	require.NoError(t, err)
	assert.Equal(t, []string{"forward", "--list"}, readArgs(t, argsFile))
	assert.Equal(t, []ForwardPair{
		{"emulator-5554", "tcp:9222", "localabstract:chrome_devtools_remote"},
		{"0123456789ABCDEF", "tcp:8700", "jdwp:4321"},
	}, fws)

	_, err = c.Devices()
	require.NoError(t, err)
	require.NoError(t, c.SelectDevice("0123456789ABCDEF"))
	fws, err = c.ForwardList()
	require.NoError(t, err)
	assert.Equal(t, []ForwardPair{{"0123456789ABCDEF", "tcp:8700", "jdwp:4321"}}, fws)
}

func TestForwardListParseError(t *testing.T) {
	c, _ := newFakeClient(t, `echo "emulator-5554 tcp:9222"`)
	_, err := c.ForwardList()
	assert.IsType(t, &ParseError{}, err)
}

func TestForward(t *testing.T) {
	c, argsFile := newFakeClient(t, forwardList)

	require.NoError(t, c.Forward("tcp:6100", "localabstract:webview_devtools_remote"))
	assert.Equal(t, []string{"forward", "tcp:6100", "localabstract:webview_devtools_remote"}, readArgs(t, argsFile))

	require.NoError(t, c.ForwardRemove("tcp:6100"))
	assert.Equal(t, []string{"forward", "--remove", "tcp:6100"}, readArgs(t, argsFile))

	require.NoError(t, c.ForwardRemoveAll())
	assert.Equal(t, []string{"forward", "--remove-all"}, readArgs(t, argsFile))
}

func TestForwardToFreePort(t *testing.T) {
	c, argsFile := newFakeClient(t, forwardList)

	port, err := c.ForwardToFreePort("localabstract:chrome_devtools_remote")
	require.NoError(t, err)
	assert.Equal(t, 9222, port)
	assert.Equal(t, []string{"forward", "--list"}, readArgs(t, argsFile))

	port, err = c.ForwardToFreePort("localabstract:stetho")
	require.NoError(t, err)
	assert.True(t, port > 0)
	assert.Equal(t, []string{"forward", string(TCPSpec(port)), "localabstract:stetho"}, readArgs(t, argsFile))
}
