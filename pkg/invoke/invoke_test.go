package invoke

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/minow/minow/pkg/diag"
	"github.com/minow/minow/test/fakejava"
	"github.com/stretchr/testify/require"
)

func TestHelperProcess(t *testing.T) { fakejava.Serve() }

func TestArgs(t *testing.T) {
	inv := New("/bin/java", "fingerprints", "dump.pcap")
	require.Equal(t, []string{
		"/bin/java", "-jar", JarPath, "-f", "fingerprints", "-p", "dump.pcap",
	}, inv.Args())

	inv = New("/custom/path", "dir with space", "-p")
	require.Equal(t, []string{
		"/custom/path", "-jar", JarPath, "-f", "dir with space", "-p", "-p",
	}, inv.Args())
}

func TestRunCapturesStdout(t *testing.T) {
	c := &fakejava.Child{Stdout: "A\nB\nC", Stderr: "noise\n"}
	r := &Runner{Command: c.Command}
	res, err := r.Run(New("/bin/java", "fp", "in.pcap"))
	require.Nil(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, "A\nB\nC", res.Stdout)
	require.Equal(t, 1, c.Launched)
	require.Equal(t, []string{
		"/bin/java", "-jar", JarPath, "-f", "fp", "-p", "in.pcap",
	}, c.Args)
}

func TestRunReceivesArgs(t *testing.T) {
	c := &fakejava.Child{Echo: true}
	r := &Runner{Command: c.Command}
	res, err := r.Run(New("/opt/java", "fp", "in.pcap"))
	require.Nil(t, err)
	require.Equal(t,
		"/opt/java\n-jar\n"+JarPath+"\n-f\nfp\n-p\nin.pcap\n", res.Stdout)
}

func TestRunStderr(t *testing.T) {
	c := &fakejava.Child{Stdout: "out", Stderr: "trace\n"}
	var stderr bytes.Buffer
	r := &Runner{Command: c.Command, Stderr: &stderr}
	res, err := r.Run(New("/bin/java", "fp", "in.pcap"))
	require.Nil(t, err)
	require.Equal(t, "out", res.Stdout)
	require.Equal(t, "trace\n", stderr.String())
}

func TestRunExitError(t *testing.T) {
	c := &fakejava.Child{Stdout: "partial\n", Exit: 3}
	var log bytes.Buffer
	r := &Runner{Command: c.Command, Log: diag.New(&log, true)}
	res, err := r.Run(New("/bin/java", "fp", "in.pcap"))
	require.Nil(t, res)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 3, exitErr.ExitCode)
	require.EqualError(t, err,
		"Command '/bin/java -jar "+JarPath+" -f fp -p in.pcap'"+
			" returned non-zero exit status 3")
	require.Contains(t, log.String(), "DIAG: Java failed status=3\n")
}

func TestRunLaunchError(t *testing.T) {
	r := &Runner{}
	java := t.TempDir() + "/no-java"
	res, err := r.Run(New(java, "fp", "in.pcap"))
	require.Nil(t, res)
	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	require.Equal(t, java, launchErr.Path)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Contains(t, err.Error(), "Can't launch "+java+": ")
}

func TestRunNotExecutable(t *testing.T) {
	java := t.TempDir() + "/java"
	require.Nil(t, os.WriteFile(java, []byte("no program"), 0644))
	r := &Runner{}
	_, err := r.Run(New(java, "fp", "in.pcap"))
	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
}

func TestExitErrorSignal(t *testing.T) {
	err := &ExitError{Args: []string{"java", "-jar", "x"}, ExitCode: -1}
	require.EqualError(t, err, "Command 'java -jar x' was terminated by signal")
}

func TestLines(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out []string
	}{
		{"A\nB\nC", []string{"A", "B", "C"}},
		{"A\nB\n", []string{"A", "B", ""}},
		{"", []string{""}},
		{"\n", []string{"", ""}},
		{"<a>\r\n<b/>", []string{"<a>\r", "<b/>"}},
	} {
		require.Equal(t, tc.out, Lines(tc.in), "input %q", tc.in)
	}
}

func TestEmit(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, Emit(&buf, Lines("A\nB\n")))
	require.Equal(t, "A\nB\n\n", buf.String())
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestEmitError(t *testing.T) {
	err := Emit(failWriter{}, []string{"A"})
	require.EqualError(t, err, "Can't write output: closed")
}
