// Package fakejava simulates the java child process in tests.
//
// The test binary itself is started as child. It must define
//
//	func TestHelperProcess(t *testing.T) { fakejava.Serve() }
//
// Serve returns at once, if the test binary wasn't started by Command.
package fakejava

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

const (
	envWant   = "MINOW_FAKE_JAVA"
	envStdout = "MINOW_FAKE_STDOUT"
	envStderr = "MINOW_FAKE_STDERR"
	envExit   = "MINOW_FAKE_EXIT"
	envEcho   = "MINOW_FAKE_ECHO"
)

// Child describes the behavior of the fake java process.
type Child struct {
	Stdout string
	Stderr string
	Exit   int
	// Print received arguments one per line instead of Stdout.
	Echo bool

	// Number of started processes and arguments of last one.
	Launched int
	Args     []string
}

// Command has the signature of exec.Command.
func (c *Child) Command(name string, arg ...string) *exec.Cmd {
	c.Launched++
	c.Args = append([]string{name}, arg...)
	cs := append([]string{"-test.run=TestHelperProcess", "--", name}, arg...)
	cmd := exec.Command(os.Args[0], cs...)
	cmd.Env = append(os.Environ(),
		envWant+"=1",
		envStdout+"="+c.Stdout,
		envStderr+"="+c.Stderr,
		envExit+"="+strconv.Itoa(c.Exit),
	)
	if c.Echo {
		cmd.Env = append(cmd.Env, envEcho+"=1")
	}
	return cmd
}

// Serve acts as java process and exits.
func Serve() {
	if os.Getenv(envWant) != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	if os.Getenv(envEcho) != "" {
		for _, a := range args {
			fmt.Fprintln(os.Stdout, a)
		}
	} else {
		fmt.Fprint(os.Stdout, os.Getenv(envStdout))
	}
	fmt.Fprint(os.Stderr, os.Getenv(envStderr))
	code, _ := strconv.Atoi(os.Getenv(envExit))
	os.Exit(code)
}
