// Package invoke runs the fingerprinting jar as child process.
package invoke

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// JarPath is the location of the prebuilt jar, relative to the
// working directory.
const JarPath = "target/minow-1.0-SNAPSHOT-jar-with-dependencies.jar"

// Invocation describes a single run of the jar.
type Invocation struct {
	Java         string `yaml:"java"`
	Jar          string `yaml:"jar"`
	Fingerprints string `yaml:"fingerprints"`
	Pcap         string `yaml:"pcap"`
}

func New(java, fingerprints, pcap string) *Invocation {
	return &Invocation{
		Java:         java,
		Jar:          JarPath,
		Fingerprints: fingerprints,
		Pcap:         pcap,
	}
}

// Args returns the complete command line, starting with the
// java executable.
func (inv *Invocation) Args() []string {
	return []string{inv.Java, "-jar", inv.Jar, "-f", inv.Fingerprints, "-p", inv.Pcap}
}

// Result holds the outcome of a successful run.
type Result struct {
	ExitCode int
	Stdout   string
}

// LaunchError is returned if the child process couldn't be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("Can't launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError is returned if the child process terminated unsuccessfully.
// ExitCode is -1 if the child was killed by a signal.
type ExitError struct {
	Args     []string
	ExitCode int
}

func (e *ExitError) Error() string {
	cmd := strings.Join(e.Args, " ")
	if e.ExitCode < 0 {
		return fmt.Sprintf("Command '%s' was terminated by signal", cmd)
	}
	return fmt.Sprintf("Command '%s' returned non-zero exit status %d",
		cmd, e.ExitCode)
}

// Runner starts child processes.
type Runner struct {
	// Creates the child process; exec.Command if nil.
	Command func(name string, arg ...string) *exec.Cmd
	// Receives stderr of child; it is discarded if nil.
	Stderr io.Writer
	Log    logrus.FieldLogger
}

// Run starts the child process described by inv and waits until it has
// terminated. Stdout of child is captured completely.
func (r *Runner) Run(inv *Invocation) (*Result, error) {
	args := inv.Args()
	command := r.Command
	if command == nil {
		command = exec.Command
	}
	log := r.Log
	if log == nil {
		log = logrus.New()
	}

	cmd := command(args[0], args[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = r.Stderr

	log.WithField("args", strings.Join(args, " ")).Debug("Starting java")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			log.WithField("status", code).Debug("Java failed")
			return nil, &ExitError{Args: args, ExitCode: code}
		}
		return nil, &LaunchError{Path: args[0], Err: err}
	}
	code := cmd.ProcessState.ExitCode()
	log.WithFields(logrus.Fields{
		"status": code,
		"bytes":  out.Len(),
	}).Debug("Java finished")
	return &Result{ExitCode: code, Stdout: out.String()}, nil
}
