package oslink

import (
	"io"
	"os"
	"os/exec"
)

// Data links a program to its operating system environment.
// Command creates the child process; tests replace it by a fake.
type Data struct {
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer
	Command func(name string, arg ...string) *exec.Cmd
}

func Get() Data {
	return Data{
		Args:    os.Args,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Command: exec.Command,
	}
}
