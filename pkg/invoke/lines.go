package invoke

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Lines splits captured output at each newline.
// A trailing newline results in a trailing empty line.
func Lines(out string) []string {
	return strings.Split(out, "\n")
}

// Emit writes each line followed by a newline to w.
func Emit(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(err, "Can't write output")
		}
	}
	return nil
}
