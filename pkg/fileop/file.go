package fileop

import (
	"os"
)

// Kind names what is found at path: "directory", "file", "other",
// or "missing" if path can't be examined.
func Kind(path string) string {
	stat, err := os.Stat(path)
	switch {
	case err != nil:
		return "missing"
	case stat.Mode().IsDir():
		return "directory"
	case stat.Mode().IsRegular():
		return "file"
	}
	return "other"
}

func IsDir(path string) bool { return Kind(path) == "directory" }

func IsRegular(path string) bool { return Kind(path) == "file" }
