package fileop

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

func TestKind(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "capture.pcap")
	if err := os.WriteFile(file, []byte{}, 0644); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "directory", Kind(dir))
	assert.Equal(t, "file", Kind(file))
	assert.Equal(t, "missing", Kind(filepath.Join(dir, "nothing")))
	assert.Assert(t, IsDir(dir))
	assert.Assert(t, !IsDir(file))
	assert.Assert(t, IsRegular(file))
	assert.Assert(t, !IsRegular(dir))
}
