package diag

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/assert"
)

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	l.Debug("Starting child")
	l.WithFields(logrus.Fields{"status": 0, "args": "x"}).Debug("Finished")
	l.Warnf("Missing %s", "jar")
	assert.Equal(t, `DIAG: Starting child
DIAG: Finished args=x status=0
Warning: Missing jar
`, buf.String())
}

func TestQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug("hidden")
	l.Info("hidden too")
	l.Error("shown")
	assert.Equal(t, "Error: shown\n", buf.String())
}
