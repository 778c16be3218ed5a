package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return &buf
}

func TestQuietMode_SuppressesDiagnostics(t *testing.T) {
	buf := capture(t, false)

	Debug("chunk %d", 1)
	Info("searching")
	Section("Chunker")

	assert.Empty(t, buf.String())
	assert.False(t, IsVerbose())
}

func TestVerboseMode_PrintsDiagnostics(t *testing.T) {
	buf := capture(t, true)

	Section("Chunker")
	Debug("chunk %d", 1)
	Info("searching %q", "query")

	out := buf.String()
	assert.Contains(t, out, "=== Chunker ===")
	assert.Contains(t, out, "[DEBUG] chunk 1")
	assert.Contains(t, out, `[INFO] searching "query"`)
	assert.True(t, IsVerbose())
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Warn("score write-back failed: %v", "timeout")

	assert.Equal(t, "[WARN] score write-back failed: timeout\n", buf.String())
}
