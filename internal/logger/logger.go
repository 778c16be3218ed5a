// Package logger provides the diagnostic output for the verity CLI.
// Debug, Info and Section messages are printed only in verbose mode
// (the --verbose flag) and trace each stage of the analysis pipeline.
// Warnings are always printed; they report side-effects that failed
// without failing the analysis, such as a score write-back.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose turns verbose output on or off.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// IsVerbose reports whether verbose output is on.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects all log output. The default is os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// write prints one line. Lines with quiet set are dropped unless verbose.
func write(quiet bool, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if quiet && !verbose {
		return
	}
	fmt.Fprintf(output, format+"\n", args...)
}

// Debug prints only in verbose mode.
func Debug(format string, args ...any) {
	write(true, "[DEBUG] "+format, args...)
}

// Info prints only in verbose mode.
func Info(format string, args ...any) {
	write(true, "[INFO] "+format, args...)
}

// Warn always prints.
func Warn(format string, args ...any) {
	write(false, "[WARN] "+format, args...)
}

// Section starts a new pipeline stage in verbose output.
func Section(name string) {
	write(true, "\n=== %s ===", name)
}
