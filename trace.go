package slrcore

import (
	"fmt"
	"os"
	"time"
)

// Level-gated diagnostic tracing: off by default, opt in with
// TraceOpen, gated by TraceLevel. Level 1 is a hard error (also echoed
// to stderr), 2 is a warning, 3-4 are verbose call traces.
var (
	fpTrace    *os.File
	levelTrace int
)

// TraceOpen directs tracing output to file. An empty file name traces
// to stdout.
func TraceOpen(file string) {
	if file == "" {
		fpTrace = os.Stdout
		return
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		Trace(1, "trace: open %s failed: %v\n", file, err)
		return
	}
	fpTrace = f
}

// TraceClose releases the trace file, if any.
func TraceClose() {
	if fpTrace != nil && fpTrace != os.Stdout && fpTrace != os.Stderr {
		fpTrace.Close()
	}
	fpTrace = nil
}

// TraceLevel sets the maximum level that will be written.
func TraceLevel(level int) { levelTrace = level }

// Trace writes a leveled, formatted diagnostic line. Level 1 is always
// echoed to stderr regardless of the configured trace level.
func Trace(level int, format string, v ...interface{}) {
	if level <= 1 {
		fmt.Fprintf(os.Stderr, format, v...)
	}
	if fpTrace == nil || level > levelTrace {
		return
	}
	fmt.Fprintf(fpTrace, "%s [%d] ", time.Now().UTC().Format(time.RFC3339Nano), level)
	fmt.Fprintf(fpTrace, format, v...)
}
