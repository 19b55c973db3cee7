// Package logger provides severity-tagged diagnostic logging for the
// routing engine. Components receive a Logger through their constructor
// so tests can capture or silence output without global state.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// Severity orders log lines from most to least urgent.
type Severity int

const (
	// High marks failures an operator must look at.
	High Severity = iota
	// Medium marks recoverable per-field problems.
	Medium
	// Low marks routine trace output.
	Low
)

// String returns the tag printed in front of each log line.
func (s Severity) String() string {
	switch s {
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	case Low:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Logger is the diagnostic sink injected into every engine component.
type Logger interface {
	// High reports a failure that aborts work on a document.
	High(format string, args ...any)
	// Medium reports a recoverable problem, typically one field's transform.
	Medium(format string, args ...any)
	// Low reports trace-level progress.
	Low(format string, args ...any)
	// Unexpected reports an error that was caught at a component boundary.
	Unexpected(scope string, err error)
}

// Writer is a Logger that prints tagged lines to an io.Writer.
// Lines below the configured threshold are dropped.
type Writer struct {
	mu        sync.Mutex
	out       io.Writer
	threshold Severity
}

var _ Logger = (*Writer)(nil)

// New creates a Writer logging to out. Lines with a severity less urgent
// than threshold are suppressed.
func New(out io.Writer, threshold Severity) *Writer {
	return &Writer{out: out, threshold: threshold}
}

func (w *Writer) log(s Severity, format string, args ...any) {
	if s > w.threshold {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "["+s.String()+"] "+format+"\n", args...)
}

// High reports a failure that aborts work on a document.
func (w *Writer) High(format string, args ...any) { w.log(High, format, args...) }

// Medium reports a recoverable problem.
func (w *Writer) Medium(format string, args ...any) { w.log(Medium, format, args...) }

// Low reports trace-level progress.
func (w *Writer) Low(format string, args ...any) { w.log(Low, format, args...) }

// Unexpected reports a caught error with the scope it was caught in.
func (w *Writer) Unexpected(scope string, err error) {
	w.log(High, "unexpected in %s: %v", scope, err)
}

// Nop is a Logger that discards everything.
type Nop struct{}

var _ Logger = Nop{}

// High discards the line.
func (Nop) High(string, ...any) {}

// Medium discards the line.
func (Nop) Medium(string, ...any) {}

// Low discards the line.
func (Nop) Low(string, ...any) {}

// Unexpected discards the error.
func (Nop) Unexpected(string, error) {}

// Capture records every line for test assertions.
type Capture struct {
	mu    sync.Mutex
	lines []string
}

var _ Logger = (*Capture)(nil)

// NewCapture creates an empty capturing logger.
func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) record(s Severity, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, "["+s.String()+"] "+fmt.Sprintf(format, args...))
}

// High records the line.
func (c *Capture) High(format string, args ...any) { c.record(High, format, args...) }

// Medium records the line.
func (c *Capture) Medium(format string, args ...any) { c.record(Medium, format, args...) }

// Low records the line.
func (c *Capture) Low(format string, args ...any) { c.record(Low, format, args...) }

// Unexpected records the caught error.
func (c *Capture) Unexpected(scope string, err error) {
	c.record(High, "unexpected in %s: %v", scope, err)
}

// Lines returns a copy of everything recorded so far.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}
