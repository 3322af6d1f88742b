// Package trace writes newline-delimited JSON diagnostic events.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const (
	// EnvFile overrides the path passed to Open.
	EnvFile = "CINEMATIC_TRACE_FILE"

	DefaultFile = "cinematic-trace.jsonl"

	timestampLayout = "2006-01-02T15:04:05.000Z"
)

type record struct {
	TS   string `json:"ts"`
	Name string `json:"name"`
	Data any    `json:"data,omitempty"`
}

// Tracer appends one JSON object per event. It is safe for concurrent use.
type Tracer struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	err    error

	now func() time.Time
}

// New traces to w.
func New(w io.Writer) *Tracer {
	return &Tracer{w: w, now: time.Now}
}

// Open appends to the file named by $CINEMATIC_TRACE_FILE, or to path when
// the variable is unset, or to DefaultFile when both are empty.
func Open(path string) (*Tracer, error) {
	if env := os.Getenv(EnvFile); env != "" {
		path = env
	}
	if path == "" {
		path = DefaultFile
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	t := New(f)
	t.closer = f
	return t, nil
}

// Event writes one event. data may be nil. The first write error is kept
// and reported by Err; later events are dropped.
func (t *Tracer) Event(name string, data any) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil || t.w == nil {
		return
	}

	line, err := json.Marshal(record{
		TS:   t.now().UTC().Format(timestampLayout),
		Name: name,
		Data: data,
	})
	if err != nil {
		t.err = fmt.Errorf("trace: encode %s: %w", name, err)
		return
	}
	if _, err := t.w.Write(append(line, '\n')); err != nil {
		t.err = fmt.Errorf("trace: write %s: %w", name, err)
	}
}

// Scope emits name_start now and returns a func emitting name_end.
func (t *Tracer) Scope(name string) func() {
	t.Event(name+"_start", nil)
	return func() { t.Event(name+"_end", nil) }
}

// Err returns the first error hit while tracing.
func (t *Tracer) Err() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Close closes the underlying file when the tracer owns one.
func (t *Tracer) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closer == nil {
		return nil
	}
	err := t.closer.Close()
	t.closer = nil
	t.w = nil
	return err
}
