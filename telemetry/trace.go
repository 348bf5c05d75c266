// Package telemetry writes a per-tick CSV trace of a session for debugging.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// TickRecord is one row of the trace.
type TickRecord struct {
	Session   string `csv:"session"`
	Game      int    `csv:"game"`
	Tick      int    `csv:"tick"`
	Direction string `csv:"direction"`
	Outcome   string `csv:"outcome"`
	HeadX     int    `csv:"head_x"`
	HeadY     int    `csv:"head_y"`
	Length    int    `csv:"length"`
	Apple     int    `csv:"apple"` // -1 when the grid is full
	GameOver  bool   `csv:"game_over"`
}

// TraceWriter appends TickRecords to a CSV stream. A nil *TraceWriter
// discards everything.
type TraceWriter struct {
	mu            sync.Mutex
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewTraceWriter writes to w. The caller keeps ownership of w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

// CreateTrace opens dir/trace-<session>.csv. Returns nil if dir is empty.
func CreateTrace(dir, session string) (*TraceWriter, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "trace-"+session+".csv"))
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	tw := NewTraceWriter(f)
	tw.closer = f
	return tw, nil
}

// Write appends one record, with the header on the first call.
func (tw *TraceWriter) Write(rec TickRecord) error {
	if tw == nil {
		return nil
	}

	tw.mu.Lock()
	defer tw.mu.Unlock()

	records := []TickRecord{rec}
	if !tw.headerWritten {
		if err := gocsv.Marshal(records, tw.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		tw.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, tw.w); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Close closes the underlying file if CreateTrace opened it.
func (tw *TraceWriter) Close() error {
	if tw == nil || tw.closer == nil {
		return nil
	}
	return tw.closer.Close()
}
