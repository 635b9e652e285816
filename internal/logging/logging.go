// Package logging provides the log sink for snowcover runs.
//
// A sink is either a log file or standard output. Diagnostic messages go
// through a slog text handler; captured tool output is written to the
// same sink verbatim, unformatted, so the tool text in the log reads
// exactly as the tool emitted it.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Sink is a destination for run diagnostics and captured tool output.
type Sink struct {
	// Logger formats diagnostic messages. Every record carries the
	// run_id attribute so interleaved logs from repeated runs can be
	// told apart.
	Logger *slog.Logger

	w      io.Writer
	closer io.Closer
	runID  string
}

// New opens a sink on the given log file, or on stdout when logFile is
// empty. File sinks are truncated, matching the upstream scripts.
func New(logFile string) (*Sink, error) {
	if logFile == "" {
		return NewWriter(os.Stdout), nil
	}
	f, err := os.Create(logFile)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", logFile, err)
	}
	s := NewWriter(f)
	s.closer = f
	return s, nil
}

// NewWriter wraps an arbitrary writer as a sink. Used by tests and by
// callers that manage their own output stream.
func NewWriter(w io.Writer) *Sink {
	runID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(w, nil)).With("run_id", runID)
	return &Sink{
		Logger: logger,
		w:      w,
		runID:  runID,
	}
}

// RunID returns the unique identifier attached to this sink's records.
func (s *Sink) RunID() string {
	return s.runID
}

// Raw writes text to the sink verbatim, ensuring a trailing newline.
// Empty text is skipped; tools that print nothing leave no blank lines.
func (s *Sink) Raw(text string) {
	if text == "" {
		return
	}
	if text[len(text)-1] == '\n' {
		fmt.Fprint(s.w, text)
		return
	}
	fmt.Fprintln(s.w, text)
}

// Close releases the underlying file, if any.
func (s *Sink) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
