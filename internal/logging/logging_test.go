package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWriterTagsRunID(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf)

	if s.RunID() == "" {
		t.Fatal("expected non-empty run ID")
	}

	s.Logger.Info("processing metadata file", "file", "scene_MTL.txt")
	out := buf.String()
	if !strings.Contains(out, "run_id="+s.RunID()) {
		t.Errorf("log record missing run_id: %q", out)
	}
	if !strings.Contains(out, "processing metadata file") {
		t.Errorf("log record missing message: %q", out)
	}
}

func TestRawVerbatim(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf)

	s.Raw("tool output line 1\nline 2")
	if got := buf.String(); got != "tool output line 1\nline 2\n" {
		t.Errorf("Raw output = %q", got)
	}

	buf.Reset()
	s.Raw("already terminated\n")
	if got := buf.String(); got != "already terminated\n" {
		t.Errorf("Raw output = %q", got)
	}

	buf.Reset()
	s.Raw("")
	if buf.Len() != 0 {
		t.Errorf("Raw(\"\") wrote %q, want nothing", buf.String())
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sca.log")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s.Raw("OK")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "OK") {
		t.Errorf("log file missing output: %q", string(data))
	}
}

func TestStdoutSinkCloseIsNoop(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on stdout sink: %v", err)
	}
}
