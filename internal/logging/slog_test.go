package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug("hidden")
	l.Warn("skipping malformed line", "line", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record written without verbose")
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "line=3") {
		t.Errorf("unexpected output: %q", out)
	}

	buf.Reset()
	New(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug record missing with verbose")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l := New(&bytes.Buffer{}, false)
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return the given logger")
	}
}
