package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, true)
	lg.Info("lookup done", Field{Key: "date", Val: "2001-05-20"}, Field{Key: "err", Val: errors.New("boom")})

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if payload["level"] != "info" || payload["message"] != "lookup done" {
		t.Errorf("unexpected payload %v", payload)
	}
	if payload["date"] != "2001-05-20" || payload["err"] != "boom" {
		t.Errorf("fields missing from %v", payload)
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, false)
	lg.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info, got %q", buf.String())
	}
	lg.SetLevel("debug")
	lg.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	lg := Nop()
	lg.Error("nothing", Field{Key: "k", Val: 1})
}
