package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	Compatibility.WithLabelValues("OK").Inc()
	path := filepath.Join(t.TempDir(), "saju.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `saju_compatibility_total{warning="OK"}`) {
		t.Errorf("expected compatibility counter in output:\n%s", b)
	}
}
