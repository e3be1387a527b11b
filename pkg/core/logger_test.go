package core

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTextLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTextLogger(&buf, slog.LevelInfo)
	logger.Printf("Rendering %s at %dx%d", "cornell-box", 600, 600)

	out := buf.String()
	if !strings.Contains(out, "Rendering cornell-box at 600x600") {
		t.Errorf("unexpected log output: %q", out)
	}

	buf.Reset()
	logger.Debug().Printf("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug record should be filtered, got %q", buf.String())
	}
}

func TestNopLogger_Discards(t *testing.T) {
	var logger Logger = NopLogger()
	logger.Printf("nothing %d", 1)
}
