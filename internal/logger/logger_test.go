package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Output: &buf, Level: "warn", Format: "json"}
	lg := l.New()

	lg.Info().Msg("hidden")
	lg.Warn().Str("model", "vincenty").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["level"] != "warn" || entry["model"] != "vincenty" || entry["message"] != "shown" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Output: &buf, Level: "debug", NoColor: true}
	lg := l.New()

	if lg.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v", lg.GetLevel())
	}

	lg.Debug().Int("points", 4).Msg("polygon parsed")
	out := buf.String()
	if !strings.Contains(out, "polygon parsed") || !strings.Contains(out, "points=4") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("colors not disabled: %q", out)
	}
}

func TestNewUnknownLevel(t *testing.T) {
	l := Logger{Output: &bytes.Buffer{}, Level: "loud"}
	if got := l.New().GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", got)
	}
}
