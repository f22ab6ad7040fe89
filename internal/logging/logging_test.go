package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var b strings.Builder
	log := New("json", "info", &b)
	log.Info("hello", "key", "value")

	out := b.String()
	if !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("json handler output = %q", out)
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var b strings.Builder
	log := New("text", "warn", &b)
	log.Info("quiet")
	log.Warn("loud")

	out := b.String()
	if strings.Contains(out, "quiet") {
		t.Error("info record passed a warn-level logger")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn record missing")
	}
}
