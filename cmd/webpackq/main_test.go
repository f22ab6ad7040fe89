package main

import (
	"testing"

	"github.com/kvnvelasco/webpack-stats/internal/config"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

func TestParseChunkID(t *testing.T) {
	tests := []struct {
		arg     string
		want    stats.ChunkID
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-1", -1, false},
		{"main", 0, true},
		{"", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		t.Run("arg="+tt.arg, func(t *testing.T) {
			got, err := parseChunkID(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseChunkID(%q): got err=%v, wantErr=%v", tt.arg, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseChunkID(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestResolveOutput(t *testing.T) {
	cfg := &config.Config{OutputFormat: "json", OutputPath: "webpack-q"}

	tests := []struct {
		name       string
		format     string
		outPath    string
		wantFormat string
		wantPath   string
	}{
		{
			name:       "both empty fall back to config",
			wantFormat: "json",
			wantPath:   "webpack-q",
		},
		{
			name:       "format flag wins",
			format:     "dot",
			wantFormat: "dot",
			wantPath:   "webpack-q",
		},
		{
			name:       "path flag wins",
			outPath:    "out/graph",
			wantFormat: "json",
			wantPath:   "out/graph",
		},
		{
			name:       "stdout marker kept",
			format:     "dot",
			outPath:    "-",
			wantFormat: "dot",
			wantPath:   "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, path := resolveOutput(tt.format, tt.outPath, cfg)
			if format != tt.wantFormat {
				t.Errorf("format: got %q, want %q", format, tt.wantFormat)
			}
			if path != tt.wantPath {
				t.Errorf("path: got %q, want %q", path, tt.wantPath)
			}
		})
	}
}
