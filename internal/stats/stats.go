// Package stats reads webpack v5 stats documents, the JSON files produced
// by `webpack --json`. Only the fields the query layer needs are decoded;
// everything else in the document is ignored.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNoVersion is returned when the document carries no version field,
	// which usually means the input is not a stats file at all.
	ErrNoVersion = errors.New("stats: no version field in document")
	// ErrUnsupportedVersion is returned for stats files emitted by a
	// webpack major version other than 5.
	ErrUnsupportedVersion = errors.New("stats: unsupported webpack version")
)

// Stats is the decoded stats document for one compilation.
type Stats struct {
	Version           string                `json:"version"`
	Hash              string                `json:"hash"`
	TimeMillis        int64                 `json:"time"`
	PublicPath        string                `json:"publicPath"`
	OutputPath        string                `json:"outputPath"`
	AssetsByChunkName map[string][]string   `json:"assetsByChunkName"`
	Entrypoints       map[string]Entrypoint `json:"entrypoints"`
	Assets            []Asset               `json:"assets"`
	Chunks            []Chunk               `json:"chunks"`
	Modules           []Module              `json:"modules"`
}

// Entrypoint names a bundle entry and the chunks webpack assigned to it.
type Entrypoint struct {
	Name   string    `json:"name"`
	Chunks []ChunkID `json:"chunks"`
}

// Asset is one emitted output file.
type Asset struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	ChunkNames []string  `json:"chunkNames"`
	Chunks     []ChunkID `json:"chunks"`
	Size       SizeBytes `json:"size"`
}

// Load decodes a webpack stats document. The version field is inspected
// before anything else so that a wrong-version file fails with
// ErrUnsupportedVersion instead of a field-level decode error.
func Load(data []byte) (*Stats, error) {
	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("stats: reading version: %w", err)
	}
	version := strings.TrimSpace(probe.Version)
	if version == "" {
		return nil, ErrNoVersion
	}
	if version[0] != '5' {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}

	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("stats: decoding document: %w", err)
	}
	return &s, nil
}

// LoadReader decodes a stats document from r. See Load.
func LoadReader(r io.Reader) (*Stats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stats: reading document: %w", err)
	}
	return Load(data)
}

// SizeBytes is a size taken from the stats file, in bytes.
type SizeBytes float64

func (s SizeBytes) String() string {
	switch {
	case s > 1024*1024*1024:
		return fmt.Sprintf("%.2f GiB", float64(s)/(1024*1024*1024))
	case s > 1024*1024:
		return fmt.Sprintf("%.2f MiB", float64(s)/(1024*1024))
	case s > 1024:
		return fmt.Sprintf("%.2f KiB", float64(s)/1024)
	default:
		return fmt.Sprintf("%g B", float64(s))
	}
}
