package render

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kvnvelasco/webpack-stats/internal/query"
)

//go:embed templates/index.html
var viewerHTML []byte

// WriteHTMLDir materializes the document as a directory holding a viewer
// page and its data file. The directory must be served over HTTP for the
// viewer to load data.json.
func WriteHTMLDir(dir string, doc query.Document) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("render: creating output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), viewerHTML, 0o644); err != nil {
		return fmt.Errorf("render: writing viewer: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "data.json"))
	if err != nil {
		return fmt.Errorf("render: writing data: %w", err)
	}
	if err := WriteJSON(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("render: writing data: %w", err)
	}
	return f.Close()
}
