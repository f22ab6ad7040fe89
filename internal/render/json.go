package render

import (
	"encoding/json"
	"io"

	"github.com/kvnvelasco/webpack-stats/internal/query"
)

// WriteJSON renders the document as indented JSON.
func WriteJSON(w io.Writer, doc query.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
