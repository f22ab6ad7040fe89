// Package render writes an exported module graph in the supported output
// formats: Graphviz DOT, JSON, and a self-contained HTML viewer directory.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/kvnvelasco/webpack-stats/internal/query"
)

// EscapeID rewrites an arbitrary identifier into a valid DOT node id: ASCII
// alphanumerics and underscores only, with a leading underscore when the
// identifier does not already start with a letter or underscore.
func EscapeID(id string) string {
	var b strings.Builder
	for i, r := range id {
		alpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		switch {
		case i == 0 && (alpha || r == '_'):
			b.WriteRune(r)
		case i == 0 && digit:
			b.WriteByte('_')
			b.WriteRune(r)
		case i == 0:
			b.WriteByte('_')
		case alpha || digit || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// WriteDOT renders the document as a Graphviz digraph. Async imports are
// drawn dashed.
func WriteDOT(w io.Writer, doc query.Document) error {
	if _, err := fmt.Fprintln(w, "digraph webpack_stats {"); err != nil {
		return err
	}
	for _, n := range doc.Nodes {
		label := strings.ReplaceAll(n.Label, `"`, `\"`)
		if _, err := fmt.Fprintf(w, "    %s [label=\"%s\"];\n", EscapeID(n.ID), label); err != nil {
			return err
		}
	}
	for _, e := range doc.Edges {
		attrs := ""
		if e.Async {
			attrs = " [style=dashed]"
		}
		if _, err := fmt.Fprintf(w, "    %s -> %s%s;\n", EscapeID(e.Source), EscapeID(e.Target), attrs); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
