package query

import (
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

// Document is the renderer-facing form of a module graph: flat node and
// edge lists in graph order, with the chunk assignment lifted out of the
// annotations.
type Document struct {
	Nodes []DocumentNode `json:"nodes"`
	Edges []DocumentEdge `json:"edges"`
}

// DocumentNode is one exported module.
type DocumentNode struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Size  float64        `json:"size"`
	Chunk *stats.ChunkID `json:"chunk"`
}

// DocumentEdge is one exported import relation.
type DocumentEdge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Async    bool   `json:"async"`
	Importer string `json:"importer"`
}

// ExportOptions controls document generation.
type ExportOptions struct {
	// DropDangling removes edges whose target module is not in the graph.
	// By default such edges are kept, so the document still shows imports
	// that leave the exported subgraph.
	DropDangling bool
}

// Export flattens a module graph into a Document. Nodes appear in graph
// order; parallel edges between one module pair collapse to a single entry.
func Export(g *ModuleGraph, opts ExportOptions) Document {
	doc := Document{
		Nodes: make([]DocumentNode, 0, g.Len()),
		Edges: []DocumentEdge{},
	}

	for _, n := range g.Nodes() {
		node := DocumentNode{
			ID:    n.ID(),
			Label: n.Label(),
			Size:  float64(n.Payload().Size),
		}
		if chunk, ok := AssignedChunk(n); ok {
			c := chunk
			node.Chunk = &c
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	type pair struct{ src, dst string }
	seen := make(map[pair]bool)
	for _, n := range g.Nodes() {
		for _, e := range n.Edges() {
			if seen[pair{e.Source, e.Target}] {
				continue
			}
			if opts.DropDangling && !g.Contains(e.Target) {
				continue
			}
			seen[pair{e.Source, e.Target}] = true
			doc.Edges = append(doc.Edges, DocumentEdge{
				Source:   e.Source,
				Target:   e.Target,
				Async:    e.Meta.Type.Async(),
				Importer: e.Meta.Resolved,
			})
		}
	}
	return doc
}
