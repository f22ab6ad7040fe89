package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kvnvelasco/webpack-stats/internal/graph"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

// EntrypointInfo is one entry of the entrypoint listing.
type EntrypointInfo struct {
	Name   string
	Chunks []stats.ChunkID
}

// Entrypoints lists the document's entrypoints and their chunks, sorted by
// name.
func Entrypoints(s *stats.Stats) []EntrypointInfo {
	names := make([]string, 0, len(s.Entrypoints))
	for name := range s.Entrypoints {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]EntrypointInfo, 0, len(names))
	for _, name := range names {
		out = append(out, EntrypointInfo{Name: name, Chunks: s.Entrypoints[name].Chunks})
	}
	return out
}

// FormatEntrypoints renders the entrypoint listing for terminal output.
func FormatEntrypoints(entries []EntrypointInfo) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s:\n", e.Name)
		fmt.Fprintf(&b, "  Chunks:\n")
		for _, c := range e.Chunks {
			fmt.Fprintf(&b, "    %v\n", c)
		}
	}
	return b.String()
}

// ChunkDescription summarizes one chunk: its emitted files and the names of
// the modules webpack placed in it.
type ChunkDescription struct {
	ID      stats.ChunkID   `json:"id"`
	Size    stats.SizeBytes `json:"size"`
	Files   []string        `json:"files"`
	Modules []string        `json:"modules"`
}

// DescribeChunk resolves a chunk and the names of its modules.
func DescribeChunk(s *stats.Stats, id stats.ChunkID) (*ChunkDescription, error) {
	c, ok := s.Chunk(id)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownChunk, id)
	}

	ix := s.ModuleIndex()
	names := make([]string, 0, len(c.Modules))
	for _, identifier := range c.ModuleIdentifiers() {
		if m, ok := ix.Query(identifier); ok {
			names = append(names, m.Name)
		}
	}
	return &ChunkDescription{
		ID:      id,
		Size:    c.Size,
		Files:   c.Files,
		Modules: names,
	}, nil
}

func (d *ChunkDescription) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chunk: %v\n", d.ID)
	fmt.Fprintf(&b, "size: %v\n", d.Size)
	b.WriteString("Files:\n")
	for _, f := range d.Files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	b.WriteString("Modules:\n")
	for _, m := range d.Modules {
		fmt.Fprintf(&b, "  %s\n", m)
	}
	return b.String()
}

// EntrypointDescription summarizes what loading an entrypoint costs: the
// uncompressed size of its initial chunks and the tree of chunks reachable
// from it.
type EntrypointDescription struct {
	Name        string
	InitialSize stats.SizeBytes
	roots       []stats.ChunkID
	chunks      *ChunkGraph
}

// DescribeEntrypoint computes the initial load size of an entrypoint and
// prepares its chunk-load tree. The initial size counts each chunk once,
// even when several entry chunks reach it, and stops at the first
// non-initial chunk on every branch.
func DescribeEntrypoint(s *stats.Stats, name string) (*EntrypointDescription, error) {
	ep, ok := s.Entrypoint(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntrypoint, name)
	}

	chunks, err := NewChunkGraph(s)
	if err != nil {
		return nil, err
	}

	roots := make([]stats.ChunkID, 0, len(ep.Chunks))
	for _, id := range ep.Chunks {
		if chunks.Contains(id) {
			roots = append(roots, id)
		}
	}

	initial := chunks.Walk(graph.WalkOptions[stats.ChunkID, ChunkPayload, ChunkRelation]{
		Visit: func(n *graph.Node[stats.ChunkID, ChunkPayload, ChunkRelation], via graph.Edge[stats.ChunkID, ChunkRelation], depth int) graph.Step {
			if depth > 0 && !n.Payload().Initial {
				return graph.Skip
			}
			return graph.Continue
		},
	}, roots...)

	var size stats.SizeBytes
	for _, id := range initial.Visited {
		if n, ok := chunks.Node(id); ok {
			size += n.Payload().Size
		}
	}

	return &EntrypointDescription{
		Name:        name,
		InitialSize: size,
		roots:       roots,
		chunks:      chunks,
	}, nil
}

// String renders the chunk-load tree. Chunks loaded asynchronously, or
// reached through one that is, are marked with an asterisk.
func (d *EntrypointDescription) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", d.Name)
	fmt.Fprintf(&b, "Initial size (uncompressed): %v\n", d.InitialSize)
	b.WriteString("Chunk Imports (* denotes asynchronous chunk):\n")

	for _, root := range d.roots {
		async := make(map[stats.ChunkID]bool)
		d.chunks.Walk(graph.WalkOptions[stats.ChunkID, ChunkPayload, ChunkRelation]{
			Order: graph.DFS,
			Visit: func(n *graph.Node[stats.ChunkID, ChunkPayload, ChunkRelation], via graph.Edge[stats.ChunkID, ChunkRelation], depth int) graph.Step {
				marker := "├── "
				if depth > 0 && (!n.Payload().Initial || async[via.Source]) {
					async[n.ID()] = true
					marker = "├*- "
				}
				b.WriteString(strings.Repeat(" ", depth*4))
				fmt.Fprintf(&b, "%s%s (%v) [%s]\n", marker, n.Label(), n.Payload().Size,
					strings.Join(n.Payload().Files, ", "))
				return graph.Continue
			},
		}, root)
	}
	return b.String()
}
