// Package query builds graphs out of a webpack stats document and answers
// questions about them: which modules an entrypoint loads, which chunk each
// module ends up in, and how a chunk gets pulled into the bundle.
package query

import (
	"github.com/kvnvelasco/webpack-stats/internal/graph"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

// ModulePayload is the owned per-module node data.
type ModulePayload struct {
	Name   string
	Size   stats.SizeBytes
	Chunks map[stats.ChunkID]bool
}

// ImportMeta is the edge metadata of the module graph: what kind of import
// created the dependency and the name webpack resolved it to.
type ImportMeta struct {
	Type     stats.ImportType
	Resolved string
}

// ChunkRelation is the edge metadata of the chunk graphs.
type ChunkRelation int

const (
	// ChunkChild is a split-point edge from a chunk to a chunk it loads.
	ChunkChild ChunkRelation = iota
	// ChunkSibling joins chunks loaded together by one split point.
	ChunkSibling
	// ChunkParent points from a chunk to a chunk that can load it.
	ChunkParent
)

// ChunkPayload is the owned per-chunk node data.
type ChunkPayload struct {
	Modules  []string
	Size     stats.SizeBytes
	Initial  bool
	Files    []string
	Children []stats.ChunkID
}

// ModuleGraph is a graph over module identifiers with import-reason edges.
type ModuleGraph = graph.Graph[string, ModulePayload, ImportMeta]

// ChunkGraph is a graph over chunk ids.
type ChunkGraph = graph.Graph[stats.ChunkID, ChunkPayload, ChunkRelation]

// moduleItem adapts a stats module to the graph engine's item surface.
type moduleItem struct {
	m *stats.Module
}

func (it moduleItem) ID() string    { return it.m.Identifier }
func (it moduleItem) Label() string { return it.m.Name }

type moduleSource struct {
	ix *stats.ModuleIndex
}

func (s moduleSource) Query(id string) (moduleItem, bool) {
	m, ok := s.ix.Query(id)
	if !ok {
		return moduleItem{}, false
	}
	return moduleItem{m: m}, true
}

func (s moduleSource) All() []moduleItem {
	modules := s.ix.All()
	items := make([]moduleItem, 0, len(modules))
	for _, m := range modules {
		items = append(items, moduleItem{m: m})
	}
	return items
}

// moduleParents yields one edge per reason: module -> module that imported
// it. The module graph is therefore parent-directed; Invert turns it into
// the import direction.
func moduleParents(it moduleItem, prev int) (graph.Edge[string, ImportMeta], bool) {
	next := prev + 1
	if next >= len(it.m.Reasons) {
		return graph.Edge[string, ImportMeta]{}, false
	}
	r := it.m.Reasons[next]
	return graph.Edge[string, ImportMeta]{
		Source:  it.m.Identifier,
		Target:  r.ModuleIdentifier,
		Ordinal: next,
		Meta:    ImportMeta{Type: r.Type, Resolved: r.ResolvedModule},
	}, true
}

func moduleData(it moduleItem) ModulePayload {
	return ModulePayload{
		Name:   it.m.Name,
		Size:   it.m.Size,
		Chunks: it.m.ChunkSet(),
	}
}

// NewModuleGraph builds the parent-directed module graph: an edge points
// from a module to each module whose import pulled it in.
func NewModuleGraph(s *stats.Stats) (*ModuleGraph, error) {
	return graph.Build(moduleSource{ix: s.ModuleIndex()}, moduleData, moduleParents)
}

// chunkItem adapts a stats chunk to the graph engine's item surface.
type chunkItem struct {
	c *stats.Chunk
}

func (it chunkItem) ID() stats.ChunkID { return it.c.ID }
func (it chunkItem) Label() string     { return it.c.ID.String() }

type chunkSource struct {
	chunks []stats.Chunk
}

func (s chunkSource) Query(id stats.ChunkID) (chunkItem, bool) {
	for i := range s.chunks {
		if s.chunks[i].ID == id {
			return chunkItem{c: &s.chunks[i]}, true
		}
	}
	return chunkItem{}, false
}

func (s chunkSource) All() []chunkItem {
	items := make([]chunkItem, 0, len(s.chunks))
	for i := range s.chunks {
		items = append(items, chunkItem{c: &s.chunks[i]})
	}
	return items
}

func chunkChildren(it chunkItem, prev int) (graph.Edge[stats.ChunkID, ChunkRelation], bool) {
	next := prev + 1
	if next >= len(it.c.Children) {
		return graph.Edge[stats.ChunkID, ChunkRelation]{}, false
	}
	return graph.Edge[stats.ChunkID, ChunkRelation]{
		Source:  it.c.ID,
		Target:  it.c.Children[next],
		Ordinal: next,
		Meta:    ChunkChild,
	}, true
}

// chunkEscapes yields siblings first, then parents: every chunk whose load
// implies this chunk could already be loaded. Used when searching for the
// chunk an already-loaded module actually lives in.
func chunkEscapes(it chunkItem, prev int) (graph.Edge[stats.ChunkID, ChunkRelation], bool) {
	next := prev + 1
	if next < len(it.c.Siblings) {
		return graph.Edge[stats.ChunkID, ChunkRelation]{
			Source:  it.c.ID,
			Target:  it.c.Siblings[next],
			Ordinal: next,
			Meta:    ChunkSibling,
		}, true
	}
	p := next - len(it.c.Siblings)
	if p >= len(it.c.Parents) {
		return graph.Edge[stats.ChunkID, ChunkRelation]{}, false
	}
	return graph.Edge[stats.ChunkID, ChunkRelation]{
		Source:  it.c.ID,
		Target:  it.c.Parents[p],
		Ordinal: next,
		Meta:    ChunkParent,
	}, true
}

func chunkData(it chunkItem) ChunkPayload {
	return ChunkPayload{
		Modules:  it.c.ModuleIdentifiers(),
		Size:     it.c.Size,
		Initial:  it.c.Initial,
		Files:    it.c.Files,
		Children: it.c.Children,
	}
}

// NewChunkGraph builds the chunk graph in load order: chunk -> children.
func NewChunkGraph(s *stats.Stats) (*ChunkGraph, error) {
	return graph.Build(chunkSource{chunks: s.Chunks}, chunkData, chunkChildren)
}

// NewChunkEscapeGraph builds the sibling-then-parent topology over the same
// chunks. Both chunk graphs share node data; only the edges differ.
func NewChunkEscapeGraph(s *stats.Stats) (*ChunkGraph, error) {
	return graph.Build(chunkSource{chunks: s.Chunks}, chunkData, chunkEscapes)
}
