package query

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kvnvelasco/webpack-stats/internal/graph"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

var (
	// ErrUnknownEntrypoint is returned when the stats document has no
	// entrypoint with the requested name.
	ErrUnknownEntrypoint = errors.New("query: unknown entrypoint")
	// ErrUnknownChunk is returned when a chunk id does not resolve.
	ErrUnknownChunk = errors.New("query: unknown chunk")
)

// EntryChunksError reports an entry module placed in several chunks, none of
// which is the entry chunk being traversed. The module cannot anchor a
// chunk assignment in that case.
type EntryChunksError struct {
	Module   string
	Expected stats.ChunkID
	Chunks   []stats.ChunkID
}

func (e *EntryChunksError) Error() string {
	return fmt.Sprintf("query: entry module %s is in chunks %v, none of which is chunk %v",
		e.Module, e.Chunks, e.Expected)
}

// TraverseEntrypoint walks every module an entrypoint loads, in import
// direction, and returns the walked subgraph with each module annotated
// (under ChunkTag) with the chunk it was assigned to.
//
// Each entry chunk seeds one group of walks: the chunk graph below it is
// carved out first, the escape graph is restricted to those chunks, and a
// depth-first walk runs from each of the chunk's modules assigning chunks
// edge by edge. Entry modules that cannot anchor an assignment are skipped
// with a warning rather than failing the whole traversal.
func TraverseEntrypoint(log *slog.Logger, s *stats.Stats, name string) (*ModuleGraph, error) {
	if log == nil {
		log = slog.Default()
	}
	ep, ok := s.Entrypoint(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntrypoint, name)
	}

	chunks, err := NewChunkGraph(s)
	if err != nil {
		return nil, err
	}
	escapes, err := NewChunkEscapeGraph(s)
	if err != nil {
		return nil, err
	}
	parents, err := NewModuleGraph(s)
	if err != nil {
		return nil, err
	}
	imports := parents.Invert()

	var merged *graph.Traversal[string, ImportMeta]
	for _, chunkID := range ep.Chunks {
		chunkNode, ok := chunks.Node(chunkID)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownChunk, chunkID)
		}

		reach := chunks.Walk(graph.WalkOptions[stats.ChunkID, ChunkPayload, ChunkRelation]{}, chunkID)
		reachable := make(map[stats.ChunkID]bool, len(reach.Visited))
		for _, id := range reach.Visited {
			reachable[id] = true
		}
		truncated := graph.Project(reach, chunks)
		escapeScope := graph.Prune(escapes, func(id stats.ChunkID) bool { return reachable[id] })

		for _, moduleID := range chunkNode.Payload().Modules {
			t, err := traverseEntryModule(log, moduleID, chunkID, imports, truncated, escapeScope)
			if err != nil {
				log.Warn("skipping entry module", "module", moduleID, "error", err)
				continue
			}
			if merged == nil {
				merged = t
			} else {
				merged = merged.Merge(t)
			}
		}
	}
	if merged == nil {
		return nil, fmt.Errorf("query: entrypoint %s has no traversable modules", name)
	}
	return graph.Project(merged, imports), nil
}

// traverseEntryModule runs one chunk-assigning walk from an entry module.
// The seed's own chunk is pinned first; every other visited module is
// assigned relative to the module that imported it.
func traverseEntryModule(log *slog.Logger, moduleID string, entryChunk stats.ChunkID, imports *ModuleGraph, chunks, escapes *ChunkGraph) (*graph.Traversal[string, ImportMeta], error) {
	seed, ok := imports.Node(moduleID)
	if !ok {
		return nil, fmt.Errorf("query: module %s is not in the module graph", moduleID)
	}

	owned := seed.Payload().Chunks
	switch {
	case len(owned) == 0:
		seed.Annotations().Set(ChunkTag, entryChunk)
	case len(owned) == 1:
		for id := range owned {
			seed.Annotations().Set(ChunkTag, id)
		}
	case !owned[entryChunk]:
		err := &EntryChunksError{Module: moduleID, Expected: entryChunk}
		for id := range owned {
			err.Chunks = append(err.Chunks, id)
		}
		return nil, err
	default:
		seed.Annotations().Set(ChunkTag, entryChunk)
	}

	t := imports.Walk(graph.WalkOptions[string, ModulePayload, ImportMeta]{
		Order: graph.DFS,
		Visit: func(n *moduleNode, via graph.Edge[string, ImportMeta], depth int) graph.Step {
			if depth == 0 {
				return graph.Continue
			}
			originChunk := entryChunk
			if origin, ok := imports.Node(via.Source); ok {
				if c, ok := AssignedChunk(origin); ok {
					originChunk = c
				}
			}
			chunk, found := chunkFor(n, originChunk, chunks, escapes)
			assignChunk(log, n, chunk, found, originChunk)
			return graph.Continue
		},
	}, moduleID)
	return t, nil
}
