package query

import (
	"fmt"
	"log/slog"

	"github.com/kvnvelasco/webpack-stats/internal/graph"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

// PathsToChunk finds every import path from an entrypoint's modules to the
// modules of the target chunk, and returns them as one module graph. Walks
// stop expanding as soon as they land in the target chunk, so the result
// holds the shortest prefix of each path that reaches it. An entrypoint
// that never reaches the chunk yields an empty graph.
func PathsToChunk(log *slog.Logger, s *stats.Stats, name string, target stats.ChunkID) (*ModuleGraph, error) {
	if log == nil {
		log = slog.Default()
	}
	ep, ok := s.Entrypoint(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntrypoint, name)
	}
	if _, ok := s.Chunk(target); !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownChunk, target)
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

	merged := graph.NewTraversal[string, ImportMeta]()
	for _, rootChunk := range ep.Chunks {
		if rootChunk == target {
			continue
		}
		chunkNode, ok := chunks.Node(rootChunk)
		if !ok {
			log.Warn("entrypoint refers to a chunk the stats file does not describe", "chunk", rootChunk)
			continue
		}

		for _, moduleID := range chunkNode.Payload().Modules {
			seed, ok := imports.Node(moduleID)
			if !ok {
				continue
			}
			seed.Annotations().Set(ChunkTag, rootChunk)

			var hits []string
			t := imports.Walk(graph.WalkOptions[string, ModulePayload, ImportMeta]{
				Order: graph.DFS,
				Visit: func(n *moduleNode, via graph.Edge[string, ImportMeta], depth int) graph.Step {
					if depth == 0 {
						return graph.Continue
					}
					originChunk := rootChunk
					if origin, ok := imports.Node(via.Source); ok {
						if c, ok := AssignedChunk(origin); ok {
							originChunk = c
						}
					}
					chunk, found := chunkFor(n, originChunk, chunks, escapes)
					assignChunk(log, n, chunk, found, originChunk)
					if found && chunk == target {
						hits = append(hits, n.ID())
						return graph.Backtrack
					}
					return graph.Continue
				},
			}, moduleID)

			for _, hit := range hits {
				merged.Merge(pathTo(t, hit))
			}
		}
	}

	return graph.Project(merged, imports), nil
}

// pathTo extracts the single seed-to-id path out of a walk's spanning
// forest as a standalone traversal.
func pathTo(t *graph.Traversal[string, ImportMeta], id string) *graph.Traversal[string, ImportMeta] {
	var ids []string
	var edges []graph.Edge[string, ImportMeta]
	cur := id
	for {
		ids = append(ids, cur)
		e, ok := t.Reached[cur]
		if !ok {
			break
		}
		edges = append(edges, e)
		cur = e.Source
	}

	path := graph.NewTraversal[string, ImportMeta]()
	for i := len(ids) - 1; i >= 0; i-- {
		path.Visited = append(path.Visited, ids[i])
	}
	for _, e := range edges {
		path.Reached[e.Target] = e
	}
	return path
}
