package query

import (
	"log/slog"

	"github.com/kvnvelasco/webpack-stats/internal/graph"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

// ChunkTag is the annotation tag under which traversals record the chunk a
// module was assigned to. The stored value is a stats.ChunkID.
const ChunkTag = "chunk"

// defaultedTag marks a module whose chunk was inherited from its importer
// because no better assignment could be found.
const defaultedTag = "chunk.defaulted"

// moduleNode is a node of the module graph.
type moduleNode = graph.Node[string, ModulePayload, ImportMeta]

// chunkFor decides which chunk a module reached from originChunk actually
// lives in. In order of preference: the origin chunk itself when the module
// is in it (or in no chunk at all), the module's only chunk, a child of the
// origin chunk, and finally the first hit of a depth-first ancestor search
// over the escape graph. The escape graph is expected to be restricted to
// the chunks reachable from the current entry chunk.
func chunkFor(mod *moduleNode, originChunk stats.ChunkID, chunks *ChunkGraph, escapes *ChunkGraph) (stats.ChunkID, bool) {
	owned := mod.Payload().Chunks

	if len(owned) == 0 || owned[originChunk] {
		return originChunk, true
	}
	if len(owned) == 1 {
		for id := range owned {
			return id, true
		}
	}

	origin, ok := chunks.Node(originChunk)
	if !ok {
		return 0, false
	}
	if e, ok := origin.FindEdge(func(e graph.Edge[stats.ChunkID, ChunkRelation]) bool {
		return owned[e.Target]
	}); ok {
		return e.Target, true
	}

	var hit stats.ChunkID
	var found bool
	escapes.Walk(graph.WalkOptions[stats.ChunkID, ChunkPayload, ChunkRelation]{
		Order: graph.DFS,
		Visit: func(n *graph.Node[stats.ChunkID, ChunkPayload, ChunkRelation], via graph.Edge[stats.ChunkID, ChunkRelation], depth int) graph.Step {
			if owned[n.ID()] {
				hit, found = n.ID(), true
				return graph.Halt
			}
			return graph.Continue
		},
	}, originChunk)
	return hit, found
}

// assignChunk writes the chunk annotation on a module node. A module
// reassigned to a different chunk by a later traversal keeps the new value;
// the inconsistency is logged unless the earlier value was itself a
// fallback. When no chunk was found the importer's chunk is used and the
// node is marked defaulted.
func assignChunk(log *slog.Logger, n *moduleNode, chunk stats.ChunkID, found bool, fallback stats.ChunkID) {
	ann := n.Annotations()
	if found {
		if existing, ok := graph.Annotation[stats.ChunkID](ann, ChunkTag); ok {
			_, defaulted := ann.Get(defaultedTag)
			if existing != chunk && !defaulted {
				log.Warn("inconsistent chunk assignment; module belongs to multiple chunks in traversal",
					"module", n.Label(), "previous", existing, "next", chunk)
			}
		}
		ann.Set(ChunkTag, chunk)
		return
	}
	if _, ok := ann.Get(ChunkTag); ok {
		return
	}
	ann.Set(defaultedTag, true)
	ann.Set(ChunkTag, fallback)
}

// AssignedChunk reads the chunk annotation a traversal left on a module
// node.
func AssignedChunk(n *moduleNode) (stats.ChunkID, bool) {
	return graph.Annotation[stats.ChunkID](n.Annotations(), ChunkTag)
}
