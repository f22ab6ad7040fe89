package graph

import "errors"

// ErrDuplicateID is returned by Build when two source items produce the same
// id, which would violate the graph's node uniqueness invariant.
var ErrDuplicateID = errors.New("duplicate node id")

// Item is the minimum capability a source item must offer: a unique,
// cheap-to-copy identifier and a display label.
type Item[I comparable] interface {
	ID() I
	Label() string
}

// Source is a queryable collection of items seeding a graph build.
//
// Contract: repeated Query calls with the same id during one build return
// the same item, and the source must not mutate while a build is running.
type Source[I comparable, V Item[I]] interface {
	// Query returns the item for an id, or false if the source has none.
	Query(id I) (V, bool)

	// All enumerates every item. Iteration order must be stable; node
	// insertion order follows it.
	All() []V
}

// EdgeFunc enumerates the edges of an item under one topology. It is a pure
// function of (item, ordinal): called with prev == -1 it returns the edge at
// ordinal 0, called with prev == k it returns the edge at ordinal k+1, and it
// reports false once ordinals are exhausted. Because it carries no internal
// cursor, independent callers can drive it without interfering with each
// other, and several EdgeFuncs may coexist over one item type, one per
// topology.
type EdgeFunc[I comparable, V any, M any] func(item V, prev int) (Edge[I, M], bool)

// ExtractFunc produces a node payload from a source item. The payload must
// be fully owned: the graph, and anything derived from it, may outlive the
// source document.
type ExtractFunc[V any, N any] func(item V) N

// Build materializes a graph from a source.
//
// Every item in src.All() becomes exactly one node, in enumeration order.
// Each item's edge generator is then driven from ordinal 0 to exhaustion; an
// edge whose target id is absent from the node set is recorded as dangling,
// never an error. The only build failure is an id collision between items.
func Build[I comparable, V Item[I], N, M any](
	src Source[I, V],
	extract ExtractFunc[V, N],
	edges EdgeFunc[I, V, M],
) (*Graph[I, N, M], error) {
	g := New[I, N, M]()

	items := src.All()
	for _, item := range items {
		if _, err := g.addNode(item.ID(), item.Label(), extract(item)); err != nil {
			return nil, err
		}
	}

	for _, item := range items {
		node := g.nodes[item.ID()]
		for prev := -1; ; {
			e, ok := edges(item, prev)
			if !ok {
				break
			}
			node.appendEdge(e.Target, e.Meta)
			prev++
		}
	}

	return g, nil
}
