// Package graph provides a generic directed multigraph built from an
// arbitrary data source, with annotation storage, cycle-safe traversal,
// and derived (pruned or projected) graphs.
//
// A Graph is built once from a Source, then traversed and annotated in
// place. Graphs derived from it own their node set, so the original graph
// and the source data can be discarded independently.
package graph

import "fmt"

// Edge is a directed edge. Ordinal is the edge's position within its source
// node's edge enumeration; multiple edges between the same pair of nodes are
// legal as long as their ordinals differ.
//
// Target is not required to resolve to a node in the graph. Such edges are
// dangling: a queryable state, not an error.
type Edge[I comparable, M any] struct {
	Source  I
	Target  I
	Ordinal int
	Meta    M
}

// Node is a single vertex. The label and payload are fixed at build time;
// annotations are mutable for the life of the graph.
type Node[I comparable, N, M any] struct {
	id      I
	label   string
	payload N
	ann     *Annotations
	edges   []Edge[I, M]
}

// ID returns the node's identifier.
func (n *Node[I, N, M]) ID() I { return n.id }

// Label returns the node's display label.
func (n *Node[I, N, M]) Label() string { return n.label }

// Payload returns the data extracted from the source item at build time.
// The payload is owned by the node and does not reference the source.
func (n *Node[I, N, M]) Payload() N { return n.payload }

// Annotations returns the node's annotation store.
func (n *Node[I, N, M]) Annotations() *Annotations { return n.ann }

// Edges returns a copy of the node's outgoing edges in ordinal order.
func (n *Node[I, N, M]) Edges() []Edge[I, M] {
	edges := make([]Edge[I, M], len(n.edges))
	copy(edges, n.edges)
	return edges
}

// FindEdge returns the first outgoing edge for which match returns true.
func (n *Node[I, N, M]) FindEdge(match func(Edge[I, M]) bool) (Edge[I, M], bool) {
	for _, e := range n.edges {
		if match(e) {
			return e, true
		}
	}
	var zero Edge[I, M]
	return zero, false
}

// Graph is a directed multigraph of nodes keyed by I. Node iteration order
// is insertion order, which Build keeps equal to the source's enumeration
// order so downstream output is deterministic.
//
// A graph is not safe for concurrent mutation: at most one annotating
// traversal may run at a time, and read-only queries must not overlap with
// one.
type Graph[I comparable, N, M any] struct {
	nodes map[I]*Node[I, N, M]
	order []I
}

// New creates an empty graph.
func New[I comparable, N, M any]() *Graph[I, N, M] {
	return &Graph[I, N, M]{
		nodes: make(map[I]*Node[I, N, M]),
	}
}

// Node returns the node for an id, or false if not present.
func (g *Graph[I, N, M]) Node(id I) (*Node[I, N, M], bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Contains reports whether id resolves to a node in the graph.
func (g *Graph[I, N, M]) Contains(id I) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph[I, N, M]) Len() int { return len(g.nodes) }

// Nodes returns all nodes in insertion order.
func (g *Graph[I, N, M]) Nodes() []*Node[I, N, M] {
	nodes := make([]*Node[I, N, M], 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns every edge in the graph: ordinal order within each node,
// concatenated in node insertion order.
func (g *Graph[I, N, M]) Edges() []Edge[I, M] {
	var edges []Edge[I, M]
	for _, id := range g.order {
		edges = append(edges, g.nodes[id].edges...)
	}
	return edges
}

// EdgeCount returns the number of edges.
func (g *Graph[I, N, M]) EdgeCount() int {
	count := 0
	for _, id := range g.order {
		count += len(g.nodes[id].edges)
	}
	return count
}

// DanglingEdges returns the edges whose target id has no corresponding node.
func (g *Graph[I, N, M]) DanglingEdges() []Edge[I, M] {
	var dangling []Edge[I, M]
	for _, id := range g.order {
		for _, e := range g.nodes[id].edges {
			if _, ok := g.nodes[e.Target]; !ok {
				dangling = append(dangling, e)
			}
		}
	}
	return dangling
}

// addNode inserts a new node. The id must not already be present.
func (g *Graph[I, N, M]) addNode(id I, label string, payload N) (*Node[I, N, M], error) {
	if _, ok := g.nodes[id]; ok {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateID, id)
	}
	n := &Node[I, N, M]{
		id:      id,
		label:   label,
		payload: payload,
		ann:     NewAnnotations(),
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n, nil
}

// ensure returns the node for id, creating it as a copy of src if absent.
// When withAnnotations is set the copy receives a snapshot of src's
// annotation store; otherwise it starts empty. Derived copies never carry
// edges.
func (g *Graph[I, N, M]) ensure(src *Node[I, N, M], withAnnotations bool) *Node[I, N, M] {
	if n, ok := g.nodes[src.id]; ok {
		return n
	}
	ann := NewAnnotations()
	if withAnnotations {
		ann = src.ann.clone()
	}
	n := &Node[I, N, M]{
		id:      src.id,
		label:   src.label,
		payload: src.payload,
		ann:     ann,
	}
	g.nodes[src.id] = n
	g.order = append(g.order, src.id)
	return n
}

// appendEdge adds an outgoing edge to n, assigning the next ordinal so that
// per-node ordinals stay contiguous from zero.
func (n *Node[I, N, M]) appendEdge(target I, meta M) {
	n.edges = append(n.edges, Edge[I, M]{
		Source:  n.id,
		Target:  target,
		Ordinal: len(n.edges),
		Meta:    meta,
	})
}

// Invert returns a new graph with every edge reversed. Payloads are shared
// with the receiver; annotation stores start empty. An edge whose target is
// dangling produces a bare node for that target in the inverted graph, since
// it becomes an edge source there.
func (g *Graph[I, N, M]) Invert() *Graph[I, N, M] {
	inv := New[I, N, M]()
	for _, id := range g.order {
		inv.ensure(g.nodes[id], false)
	}
	for _, id := range g.order {
		node := g.nodes[id]
		for _, e := range node.edges {
			target, ok := g.nodes[e.Target]
			var from *Node[I, N, M]
			if ok {
				from = inv.ensure(target, false)
			} else {
				from = inv.ensureBare(e.Target)
			}
			from.appendEdge(id, e.Meta)
		}
	}
	return inv
}

// ensureBare creates a node with only an id, used for targets that have no
// node in the graph being derived from.
func (g *Graph[I, N, M]) ensureBare(id I) *Node[I, N, M] {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	var zero N
	n := &Node[I, N, M]{
		id:      id,
		label:   fmt.Sprint(id),
		payload: zero,
		ann:     NewAnnotations(),
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}
