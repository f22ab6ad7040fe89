package graph

// Prune derives a new graph from g restricted by a predicate over node ids.
//
// An edge survives when the predicate holds for its source or its target.
// The pruned node set is exactly the endpoints of surviving edges: a node
// matching the predicate but touching no surviving edge is dropped. Payloads
// are shared, annotation-store contents are copied, and g is never mutated.
//
// Pruning is idempotent: the surviving edges are unchanged by a second pass
// with the same predicate, so re-pruning the result yields an identical
// graph. An empty predicate match yields an empty graph.
func Prune[I comparable, N, M any](g *Graph[I, N, M], keep func(I) bool) *Graph[I, N, M] {
	out := New[I, N, M]()
	for _, id := range g.order {
		node := g.nodes[id]
		for _, e := range node.edges {
			if !keep(e.Source) && !keep(e.Target) {
				continue
			}
			from := out.ensure(node, true)
			if target, ok := g.nodes[e.Target]; ok {
				out.ensure(target, true)
			}
			from.appendEdge(e.Target, e.Meta)
		}
	}
	return out
}
