package graph

// Order selects a traversal discipline.
type Order int

const (
	// BFS visits nodes breadth-first (FIFO frontier).
	BFS Order = iota
	// DFS visits nodes depth-first (LIFO frontier), expanding the lowest
	// ordinal edge first.
	DFS
)

// Step is a visit callback's instruction to the walker.
type Step int

const (
	// Continue records the node and expands its outgoing edges.
	Continue Step = iota
	// Skip drops the node for this edge without recording it; it may still
	// be reached and recorded via another edge.
	Skip
	// Backtrack records the node but does not expand its edges.
	Backtrack
	// Halt records the node and immediately stops the entire walk.
	Halt
)

// VisitFunc is called once per visited node. via is the edge the walk
// arrived on; for a seed node via is the zero Edge and depth is 0.
//
// A VisitFunc may annotate nodes as a side effect. At most one annotating
// walk may run against a graph at a time.
type VisitFunc[I comparable, N, M any] func(n *Node[I, N, M], via Edge[I, M], depth int) Step

// WalkOptions configures a traversal.
type WalkOptions[I comparable, N, M any] struct {
	// Order selects breadth-first or depth-first expansion. Default BFS.
	Order Order

	// Visit, when non-nil, is consulted for every visited node.
	Visit VisitFunc[I, N, M]

	// Annotate, when non-empty, is an annotation tag written on every
	// visited node with the walk's seed id as the value. This is the only
	// implicit mutation a walk performs, and it is opt-in.
	Annotate string
}

// Traversal records the outcome of one walk: the visited ids in visit order,
// and for each non-seed node the single edge that first reached it. The
// reaching edges form a spanning forest of the visited subgraph.
type Traversal[I comparable, M any] struct {
	Visited []I
	Reached map[I]Edge[I, M]
}

// NewTraversal creates an empty traversal log.
func NewTraversal[I comparable, M any]() *Traversal[I, M] {
	return &Traversal[I, M]{Reached: make(map[I]Edge[I, M])}
}

// Contains reports whether the walk visited id.
func (t *Traversal[I, M]) Contains(id I) bool {
	for _, v := range t.Visited {
		if v == id {
			return true
		}
	}
	return false
}

// Merge folds another traversal's nodes and reaching edges into t. Nodes
// already visited by t keep their original reaching edge and position.
func (t *Traversal[I, M]) Merge(other *Traversal[I, M]) *Traversal[I, M] {
	seen := make(map[I]bool, len(t.Visited))
	for _, id := range t.Visited {
		seen[id] = true
	}
	for _, id := range other.Visited {
		if seen[id] {
			continue
		}
		seen[id] = true
		t.Visited = append(t.Visited, id)
		if e, ok := other.Reached[id]; ok {
			t.Reached[id] = e
		}
	}
	return t
}

// frame is one frontier entry: a node reached via an edge at a depth.
type frame[I comparable, M any] struct {
	id     I
	via    Edge[I, M]
	depth  int
	hasVia bool
}

// Walk runs an acyclic traversal from the given seeds, in the order
// supplied. Each node is visited at most once, so the walk terminates in at
// most Len() steps regardless of cycles. A seed id with no node in the graph
// contributes nothing; callers that need to distinguish a bad seed from an
// isolated one should check Contains first.
func (g *Graph[I, N, M]) Walk(opts WalkOptions[I, N, M], seeds ...I) *Traversal[I, M] {
	t := NewTraversal[I, M]()
	seen := make(map[I]bool, len(g.nodes))
	for _, seed := range seeds {
		if seen[seed] {
			continue
		}
		if halted := g.walk(t, opts, seed, seen); halted {
			break
		}
	}
	return t
}

// walk is the raw frontier walker. With seen == nil it performs no visited
// bookkeeping and will not terminate over a cyclic graph; every exported
// entry point therefore passes a seen set, making this the acyclic variant.
func (g *Graph[I, N, M]) walk(t *Traversal[I, M], opts WalkOptions[I, N, M], seed I, seen map[I]bool) bool {
	frontier := []frame[I, M]{{id: seed}}

	for len(frontier) > 0 {
		var f frame[I, M]
		if opts.Order == DFS {
			f = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
		} else {
			f = frontier[0]
			frontier = frontier[1:]
		}

		if seen != nil && seen[f.id] {
			continue
		}
		node, ok := g.nodes[f.id]
		if !ok {
			// Dangling target: no node to visit or expand.
			continue
		}

		step := Continue
		if opts.Visit != nil {
			step = opts.Visit(node, f.via, f.depth)
		}
		if step == Skip {
			continue
		}

		if seen != nil {
			seen[f.id] = true
		}
		t.Visited = append(t.Visited, f.id)
		if f.hasVia {
			t.Reached[f.id] = f.via
		}
		if opts.Annotate != "" {
			node.ann.Set(opts.Annotate, seed)
		}

		if step == Halt {
			return true
		}
		if step == Backtrack {
			continue
		}

		if opts.Order == DFS {
			// Push in reverse so the lowest ordinal pops first.
			for i := len(node.edges) - 1; i >= 0; i-- {
				e := node.edges[i]
				if seen != nil && seen[e.Target] {
					continue
				}
				frontier = append(frontier, frame[I, M]{id: e.Target, via: e, depth: f.depth + 1, hasVia: true})
			}
		} else {
			for _, e := range node.edges {
				if seen != nil && seen[e.Target] {
					continue
				}
				frontier = append(frontier, frame[I, M]{id: e.Target, via: e, depth: f.depth + 1, hasVia: true})
			}
		}
	}
	return false
}

// Project derives a new graph restricted to exactly the nodes t visited and
// the edges t recorded as reaching them. Payloads are shared and annotation
// stores are copied, so the projection is independent of g. Node order
// follows g's node order.
func Project[I comparable, N, M any](t *Traversal[I, M], g *Graph[I, N, M]) *Graph[I, N, M] {
	visited := make(map[I]bool, len(t.Visited))
	for _, id := range t.Visited {
		visited[id] = true
	}

	// Pairs traversed, keyed by (source, target); every parallel edge
	// between a traversed pair is kept, matching edge multiplicity.
	type pair struct{ src, dst I }
	pairs := make(map[pair]bool, len(t.Reached))
	for dst, e := range t.Reached {
		pairs[pair{e.Source, dst}] = true
	}

	out := New[I, N, M]()
	for _, id := range g.order {
		if !visited[id] {
			continue
		}
		node := g.nodes[id]
		from := out.ensure(node, true)
		for _, e := range node.edges {
			if !pairs[pair{e.Source, e.Target}] {
				continue
			}
			if target, ok := g.nodes[e.Target]; ok {
				out.ensure(target, true)
			}
			from.appendEdge(e.Target, e.Meta)
		}
	}
	return out
}
