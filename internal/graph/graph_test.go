package graph

import (
	"strconv"
	"testing"
)

// testItem is a minimal source item: an id plus child and parent id lists,
// one list per topology.
type testItem struct {
	id       int
	children []int
	parents  []int
}

func (d testItem) ID() int       { return d.id }
func (d testItem) Label() string { return strconv.Itoa(d.id) }

type testStore struct {
	items []testItem
}

func (s testStore) Query(id int) (testItem, bool) {
	for _, d := range s.items {
		if d.id == id {
			return d, true
		}
	}
	return testItem{}, false
}

func (s testStore) All() []testItem { return s.items }

func childEdges(d testItem, prev int) (Edge[int, string], bool) {
	next := prev + 1
	if next >= len(d.children) {
		return Edge[int, string]{}, false
	}
	return Edge[int, string]{Source: d.id, Target: d.children[next], Ordinal: next}, true
}

func parentEdges(d testItem, prev int) (Edge[int, string], bool) {
	next := prev + 1
	if next >= len(d.parents) {
		return Edge[int, string]{}, false
	}
	return Edge[int, string]{Source: d.id, Target: d.parents[next], Ordinal: next}, true
}

// referenceStore is the 4-node cyclic graph used throughout the tests:
// edges 0->1, 0->2, 1->0, 1->3, 2->3, 3->1.
func referenceStore() testStore {
	return testStore{items: []testItem{
		{id: 0, children: []int{1, 2}},
		{id: 1, children: []int{0, 3}, parents: []int{0}},
		{id: 2, children: []int{3}, parents: []int{0}},
		{id: 3, children: []int{1}, parents: []int{1, 2}},
	}}
}

func referenceGraph(t *testing.T) *Graph[int, struct{}, string] {
	t.Helper()
	g, err := Build(referenceStore(), func(testItem) struct{} { return struct{}{} }, childEdges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func edgePairs[I comparable, M any](edges []Edge[I, M]) [][2]I {
	pairs := make([][2]I, 0, len(edges))
	for _, e := range edges {
		pairs = append(pairs, [2]I{e.Source, e.Target})
	}
	return pairs
}

func TestNodeLookup(t *testing.T) {
	g := referenceGraph(t)

	n, ok := g.Node(2)
	if !ok {
		t.Fatal("Node(2) not found")
	}
	if n.Label() != "2" {
		t.Errorf("Label() = %q, want %q", n.Label(), "2")
	}
	if _, ok := g.Node(9); ok {
		t.Error("Node(9) = ok, want missing")
	}
	if !g.Contains(0) || g.Contains(9) {
		t.Error("Contains gave wrong membership")
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := referenceGraph(t)

	nodes := g.Nodes()
	if len(nodes) != 4 {
		t.Fatalf("Len = %d, want 4", len(nodes))
	}
	for i, n := range nodes {
		if n.ID() != i {
			t.Errorf("Nodes()[%d].ID() = %d, want %d", i, n.ID(), i)
		}
	}
}

func TestEdgesOrdered(t *testing.T) {
	g := referenceGraph(t)

	want := [][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 3}, {3, 1}}
	got := edgePairs(g.Edges())
	if len(got) != len(want) {
		t.Fatalf("EdgeCount = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Edges()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEdgeOrdinalsContiguous(t *testing.T) {
	g := referenceGraph(t)

	for _, n := range g.Nodes() {
		for i, e := range n.Edges() {
			if e.Ordinal != i {
				t.Errorf("node %d edge %d has ordinal %d", n.ID(), i, e.Ordinal)
			}
			if e.Source != n.ID() {
				t.Errorf("node %d edge %d has source %d", n.ID(), i, e.Source)
			}
		}
	}
}

func TestInvert(t *testing.T) {
	g := referenceGraph(t)
	inv := g.Invert()

	if inv.Len() != g.Len() {
		t.Fatalf("inverted Len = %d, want %d", inv.Len(), g.Len())
	}
	want := [][2]int{{1, 0}, {2, 0}, {0, 1}, {3, 1}, {3, 2}, {1, 3}}
	got := edgePairs(inv.Edges())
	if len(got) != len(want) {
		t.Fatalf("inverted EdgeCount = %d, want %d", len(got), len(want))
	}
	seen := make(map[[2]int]int)
	for _, p := range got {
		seen[p]++
	}
	for _, p := range want {
		if seen[p] == 0 {
			t.Errorf("inverted graph missing edge %v", p)
		}
	}

	// Inverting must not touch the original.
	if len(g.Edges()) != 6 {
		t.Errorf("original graph mutated by Invert")
	}
}

func TestInvertDanglingTargetBecomesNode(t *testing.T) {
	store := testStore{items: []testItem{
		{id: 0, children: []int{7}},
	}}
	g, err := Build(store, func(testItem) struct{} { return struct{}{} }, childEdges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	inv := g.Invert()
	n, ok := inv.Node(7)
	if !ok {
		t.Fatal("inverted graph has no node for dangling target 7")
	}
	edges := n.Edges()
	if len(edges) != 1 || edges[0].Target != 0 {
		t.Errorf("node 7 edges = %v, want single edge to 0", edgePairs(edges))
	}
}
