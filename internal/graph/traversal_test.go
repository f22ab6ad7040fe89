package graph

import (
	"testing"
)

func visitedIDs[I comparable, M any](t *Traversal[I, M]) []I { return t.Visited }

func TestWalkBFSVisitsEachNodeOnce(t *testing.T) {
	g := referenceGraph(t)

	tr := g.Walk(WalkOptions[int, struct{}, string]{Order: BFS}, 0)

	want := []int{0, 1, 2, 3}
	if len(tr.Visited) != len(want) {
		t.Fatalf("Visited = %v, want %v", tr.Visited, want)
	}
	for i := range want {
		if tr.Visited[i] != want[i] {
			t.Fatalf("Visited = %v, want %v", tr.Visited, want)
		}
	}
}

func TestWalkDFSOrdinalFirst(t *testing.T) {
	g := referenceGraph(t)

	tr := g.Walk(WalkOptions[int, struct{}, string]{Order: DFS}, 0)

	// 0 expands edge ordinal 0 first (0->1), 1 expands to 3, then the walk
	// backtracks to 2; 2's edge to 3 is skipped because 3 is already
	// visited.
	want := []int{0, 1, 3, 2}
	if len(tr.Visited) != len(want) {
		t.Fatalf("Visited = %v, want %v", tr.Visited, want)
	}
	for i := range want {
		if tr.Visited[i] != want[i] {
			t.Fatalf("Visited = %v, want %v", tr.Visited, want)
		}
	}
}

func TestWalkTerminatesOnCycles(t *testing.T) {
	// 0 -> 1 -> 2 -> 0 is a pure cycle.
	store := testStore{items: []testItem{
		{id: 0, children: []int{1}},
		{id: 1, children: []int{2}},
		{id: 2, children: []int{0}},
	}}
	g, err := Build(store, func(testItem) struct{} { return struct{}{} }, childEdges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tr := g.Walk(WalkOptions[int, struct{}, string]{Order: DFS}, 0)
	if len(tr.Visited) != 3 {
		t.Fatalf("Visited = %v, want 3 nodes", tr.Visited)
	}
}

func TestWalkUnknownSeedYieldsEmpty(t *testing.T) {
	g := referenceGraph(t)

	tr := g.Walk(WalkOptions[int, struct{}, string]{}, 99)
	if len(tr.Visited) != 0 {
		t.Errorf("Visited = %v, want empty", tr.Visited)
	}
	if len(tr.Reached) != 0 {
		t.Errorf("Reached = %v, want empty", tr.Reached)
	}
}

func TestWalkMultipleSeedsInOrder(t *testing.T) {
	store := testStore{items: []testItem{
		{id: 0, children: []int{1}},
		{id: 1},
		{id: 2, children: []int{3}},
		{id: 3},
	}}
	g, err := Build(store, func(testItem) struct{} { return struct{}{} }, childEdges)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tr := g.Walk(WalkOptions[int, struct{}, string]{Order: BFS}, 2, 0)
	want := []int{2, 3, 0, 1}
	for i := range want {
		if tr.Visited[i] != want[i] {
			t.Fatalf("Visited = %v, want %v", tr.Visited, want)
		}
	}
}

func TestWalkRecordsFirstReachEdges(t *testing.T) {
	g := referenceGraph(t)

	tr := g.Walk(WalkOptions[int, struct{}, string]{Order: BFS}, 0)

	if _, ok := tr.Reached[0]; ok {
		t.Error("seed has a reaching edge")
	}
	wantSources := map[int]int{1: 0, 2: 0, 3: 1}
	for target, src := range wantSources {
		e, ok := tr.Reached[target]
		if !ok {
			t.Fatalf("no reaching edge for %d", target)
		}
		if e.Source != src {
			t.Errorf("Reached[%d].Source = %d, want %d", target, e.Source, src)
		}
	}
}

func TestWalkAnnotateTagsVisitedNodes(t *testing.T) {
	g := referenceGraph(t)

	g.Walk(WalkOptions[int, struct{}, string]{Order: BFS, Annotate: "seed"}, 0)

	for _, n := range g.Nodes() {
		v, ok := n.Annotations().Get("seed")
		if !ok {
			t.Fatalf("node %d missing seed annotation", n.ID())
		}
		if v.(int) != 0 {
			t.Errorf("node %d seed annotation = %v, want 0", n.ID(), v)
		}
	}
}

func TestWalkWithoutAnnotateLeavesNodesUntouched(t *testing.T) {
	g := referenceGraph(t)

	g.Walk(WalkOptions[int, struct{}, string]{Order: BFS}, 0)

	for _, n := range g.Nodes() {
		if n.Annotations().Len() != 0 {
			t.Errorf("node %d has %d annotations after plain walk", n.ID(), n.Annotations().Len())
		}
	}
}

func TestWalkHalt(t *testing.T) {
	g := referenceGraph(t)

	tr := g.Walk(WalkOptions[int, struct{}, string]{
		Order: BFS,
		Visit: func(n *Node[int, struct{}, string], via Edge[int, string], depth int) Step {
			if n.ID() == 1 {
				return Halt
			}
			return Continue
		},
	}, 0)

	want := []int{0, 1}
	if len(tr.Visited) != len(want) {
		t.Fatalf("Visited = %v, want %v", tr.Visited, want)
	}
}

func TestWalkBacktrack(t *testing.T) {
	g := referenceGraph(t)

	tr := g.Walk(WalkOptions[int, struct{}, string]{
		Order: DFS,
		Visit: func(n *Node[int, struct{}, string], via Edge[int, string], depth int) Step {
			if n.ID() == 1 {
				// Record 1 but do not walk through it.
				return Backtrack
			}
			return Continue
		},
	}, 0)

	// 1 is visited but its edge to 3 is never expanded, so 3 is only
	// reachable through 2.
	want := []int{0, 1, 2, 3}
	if len(tr.Visited) != len(want) {
		t.Fatalf("Visited = %v, want %v", tr.Visited, want)
	}
	if e := tr.Reached[3]; e.Source != 2 {
		t.Errorf("Reached[3].Source = %d, want 2", e.Source)
	}
}

func TestWalkSkipLeavesNodeReachable(t *testing.T) {
	g := referenceGraph(t)

	skipped := false
	tr := g.Walk(WalkOptions[int, struct{}, string]{
		Order: BFS,
		Visit: func(n *Node[int, struct{}, string], via Edge[int, string], depth int) Step {
			// Skip 3 the first time it is offered (via 1), accept after.
			if n.ID() == 3 && !skipped {
				skipped = true
				return Skip
			}
			return Continue
		},
	}, 0)

	if !tr.Contains(3) {
		t.Fatal("3 never visited after skip")
	}
	if e := tr.Reached[3]; e.Source != 2 {
		t.Errorf("Reached[3].Source = %d, want 2 (second offer)", e.Source)
	}
}

func TestWalkVisitSeesSeedWithZeroEdge(t *testing.T) {
	g := referenceGraph(t)

	var seedDepth = -1
	var seedVia Edge[int, string]
	g.Walk(WalkOptions[int, struct{}, string]{
		Visit: func(n *Node[int, struct{}, string], via Edge[int, string], depth int) Step {
			if n.ID() == 0 {
				seedDepth = depth
				seedVia = via
			}
			return Continue
		},
	}, 0)

	if seedDepth != 0 {
		t.Errorf("seed depth = %d, want 0", seedDepth)
	}
	if seedVia != (Edge[int, string]{}) {
		t.Errorf("seed via = %v, want zero edge", seedVia)
	}
}

func TestTraversalMerge(t *testing.T) {
	g := referenceGraph(t)

	a := g.Walk(WalkOptions[int, struct{}, string]{Order: BFS}, 2)
	b := g.Walk(WalkOptions[int, struct{}, string]{Order: BFS}, 0)

	merged := a.Merge(b)
	if len(merged.Visited) != 4 {
		t.Fatalf("merged Visited = %v, want 4 nodes", merged.Visited)
	}
	// Nodes already in a keep their position and reaching edge.
	if merged.Visited[0] != 2 {
		t.Errorf("merged Visited[0] = %d, want 2", merged.Visited[0])
	}
	if e := merged.Reached[3]; e.Source != 2 {
		t.Errorf("merged Reached[3].Source = %d, want 2", e.Source)
	}
}

func TestProjectPreservesAnnotations(t *testing.T) {
	g := referenceGraph(t)
	tr := g.Walk(WalkOptions[int, struct{}, string]{Order: DFS}, 0)

	n, _ := g.Node(3)
	n.Annotations().Set("chunk", 7)

	proj := Project(tr, g)
	if proj.Len() != 4 {
		t.Fatalf("projected Len = %d, want 4", proj.Len())
	}

	pn, ok := proj.Node(3)
	if !ok {
		t.Fatal("projection missing node 3")
	}
	v, ok := pn.Annotations().Get("chunk")
	if !ok || v.(int) != 7 {
		t.Errorf("projected annotation = %v, want 7", v)
	}

	// The projection's annotation store is independent of the original.
	pn.Annotations().Set("chunk", 8)
	v, _ = n.Annotations().Get("chunk")
	if v.(int) != 7 {
		t.Error("mutating projection annotation leaked into original graph")
	}
}

func TestProjectKeepsOnlyTraversedEdges(t *testing.T) {
	g := referenceGraph(t)
	tr := g.Walk(WalkOptions[int, struct{}, string]{Order: BFS}, 0)

	proj := Project(tr, g)

	// The spanning forest from seed 0 reaches 1 and 2 from 0 and 3 from 1;
	// the cycle edges 1->0 and 3->1 are not part of it.
	got := edgePairs(proj.Edges())
	want := map[[2]int]bool{{0, 1}: true, {0, 2}: true, {1, 3}: true}
	if len(got) != len(want) {
		t.Fatalf("projected edges = %v, want %d edges", got, len(want))
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected projected edge %v", p)
		}
	}
}
