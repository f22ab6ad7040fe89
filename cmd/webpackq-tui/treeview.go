package main

import (
	"fmt"
	"strings"

	"github.com/kvnvelasco/webpack-stats/internal/graph"
	"github.com/kvnvelasco/webpack-stats/internal/query"
)

type moduleNode = graph.Node[string, query.ModulePayload, query.ImportMeta]

// moduleListItem is a flattened module for display in the tree view.
type moduleListItem struct {
	id    string
	label string
	chunk string
	size  string
	depth int
	async bool
}

// flattenModules builds a display list from a traversed module graph using
// BFS. Roots are the modules nothing imports, the entry modules of the
// traversal. Modules only reachable through a cycle are appended at the end.
func flattenModules(g *query.ModuleGraph) []moduleListItem {
	if g == nil {
		return nil
	}

	incoming := make(map[string]bool)
	for _, e := range g.Edges() {
		incoming[e.Target] = true
	}

	type entry struct {
		id    string
		depth int
		async bool
	}
	var queue []entry
	visited := make(map[string]bool)
	for _, n := range g.Nodes() {
		if !incoming[n.ID()] {
			queue = append(queue, entry{id: n.ID()})
			visited[n.ID()] = true
		}
	}

	var items []moduleListItem
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n, ok := g.Node(cur.id)
		if !ok {
			continue
		}
		items = append(items, newListItem(n, cur.depth, cur.async))

		for _, e := range n.Edges() {
			if visited[e.Target] || !g.Contains(e.Target) {
				continue
			}
			visited[e.Target] = true
			queue = append(queue, entry{
				id:    e.Target,
				depth: cur.depth + 1,
				async: cur.async || e.Meta.Type.Async(),
			})
		}
	}

	for _, n := range g.Nodes() {
		if !visited[n.ID()] {
			items = append(items, newListItem(n, 0, false))
		}
	}

	return items
}

func newListItem(n *moduleNode, depth int, async bool) moduleListItem {
	item := moduleListItem{
		id:    n.ID(),
		label: n.Label(),
		size:  n.Payload().Size.String(),
		depth: depth,
		async: async,
	}
	if chunk, ok := query.AssignedChunk(n); ok {
		item.chunk = chunk.String()
	}
	return item
}

// renderModuleView renders the module tree as a string for the viewport.
func renderModuleView(items []moduleListItem, selectedIdx, width int) string {
	if len(items) == 0 {
		return "\n  No modules reached.\n"
	}

	var b strings.Builder
	b.WriteString("\n  Module Tree\n\n")

	for i, item := range items {
		label := item.label
		if label == "" {
			label = item.id
		}

		indent := strings.Repeat("    ", item.depth)

		connector := ""
		if item.depth > 0 {
			connector = "├─ "
			if item.async {
				connector = "├* "
			}
		}

		cursor := "  "
		if i == selectedIdx {
			cursor = "> "
		}

		tag := ""
		if item.chunk != "" {
			tag = " [chunk " + item.chunk + "]"
		}

		line := fmt.Sprintf("%s%s%s%s%s  %s", cursor, indent, connector, label, tag, item.size)

		if len(line) > width-2 && width > 5 {
			line = line[:width-5] + "..."
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("\n  [Esc] back to entrypoints  [q] quit\n")
	return b.String()
}

// renderEntrypointView renders the entrypoint picker list.
func renderEntrypointView(entries []query.EntrypointInfo, selectedIdx int) string {
	if len(entries) == 0 {
		return "\n  No entrypoints in this document.\n"
	}

	var b strings.Builder
	b.WriteString("\n  Entrypoints\n\n")

	for i, e := range entries {
		cursor := "  "
		if i == selectedIdx {
			cursor = "> "
		}
		chunks := make([]string, len(e.Chunks))
		for j, c := range e.Chunks {
			chunks[j] = c.String()
		}
		fmt.Fprintf(&b, "%s%s  (chunks %s)\n", cursor, e.Name, strings.Join(chunks, ", "))
	}

	b.WriteString("\n  [Enter] traverse  [q] quit\n")
	return b.String()
}
