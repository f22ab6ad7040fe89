// Command webpackq-tui is a terminal explorer for webpack stats documents.
// It lists entrypoints, traverses the one you pick, and shows the resulting
// module tree with chunk assignments.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kvnvelasco/webpack-stats/internal/query"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

type viewMode int

const (
	viewEntrypoints viewMode = iota
	viewModules
)

type model struct {
	stats    *stats.Stats
	entries  []query.EntrypointInfo
	entryIdx int

	mode    viewMode
	current string // entrypoint being shown in module view

	moduleItems []moduleListItem
	moduleIdx   int

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	loading     bool
	err         error
	traverseSeq uint64
}

// traverseResult is sent when an async entrypoint traversal completes.
type traverseResult struct {
	items []moduleListItem
	err   error
	name  string
	seq   uint64
}

func initialModel(s *stats.Stats) model {
	return model{
		stats:   s,
		entries: query.Entrypoints(s),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// startTraverse returns a tea.Cmd that traverses an entrypoint off the UI
// goroutine. The logger is discarded so warnings do not tear the alt screen.
func (m model) startTraverse(name string) tea.Cmd {
	s := m.stats
	seq := m.traverseSeq
	return func() tea.Msg {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		g, err := query.TraverseEntrypoint(log, s, name)
		if err != nil {
			return traverseResult{err: err, name: name, seq: seq}
		}
		return traverseResult{items: flattenModules(g), name: name, seq: seq}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2 // title bar + divider
		footerHeight := 1 // status bar
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.viewport.SetContent(m.bodyView())
		return m, nil

	case traverseResult:
		if msg.seq != m.traverseSeq {
			// A newer traversal superseded this one.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			if m.ready {
				m.viewport.SetContent(m.bodyView())
			}
			return m, nil
		}
		m.err = nil
		m.mode = viewModules
		m.current = msg.name
		m.moduleItems = msg.items
		m.moduleIdx = 0
		if m.ready {
			m.viewport.SetContent(m.bodyView())
			m.viewport.GotoTop()
		}
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.mode == viewModules {
		return m.handleModuleKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.entryIdx < len(m.entries)-1 {
			m.entryIdx++
			m.refresh()
		}
		return m, nil
	case "k", "up":
		if m.entryIdx > 0 {
			m.entryIdx--
			m.refresh()
		}
		return m, nil
	case "enter":
		if m.entryIdx >= 0 && m.entryIdx < len(m.entries) {
			m.loading = true
			m.err = nil
			m.traverseSeq++
			return m, m.startTraverse(m.entries[m.entryIdx].Name)
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleModuleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = viewEntrypoints
		m.current = ""
		m.refresh()
		return m, nil
	case "j", "down":
		if m.moduleIdx < len(m.moduleItems)-1 {
			m.moduleIdx++
			m.refresh()
		}
		return m, nil
	case "k", "up":
		if m.moduleIdx > 0 {
			m.moduleIdx--
			m.refresh()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.bodyView())
	}
}

func (m model) bodyView() string {
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %s\n", m.err.Error())
	}
	if m.mode == viewModules {
		return renderModuleView(m.moduleItems, m.moduleIdx, m.width)
	}
	return renderEntrypointView(m.entries, m.entryIdx)
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Width(m.width)
	title := "webpackq"
	if m.current != "" {
		title += "  " + m.current
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')

	b.WriteString(strings.Repeat("─", m.width))
	b.WriteByte('\n')

	b.WriteString(m.viewport.View())
	b.WriteByte('\n')

	b.WriteString(m.statusBarView())

	return b.String()
}

func (m model) statusBarView() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1)

	if m.loading {
		return style.Render("Traversing...")
	}
	if m.err != nil {
		return style.Foreground(lipgloss.Color("9")).Render("Error: " + m.err.Error())
	}

	var parts []string
	if m.mode == viewModules {
		parts = append(parts, fmt.Sprintf("%d modules", len(m.moduleItems)))
	} else {
		parts = append(parts, fmt.Sprintf("%d entrypoints", len(m.entries)))
	}
	scroll := fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
	parts = append(parts, scroll)
	return style.Faint(true).Render(strings.Join(parts, "  "))
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <stats.json>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	s, err := stats.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		initialModel(s),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
