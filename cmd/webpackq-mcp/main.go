// Command webpackq-mcp is an MCP server that exposes webpack stats queries as
// tools for LLM agents. It supports listing entrypoints, traversing the
// module graph, finding paths into a chunk, and describing chunks via stdio
// transport.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/kvnvelasco/webpack-stats/internal/logging"
	"github.com/kvnvelasco/webpack-stats/internal/query"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	statsPath := flag.String("stats", "", "path to a webpack stats JSON file")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	if *statsPath == "" {
		log.Fatal("the -stats flag is required")
	}
	data, err := os.ReadFile(*statsPath)
	if err != nil {
		log.Fatal(err)
	}
	st, err := stats.Load(data)
	if err != nil {
		log.Fatalf("load %s: %v", *statsPath, err)
	}

	// Stdout carries the MCP transport, so diagnostics go to stderr.
	logger := logging.New("text", *logLevel, os.Stderr)

	s := server.NewMCPServer("webpackq-mcp", "0.1.0")

	h := &handler{stats: st, log: logger}
	s.AddTool(listEntrypointsTool(), h.listEntrypoints)
	s.AddTool(traverseEntrypointTool(), h.traverseEntrypoint)
	s.AddTool(pathsToChunkTool(), h.pathsToChunk)
	s.AddTool(describeChunkTool(), h.describeChunk)

	if err := server.ServeStdio(s); err != nil {
		log.Fatal(err)
	}
}

type handler struct {
	stats *stats.Stats
	log   *slog.Logger
}

// Tool definitions.

func listEntrypointsTool() mcp.Tool {
	return mcp.NewTool("list_entrypoints",
		mcp.WithDescription(
			"List the entrypoints of the loaded webpack stats document and "+
				"the chunks each one emits. Use this first to discover valid "+
				"entrypoint names for the other tools.",
		),
	)
}

func traverseEntrypointTool() mcp.Tool {
	return mcp.NewTool("traverse_entrypoint",
		mcp.WithDescription(
			"Traverse the module graph reachable from an entrypoint. Returns "+
				"a JSON document with the reached modules (id, label, size, "+
				"assigned chunk) and the import edges between them, marking "+
				"which imports are async split points.",
		),
		mcp.WithString("entrypoint",
			mcp.Required(),
			mcp.Description("entrypoint name, e.g. main"),
		),
	)
}

func pathsToChunkTool() mcp.Tool {
	return mcp.NewTool("paths_to_chunk",
		mcp.WithDescription(
			"Find every import path from an entrypoint into a chunk. Use this "+
				"to answer why a module ended up in a given chunk. Returns the "+
				"same JSON graph shape as traverse_entrypoint, restricted to "+
				"the connecting paths.",
		),
		mcp.WithString("entrypoint",
			mcp.Required(),
			mcp.Description("entrypoint name, e.g. main"),
		),
		mcp.WithNumber("chunk",
			mcp.Required(),
			mcp.Description("numeric chunk id to trace paths into"),
		),
	)
}

func describeChunkTool() mcp.Tool {
	return mcp.NewTool("describe_chunk",
		mcp.WithDescription(
			"Describe one chunk: its total size, the files webpack emitted "+
				"for it, and the names of the modules it contains.",
		),
		mcp.WithNumber("chunk",
			mcp.Required(),
			mcp.Description("numeric chunk id"),
		),
	)
}

// Tool handlers.
// Handler signatures are dictated by mcp-go's ToolHandlerFunc type.

type entrypointResult struct {
	Name   string          `json:"name"`
	Chunks []stats.ChunkID `json:"chunks"`
}

func (h *handler) listEntrypoints(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:gocritic // signature required by mcp-go
	entries := query.Entrypoints(h.stats)
	out := make([]entrypointResult, 0, len(entries))
	for _, e := range entries {
		out = append(out, entrypointResult{Name: e.Name, Chunks: e.Chunks})
	}
	return jsonResult(out)
}

func (h *handler) traverseEntrypoint(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:gocritic // signature required by mcp-go
	name, err := req.RequireString("entrypoint")
	if err != nil {
		return mcp.NewToolResultError("entrypoint is required"), nil
	}

	g, err := query.TraverseEntrypoint(h.log, h.stats, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("traverse failed: %v", err)), nil
	}
	return jsonResult(query.Export(g, query.ExportOptions{}))
}

func (h *handler) pathsToChunk(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:gocritic // signature required by mcp-go
	name, err := req.RequireString("entrypoint")
	if err != nil {
		return mcp.NewToolResultError("entrypoint is required"), nil
	}
	chunk, err := req.RequireInt("chunk")
	if err != nil {
		return mcp.NewToolResultError("chunk is required"), nil
	}

	g, err := query.PathsToChunk(h.log, h.stats, name, stats.ChunkID(chunk))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("paths failed: %v", err)), nil
	}
	return jsonResult(query.Export(g, query.ExportOptions{}))
}

func (h *handler) describeChunk(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:gocritic // signature required by mcp-go
	chunk, err := req.RequireInt("chunk")
	if err != nil {
		return mcp.NewToolResultError("chunk is required"), nil
	}

	d, err := query.DescribeChunk(h.stats, stats.ChunkID(chunk))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}
	return jsonResult(d)
}

// jsonResult marshals a value as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
