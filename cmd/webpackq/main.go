// Command webpackq answers questions about a webpack v5 stats file: which
// entrypoints exist, what an entrypoint loads, and how a chunk gets pulled
// into the bundle.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/kvnvelasco/webpack-stats/internal/config"
	"github.com/kvnvelasco/webpack-stats/internal/logging"
	"github.com/kvnvelasco/webpack-stats/internal/query"
	"github.com/kvnvelasco/webpack-stats/internal/render"
	"github.com/kvnvelasco/webpack-stats/internal/stats"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "list-entrypoints":
		listEntrypointsMain(os.Args[2:])
	case "describe-entrypoint":
		describeEntrypointMain(os.Args[2:])
	case "describe-chunk":
		describeChunkMain(os.Args[2:])
	case "traverse-entrypoint":
		traverseEntrypointMain(os.Args[2:])
	case "paths-to-chunk":
		pathsToChunkMain(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: webpackq <command> [flags] <args> <stats.json>

commands:
  list-entrypoints    <stats.json>                      list entrypoints and their chunks
  describe-entrypoint <entrypoint> <stats.json>         initial size and chunk-load tree
  describe-chunk      <chunk-id> <stats.json>           files and modules of one chunk
  traverse-entrypoint [-f json|dot|html] [-o path] <entrypoint> <stats.json>
                                                        full module traversal with chunk assignments
  paths-to-chunk      [-f json|dot|html] [-o path] <entrypoint> <chunk-id> <stats.json>
                                                        import paths from an entrypoint into a chunk

common flags (every command):
  -config PATH    config file (default ~/.webpackq.toml)
  -log-level L    debug, info, warn, error
  -log-format F   text or json
`)
}

// env is the resolved runtime of one command invocation.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

// commonFlags registers the flags every command shares. The returned
// function finalizes them into an env after fs.Parse.
func commonFlags(fs *flag.FlagSet) func() env {
	configPath := fs.String("config", config.DefaultPath(), "config file path")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "log format (text or json)")

	return func() env {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		if *logLevel != "" {
			cfg.LogLevel = *logLevel
		}
		if *logFormat != "" {
			cfg.LogFormat = *logFormat
		}
		return env{cfg: cfg, log: logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)}
	}
}

func loadStats(path string) *stats.Stats {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	s, err := stats.Load(data)
	if err != nil {
		log.Fatal(err)
	}
	return s
}

func parseChunkID(arg string) (stats.ChunkID, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid chunk id %q", arg)
	}
	return stats.ChunkID(id), nil
}

func listEntrypointsMain(args []string) {
	fs := flag.NewFlagSet("list-entrypoints", flag.ExitOnError)
	finish := commonFlags(fs)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatal("usage: webpackq list-entrypoints <stats.json>")
	}
	finish()

	s := loadStats(fs.Arg(0))
	fmt.Print(query.FormatEntrypoints(query.Entrypoints(s)))
}

func describeEntrypointMain(args []string) {
	fs := flag.NewFlagSet("describe-entrypoint", flag.ExitOnError)
	finish := commonFlags(fs)
	fs.Parse(args)
	if fs.NArg() != 2 {
		log.Fatal("usage: webpackq describe-entrypoint <entrypoint> <stats.json>")
	}
	finish()

	s := loadStats(fs.Arg(1))
	d, err := query.DescribeEntrypoint(s, fs.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(d)
}

func describeChunkMain(args []string) {
	fs := flag.NewFlagSet("describe-chunk", flag.ExitOnError)
	finish := commonFlags(fs)
	fs.Parse(args)
	if fs.NArg() != 2 {
		log.Fatal("usage: webpackq describe-chunk <chunk-id> <stats.json>")
	}
	finish()

	id, err := parseChunkID(fs.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	s := loadStats(fs.Arg(1))
	d, err := query.DescribeChunk(s, id)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(d)
}

func traverseEntrypointMain(args []string) {
	fs := flag.NewFlagSet("traverse-entrypoint", flag.ExitOnError)
	finish := commonFlags(fs)
	format := fs.String("f", "", "output format: json, dot or html")
	outPath := fs.String("o", "", "output path; - writes json or dot to stdout")
	fs.Parse(args)
	if fs.NArg() != 2 {
		log.Fatal("usage: webpackq traverse-entrypoint [-f json|dot|html] [-o path] <entrypoint> <stats.json>")
	}
	e := finish()

	s := loadStats(fs.Arg(1))
	g, err := query.TraverseEntrypoint(e.log, s, fs.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	writeGraph(e, *format, *outPath, query.Export(g, query.ExportOptions{DropDangling: e.cfg.DropDangling}))
}

func pathsToChunkMain(args []string) {
	fs := flag.NewFlagSet("paths-to-chunk", flag.ExitOnError)
	finish := commonFlags(fs)
	format := fs.String("f", "", "output format: json, dot or html")
	outPath := fs.String("o", "", "output path; - writes json or dot to stdout")
	fs.Parse(args)
	if fs.NArg() != 3 {
		log.Fatal("usage: webpackq paths-to-chunk [-f json|dot|html] [-o path] <entrypoint> <chunk-id> <stats.json>")
	}
	e := finish()

	id, err := parseChunkID(fs.Arg(1))
	if err != nil {
		log.Fatal(err)
	}
	s := loadStats(fs.Arg(2))
	g, err := query.PathsToChunk(e.log, s, fs.Arg(0), id)
	if err != nil {
		log.Fatal(err)
	}
	writeGraph(e, *format, *outPath, query.Export(g, query.ExportOptions{DropDangling: e.cfg.DropDangling}))
}

// resolveOutput fills empty format and path flags from the config.
func resolveOutput(format, outPath string, cfg *config.Config) (string, string) {
	if format == "" {
		format = cfg.OutputFormat
	}
	if outPath == "" {
		outPath = cfg.OutputPath
	}
	return format, outPath
}

// writeGraph renders a document in the requested format. Flags override the
// config file; json and dot go to one file (or stdout with "-"), html to a
// directory holding the viewer.
func writeGraph(e env, format, outPath string, doc query.Document) {
	format, outPath = resolveOutput(format, outPath, e.cfg)

	switch format {
	case "json", "dot":
		var err error
		out := os.Stdout
		if outPath != "-" {
			out, err = os.Create(outPath + "." + format)
			if err != nil {
				log.Fatal(err)
			}
		}
		if format == "json" {
			err = render.WriteJSON(out, doc)
		} else {
			err = render.WriteDOT(out, doc)
		}
		if err != nil {
			log.Fatal(err)
		}
		if out != os.Stdout {
			if err := out.Close(); err != nil {
				log.Fatal(err)
			}
			e.log.Info("graph written", "path", outPath+"."+format)
		}
	case "html":
		if err := render.WriteHTMLDir(outPath, doc); err != nil {
			log.Fatal(err)
		}
		e.log.Info("viewer written; serve the directory over http", "path", outPath)
	default:
		log.Fatalf("unknown output format %q", format)
	}
}
