// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.



package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/madde"
	"github.com/poiesic/madde/config"
	"github.com/poiesic/madde/core"
	"github.com/poiesic/madde/mcpserver"
	"github.com/poiesic/madde/search"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "madde",
		Usage: "Article-level search over Turkish legislation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "Directory of the document cache (empty keeps it in memory)",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the document cache",
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "How long converted documents stay cached",
			},
			&cli.IntFlag{
				Name:  "pool-size",
				Usage: "Number of workers for loading and searching documents",
			},
			&cli.BoolFlag{
				Name:  "whole-document-fallback",
				Usage: "Search the whole document when it has no articles",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "segment",
				Usage:     "List the articles of a document",
				ArgsUsage: "<file>",
				Action:    segmentCommand,
			},
			{
				Name:      "search",
				Usage:     "Search the articles of a document",
				ArgsUsage: "<file> <query>",
				Action:    searchCommand,
				Flags:     searchFlags(),
			},
			{
				Name:      "search-dir",
				Usage:     "Search every document in a directory",
				ArgsUsage: "<dir> <query>",
				Action:    searchDirCommand,
				Flags:     searchFlags(),
			},
			{
				Name:  "cache",
				Usage: "Inspect or maintain the document cache",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "Show cache status, size and TTL",
						Action: cacheStatsCommand,
					},
					{
						Name:   "sweep",
						Usage:  "Remove expired cache entries",
						Action: cacheSweepCommand,
					},
					{
						Name:   "clear",
						Usage:  "Remove every cache entry",
						Action: cacheClearCommand,
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the search tools over MCP on stdin/stdout",
				Action: mcpCommand,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "sweep-interval",
						Usage: "How often expired cache entries are removed (0 disables)",
						Value: 10 * time.Minute,
					},
				},
			},
		},
	}
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "case-sensitive",
			Aliases: []string{"s"},
			Usage:   "Match case exactly",
		},
		&cli.IntFlag{
			Name:    "max-results",
			Aliases: []string{"n"},
			Usage:   "Maximum number of articles per document (default from config)",
		},
	}
}

// setup loads the configuration, applies flag overrides and installs the
// logger. The resulting config is stored in the app metadata.
func setup(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := setupLogger(cfg.LogLevel); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.Bool("no-cache") {
		cfg.CacheEnabled = false
	}
	if c.IsSet("cache-ttl") {
		cfg.CacheTTL = c.Duration("cache-ttl")
	}
	if c.IsSet("pool-size") {
		cfg.PoolSize = c.Int("pool-size")
	}
	if c.IsSet("whole-document-fallback") {
		cfg.WholeDocumentFallback = c.Bool("whole-document-fallback")
	}
	return cfg, nil
}

func setupLogger(levelStr string) error {
	level, err := config.ParseLogLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openEngine builds an engine from the config stored by setup.
func openEngine(c *cli.Context, opts ...madde.EngineOption) (*madde.Engine, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		cfg = config.DefaultConfig()
	}
	engine, err := madde.NewEngine(cfg, append([]madde.EngineOption{madde.WithLogger(slog.Default())}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, nil
}

// searchOptions reads --case-sensitive and --max-results, falling back to
// the configuration. An explicit --max-results must be at least 1.
func searchOptions(c *cli.Context, cfg *config.Config) (bool, int, error) {
	caseSensitive := cfg.CaseSensitive
	if c.IsSet("case-sensitive") {
		caseSensitive = c.Bool("case-sensitive")
	}

	maxResults := cfg.MaxResults
	if c.IsSet("max-results") {
		maxResults = c.Int("max-results")
		if err := core.ValidateMaxResults(maxResults); err != nil {
			return false, 0, fmt.Errorf("max-results: %w", err)
		}
	}
	return caseSensitive, maxResults, nil
}

func segmentCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	doc, err := engine.LoadFile(c.Context, c.Args().First())
	if err != nil {
		return err
	}

	articles := engine.Segment(doc.Content)
	out := c.App.Writer
	fmt.Fprintf(out, "Document: %s\n", doc.ID)
	fmt.Fprintf(out, "Articles: %d\n\n", len(articles))
	for _, a := range articles {
		if a.Title != "" {
			fmt.Fprintf(out, "MADDE %s - %s (%d chars)\n", a.Number, a.Title, len([]rune(a.Body)))
		} else {
			fmt.Fprintf(out, "MADDE %s (%d chars)\n", a.Number, len([]rune(a.Body)))
		}
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected a file and a query")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	caseSensitive, maxResults, err := searchOptions(c, engine.Config())
	if err != nil {
		return err
	}

	doc, err := engine.LoadFile(c.Context, c.Args().Get(0))
	if err != nil {
		return err
	}

	result := engine.Searcher().Search(&search.Request{
		DocumentID:    doc.ID,
		Document:      doc.Content,
		Query:         c.Args().Get(1),
		CaseSensitive: caseSensitive,
		MaxResults:    maxResults,
	})
	fmt.Fprintln(c.App.Writer, search.FormatResults(result))
	return nil
}

func searchDirCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected a directory and a query")
	}

	engine, err := openEngine(c, madde.WithProgress(c.App.ErrWriter))
	if err != nil {
		return err
	}
	defer engine.Close()

	caseSensitive, maxResults, err := searchOptions(c, engine.Config())
	if err != nil {
		return err
	}

	lib := engine.Library()
	loaded, err := lib.LoadDir(c.Context, c.Args().Get(0))
	if err != nil {
		if loaded == 0 {
			return err
		}
		slog.Warn("some documents failed to load", "loaded", loaded, "err", err)
	}

	results, err := lib.SearchAll(c.Context, c.Args().Get(1), caseSensitive, maxResults)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Documents searched: %d, with matches: %d\n\n", loaded, len(results))
	for _, result := range results {
		fmt.Fprintf(out, "##### %s\n", result.DocumentID)
		fmt.Fprintln(out, search.FormatResults(result))
	}
	return nil
}

func cacheStatsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, err := engine.CacheStats(c.Context)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Cache enabled: %t\n", stats.Enabled)
	if stats.Enabled {
		dir := engine.Config().CacheDir
		if dir == "" {
			dir = "(in memory)"
		}
		fmt.Fprintf(out, "Cache dir: %s\n", dir)
		fmt.Fprintf(out, "Cache size: %d\n", stats.Size)
		fmt.Fprintf(out, "Default TTL: %s\n", stats.DefaultTTL)
	}
	return nil
}

func cacheSweepCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	removed, err := engine.SweepCache(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Removed %d expired entries\n", removed)
	return nil
}

func cacheClearCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.ClearCache(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "Cache cleared")
	return nil
}

func mcpCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	srv, err := mcpserver.New(engine, mcpserver.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serveMCP(ctx, srv, engine, &mcp.StdioTransport{}, c.Duration("sweep-interval"))
}

// serveMCP runs srv on transport with the cache sweeper alongside. The
// sweeper has stopped by the time it returns, so the engine can be closed.
func serveMCP(ctx context.Context, srv *mcpserver.Server, engine *madde.Engine, transport mcp.Transport, sweepInterval time.Duration) error {
	sweepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		engine.RunSweeper(sweepCtx, sweepInterval)
	}()

	err := srv.Run(ctx, transport)
	cancel()
	wg.Wait()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
