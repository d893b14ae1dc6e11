// Copyright 2025 dsaini64
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	regulations "github.com/dsaini64/regulations"
	"github.com/dsaini64/regulations/ai"
	"github.com/dsaini64/regulations/mcp"
	"github.com/dsaini64/regulations/refresh"
	"github.com/dsaini64/regulations/scrape"
	"github.com/dsaini64/regulations/server"
)

const version = "1.0.0"

var dbFlag = &cli.StringFlag{
	Name:    "db",
	Aliases: []string{"d"},
	Usage:   "Path to BadgerDB database directory",
	Value:   "regulations.db",
	EnvVars: []string{"REGULATIONS_DB"},
}

var snapshotFlag = &cli.StringFlag{
	Name:    "snapshot",
	Usage:   "Path to the vector index snapshot file",
	Value:   "regulations.index",
	EnvVars: []string{"REGULATIONS_SNAPSHOT"},
}

var aiFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "ai-host",
		Usage:   "OpenAI-compatible service host URL for embeddings and classification",
		Value:   "http://localhost:11434/v1",
		EnvVars: []string{"REGULATIONS_AI_HOST"},
	},
	&cli.StringFlag{
		Name:    "embedding-model",
		Usage:   "Embedding model name",
		Value:   "embeddinggemma",
		EnvVars: []string{"REGULATIONS_EMBEDDING_MODEL"},
	},
	&cli.StringFlag{
		Name:    "classifier-model",
		Usage:   "Classifier model name for status analysis",
		Value:   "qwen2.5:3b",
		EnvVars: []string{"REGULATIONS_CLASSIFIER_MODEL"},
	},
	&cli.BoolFlag{
		Name:  "no-classifier",
		Usage: "Disable the LLM status classifier; keyword rules only",
	},
}

func main() {
	app := &cli.App{
		Name:  "regulations",
		Usage: "FDA Title 21 regulation retrieval and monitoring",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					snapshotFlag,
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8000",
						EnvVars: []string{"REGULATIONS_ADDR"},
					},
					&cli.StringFlag{
						Name:    "data",
						Usage:   "Path to a JSON regulation file used by the refresh endpoint (sample set if empty)",
						EnvVars: []string{"REGULATIONS_DATA"},
					},
				}, aiFlags...),
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: mcpCommand,
				Flags:  append([]cli.Flag{dbFlag, snapshotFlag}, aiFlags...),
			},
			{
				Name:   "refresh",
				Usage:  "Fetch regulations, classify them, and rebuild the index",
				Action: refreshCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					snapshotFlag,
					&cli.StringFlag{
						Name:    "data",
						Usage:   "Path to a JSON regulation file (sample set if empty)",
						EnvVars: []string{"REGULATIONS_DATA"},
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum fetch attempts for the regulation supplier",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 2 * time.Second,
					},
				}, aiFlags...),
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed all stored regulations and rewrite the index snapshot",
				Action: reindexCommand,
				Flags:  append([]cli.Flag{dbFlag, snapshotFlag}, aiFlags...),
			},
			{
				Name:      "search",
				Usage:     "Search stored regulations from the command line",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					snapshotFlag,
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:  "keyword",
						Usage: "Keyword matching only; skip the vector index",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				}, aiFlags...),
			},
			{
				Name:      "classify",
				Usage:     "Classify a single regulation description",
				ArgsUsage: "<description>",
				Action:    classifyCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Regulation URL to fetch for additional context",
					},
				}, aiFlags...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func aiConfig(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithClassifierModel(c.String("classifier-model")),
	}
	if c.Bool("no-classifier") {
		opts = append(opts, ai.WithoutClassifier())
	}
	return ai.NewConfig(opts...)
}

func openDatabase(c *cli.Context) (*regulations.Database, error) {
	config := aiConfig(c)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := regulations.NewDatabase(
		c.String("db"),
		regulations.WithAIConfig(config),
		regulations.WithSnapshotPath(c.String("snapshot")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func supplierFor(c *cli.Context) refresh.Supplier {
	if path := c.String("data"); path != "" {
		return scrape.NewFileSupplier(path)
	}
	return nil // NewRefresher falls back to the sample set
}

func serveCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	refresher, err := db.NewRefresher(supplierFor(c))
	if err != nil {
		return fmt.Errorf("failed to create refresher: %w", err)
	}
	defer refresher.Release()

	srv, err := server.NewServer(
		db.RegulationStore(),
		db.ChangeLog(),
		db.MetaStore(),
		searcher,
		server.WithIndex(db.Index()),
		server.WithRefresher(refresher),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	slog.Info("starting HTTP server", "addr", c.String("addr"))
	return srv.Run(c.String("addr"))
}

func mcpCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	handlers := mcp.NewHandlers(
		db.RegulationStore(),
		db.ChangeLog(),
		db.MetaStore(),
		searcher,
		db.Index(),
	)

	// stdout carries the MCP protocol; everything else goes to stderr.
	return mcp.Run(handlers, version)
}

func refreshCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	refresher, err := db.NewRefresher(
		supplierFor(c),
		refresh.WithProgressWriter(os.Stderr),
		refresh.WithSupplyRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresher: %w", err)
	}
	defer refresher.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	if path := c.String("data"); path != "" {
		fmt.Fprintf(os.Stderr, "Data file: %s\n", path)
	}
	fmt.Fprintln(os.Stderr)

	report, err := refresher.Run(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Regulations: %d (%d added, %d updated)\n", report.Total, report.Added, report.Updated)
	fmt.Fprintf(os.Stderr, "Changes recorded: %d\n", report.Changes)
	fmt.Fprintf(os.Stderr, "Indexed: %d\n", report.Indexed)
	if report.IndexError != "" {
		fmt.Fprintf(os.Stderr, "Index build failed: %s\n", report.IndexError)
	}
	fmt.Fprintf(os.Stderr, "Elapsed: %s\n", report.Elapsed.Round(time.Millisecond))

	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	indexed, err := db.RebuildIndex(ctx)
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d regulations\n", indexed)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	result, err := searcher.Search(ctx, query, !c.Bool("keyword"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("%d results (%s)\n\n", len(result.Results), result.Method)
	for _, r := range result.Results {
		fmt.Printf("%.3f  Part %s (%s): %s\n", r.Score, r.Part, r.Status, r.Description)
		if r.URL != "" {
			fmt.Printf("       %s\n", r.URL)
		}
	}

	return nil
}

func classifyCommand(c *cli.Context) error {
	ctx := context.Background()

	description := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if description == "" {
		return fmt.Errorf("description is required")
	}

	// No store needed here; build the classifier through an in-memory database.
	db, err := regulations.NewDatabase(
		"",
		regulations.WithInMemory(),
		regulations.WithAIConfig(aiConfig(c)),
	)
	if err != nil {
		return fmt.Errorf("failed to build classifier: %w", err)
	}
	defer db.Close()

	status, reason := db.Classifier().Classify(ctx, description, c.String("url"), "")
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Reason: %s\n", reason)

	return nil
}
