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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/omnisearch"
	"github.com/poiesic/omnisearch/config"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "omnisearch",
		Usage: "Global search over navigation trees, object identifiers and help articles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				EnvVars: []string{config.EnvPrefix + "LOG_LEVEL"},
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{config.EnvPrefix + "CONFIG"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import a YAML navigation tree into the database",
				ArgsUsage: "<tree.yaml>",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					treeNameFlag(),
				},
			},
			{
				Name:   "trees",
				Usage:  "List stored navigation trees",
				Action: treesCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "delete",
						Usage: "Delete the named tree instead of listing",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a single query and print grouped results",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					treeNameFlag(),
					&cli.StringFlag{
						Name:  "tree-file",
						Usage: "Search a YAML tree file instead of a stored tree",
					},
					&cli.BoolFlag{
						Name:  "merchant",
						Usage: "Treat the request as merchant authenticated",
					},
				},
			},
			{
				Name:   "recent",
				Usage:  "Print the most recently and frequently visited pages",
				Action: recentCommand,
				Flags: []cli.Flag{
					dbFlag(),
					treeNameFlag(),
				},
			},
			{
				Name:   "interactive",
				Usage:  "Feed stdin lines through a live search pipeline",
				Action: interactiveCommand,
				Flags: []cli.Flag{
					dbFlag(),
					treeNameFlag(),
					&cli.StringFlag{
						Name:  "watch",
						Usage: "YAML tree file to load and reload on change",
					},
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "Serve Prometheus metrics on this address (e.g. :9090)",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Write a synthetic navigation tree for experiments",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output YAML file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "sections",
						Usage: "Number of top-level sections",
						Value: 8,
					},
					&cli.IntFlag{
						Name:  "pages",
						Usage: "Pages per section",
						Value: 6,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for visit counts",
						Value: 1,
					},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory (overrides config)",
	}
}

func treeNameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "name",
		Aliases: []string{"n"},
		Usage:   "Tree name (overrides config)",
	}
}

func setupLogger(c *cli.Context) error {
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

// loadConfig reads the --config file and applies command flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if db := c.String("db"); db != "" {
		cfg.Storage.Path = db
	}
	if name := c.String("name"); name != "" {
		cfg.Storage.TreeName = name
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*omnisearch.Database, error) {
	return omnisearch.NewDatabase(cfg.Storage.Path, omnisearch.WithRemoteConfig(&cfg.Remote))
}
