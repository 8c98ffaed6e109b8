package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/omnisearch/config"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/index"
	"github.com/poiesic/omnisearch/metrics"
	"github.com/poiesic/omnisearch/pipeline"
	"github.com/poiesic/omnisearch/search"
	"github.com/poiesic/omnisearch/treefile"
)

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one tree file argument")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	root, err := treefile.Load(c.Args().First())
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	stored, err := db.ImportTree(c.Context, cfg.Storage.TreeName, root)
	if err != nil {
		return err
	}
	slog.Info("tree imported",
		"name", stored.Name,
		"checksum", fmt.Sprintf("%016x", uint64(stored.Checksum)),
		"saved_at", stored.SavedAt.Format(time.RFC3339))
	return nil
}

func treesCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := db.TreeRepository()
	if name := c.String("delete"); name != "" {
		if err := repo.DeleteTree(c.Context, name); err != nil {
			return err
		}
		slog.Info("tree deleted", "name", name)
		return nil
	}

	names, err := repo.ListTrees(c.Context)
	if err != nil {
		return err
	}
	out := c.App.Writer
	for _, name := range names {
		stored, err := repo.LoadTree(c.Context, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%016x\t%s\n", name, uint64(stored.Checksum), stored.SavedAt.Format(time.RFC3339))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Bool("merchant") {
		cfg.Request.MerchantAuthenticated = true
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	root, err := resolveTree(c.Context, c.String("tree-file"), cfg, db.TreeRepository().LoadTree)
	if err != nil {
		return err
	}

	snap := index.Build(root, 1, cfg.Search.HomeNodeID, index.WithThreshold(cfg.Search.FuzzyThreshold))
	aggregator, err := db.NewAggregator()
	if err != nil {
		return err
	}

	results := aggregator.Search(c.Context, snap, query, cfg.RequestContext())
	printGroups(c.App.Writer, search.Group(results, nil))
	return nil
}

func recentCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	stored, err := db.TreeRepository().LoadTree(c.Context, cfg.Storage.TreeName)
	if err != nil {
		return err
	}
	snap := index.Build(stored.Root, 1, cfg.Search.HomeNodeID)

	out := c.App.Writer
	fmt.Fprintln(out, "Recently visited:")
	printResults(out, snap.Recent)
	fmt.Fprintln(out, "Frequently visited:")
	printResults(out, snap.Frequent)
	return nil
}

func interactiveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cfg.PipelineOptions()

	if addr := c.String("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		collector := metrics.NewCollector(reg)
		opts = append(opts, pipeline.WithMonitor(collector), pipeline.WithSearchMonitor(collector))

		srv := &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "err", err)
			}
		}()
		defer srv.Close()
		slog.Info("serving metrics", "addr", addr)
	}

	watchPath := c.String("watch")
	root, err := resolveTree(ctx, watchPath, cfg, db.TreeRepository().LoadTree)
	if err != nil {
		return err
	}
	opts = append(opts, pipeline.WithTree(root))

	p, err := db.NewPipeline(opts...)
	if err != nil {
		return err
	}
	defer p.Release()

	out := c.App.Writer
	cancel := p.Subscribe(func(pub pipeline.Publication) {
		fmt.Fprintf(out, "[cycle %d, tree v%d] %q\n", pub.Cycle, pub.TreeVersion, pub.Query)
		printGroups(out, pub.Groups)
	})
	defer cancel()

	if watchPath != "" {
		w, err := treefile.NewWatcher(watchPath, func(root *core.NavigationNode) {
			if err := p.SetTree(root); err != nil {
				slog.Warn("tree update rejected", "err", err)
			}
		})
		if err != nil {
			return err
		}
		defer w.Close()
		go w.Run(ctx)
	}

	return readQueries(ctx, c.App.Reader, p)
}

// readQueries feeds each input line to the pipeline as the full search text.
func readQueries(ctx context.Context, r io.Reader, p *pipeline.Pipeline) error {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errs <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				p.CommitPending()
				p.Flush()
				return <-errs
			}
			p.Input(line)
		}
	}
}

// resolveTree loads path when set and falls back to the configured stored tree.
func resolveTree(ctx context.Context, path string, cfg *config.Config, load func(context.Context, string) (*core.StoredTree, error)) (*core.NavigationNode, error) {
	if path != "" {
		return treefile.Load(path)
	}
	stored, err := load(ctx, cfg.Storage.TreeName)
	if err != nil {
		return nil, fmt.Errorf("loading tree %q: %w", cfg.Storage.TreeName, err)
	}
	return stored.Root, nil
}

func printGroups(w io.Writer, groups []core.ResultGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "  (no results)")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s\n", g.Title)
		printResults(w, g.Results)
	}
}

func printResults(w io.Writer, results []core.SearchResult) {
	for _, r := range results {
		line := r.Title
		if len(r.Breadcrumbs) > 0 {
			line = strings.Join(r.Breadcrumbs, " > ")
		}
		fmt.Fprintf(w, "  %-50s %s\n", line, r.URL)
		if r.Description != "" {
			fmt.Fprintf(w, "      %s\n", r.Description)
		}
	}
}
