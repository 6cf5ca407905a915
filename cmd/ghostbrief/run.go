package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hellothere012/ghostbrief/internal/annotate"
	"github.com/hellothere012/ghostbrief/internal/config"
	"github.com/hellothere012/ghostbrief/internal/feeds"
	"github.com/hellothere012/ghostbrief/internal/logging"
	"github.com/hellothere012/ghostbrief/internal/pipeline"
	"github.com/hellothere012/ghostbrief/internal/report"
	"github.com/hellothere012/ghostbrief/internal/store"
)

// runPipeline executes one full batch: fetch, annotate, filter, persist.
func runPipeline() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config (default: $GHOSTBRIEF_CONFIG)")
	showSignals := fs.Bool("signals", true, "print the ranked signal list")
	dryRun := fs.Bool("dry-run", false, "skip persistence")
	fs.Parse(os.Args[1:])

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "ghostbrief: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal("configuration error", "error", err)
	}

	// Configuration problems are fatal before any document is touched.
	pipe, err := pipeline.New(cfg.Tables, cfg.Thresholds)
	if err != nil {
		logging.Fatal("pipeline configuration error", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fetcher := feeds.NewFetcher(cfg.FetchTimeout)
	docs, err := fetcher.FetchAll(ctx, cfg.Sources)
	if err != nil {
		logging.Fatal("fetch aborted", "error", err)
	}
	logging.Info("fetched documents", "count", len(docs), "sources", len(cfg.Sources))

	if err := annotate.Apply(ctx, annotate.NewHeuristic(), docs); err != nil {
		logging.Fatal("annotation aborted", "error", err)
	}

	out, err := pipe.Run(ctx, docs)
	if err != nil {
		logging.Fatal("batch abandoned", "error", err)
	}

	if !*dryRun {
		st, err := store.New(cfg.DBPath)
		if err != nil {
			logging.Fatal("store error", "error", err)
		}
		defer st.Close()

		if err := st.SaveDocuments(docs); err != nil {
			logging.Error("failed to save documents", "error", err)
		}
		if err := st.SaveOutput(out); err != nil {
			logging.Error("failed to save output", "error", err)
		}
	}

	fmt.Print(report.Render(out.Report))
	if *showSignals && len(out.Passed) > 0 {
		fmt.Println()
		fmt.Print(report.RenderSignals(out.Passed))
	}
}
