package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hellothere012/ghostbrief/internal/config"
	"github.com/hellothere012/ghostbrief/internal/feeds"
	"github.com/hellothere012/ghostbrief/internal/logging"
)

// runFetch pulls the configured feeds and lists what came back, without
// filtering or persistence. Useful for checking feed health and new source
// configs before a full run.
func runFetch() {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config (default: $GHOSTBRIEF_CONFIG)")
	limit := fs.Int("n", 20, "max documents to list (0 = all)")
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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fetcher := feeds.NewFetcher(cfg.FetchTimeout)
	docs, err := fetcher.FetchAll(ctx, cfg.Sources)
	if err != nil {
		logging.Fatal("fetch aborted", "error", err)
	}

	fmt.Printf("fetched %d documents from %d sources\n\n", len(docs), len(cfg.Sources))
	for i, doc := range docs {
		if *limit > 0 && i >= *limit {
			fmt.Printf("... and %d more\n", len(docs)-*limit)
			break
		}
		fmt.Printf("%3d. [%s] %s\n", i+1, doc.Source.Name, doc.Title)
	}
}
