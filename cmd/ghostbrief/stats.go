package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/hellothere012/ghostbrief/internal/config"
	"github.com/hellothere012/ghostbrief/internal/store"
)

// runStats prints recent batch summaries and the rejection breakdown.
func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config (default: $GHOSTBRIEF_CONFIG)")
	limit := fs.Int("n", 10, "number of recent batches to show")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghostbrief: %v\n", err)
		os.Exit(1)
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghostbrief: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	reports, err := st.RecentReports(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghostbrief: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-38s %-20s %8s %9s\n", "report", "started", "signals", "rejected")
	for _, r := range reports {
		fmt.Printf("%-38s %-20s %8d %9d\n",
			r.ID, r.Started.Format("2006-01-02 15:04:05"), r.Signals, r.Rejected)
	}

	counts, err := st.RejectionCounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ghostbrief: %v\n", err)
		os.Exit(1)
	}
	if len(counts) > 0 {
		stages := make([]string, 0, len(counts))
		for stage := range counts {
			stages = append(stages, stage)
		}
		sort.Strings(stages)

		fmt.Println("\nrejections by stage:")
		for _, stage := range stages {
			fmt.Printf("  %-26s %d\n", stage, counts[stage])
		}
	}
}
