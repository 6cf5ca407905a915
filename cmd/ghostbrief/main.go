// Command ghostbrief runs the intelligence signal pipeline from the
// terminal.
//
// Usage:
//
//	ghostbrief              Show help
//	ghostbrief run          Fetch feeds, annotate, filter, store, report
//	ghostbrief fetch        Fetch feeds and list the documents
//	ghostbrief stats        Recent batch statistics from the store
package main

import (
	"fmt"
	"os"
)

const usage = `ghostbrief: intelligence signal pipeline CLI

Usage:
  ghostbrief <command> [flags]

Commands:
  run      Fetch configured feeds, annotate, run the quality filter,
           persist the results, and print the report
  fetch    Fetch configured feeds and list the documents, nothing else
  stats    Recent batch statistics and rejection breakdown

Environment:
  GHOSTBRIEF_CONFIG   Path to the YAML config file (optional)

Run 'ghostbrief <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "run":
		runPipeline()
	case "fetch":
		runFetch()
	case "stats":
		runStats()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "ghostbrief: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
