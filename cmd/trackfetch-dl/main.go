package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/trackfetch/trackfetch/internal/config"
	"github.com/trackfetch/trackfetch/internal/job"
	"github.com/trackfetch/trackfetch/internal/model"
)

func main() {
	var (
		urlsFlag     = flag.String("url", "", "Media URL(s) to fetch (comma-separated)")
		formatFlag   = flag.String("format", "mp3", "Output format: mp3, m4a, flac or wav")
		playlistFlag = flag.Bool("playlist", false, "Allow playlist URLs to fetch every item")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		verboseFlag  = flag.Bool("verbose", false, "Show per-stage progress")
	)

	flag.Parse()

	urls := *urlsFlag
	if urls == "" && flag.NArg() > 0 {
		urls = strings.Join(flag.Args(), ",")
	}
	if urls == "" {
		fmt.Println("trackfetch - fetch, identify and tag audio from media URLs")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  trackfetch-dl -url <URL> [options]")
		fmt.Println("  trackfetch-dl <URL> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: trackfetch-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	format, err := model.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *outputFlag != "" {
		settings.OutputRoot = *outputFlag
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	sched, err := job.FromSettings(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	submitted := 0
	for _, url := range strings.Split(urls, ",") {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		id, err := sched.Submit(url, format, *playlistFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", url, err)
			continue
		}
		fmt.Printf("› queued %s\n", id)
		submitted++
	}
	if submitted == 0 {
		fmt.Fprintln(os.Stderr, "No jobs accepted.")
		os.Exit(1)
	}

	go sched.Wait()

	failures := 0
	for ev := range sched.Events() {
		switch ev := ev.(type) {
		case job.ProgressEvent:
			if settings.Verbose {
				fmt.Printf("  %s %d%%\n", ev.JobID, ev.Percent)
			}
		case job.OutcomeEvent:
			if ev.Success {
				fmt.Printf("✓ %s: %s\n", ev.JobID, ev.Filename)
			} else {
				fmt.Printf("✗ %s: %s\n", ev.JobID, ev.ErrorMessage)
				failures++
			}
		}
	}

	fmt.Printf("\nDone: %d/%d succeeded\n", submitted-failures, submitted)
	if failures > 0 {
		os.Exit(1)
	}
}
