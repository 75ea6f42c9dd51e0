package main

import (
	"fmt"
	"os"

	"github.com/trackfetch/trackfetch/internal/config"
	"github.com/trackfetch/trackfetch/internal/job"
	"github.com/trackfetch/trackfetch/internal/tui"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	sched, err := job.FromSettings(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, sched); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
