package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tatianab/spirit-tracker/internal/config"
	"github.com/tatianab/spirit-tracker/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.Open(ctx, cfg)
	if err != nil {
		fmt.Printf("Error opening tracker: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		app.Close()
		os.Exit(1)
	}
}
