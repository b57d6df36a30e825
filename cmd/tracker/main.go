package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/doshyw/celeste-progression/internal/config"
	"github.com/doshyw/celeste-progression/internal/logger"
	"github.com/doshyw/celeste-progression/internal/tracker"
	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/options"
	"github.com/doshyw/celeste-progression/pkg/rules"
)

func main() {
	optionsPath := flag.String("options", "", "player options YAML or JSON (defaults apply when omitted)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go somewhere when
	// LOG_FILE names a file.
	log := slog.New(slog.DiscardHandler)
	if cfg.LogFile != "" {
		var closeLog func() error
		log, closeLog, err = logger.Setup(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer closeLog()
	}

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	opts := options.Defaults()
	if *optionsPath != "" {
		opts, err = options.LoadFile(*optionsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load options: %v\n", err)
			os.Exit(1)
		}
	}

	session, err := tracker.NewSession(cat, opts, rules.PlayerID(cfg.PlayerID), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start tracker: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewTrackerUI(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
