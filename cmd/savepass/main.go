package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/savepass/internal/config"
	"github.com/jask/savepass/internal/service"
	"github.com/jask/savepass/internal/tui"
)

func main() {
	reset := flag.Bool("reset", false, "delete every saved login and exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()
	logger.Info("starting", "backend", cfg.Storage.Backend, "sealed", cfg.Storage.Seal, "locale", cfg.UI.Locale)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()

	if *reset {
		maintenance := &service.MaintenanceService{Store: store}
		if err := maintenance.Reset(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
		logger.Info("logins reset")
		fmt.Println("all saved logins removed")
		return
	}

	logins := &service.LoginService{Store: store, Logger: logger}

	p := tea.NewProgram(tui.New(ctx, cfg, tui.Services{Logins: logins}, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
