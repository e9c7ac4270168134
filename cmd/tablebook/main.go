package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tablebook/internal/api"
	"tablebook/internal/config"
	"tablebook/internal/database"
	"tablebook/internal/database/repository"
	"tablebook/internal/logging"
	"tablebook/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	var sources tui.Sources
	if cfg.API.BaseURL != "" {
		client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
		sources = tui.Sources{
			Reservations: client.Reservations(),
			Reviews:      client.Reviews(),
			Updates:      client.Updates(),
		}
		logger.Info().Str("base_url", cfg.API.BaseURL).Msg("using remote API")
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			log.Fatalf("mkdir db dir: %v", err)
		}
		if err := database.RunMigrations(cfg.Database.Path); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()

		if err := database.SeedDemo(ctx, db, cfg.Session.UserID); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}

		sources = tui.Sources{
			Reservations: repository.NewReservationRepo(db),
			Reviews:      repository.NewReviewRepo(db),
			Updates:      repository.NewUpdateRepo(db),
		}
		logger.Info().Str("path", cfg.Database.Path).Msg("using local store")
	}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logger.Warn().Err(err).Msg("using local timezone due to load failure")
		loc = time.Local
	}

	session := tui.Session{UserID: cfg.Session.UserID}
	p := tea.NewProgram(tui.New(ctx, cfg, sources, session, logger, loc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
