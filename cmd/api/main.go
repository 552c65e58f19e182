// Command api serves the lunisolar calendar HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/liangcht/lunarcal-api/internal/api"
	"github.com/liangcht/lunarcal-api/internal/calendar"
	"github.com/liangcht/lunarcal-api/internal/config"
	"github.com/liangcht/lunarcal-api/internal/database"
	"github.com/liangcht/lunarcal-api/internal/dataset"
	"github.com/liangcht/lunarcal-api/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.Setup(cfg)

	log.Info("starting lunarcal API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	table, err := loadTable(ctx, db, log)
	if err != nil {
		return fmt.Errorf("load lunar table: %w", err)
	}
	log.Info("lunar table loaded",
		slog.Int("min_year", table.MinYear()),
		slog.Int("max_year", table.MaxYear()),
	)

	conv := calendar.NewConverter(table)
	handlers := api.NewHandlers(conv, db, cfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.SetupRoutes(handlers, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen and serve: %w", err)
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// loadTable reads the lunar table from the database, seeding it from
// the embedded reference dataset when empty (fresh deployments).
func loadTable(ctx context.Context, db *database.DB, log *slog.Logger) (*calendar.Table, error) {
	count, err := db.CountYears(ctx)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		log.Info("lunar table empty, seeding from embedded dataset")
		records, err := dataset.Records()
		if err != nil {
			return nil, fmt.Errorf("parse embedded dataset: %w", err)
		}

		rows := make([]database.LunarYear, 0, len(records))
		for i, rec := range records {
			rows = append(rows, database.LunarYear{
				Year:       dataset.MinYear + i,
				LeapMonth:  rec.LeapMonth,
				EpochMonth: rec.EpochMonth,
				EpochDay:   rec.EpochDay,
				MonthBits:  rec.MonthBits,
			})
		}
		if err := db.UpsertYearRecords(ctx, rows); err != nil {
			return nil, fmt.Errorf("seed lunar table: %w", err)
		}
	}

	rows, err := db.ListYearRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("lunar_years table is empty")
	}

	records := make([]calendar.YearRecord, 0, len(rows))
	for i, row := range rows {
		if row.Year != rows[0].Year+i {
			return nil, fmt.Errorf("lunar_years has a gap at year %d", rows[0].Year+i)
		}
		records = append(records, calendar.YearRecord{
			LeapMonth:  row.LeapMonth,
			EpochMonth: row.EpochMonth,
			EpochDay:   row.EpochDay,
			MonthBits:  row.MonthBits,
		})
	}

	return calendar.NewTable(rows[0].Year, records)
}
