// Command import seeds the SQLite lunar table.
//
// Usage:
//
//	go run ./cmd/import -db data/lunarcal.db
//	go run ./cmd/import -db data/lunarcal.db -csv custom_table.csv
//
// Without -csv the embedded 1890-2100 reference dataset is used. The
// import upserts by year, so re-running it refreshes existing rows.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/liangcht/lunarcal-api/internal/database"
	"github.com/liangcht/lunarcal-api/internal/dataset"
)

func main() {
	dbPath := flag.String("db", "data/lunarcal.db", "Path to SQLite database")
	csvPath := flag.String("csv", "", "Optional CSV file to import instead of the embedded dataset")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*dbPath, *csvPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(dbPath, csvPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	rows, err := loadRows(csvPath)
	if err != nil {
		return err
	}
	logger.Info("loaded lunar year records",
		slog.Int("years", len(rows)),
		slog.Int("first", rows[0].Year),
		slog.Int("last", rows[len(rows)-1].Year),
	)

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if err := db.UpsertYearRecords(ctx, rows); err != nil {
		return fmt.Errorf("upsert year records: %w", err)
	}

	count, err := db.CountYears(ctx)
	if err != nil {
		return fmt.Errorf("count years: %w", err)
	}

	logger.Info("imported lunar table",
		slog.Int("rows", count),
		slog.Duration("elapsed", time.Since(startTime)),
	)
	return nil
}

// loadRows reads year records from a CSV file, or from the embedded
// dataset when path is empty.
func loadRows(path string) ([]database.LunarYear, error) {
	if path == "" {
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
		return rows, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV: %w", err)
	}
	defer f.Close()

	raw, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("CSV %s has no data rows", path)
	}

	// Skip the year,leap_month,epoch_month,epoch_day,month_bits header.
	var rows []database.LunarYear
	for i, rec := range raw[1:] {
		if len(rec) != 5 {
			return nil, fmt.Errorf("row %d: %d fields, want 5", i+2, len(rec))
		}
		vals := make([]int, 5)
		for j, s := range rec {
			vals[j], err = strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row %d field %d: %w", i+2, j+1, err)
			}
		}
		if vals[4] < 0 || vals[4] > 0xFFFF {
			return nil, fmt.Errorf("row %d: month bits %d exceed 16 bits", i+2, vals[4])
		}
		rows = append(rows, database.LunarYear{
			Year:       vals[0],
			LeapMonth:  vals[1],
			EpochMonth: vals[2],
			EpochDay:   vals[3],
			MonthBits:  uint16(vals[4]),
		})
	}
	return rows, nil
}
