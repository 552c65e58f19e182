package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// LunarYear is one row of the lunar_years table.
type LunarYear struct {
	Year       int    `json:"year"`
	LeapMonth  int    `json:"leap_month"`
	EpochMonth int    `json:"epoch_month"`
	EpochDay   int    `json:"epoch_day"`
	MonthBits  uint16 `json:"month_bits"`
}

// GetYearRecord retrieves the record for a single year.
// Returns ErrNotFound if the year is not in the table.
func (db *DB) GetYearRecord(ctx context.Context, year int) (*LunarYear, error) {
	query := `
		SELECT year, leap_month, epoch_month, epoch_day, month_bits
		FROM lunar_years
		WHERE year = ?
	`

	var ly LunarYear
	err := db.QueryRowContext(ctx, query, year).Scan(
		&ly.Year, &ly.LeapMonth, &ly.EpochMonth, &ly.EpochDay, &ly.MonthBits,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("year %d: %w", year, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get year record: %w", err)
	}

	return &ly, nil
}

// ListYearRecords retrieves every record ordered by year.
func (db *DB) ListYearRecords(ctx context.Context) ([]LunarYear, error) {
	query := `
		SELECT year, leap_month, epoch_month, epoch_day, month_bits
		FROM lunar_years
		ORDER BY year
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list year records: %w", err)
	}
	defer rows.Close()

	var years []LunarYear
	for rows.Next() {
		var ly LunarYear
		if err := rows.Scan(&ly.Year, &ly.LeapMonth, &ly.EpochMonth, &ly.EpochDay, &ly.MonthBits); err != nil {
			return nil, fmt.Errorf("scan year record: %w", err)
		}
		years = append(years, ly)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate year records: %w", err)
	}

	return years, nil
}

// YearRange returns the minimum and maximum years present.
// Returns ErrNotFound when the table is empty.
func (db *DB) YearRange(ctx context.Context) (min, max int, err error) {
	query := `SELECT MIN(year), MAX(year) FROM lunar_years`

	var minNull, maxNull sql.NullInt64
	if err := db.QueryRowContext(ctx, query).Scan(&minNull, &maxNull); err != nil {
		return 0, 0, fmt.Errorf("query year range: %w", err)
	}
	if !minNull.Valid || !maxNull.Valid {
		return 0, 0, fmt.Errorf("lunar_years is empty: %w", ErrNotFound)
	}

	return int(minNull.Int64), int(maxNull.Int64), nil
}

// CountYears returns the number of year records.
func (db *DB) CountYears(ctx context.Context) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lunar_years").Scan(&count); err != nil {
		return 0, fmt.Errorf("count years: %w", err)
	}
	return count, nil
}

// UpsertYearRecords inserts or replaces year records in one transaction.
func (db *DB) UpsertYearRecords(ctx context.Context, years []LunarYear) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO lunar_years (year, leap_month, epoch_month, epoch_day, month_bits)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(year) DO UPDATE SET
				leap_month = excluded.leap_month,
				epoch_month = excluded.epoch_month,
				epoch_day = excluded.epoch_day,
				month_bits = excluded.month_bits,
				updated_at = datetime('now')
		`)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, ly := range years {
			if _, err := stmt.ExecContext(ctx,
				ly.Year, ly.LeapMonth, ly.EpochMonth, ly.EpochDay, ly.MonthBits,
			); err != nil {
				return fmt.Errorf("upsert year %d: %w", ly.Year, err)
			}
		}
		return nil
	})
}
