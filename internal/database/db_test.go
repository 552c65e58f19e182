package database

import (
	"context"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(DefaultConfig(":memory:"), nil)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

func testYears() []LunarYear {
	return []LunarYear{
		{Year: 2022, LeapMonth: 0, EpochMonth: 2, EpochDay: 1, MonthBits: 44368},
		{Year: 2023, LeapMonth: 2, EpochMonth: 1, EpochDay: 22, MonthBits: 19880},
		{Year: 2024, LeapMonth: 0, EpochMonth: 2, EpochDay: 10, MonthBits: 19296},
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := setupTestDB(t)

	applied, err := db.Migrate(context.Background())
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if applied != 0 {
		t.Errorf("second migrate applied %d migrations, want 0", applied)
	}
}

func TestHealth(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Health(context.Background()); err != nil {
		t.Errorf("health check failed: %v", err)
	}
}

func TestUpsertAndGetYearRecord(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.UpsertYearRecords(ctx, testYears()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.GetYearRecord(ctx, 2023)
	if err != nil {
		t.Fatalf("get year record: %v", err)
	}
	want := LunarYear{Year: 2023, LeapMonth: 2, EpochMonth: 1, EpochDay: 22, MonthBits: 19880}
	if *got != want {
		t.Errorf("record = %+v, want %+v", *got, want)
	}
}

func TestGetYearRecordNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetYearRecord(context.Background(), 1800)
	if err == nil {
		t.Fatal("expected error for missing year")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got: %v", err)
	}
}

func TestUpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.UpsertYearRecords(ctx, testYears()); err != nil {
		t.Fatalf("initial upsert: %v", err)
	}

	update := []LunarYear{
		{Year: 2023, LeapMonth: 3, EpochMonth: 1, EpochDay: 23, MonthBits: 12345},
	}
	if err := db.UpsertYearRecords(ctx, update); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := db.GetYearRecord(ctx, 2023)
	if err != nil {
		t.Fatalf("get year record: %v", err)
	}
	if *got != update[0] {
		t.Errorf("record = %+v, want %+v", *got, update[0])
	}

	count, err := db.CountYears(ctx)
	if err != nil {
		t.Fatalf("count years: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestListYearRecords(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	years := testYears()
	// Upsert out of order; listing must come back sorted by year.
	if err := db.UpsertYearRecords(ctx, []LunarYear{years[2], years[0], years[1]}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.ListYearRecords(ctx)
	if err != nil {
		t.Fatalf("list year records: %v", err)
	}
	if len(got) != len(years) {
		t.Fatalf("got %d records, want %d", len(got), len(years))
	}
	for i, want := range years {
		if got[i] != want {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestYearRange(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, _, err := db.YearRange(ctx); !IsNotFound(err) {
		t.Errorf("empty table: expected not-found error, got: %v", err)
	}

	if err := db.UpsertYearRecords(ctx, testYears()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	min, max, err := db.YearRange(ctx)
	if err != nil {
		t.Fatalf("year range: %v", err)
	}
	if min != 2022 || max != 2024 {
		t.Errorf("range = [%d, %d], want [2022, 2024]", min, max)
	}
}

func TestUpsertRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	bad := []LunarYear{
		{Year: 2023, LeapMonth: 13, EpochMonth: 1, EpochDay: 22, MonthBits: 19880},
	}
	if err := db.UpsertYearRecords(ctx, bad); err == nil {
		t.Fatal("expected constraint error for leap month 13")
	}

	// The failed transaction must not leave partial rows behind.
	count, err := db.CountYears(ctx)
	if err != nil {
		t.Fatalf("count years: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 after rollback", count)
	}
}
