package database

// migrationsSQL contains all database migrations, applied in order by
// version number. Each migration should be idempotent.
var migrationsSQL = map[int]string{
	1: migrationV1LunarYears,
}

// migrationV1LunarYears creates the lunar year table.
//
// One row per supported Gregorian year, carrying the packed reference
// data the conversion engine decodes at runtime:
//
//   - leap_month: 0 when the lunar year has no leap month, else 1-12
//   - epoch_month/epoch_day: Gregorian date of lunar month 1 day 1
//   - month_bits: 16-bit month-length mask, most significant bit first
//
// The table is seeded by cmd/import and read once at server startup;
// nothing writes to it while the API is serving.
const migrationV1LunarYears = `
CREATE TABLE IF NOT EXISTS lunar_years (
    year INTEGER PRIMARY KEY,

    leap_month INTEGER NOT NULL CHECK (leap_month BETWEEN 0 AND 12),
    epoch_month INTEGER NOT NULL CHECK (epoch_month BETWEEN 1 AND 12),
    epoch_day INTEGER NOT NULL CHECK (epoch_day BETWEEN 1 AND 31),
    month_bits INTEGER NOT NULL CHECK (month_bits BETWEEN 0 AND 65535),

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`
