// Package dataset ships the 1890-2100 lunar reference table as an
// embedded CSV and parses it into calendar records.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"

	"github.com/liangcht/lunarcal-api/internal/calendar"
)

// The reference table covers Gregorian years 1890 through 2100, one
// record per year.
const (
	MinYear = 1890
	MaxYear = 2100
)

//go:embed lunarinfo.csv
var lunarInfoCSV []byte

var (
	once     sync.Once
	records  []calendar.YearRecord
	parseErr error
)

// Records returns the parsed per-year records, first entry for MinYear.
// The embedded CSV is parsed once; the returned slice must not be
// modified.
func Records() ([]calendar.YearRecord, error) {
	once.Do(func() {
		records, parseErr = parse(lunarInfoCSV)
	})
	return records, parseErr
}

// Table builds a calendar table over the embedded records.
func Table() (*calendar.Table, error) {
	recs, err := Records()
	if err != nil {
		return nil, err
	}
	return calendar.NewTable(MinYear, recs)
}

// parse reads the year,leap_month,epoch_month,epoch_day,month_bits CSV.
// Rows must cover MinYear..MaxYear consecutively.
func parse(data []byte) ([]calendar.YearRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read lunar table csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("lunar table csv has no data rows")
	}

	// Skip the header row.
	rows = rows[1:]
	if want := MaxYear - MinYear + 1; len(rows) != want {
		return nil, fmt.Errorf("lunar table csv has %d rows, want %d", len(rows), want)
	}

	recs := make([]calendar.YearRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) != 5 {
			return nil, fmt.Errorf("row %d: %d fields, want 5", i+1, len(row))
		}

		fields := make([]int, len(row))
		for j, s := range row {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row %d field %d: %w", i+1, j+1, err)
			}
			fields[j] = n
		}

		year, leap, epochMonth, epochDay, bits := fields[0], fields[1], fields[2], fields[3], fields[4]
		if year != MinYear+i {
			return nil, fmt.Errorf("row %d: year %d out of order, want %d", i+1, year, MinYear+i)
		}
		if leap < 0 || leap > 12 {
			return nil, fmt.Errorf("year %d: leap month %d out of range", year, leap)
		}
		if epochMonth < 1 || epochMonth > 12 || epochDay < 1 || epochDay > 31 {
			return nil, fmt.Errorf("year %d: epoch %d-%d invalid", year, epochMonth, epochDay)
		}
		if bits < 0 || bits > 0xFFFF {
			return nil, fmt.Errorf("year %d: month bits %d exceed 16 bits", year, bits)
		}

		recs = append(recs, calendar.YearRecord{
			LeapMonth:  leap,
			EpochMonth: epochMonth,
			EpochDay:   epochDay,
			MonthBits:  uint16(bits),
		})
	}
	return recs, nil
}
