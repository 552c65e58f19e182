package dataset

import (
	"testing"

	"github.com/liangcht/lunarcal-api/internal/calendar"
)

func TestRecords(t *testing.T) {
	recs, err := Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}

	if want := MaxYear - MinYear + 1; len(recs) != want {
		t.Fatalf("len(recs) = %d, want %d", len(recs), want)
	}

	tests := []struct {
		year int
		want calendar.YearRecord
	}{
		{1890, calendar.YearRecord{LeapMonth: 2, EpochMonth: 1, EpochDay: 21, MonthBits: 22184}},
		{2023, calendar.YearRecord{LeapMonth: 2, EpochMonth: 1, EpochDay: 22, MonthBits: 19880}},
		{2033, calendar.YearRecord{LeapMonth: 11, EpochMonth: 1, EpochDay: 31, MonthBits: 19176}},
	}
	for _, tt := range tests {
		got := recs[tt.year-MinYear]
		if got != tt.want {
			t.Errorf("record %d = %+v, want %+v", tt.year, got, tt.want)
		}
	}
}

func TestTable(t *testing.T) {
	table, err := Table()
	if err != nil {
		t.Fatalf("Table: %v", err)
	}

	if table.MinYear() != MinYear || table.MaxYear() != MaxYear {
		t.Errorf("table range = [%d, %d], want [%d, %d]",
			table.MinYear(), table.MaxYear(), MinYear, MaxYear)
	}

	if _, err := table.Record(MinYear); err != nil {
		t.Errorf("Record(MinYear): %v", err)
	}
	if _, err := table.Record(MaxYear); err != nil {
		t.Errorf("Record(MaxYear): %v", err)
	}
	if _, err := table.Record(MaxYear + 1); err == nil {
		t.Error("Record(MaxYear+1): expected error")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"header only", "year,leap_month,epoch_month,epoch_day,month_bits\n"},
		{"short row", "year,leap_month,epoch_month,epoch_day,month_bits\n1890,2,1,21\n"},
		{"non-numeric", "year,leap_month,epoch_month,epoch_day,month_bits\n1890,x,1,21,22184\n"},
		{"wrong start year", "year,leap_month,epoch_month,epoch_day,month_bits\n1900,2,1,21,22184\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse([]byte(tt.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
