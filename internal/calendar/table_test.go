package calendar

import (
	"errors"
	"testing"
)

// testRecords is a tiny three-year table for exercising decode and
// range logic without the full dataset: 2022 (common year), 2023 (leap
// month 2), 2024 (common year). Values match the reference table.
var testRecords = []YearRecord{
	{LeapMonth: 0, EpochMonth: 2, EpochDay: 1, MonthBits: 44368},
	{LeapMonth: 2, EpochMonth: 1, EpochDay: 22, MonthBits: 19880},
	{LeapMonth: 0, EpochMonth: 2, EpochDay: 10, MonthBits: 19296},
}

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(2022, testRecords)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestNewTable_Empty(t *testing.T) {
	if _, err := NewTable(2022, nil); err == nil {
		t.Fatal("NewTable(nil) expected error, got nil")
	}
}

func TestTable_Bounds(t *testing.T) {
	table := newTestTable(t)

	if got := table.MinYear(); got != 2022 {
		t.Errorf("MinYear() = %d, want 2022", got)
	}
	if got := table.MaxYear(); got != 2024 {
		t.Errorf("MaxYear() = %d, want 2024", got)
	}
}

func TestTable_Record_OutOfRange(t *testing.T) {
	table := newTestTable(t)

	for _, year := range []int{2021, 2025, 0, -1} {
		_, err := table.Record(year)
		if err == nil {
			t.Errorf("Record(%d) expected error, got nil", year)
			continue
		}
		if !IsOutOfRange(err) {
			t.Errorf("Record(%d) error = %v, want RangeError", year, err)
		}

		var re *RangeError
		if errors.As(err, &re) {
			if re.Code() != OutOfRangeCode {
				t.Errorf("Record(%d) code = %d, want %d", year, re.Code(), OutOfRangeCode)
			}
		}
	}
}

func TestTable_LeapMonth(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		year int
		want int
	}{
		{2022, 0},
		{2023, 2},
		{2024, 0},
	}

	for _, tt := range tests {
		got, err := table.LeapMonth(tt.year)
		if err != nil {
			t.Errorf("LeapMonth(%d) error: %v", tt.year, err)
			continue
		}
		if got != tt.want {
			t.Errorf("LeapMonth(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestTable_YearDays(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		year       int
		wantTotal  int
		wantMonths []int
	}{
		// 44368 = 1010 1101 0101 0000: twelve months read from bit 15 down
		{2022, 355, []int{30, 29, 30, 29, 30, 30, 29, 30, 29, 30, 29, 30}},
		// 19880 = 0100 1101 1010 1000: thirteen months, leap year
		{2023, 384, []int{29, 30, 29, 29, 30, 30, 29, 30, 30, 29, 30, 29, 30}},
		{2024, 354, []int{29, 30, 29, 29, 30, 29, 30, 30, 29, 30, 30, 29}},
	}

	for _, tt := range tests {
		yd, err := table.YearDays(tt.year)
		if err != nil {
			t.Fatalf("YearDays(%d) error: %v", tt.year, err)
		}
		if yd.Total != tt.wantTotal {
			t.Errorf("YearDays(%d).Total = %d, want %d", tt.year, yd.Total, tt.wantTotal)
		}
		if len(yd.Months) != len(tt.wantMonths) {
			t.Fatalf("YearDays(%d) has %d months, want %d", tt.year, len(yd.Months), len(tt.wantMonths))
		}
		for i, want := range tt.wantMonths {
			if yd.Months[i] != want {
				t.Errorf("YearDays(%d).Months[%d] = %d, want %d", tt.year, i, yd.Months[i], want)
			}
		}

		sum := 0
		for _, n := range yd.Months {
			sum += n
		}
		if sum != yd.Total {
			t.Errorf("YearDays(%d): sum of months %d != Total %d", tt.year, sum, yd.Total)
		}
	}
}
