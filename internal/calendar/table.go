package calendar

import "fmt"

// monthBitsWidth is the width of the packed month-length mask. Month
// lengths are read from the MOST significant bit down: bit 15 is lunar
// month 1, bit 14 is lunar month 2, and so on. A set bit means a long
// month (30 days), a clear bit a short month (29 days). Reading in the
// wrong order shifts every derived date by roughly a month, so the
// decode below is the one place this convention lives.
const monthBitsWidth = 16

// YearRecord is the packed table entry for one lunar year.
type YearRecord struct {
	// LeapMonth is 0 when the year has no leap month, otherwise 1-12
	// naming the month that repeats.
	LeapMonth int

	// EpochMonth and EpochDay give the Gregorian date (month 1-12) of
	// that lunar year's first day (month 1, day 1).
	EpochMonth int
	EpochDay   int

	// MonthBits is the packed month-length mask described above. Only
	// the first 12 bits are meaningful, or 13 when LeapMonth is set.
	MonthBits uint16
}

// YearDays is the decoded shape of one lunar year.
type YearDays struct {
	Total  int   // total days in the lunar year
	Months []int // per-month day counts, each 29 or 30; 12 or 13 entries
}

// Table holds the per-year lunar records for a contiguous range of
// Gregorian years. It is immutable after construction.
type Table struct {
	minYear int
	records []YearRecord
}

// NewTable builds a Table whose first record describes minYear and whose
// records cover consecutive years from there.
func NewTable(minYear int, records []YearRecord) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("lunar table requires at least one year record")
	}
	t := &Table{
		minYear: minYear,
		records: make([]YearRecord, len(records)),
	}
	copy(t.records, records)
	return t, nil
}

// MinYear returns the first year the table covers.
func (t *Table) MinYear() int { return t.minYear }

// MaxYear returns the last year the table covers.
func (t *Table) MaxYear() int { return t.minYear + len(t.records) - 1 }

// Record returns the packed entry for a year, or a *RangeError when the
// year falls outside the table.
func (t *Table) Record(year int) (YearRecord, error) {
	if year < t.MinYear() || year > t.MaxYear() {
		return YearRecord{}, &RangeError{Year: year, Min: t.MinYear(), Max: t.MaxYear()}
	}
	return t.records[year-t.minYear], nil
}

// LeapMonth returns the leap month index for a lunar year, 0 when the
// year has none.
func (t *Table) LeapMonth(year int) (int, error) {
	rec, err := t.Record(year)
	if err != nil {
		return 0, err
	}
	return rec.LeapMonth, nil
}

// YearDays decodes a year's month-length mask into per-month day counts
// and their sum.
func (t *Table) YearDays(year int) (YearDays, error) {
	rec, err := t.Record(year)
	if err != nil {
		return YearDays{}, err
	}

	months := 12
	if rec.LeapMonth > 0 {
		months = 13
	}

	yd := YearDays{Months: make([]int, 0, months)}
	for i := 0; i < months; i++ {
		days := 29
		if rec.MonthBits>>(monthBitsWidth-1-i)&1 == 1 {
			days = 30
		}
		yd.Months = append(yd.Months, days)
		yd.Total += days
	}
	return yd, nil
}
