package calendar_test

import (
	"sync"
	"testing"
	"time"

	"github.com/liangcht/lunarcal-api/internal/calendar"
	"github.com/liangcht/lunarcal-api/internal/dataset"
)

func newConverter(t *testing.T) *calendar.Converter {
	t.Helper()
	table, err := dataset.Table()
	if err != nil {
		t.Fatalf("dataset.Table: %v", err)
	}
	return calendar.NewConverter(table)
}

func TestSolarToLunar_NewYear2023(t *testing.T) {
	conv := newConverter(t)

	res, err := conv.SolarToLunar(2023, 1, 22)
	if err != nil {
		t.Fatalf("SolarToLunar: %v", err)
	}

	if res.LunarYear != 2023 || res.LunarMonth != 1 || res.LunarDay != 1 {
		t.Errorf("lunar date = %d/%d/%d, want 2023/1/1", res.LunarYear, res.LunarMonth, res.LunarDay)
	}
	if res.LunarMonthName != "正月" {
		t.Errorf("LunarMonthName = %q, want 正月", res.LunarMonthName)
	}
	if res.LunarDayName != "初一" {
		t.Errorf("LunarDayName = %q, want 初一", res.LunarDayName)
	}
	if res.LeapMonth != 2 {
		t.Errorf("LeapMonth = %d, want 2", res.LeapMonth)
	}

	// January 22 precedes 立春, so the stem-branch year is still 壬寅.
	if res.GanZhiYear != "壬寅" {
		t.Errorf("GanZhiYear = %q, want 壬寅", res.GanZhiYear)
	}
	if res.Zodiac != "虎" {
		t.Errorf("Zodiac = %q, want 虎", res.Zodiac)
	}
	if res.GanZhiMonth != "癸丑" {
		t.Errorf("GanZhiMonth = %q, want 癸丑", res.GanZhiMonth)
	}
	if res.GanZhiDay != "庚辰" {
		t.Errorf("GanZhiDay = %q, want 庚辰", res.GanZhiDay)
	}
	if res.Term != "" {
		t.Errorf("Term = %q, want empty", res.Term)
	}
}

func TestSolarToLunar_StartOfSpring(t *testing.T) {
	conv := newConverter(t)

	res, err := conv.SolarToLunar(2023, 2, 4)
	if err != nil {
		t.Fatalf("SolarToLunar: %v", err)
	}

	if res.Term != "立春" {
		t.Errorf("Term = %q, want 立春", res.Term)
	}
	// At 立春 the stem-branch year has rolled over to 癸卯.
	if res.GanZhiYear != "癸卯" {
		t.Errorf("GanZhiYear = %q, want 癸卯", res.GanZhiYear)
	}
	if res.Zodiac != "兔" {
		t.Errorf("Zodiac = %q, want 兔", res.Zodiac)
	}
}

func TestSolarToLunar_LeapMonth(t *testing.T) {
	conv := newConverter(t)

	// 2023-03-22 is the first day of the leap second month.
	res, err := conv.SolarToLunar(2023, 3, 22)
	if err != nil {
		t.Fatalf("SolarToLunar: %v", err)
	}

	if res.LunarMonth != 3 || res.LunarDay != 1 {
		t.Errorf("lunar date = %d/%d, want month 3 day 1", res.LunarMonth, res.LunarDay)
	}
	if res.LunarMonthName != "閏二月" {
		t.Errorf("LunarMonthName = %q, want 閏二月", res.LunarMonthName)
	}

	// A month after the leap month keeps its own numeral.
	res, err = conv.SolarToLunar(2023, 5, 1)
	if err != nil {
		t.Fatalf("SolarToLunar: %v", err)
	}
	if res.LunarMonthName != "三月" {
		t.Errorf("LunarMonthName for 2023-05-01 = %q, want 三月", res.LunarMonthName)
	}
}

func TestSolarToLunar_DayBeforeNewYear(t *testing.T) {
	conv := newConverter(t)

	// The day before 2023's lunar New Year belongs to lunar 2022, last
	// day of its twelfth month.
	res, err := conv.SolarToLunar(2023, 1, 21)
	if err != nil {
		t.Fatalf("SolarToLunar: %v", err)
	}

	if res.LunarYear != 2022 || res.LunarMonth != 12 || res.LunarDay != 30 {
		t.Errorf("lunar date = %d/%d/%d, want 2022/12/30", res.LunarYear, res.LunarMonth, res.LunarDay)
	}
	if res.LunarMonthName != "十二月" {
		t.Errorf("LunarMonthName = %q, want 十二月", res.LunarMonthName)
	}
	if res.LunarDayName != "三十" {
		t.Errorf("LunarDayName = %q, want 三十", res.LunarDayName)
	}
	if res.LeapMonth != 0 {
		t.Errorf("LeapMonth = %d, want 0 (lunar 2022 has none)", res.LeapMonth)
	}
}

func TestLunarToSolar_Known(t *testing.T) {
	conv := newConverter(t)

	tests := []struct {
		year, month, day int
		want             calendar.SolarResult
	}{
		{2023, 1, 1, calendar.SolarResult{Year: 2023, Month: 1, Day: 22}},
		{2023, 13, 1, calendar.SolarResult{Year: 2024, Month: 1, Day: 11}},
		{1890, 1, 1, calendar.SolarResult{Year: 1890, Month: 1, Day: 21}},
		{2024, 1, 1, calendar.SolarResult{Year: 2024, Month: 2, Day: 10}},
	}

	for _, tt := range tests {
		res, err := conv.LunarToSolar(tt.year, tt.month, tt.day)
		if err != nil {
			t.Errorf("LunarToSolar(%d, %d, %d): %v", tt.year, tt.month, tt.day, err)
			continue
		}
		if *res != tt.want {
			t.Errorf("LunarToSolar(%d, %d, %d) = %+v, want %+v",
				tt.year, tt.month, tt.day, *res, tt.want)
		}
	}
}

func TestYearRangeValidation(t *testing.T) {
	conv := newConverter(t)

	// Solar→lunar starts one year above the table minimum: early dates
	// of the minimum year fall in a lunar year the table cannot name.
	if _, err := conv.SolarToLunar(1890, 6, 1); !calendar.IsOutOfRange(err) {
		t.Errorf("SolarToLunar(1890) error = %v, want RangeError", err)
	}
	if _, err := conv.SolarToLunar(1891, 6, 1); err != nil {
		t.Errorf("SolarToLunar(1891) unexpected error: %v", err)
	}
	if _, err := conv.SolarToLunar(2101, 1, 1); !calendar.IsOutOfRange(err) {
		t.Errorf("SolarToLunar(2101) error = %v, want RangeError", err)
	}

	// Lunar→solar covers the whole table.
	if _, err := conv.LunarToSolar(1890, 1, 1); err != nil {
		t.Errorf("LunarToSolar(1890) unexpected error: %v", err)
	}
	if _, err := conv.LunarToSolar(1889, 1, 1); !calendar.IsOutOfRange(err) {
		t.Errorf("LunarToSolar(1889) error = %v, want RangeError", err)
	}
	if _, err := conv.LunarToSolar(2101, 1, 1); !calendar.IsOutOfRange(err) {
		t.Errorf("LunarToSolar(2101) error = %v, want RangeError", err)
	}
}

func TestRoundTrip_SampledRange(t *testing.T) {
	conv := newConverter(t)
	table := conv.Table()

	checkDay := func(d time.Time) {
		t.Helper()
		res, err := conv.SolarToLunar(d.Year(), int(d.Month()), d.Day())
		if err != nil {
			t.Fatalf("SolarToLunar(%s): %v", d.Format("2006-01-02"), err)
		}
		back, err := conv.LunarToSolar(res.LunarYear, res.LunarMonth, res.LunarDay)
		if err != nil {
			t.Fatalf("LunarToSolar(%d, %d, %d): %v", res.LunarYear, res.LunarMonth, res.LunarDay, err)
		}
		if back.Year != d.Year() || back.Month != int(d.Month()) || back.Day != d.Day() {
			t.Fatalf("round trip %s → %d/%d/%d → %04d-%02d-%02d",
				d.Format("2006-01-02"), res.LunarYear, res.LunarMonth, res.LunarDay,
				back.Year, back.Month, back.Day)
		}
	}

	// Every day of a few representative years, including leap-month
	// years and both range ends.
	for _, year := range []int{1891, 1900, 1984, 2023, 2033, 2100} {
		for d := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
			checkDay(d)
		}
	}

	// A coarse walk across the full supported range.
	start := time.Date(table.MinYear()+1, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(table.MaxYear(), 12, 31, 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 97) {
		checkDay(d)
	}
}

// Every lunar year's decoded length must equal the day span to the next
// year's epoch, tying the bitmask data to the epoch data.
func TestTableEpochConsistency(t *testing.T) {
	conv := newConverter(t)
	table := conv.Table()

	for year := table.MinYear(); year < table.MaxYear(); year++ {
		yd, err := table.YearDays(year)
		if err != nil {
			t.Fatalf("YearDays(%d): %v", year, err)
		}

		wantMonths := 12
		if leap, _ := table.LeapMonth(year); leap > 0 {
			wantMonths = 13
		}
		if len(yd.Months) != wantMonths {
			t.Errorf("year %d has %d months, want %d", year, len(yd.Months), wantMonths)
		}

		rec, err := table.Record(year)
		if err != nil {
			t.Fatalf("Record(%d): %v", year, err)
		}
		next, err := table.Record(year + 1)
		if err != nil {
			t.Fatalf("Record(%d): %v", year+1, err)
		}

		span := calendar.DaysBetween(
			calendar.SolarDate{Year: year, Month: rec.EpochMonth - 1, Day: rec.EpochDay},
			calendar.SolarDate{Year: year + 1, Month: next.EpochMonth - 1, Day: next.EpochDay},
		)
		if span != yd.Total {
			t.Errorf("year %d: decoded length %d != epoch span %d", year, yd.Total, span)
		}
	}
}

func TestConverter_TermCacheStable(t *testing.T) {
	conv := newConverter(t)

	first, err := conv.SolarToLunar(2023, 2, 4)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := conv.SolarToLunar(2023, 2, 4)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.Term != second.Term {
		t.Errorf("term changed between calls: %q then %q", first.Term, second.Term)
	}
}

func TestConverter_Concurrent(t *testing.T) {
	conv := newConverter(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for year := 2020; year <= 2027; year++ {
				day := calendar.TermDay(year, 2)
				res, err := conv.SolarToLunar(year, 2, day)
				if err != nil {
					t.Errorf("SolarToLunar(%d): %v", year, err)
					return
				}
				if res.Term != "立春" {
					t.Errorf("SolarToLunar(%d, 2, %d): Term = %q, want 立春", year, day, res.Term)
				}
			}
		}(g)
	}
	wg.Wait()
}
