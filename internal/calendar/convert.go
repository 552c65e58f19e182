// Package calendar converts between Gregorian and Chinese lunisolar
// dates and derives sexagenary names, zodiac animals, and solar terms.
package calendar

import "sync"

// Chinese numerals for lunar month and day display names.
var monthNumerals = [12]string{
	"正", "二", "三", "四", "五", "六",
	"七", "八", "九", "十", "十一", "十二",
}

var dayNumerals = [31]string{
	"初一", "初二", "初三", "初四", "初五", "初六",
	"初七", "初八", "初九", "初十", "十一", "十二",
	"十三", "十四", "十五", "十六", "十七", "十八",
	"十九", "二十", "廿一", "廿二", "廿三", "廿四",
	"廿五", "廿六", "廿七", "廿八", "廿九", "三十", "卅一",
}

// LunarResult is the full description of a solar date on the lunisolar
// calendar.
type LunarResult struct {
	Zodiac      string `json:"zodiac"`
	GanZhiYear  string `json:"ganzhi_year"`
	GanZhiMonth string `json:"ganzhi_month"`
	GanZhiDay   string `json:"ganzhi_day"`

	// Term is the solar term falling exactly on this date, empty when
	// the date is not a month-opening term day.
	Term string `json:"term,omitempty"`

	LunarYear  int `json:"lunar_year"`
	LunarMonth int `json:"lunar_month"` // 1-indexed month slot; a leap month occupies its own slot
	LunarDay   int `json:"lunar_day"`

	LunarMonthName string `json:"lunar_month_name"`
	LunarDayName   string `json:"lunar_day_name"`

	// LeapMonth is the lunar year's leap month index, 0 when none.
	LeapMonth int `json:"leap_month"`
}

// SolarResult is a Gregorian date, month 1-indexed.
type SolarResult struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Converter converts dates in both directions over one lunar table. It
// memoizes per-year solar term tables; the cache is guarded so a single
// Converter may be shared across goroutines.
type Converter struct {
	table *Table

	mu    sync.RWMutex
	terms map[int]termTable
}

// NewConverter returns a Converter backed by the given table.
func NewConverter(table *Table) *Converter {
	return &Converter{
		table: table,
		terms: make(map[int]termTable),
	}
}

// Table returns the lunar table the converter reads from.
func (c *Converter) Table() *Table { return c.table }

// yearTerms returns the cached month-opening term table for a year,
// computing it on first use.
func (c *Converter) yearTerms(year int) termTable {
	c.mu.RLock()
	table, ok := c.terms[year]
	c.mu.RUnlock()
	if ok {
		return table
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if table, ok = c.terms[year]; ok {
		return table
	}
	table = yearTermTable(year)
	c.terms[year] = table
	return table
}

// SolarToLunar converts a Gregorian date (month 1-12) to its lunisolar
// description. Years run from one past the table minimum through the
// table maximum: dates early in the minimum year belong to a lunar year
// the table cannot describe.
func (c *Converter) SolarToLunar(year, month, day int) (*LunarResult, error) {
	if year < c.table.MinYear()+1 || year > c.table.MaxYear() {
		return nil, &RangeError{Year: year, Min: c.table.MinYear() + 1, Max: c.table.MaxYear()}
	}
	m := month - 1

	terms := c.yearTerms(year)

	// The stem-branch year increments at start of spring, the
	// stem-branch month at the month's opening term.
	springDay := TermDay(year, startOfSpringTerm)
	ganYear := year
	if m > 1 || (m == 1 && day >= springDay) {
		ganYear = year + 1
	}
	ganMonth := m
	if day >= TermDay(year, m*2) {
		ganMonth = m + 1
	}

	ld, err := c.lunarFromSolar(year, m, day)
	if err != nil {
		return nil, err
	}

	leap, err := c.table.LeapMonth(ld.Year)
	if err != nil {
		return nil, err
	}

	// In a leap year the months at and after the leap index display
	// the previous numeral; the leap month itself carries the 閏 marker.
	var name string
	switch {
	case leap > 0 && ld.Month == leap:
		name = "閏" + monthNumerals[ld.Month-1] + "月"
	case leap > 0 && ld.Month > leap:
		name = monthNumerals[ld.Month-1] + "月"
	default:
		name = monthNumerals[ld.Month] + "月"
	}

	return &LunarResult{
		Zodiac:         Zodiac(ganYear),
		GanZhiYear:     yearName(ganYear, 0),
		GanZhiMonth:    monthName(year, ganMonth, 0),
		GanZhiDay:      dayName(SolarDate{Year: year, Month: m, Day: day}),
		Term:           terms[dayKey(m, day)],
		LunarYear:      ld.Year,
		LunarMonth:     ld.Month + 1,
		LunarDay:       ld.Day,
		LunarMonthName: name,
		LunarDayName:   dayNumerals[ld.Day-1],
		LeapMonth:      leap,
	}, nil
}

// lunarFromSolar locates the lunar date enclosing a solar date (month
// 0-indexed): the signed offset from the solar year's lunar epoch picks
// either that lunar year or, when negative, the previous one.
func (c *Converter) lunarFromSolar(year, month, day int) (LunarDate, error) {
	rec, err := c.table.Record(year)
	if err != nil {
		return LunarDate{}, err
	}

	epoch := SolarDate{Year: year, Month: rec.EpochMonth - 1, Day: rec.EpochDay}
	between := DaysBetween(epoch, SolarDate{Year: year, Month: month, Day: day})
	if between == 0 {
		return LunarDate{Year: year, Month: 0, Day: 1}, nil
	}

	lunarYear := year
	if between < 0 {
		lunarYear = year - 1
	}
	return c.table.LunarDateAtOffset(lunarYear, between)
}

// LunarToSolar converts a lunisolar date (month 1-13, where a 13th month
// only occurs in leap years) to the Gregorian calendar. Valid years span
// the whole table.
func (c *Converter) LunarToSolar(year, month, day int) (*SolarResult, error) {
	if year < c.table.MinYear() || year > c.table.MaxYear() {
		return nil, &RangeError{Year: year, Min: c.table.MinYear(), Max: c.table.MaxYear()}
	}

	between, err := c.table.DaysFromNewYear(year, month-1, day)
	if err != nil {
		return nil, err
	}

	rec, err := c.table.Record(year)
	if err != nil {
		return nil, err
	}

	at := SolarDate{Year: year, Month: rec.EpochMonth - 1, Day: rec.EpochDay}.
		Time().AddDate(0, 0, between)
	return &SolarResult{Year: at.Year(), Month: int(at.Month()), Day: at.Day()}, nil
}
