package calendar

import "time"

// SolarDate is a Gregorian date used as the common ruler for day
// counting. Month is 0-indexed (0=January); Day is 1-indexed. The
// 1-indexed months of the public API are normalized at the boundary so
// every internal computation shares one convention.
type SolarDate struct {
	Year  int
	Month int
	Day   int
}

// Time returns the date at midnight UTC.
func (d SolarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.UTC)
}

// LunarDate is a date on the lunisolar calendar. Month is 0-indexed and
// may run 0-12 in a leap year; the month equal to the year's leap month
// index is the repeated (leap) month. Day is 1-indexed.
type LunarDate struct {
	Year  int
	Month int
	Day   int
}

// DaysBetween returns the signed day count from a to b on the proleptic
// Gregorian calendar. Both dates are pinned to midnight UTC so the
// difference is always a whole number of days.
func DaysBetween(a, b SolarDate) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

// DaysFromNewYear returns the 0-indexed day offset of a lunar date from
// its year's first day (month 1, day 1). Month is 0-indexed.
func (t *Table) DaysFromNewYear(year, month, day int) (int, error) {
	yd, err := t.YearDays(year)
	if err != nil {
		return 0, err
	}

	days := 0
	for i, n := range yd.Months {
		if i >= month {
			break
		}
		days += n
	}
	return days + day - 1, nil
}

// LunarDateAtOffset walks a lunar year's month lengths to find the date
// at the given day offset from the year's first day. A negative offset
// means a day before the first day and is normalized by adding the full
// year length; callers must ensure such offsets never underflow by more
// than one lunar year, as the walk does not guard against it.
func (t *Table) LunarDateAtOffset(year, offset int) (LunarDate, error) {
	yd, err := t.YearDays(year)
	if err != nil {
		return LunarDate{}, err
	}

	end := offset
	if offset <= 0 {
		end = yd.Total + offset
	}

	sum := 0
	month := 0
	for i, n := range yd.Months {
		sum += n
		if sum > end {
			month = i
			sum -= n
			break
		}
	}

	return LunarDate{Year: year, Month: month, Day: end - sum + 1}, nil
}
