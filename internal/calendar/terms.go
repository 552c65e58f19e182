package calendar

import (
	"fmt"
	"time"
)

// TermNames are the 24 solar terms, starting from minor cold (小寒).
// Terms come in pairs per Gregorian month: the even-indexed term of a
// pair opens the month's first half, the odd-indexed one its second.
var TermNames = [24]string{
	"小寒", "大寒", "立春", "雨水", "驚蟄", "春分",
	"清明", "穀雨", "立夏", "小滿", "芒種", "夏至",
	"小暑", "大暑", "立秋", "處暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

// startOfSpringTerm is the index of 立春 in TermNames. The sexagenary
// year rolls over at start of spring rather than January 1.
const startOfSpringTerm = 2

// termEpoch is the instant of the 1890 minor cold term, the fixed base
// point of the approximation.
var termEpoch = time.Date(1890, time.January, 5, 16, 2, 31, 0, time.UTC)

// orbitalPeriodMs is one tropical year in milliseconds.
const orbitalPeriodMs = 31556925974.7

// termOffsetMinutes holds the cumulative minutes from the minor cold
// term to each of the 24 terms of the same tropical year.
var termOffsetMinutes = [24]int{
	0, 21208, 42467, 63836, 85337, 107014, 128867, 150921,
	173149, 195551, 218072, 240693, 263343, 285989, 308563,
	331033, 353350, 375494, 397447, 419210, 440795, 462224,
	483532, 504758,
}

// TermDay returns the UTC day of month on which the term-th solar term
// (0-23, from minor cold) falls in a Gregorian year. The term instant is
// approximated from the fixed epoch and orbital period, which can be off
// by up to about 30 minutes; near a midnight boundary that occasionally
// shifts the reported day by one.
func TermDay(year, term int) int {
	offsetMs := orbitalPeriodMs*float64(year-1890) + float64(termOffsetMinutes[term])*60000
	at := termEpoch.Add(time.Duration(offsetMs * float64(time.Millisecond)))
	return at.UTC().Day()
}

// Term is one solar term placed in a Gregorian year.
type Term struct {
	Index int    `json:"index"` // 0-23, from minor cold
	Name  string `json:"name"`
	Month int    `json:"month"` // Gregorian month, 1-12
	Day   int    `json:"day"`
}

// YearTerms returns all 24 solar terms of a Gregorian year in order.
// Term pairs 2i and 2i+1 both fall in month i+1.
func YearTerms(year int) []Term {
	terms := make([]Term, 0, len(TermNames))
	for i, name := range TermNames {
		terms = append(terms, Term{
			Index: i,
			Name:  name,
			Month: i/2 + 1,
			Day:   TermDay(year, i),
		})
	}
	return terms
}

// termTable maps a "dMMDD" key to a term name, covering the even-indexed
// term of each month pair. These are the month-opening terms the
// conversion surfaces on matching solar dates.
type termTable map[string]string

// dayKey formats a 0-indexed month and a day as a term table key.
func dayKey(month, day int) string {
	return fmt.Sprintf("d%02d%02d", month+1, day)
}

func yearTermTable(year int) termTable {
	table := make(termTable, len(TermNames)/2)
	for i := 0; i < len(TermNames); i += 2 {
		table[dayKey(i/2, TermDay(year, i))] = TermNames[i]
	}
	return table
}
