package calendar

// The ten heavenly stems and twelve earthly branches pair into the
// 60-term sexagenary cycle used to name years, months, and days.
var heavenlyStems = [10]string{
	"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸",
}

var earthlyBranches = [12]string{
	"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥",
}

// zodiacAnimals follows the earthly branch cycle, one animal per year.
var zodiacAnimals = [12]string{
	"鼠", "牛", "虎", "兔", "龍", "蛇", "馬", "羊", "猴", "雞", "狗", "豬",
}

// Anchors tying the 1890 epoch into the sexagenary cycle: the year
// before the first 1890 minor cold term sits at cycle position 25
// (己丑), its month at position 12 (丙子), and 1890-01-01 is a 壬午 day
// at position 18, which lies 29219 days before 1970-01-01.
const (
	yearCycleBase   = 25
	monthCycleBase  = 12
	dayCycleBase    = 18
	daysTo1970Epoch = 29219
)

// Cyclical returns the sexagenary name at position n of the 60 cycle.
func Cyclical(n int) string {
	return heavenlyStems[mod(n, 10)] + earthlyBranches[mod(n, 12)]
}

// Zodiac returns the zodiac animal of a stem-branch year. The caller is
// expected to pass the year already adjusted for the start-of-spring
// cutover.
func Zodiac(year int) string {
	return zodiacAnimals[mod(year-1890+yearCycleBase, 12)]
}

// yearName returns the stem-branch name of a year. offset lets callers
// step across the start-of-spring boundary within one Gregorian year.
func yearName(year, offset int) string {
	return Cyclical(year - 1890 + yearCycleBase + offset)
}

// monthName returns the stem-branch name of a month (0-indexed). offset
// steps across the term boundary within the month.
func monthName(year, month, offset int) string {
	return Cyclical((year-1890)*12 + month + monthCycleBase + offset)
}

// dayName returns the stem-branch name of a solar day, counted from the
// 1970-01-01 anchor.
func dayName(d SolarDate) string {
	n := DaysBetween(SolarDate{Year: 1970, Month: 0, Day: 1}, d)
	return Cyclical(n + daysTo1970Epoch + dayCycleBase)
}

// mod is the non-negative remainder; Go's % follows the dividend's sign,
// which would index backwards for dates before an anchor.
func mod(n, m int) int {
	return (n%m + m) % m
}
