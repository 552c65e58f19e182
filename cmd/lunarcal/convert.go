package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var toLunarCmd = &cobra.Command{
	Use:   "to-lunar [YYYY-MM-DD]",
	Short: "Convert a Gregorian date to the lunisolar calendar",
	Long: "Convert a Gregorian date to the lunisolar calendar, with zodiac,\n" +
		"stem-branch names, and any solar term falling on that day.\n" +
		"Defaults to today when no date is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: runToLunar,
}

var toSolarCmd = &cobra.Command{
	Use:   "to-solar <year> <month> <day>",
	Short: "Convert a lunisolar date to the Gregorian calendar",
	Long: "Convert a lunisolar date to the Gregorian calendar. The month runs 1-13;\n" +
		"a 13th month only exists in years with a leap month.",
	Args: cobra.ExactArgs(3),
	RunE: runToSolar,
}

func init() {
	rootCmd.AddCommand(toLunarCmd)
	rootCmd.AddCommand(toSolarCmd)
}

func runToLunar(cmd *cobra.Command, args []string) error {
	date := time.Now()
	if len(args) == 1 {
		var err error
		date, err = time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
		}
	}

	conv, err := newConverter()
	if err != nil {
		return err
	}

	res, err := conv.SolarToLunar(date.Year(), int(date.Month()), date.Day())
	if err != nil {
		return err
	}

	if jsonOutput() {
		return json.NewEncoder(os.Stdout).Encode(res)
	}

	fmt.Printf("%s → 農曆 %d年%s%s\n",
		date.Format("2006-01-02"), res.LunarYear, res.LunarMonthName, res.LunarDayName)
	fmt.Printf("歲次 %s年 %s月 %s日（%s年）\n",
		res.GanZhiYear, res.GanZhiMonth, res.GanZhiDay, res.Zodiac)
	if res.Term != "" {
		fmt.Printf("節氣 %s\n", res.Term)
	}
	if res.LeapMonth > 0 {
		fmt.Printf("閏%s月\n", monthNumeral(res.LeapMonth))
	}
	return nil
}

func runToSolar(cmd *cobra.Command, args []string) error {
	nums := make([]int, 3)
	for i, a := range args {
		var err error
		nums[i], err = strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid number %q", a)
		}
	}
	year, month, day := nums[0], nums[1], nums[2]
	if month < 1 || month > 13 {
		return fmt.Errorf("month %d out of range 1-13", month)
	}
	if day < 1 || day > 30 {
		return fmt.Errorf("day %d out of range 1-30", day)
	}

	conv, err := newConverter()
	if err != nil {
		return err
	}

	res, err := conv.LunarToSolar(year, month, day)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return json.NewEncoder(os.Stdout).Encode(res)
	}

	fmt.Printf("農曆 %d年%d月%d日 → %04d-%02d-%02d\n",
		year, month, day, res.Year, res.Month, res.Day)
	return nil
}

// monthNumeral formats a 1-indexed lunar month as its Chinese numeral.
func monthNumeral(month int) string {
	numerals := []string{
		"正", "二", "三", "四", "五", "六",
		"七", "八", "九", "十", "十一", "十二",
	}
	if month < 1 || month > len(numerals) {
		return strconv.Itoa(month)
	}
	return numerals[month-1]
}
