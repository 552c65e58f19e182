package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/liangcht/lunarcal-api/internal/calendar"
	"github.com/liangcht/lunarcal-api/internal/dataset"
)

var termsCmd = &cobra.Command{
	Use:   "terms <year>",
	Short: "List the 24 solar terms of a Gregorian year",
	Args:  cobra.ExactArgs(1),
	RunE:  runTerms,
}

func init() {
	rootCmd.AddCommand(termsCmd)
}

func runTerms(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[0])
	}
	if year < dataset.MinYear+1 || year > dataset.MaxYear {
		return fmt.Errorf("year %d out of range [%d, %d]", year, dataset.MinYear+1, dataset.MaxYear)
	}

	terms := calendar.YearTerms(year)

	if jsonOutput() {
		return json.NewEncoder(os.Stdout).Encode(terms)
	}

	for _, term := range terms {
		fmt.Printf("%04d-%02d-%02d  %s\n", year, term.Month, term.Day, term.Name)
	}
	return nil
}
