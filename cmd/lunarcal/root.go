package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/liangcht/lunarcal-api/internal/calendar"
	"github.com/liangcht/lunarcal-api/internal/dataset"
)

var rootCmd = &cobra.Command{
	Use:   "lunarcal",
	Short: "Gregorian ⇄ Chinese lunisolar calendar converter",
	Long: "Lunarcal converts dates between the Gregorian and Chinese lunisolar calendars\n" +
		"for years 1890-2100, including stem-branch names, zodiac, and solar terms.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .lunarcal.yaml)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON instead of text")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".lunarcal")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("LUNARCAL")
	viper.AutomaticEnv()

	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// newConverter builds the engine over the embedded reference table.
func newConverter() (*calendar.Converter, error) {
	table, err := dataset.Table()
	if err != nil {
		return nil, fmt.Errorf("load embedded lunar table: %w", err)
	}
	return calendar.NewConverter(table), nil
}

func jsonOutput() bool {
	return viper.GetBool("json")
}
