package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ward-insights/postcode-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wardlookup <input-file> <output-file>",
	Short: "Enrich a spreadsheet of UK postcodes with administrative geography",
	Long: "Reads postcodes from a spreadsheet (.xlsx or .csv), looks up ward, district,\n" +
		"constituency, region, country, and coordinates via the postcodes.io batch API,\n" +
		"and writes an augmented spreadsheet.",
	Args: cobra.ExactArgs(2),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: runEnrich,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
