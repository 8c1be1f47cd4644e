package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ward-insights/postcode-cli/internal/enrich"
	"github.com/ward-insights/postcode-cli/pkg/postcodes"
)

var (
	enrichColumn    string
	enrichDelay     float64
	enrichBatchSize int
	enrichSheet     string
)

func runEnrich(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inputPath, outputPath := args[0], args[1]

	// Flags win over config; unset flags fall back to configured values.
	if !cmd.Flags().Changed("postcode-column") {
		enrichColumn = cfg.Lookup.PostcodeColumn
	}
	if !cmd.Flags().Changed("delay") {
		enrichDelay = cfg.Lookup.DelaySecs
	}
	if !cmd.Flags().Changed("batch-size") {
		enrichBatchSize = cfg.API.BatchSize
	}
	if enrichDelay < 0 {
		return eris.New("delay must not be negative")
	}
	if enrichBatchSize < 1 || enrichBatchSize > postcodes.MaxBatchSize {
		return eris.Errorf("batch size must be between 1 and %d", postcodes.MaxBatchSize)
	}

	client := newClient()

	p := enrich.New(client)
	summary, err := p.Run(ctx, enrich.Options{
		InputPath:      inputPath,
		OutputPath:     outputPath,
		PostcodeColumn: enrichColumn,
		SheetName:      enrichSheet,
	})
	if err != nil {
		return eris.Wrap(err, "enrich")
	}

	fmt.Printf("Looked up %d/%d postcodes across %d rows (%d batch requests); wrote %s\n",
		summary.Matched, summary.Queried, summary.Rows, summary.Batches, outputPath)
	return nil
}

// newClient builds the postcodes.io client from config and flags.
func newClient() postcodes.Client {
	return postcodes.NewClient(
		postcodes.WithBaseURL(cfg.API.BaseURL),
		postcodes.WithUserAgent(cfg.API.UserAgent),
		postcodes.WithBatchSize(enrichBatchSize),
		postcodes.WithDelay(time.Duration(enrichDelay*float64(time.Second))),
		postcodes.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second}),
	)
}

func init() {
	rootCmd.Flags().StringVar(&enrichColumn, "postcode-column", "postcode", "name of the column containing postcodes")
	rootCmd.Flags().Float64Var(&enrichDelay, "delay", 0.1, "delay between API requests in seconds")
	rootCmd.Flags().IntVar(&enrichBatchSize, "batch-size", postcodes.MaxBatchSize, "postcodes per batch request (max 100)")
	rootCmd.Flags().StringVar(&enrichSheet, "sheet", "", "worksheet name to read (xlsx input only; default first sheet)")
}
