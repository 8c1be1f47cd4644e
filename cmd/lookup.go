package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ward-insights/postcode-cli/pkg/postcodes"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <postcode>",
	Short: "Look up a single postcode and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client := postcodes.NewClient(
			postcodes.WithBaseURL(cfg.API.BaseURL),
			postcodes.WithUserAgent(cfg.API.UserAgent),
			postcodes.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second}),
		)

		result, err := client.Lookup(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "lookup")
		}
		if result == nil {
			return eris.Errorf("postcode %q not found", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
