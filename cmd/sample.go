package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ward-insights/postcode-cli/internal/table"
)

// samplePostcodes covers a spread of UK locations, including one per
// home nation, for trying the tool end to end.
var samplePostcodes = [][]string{
	{"SW1A 1AA", "Westminster Parliament"},
	{"M1 1AE", "Manchester City Centre"},
	{"B1 1AA", "Birmingham City Centre"},
	{"EH1 1YZ", "Edinburgh City Centre"},
	{"CF10 1DD", "Cardiff City Centre"},
	{"BT1 1AA", "Belfast City Centre"},
	{"LS1 1AA", "Leeds City Centre"},
	{"L1 1AA", "Liverpool City Centre"},
	{"NE1 1AA", "Newcastle City Centre"},
	{"BS1 1AA", "Bristol City Centre"},
}

var sampleCmd = &cobra.Command{
	Use:   "sample <output-file>",
	Short: "Generate a sample spreadsheet of postcodes for testing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl := &table.Table{
			Header: []string{"postcode", "description"},
			Rows:   samplePostcodes,
		}

		if err := table.Write(tbl, args[0]); err != nil {
			return eris.Wrap(err, "write sample")
		}

		fmt.Printf("Created %s with %d sample postcodes\n", args[0], len(tbl.Rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
