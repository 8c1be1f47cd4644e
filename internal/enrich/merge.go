// Package enrich joins postcode lookup results onto tabular input and
// orchestrates the read-lookup-merge-write pipeline.
package enrich

import (
	"strconv"

	"github.com/ward-insights/postcode-cli/internal/table"
	"github.com/ward-insights/postcode-cli/pkg/postcodes"
)

// Columns are the appended output columns, in their fixed order.
var Columns = []string{
	"admin_ward",
	"admin_district",
	"parliamentary_constituency",
	"region",
	"country",
	"postcode_formatted",
	"latitude",
	"longitude",
}

// Fields extracts the appended column values from a lookup result, in
// Columns order. A nil result (not found or empty postcode) yields empty
// values throughout.
func Fields(r *postcodes.Result) []string {
	if r == nil {
		return make([]string, len(Columns))
	}
	return []string{
		r.AdminWard,
		r.AdminDistrict,
		r.ParliamentaryConstituency,
		r.Region,
		r.Country,
		r.Postcode,
		formatCoord(r.Latitude),
		formatCoord(r.Longitude),
	}
}

func formatCoord(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// Merge appends the lookup columns to every row of tbl, matching each
// row's postcode cell against results by normalized form. Rows are never
// dropped or reordered; the input table is not modified.
func Merge(tbl *table.Table, postcodeCol int, results map[string]*postcodes.Result) *table.Table {
	out := &table.Table{
		Header: append(append([]string{}, tbl.Header...), Columns...),
		Rows:   make([][]string, len(tbl.Rows)),
	}

	width := len(tbl.Header)
	for i := range tbl.Rows {
		// Pad ragged rows so the appended columns line up with the header.
		row := make([]string, 0, width+len(Columns))
		for j := 0; j < width; j++ {
			row = append(row, tbl.Cell(i, j))
		}

		result := results[postcodes.Normalize(tbl.Cell(i, postcodeCol))]
		out.Rows[i] = append(row, Fields(result)...)
	}

	return out
}
