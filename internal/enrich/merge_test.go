package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ward-insights/postcode-cli/internal/table"
	"github.com/ward-insights/postcode-cli/pkg/postcodes"
)

func floatPtr(f float64) *float64 { return &f }

func westminster() *postcodes.Result {
	return &postcodes.Result{
		Postcode:                  "SW1A 1AA",
		AdminWard:                 "St James's",
		AdminDistrict:             "Westminster",
		ParliamentaryConstituency: "Cities of London and Westminster",
		Region:                    "London",
		Country:                   "England",
		Latitude:                  floatPtr(51.501009),
		Longitude:                 floatPtr(-0.141588),
	}
}

func TestFields(t *testing.T) {
	got := Fields(westminster())
	assert.Equal(t, []string{
		"St James's",
		"Westminster",
		"Cities of London and Westminster",
		"London",
		"England",
		"SW1A 1AA",
		"51.501009",
		"-0.141588",
	}, got)
}

func TestFieldsNilResult(t *testing.T) {
	got := Fields(nil)
	require.Len(t, got, len(Columns))
	for _, v := range got {
		assert.Empty(t, v)
	}
}

func TestFieldsNilCoordinates(t *testing.T) {
	r := westminster()
	r.Latitude = nil
	r.Longitude = nil

	got := Fields(r)
	assert.Empty(t, got[6])
	assert.Empty(t, got[7])
}

func TestMerge(t *testing.T) {
	tbl := &table.Table{
		Header: []string{"postcode", "description"},
		Rows: [][]string{
			{"SW1A 1AA", "Westminster Parliament"},
			{"ZZ99 9ZZ", "invalid"},
			{"", "blank"},
		},
	}

	results := map[string]*postcodes.Result{
		"SW1A1AA": westminster(),
		"ZZ999ZZ": nil, // queried, not found
	}

	out := Merge(tbl, 0, results)

	// Original table untouched.
	assert.Len(t, tbl.Header, 2)
	assert.Len(t, tbl.Rows[0], 2)

	// Header: original columns first, appended columns after.
	assert.Equal(t, append([]string{"postcode", "description"}, Columns...), out.Header)

	// Row count and order preserved.
	require.Len(t, out.Rows, 3)
	assert.Equal(t, "SW1A 1AA", out.Rows[0][0])
	assert.Equal(t, "invalid", out.Rows[1][1])

	// Matched row carries the lookup fields.
	assert.Equal(t, "Westminster", out.Rows[0][3])
	assert.Equal(t, "51.501009", out.Rows[0][8])

	// Not-found and empty rows get empty appended fields.
	for _, row := range out.Rows[1:] {
		require.Len(t, row, len(out.Header))
		for _, v := range row[2:] {
			assert.Empty(t, v)
		}
	}
}

func TestMergeRaggedRows(t *testing.T) {
	tbl := &table.Table{
		Header: []string{"name", "postcode"},
		Rows: [][]string{
			{"short"}, // missing postcode cell entirely
			{"full", "M1 1AE"},
		},
	}

	results := map[string]*postcodes.Result{
		"M11AE": {Postcode: "M1 1AE", AdminDistrict: "Manchester", Country: "England"},
	}

	out := Merge(tbl, 1, results)
	require.Len(t, out.Rows, 2)

	// Short row is padded before the appended columns.
	assert.Equal(t, len(out.Header), len(out.Rows[0]))
	assert.Equal(t, "", out.Rows[0][1])
	assert.Equal(t, "Manchester", out.Rows[1][3])
}

func TestMergeDuplicatePostcodes(t *testing.T) {
	tbl := &table.Table{
		Header: []string{"postcode"},
		Rows:   [][]string{{"SW1A 1AA"}, {"sw1a1aa"}},
	}

	out := Merge(tbl, 0, map[string]*postcodes.Result{"SW1A1AA": westminster()})
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "Westminster", out.Rows[0][2])
	assert.Equal(t, "Westminster", out.Rows[1][2])
}
