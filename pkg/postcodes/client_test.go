package postcodes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"SW1A 1AA", "SW1A1AA"},
		{" sw1a 1aa ", "SW1A1AA"},
		{"EH1  1YZ", "EH11YZ"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Normalize(tt.in))
	}
}

func TestBatchLookup_MixedResults(t *testing.T) {
	var gotBody struct {
		Postcodes []string `json:"postcodes"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/postcodes", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": 200,
			"result": [
				{"query": "SW1A1AA", "result": {
					"postcode": "SW1A 1AA",
					"admin_ward": "St James's",
					"admin_district": "Westminster",
					"parliamentary_constituency": "Cities of London and Westminster",
					"region": "London",
					"country": "England",
					"latitude": 51.501009,
					"longitude": -0.141588
				}},
				{"query": "ZZ999ZZ", "result": null}
			]
		}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithDelay(0))

	results, err := c.BatchLookup(context.Background(), []string{"SW1A 1AA", "", "ZZ99 9ZZ"})
	require.NoError(t, err)

	// Empty entries are dropped before the payload.
	assert.Equal(t, []string{"SW1A1AA", "ZZ999ZZ"}, gotBody.Postcodes)

	require.Len(t, results, 2)
	match := results["SW1A1AA"]
	require.NotNil(t, match)
	assert.Equal(t, "SW1A 1AA", match.Postcode)
	assert.Equal(t, "St James's", match.AdminWard)
	assert.Equal(t, "Westminster", match.AdminDistrict)
	assert.Equal(t, "Cities of London and Westminster", match.ParliamentaryConstituency)
	assert.Equal(t, "London", match.Region)
	assert.Equal(t, "England", match.Country)
	require.NotNil(t, match.Latitude)
	assert.InDelta(t, 51.501009, *match.Latitude, 0.0001)
	require.NotNil(t, match.Longitude)
	assert.InDelta(t, -0.141588, *match.Longitude, 0.0001)

	// Not found: key present, value nil.
	missing, ok := results["ZZ999ZZ"]
	assert.True(t, ok)
	assert.Nil(t, missing)
}

func TestBatchLookup_AllEmptySkipsRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithDelay(0))

	results, err := c.BatchLookup(context.Background(), []string{"", "   ", ""})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, requests)
}

func TestBatchLookup_OverLimit(t *testing.T) {
	c := NewClient(WithDelay(0))

	big := make([]string, MaxBatchSize+1)
	for i := range big {
		big[i] = "SW1A 1AA"
	}

	_, err := c.BatchLookup(context.Background(), big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestBatchLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithDelay(0))

	_, err := c.BatchLookup(context.Background(), []string{"SW1A 1AA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequest))
	assert.Contains(t, err.Error(), "status 503")
}

func TestBatchLookup_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `{"status": 200, "result": []}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithDelay(0), WithUserAgent("wardlookup-test/9.9"))

	_, err := c.BatchLookup(context.Background(), []string{"SW1A 1AA"})
	require.NoError(t, err)
	assert.Equal(t, "wardlookup-test/9.9", gotUA)
}
