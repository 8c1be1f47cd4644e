package postcodes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
)

// batchResponse is the JSON envelope of POST /postcodes.
type batchResponse struct {
	Status int         `json:"status"`
	Result []batchItem `json:"result"`
}

// batchItem pairs a queried postcode with its result, null when unmatched.
type batchItem struct {
	Query  string  `json:"query"`
	Result *Result `json:"result"`
}

// BatchLookup looks up at most MaxBatchSize postcodes in a single request.
// Empty and whitespace-only entries are dropped from the payload; if
// nothing remains, no request is made and an empty map is returned.
func (c *client) BatchLookup(ctx context.Context, postcodes []string) (map[string]*Result, error) {
	if len(postcodes) > MaxBatchSize {
		return nil, eris.Errorf("postcodes: batch size %d exceeds limit %d", len(postcodes), MaxBatchSize)
	}

	queries := make([]string, 0, len(postcodes))
	for _, pc := range postcodes {
		if n := Normalize(pc); n != "" {
			queries = append(queries, n)
		}
	}

	results := make(map[string]*Result, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "postcodes: rate limit")
	}

	payload, err := json.Marshal(map[string][]string{"postcodes": queries})
	if err != nil {
		return nil, eris.Wrap(err, "postcodes: marshal batch payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/postcodes", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "postcodes: build batch request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(ErrRequest, "batch lookup: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Wrapf(ErrRequest, "batch lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "postcodes: read batch response")
	}

	var parsed batchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "postcodes: parse batch response")
	}

	for _, item := range parsed.Result {
		results[Normalize(item.Query)] = item.Result
	}
	return results, nil
}

// LookupAll chunks the non-empty postcodes in order into groups of at most
// the configured batch size and unions the per-chunk results. The limiter
// spaces the requests, so the pause lands between chunks rather than after
// the last one. Any failing chunk aborts the whole run.
func (c *client) LookupAll(ctx context.Context, postcodes []string, progress ProgressFunc) (map[string]*Result, error) {
	queries := make([]string, 0, len(postcodes))
	for _, pc := range postcodes {
		if n := Normalize(pc); n != "" {
			queries = append(queries, n)
		}
	}

	results := make(map[string]*Result, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	totalBatches := (len(queries) + c.batchSize - 1) / c.batchSize
	for i := 0; i < len(queries); i += c.batchSize {
		end := i + c.batchSize
		if end > len(queries) {
			end = len(queries)
		}
		chunk := queries[i:end]
		batchNum := i/c.batchSize + 1

		if progress != nil {
			progress(batchNum, totalBatches, len(chunk))
		}

		chunkResults, err := c.BatchLookup(ctx, chunk)
		if err != nil {
			return nil, eris.Wrapf(err, "postcodes: batch %d/%d", batchNum, totalBatches)
		}
		for k, v := range chunkResults {
			results[k] = v
		}
	}

	return results, nil
}
