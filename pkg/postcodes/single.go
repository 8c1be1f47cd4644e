package postcodes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

// singleResponse is the JSON envelope of GET /postcodes/{postcode}.
type singleResponse struct {
	Status int     `json:"status"`
	Result *Result `json:"result"`
}

// Lookup looks up a single postcode. An empty input or a 404 from the API
// yields (nil, nil): not found is not an error.
func (c *client) Lookup(ctx context.Context, postcode string) (*Result, error) {
	normalized := Normalize(postcode)
	if normalized == "" {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "postcodes: rate limit")
	}

	reqURL := c.baseURL + "/postcodes/" + url.PathEscape(normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "postcodes: build lookup request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(ErrRequest, "lookup %s: %v", normalized, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Wrapf(ErrRequest, "lookup %s returned status %d", normalized, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "postcodes: read lookup response")
	}

	var parsed singleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "postcodes: parse lookup response")
	}

	return parsed.Result, nil
}
