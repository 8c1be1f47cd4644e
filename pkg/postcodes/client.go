// Package postcodes provides a client for the postcodes.io UK postcode API.
package postcodes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public postcodes.io endpoint. The API is keyless.
	DefaultBaseURL = "https://api.postcodes.io"

	// MaxBatchSize is the documented cap on postcodes per batch request.
	MaxBatchSize = 100

	defaultUserAgent = "wardlookup/1.0"
	defaultDelay     = 100 * time.Millisecond
)

// ErrRequest indicates a transport failure or non-success status from the API.
var ErrRequest = eris.New("postcodes: request failed")

// Client defines the postcode lookup operations.
type Client interface {
	// Lookup looks up a single postcode. Returns (nil, nil) when the
	// postcode is unknown to the API.
	Lookup(ctx context.Context, postcode string) (*Result, error)

	// BatchLookup looks up at most MaxBatchSize postcodes in one request.
	// The returned map is keyed by normalized postcode; a present key with
	// a nil value means the API did not match that postcode.
	BatchLookup(ctx context.Context, postcodes []string) (map[string]*Result, error)

	// LookupAll looks up any number of postcodes, chunked into batch
	// requests with the configured delay between them.
	LookupAll(ctx context.Context, postcodes []string, progress ProgressFunc) (map[string]*Result, error)
}

// ProgressFunc is called once per batch request with the 1-based batch
// number, the total number of batches, and the batch's postcode count.
type ProgressFunc func(batch, totalBatches, size int)

// Result holds the administrative geography for a matched postcode.
// Coordinates are pointers because the API returns null for a handful of
// postcodes without a geographic centre.
type Result struct {
	Postcode                  string   `json:"postcode"`
	Quality                   int      `json:"quality"`
	AdminWard                 string   `json:"admin_ward"`
	AdminDistrict             string   `json:"admin_district"`
	AdminCounty               string   `json:"admin_county"`
	ParliamentaryConstituency string   `json:"parliamentary_constituency"`
	Region                    string   `json:"region"`
	Country                   string   `json:"country"`
	Latitude                  *float64 `json:"latitude"`
	Longitude                 *float64 `json:"longitude"`
}

// Option configures the client.
type Option func(*client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *client) {
		c.userAgent = ua
	}
}

// WithBatchSize sets the chunk size for LookupAll, capped at MaxBatchSize.
func WithBatchSize(n int) Option {
	return func(c *client) {
		if n > 0 && n <= MaxBatchSize {
			c.batchSize = n
		}
	}
}

// WithDelay sets the minimum interval between requests. A non-positive
// delay disables the pause.
func WithDelay(d time.Duration) Option {
	return func(c *client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

type client struct {
	baseURL   string
	userAgent string
	batchSize int
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a postcodes.io client with the given options.
func NewClient(opts ...Option) Client {
	c := &client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		batchSize: MaxBatchSize,
		http:      &http.Client{Timeout: 30 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(defaultDelay), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize strips all spaces from a postcode and uppercases it. The API
// matches on this form regardless of the input's internal spacing.
func Normalize(postcode string) string {
	return strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(postcode, " ", "")))
}
