package collector

import (
	"context"
	"fmt"
	"time"

	"SRPulse/internal/domain/models"
	"SRPulse/internal/service/ratelimit"
	xhttp "SRPulse/pkg/http"
	xlogger "SRPulse/pkg/logger"
	"SRPulse/pkg/util"
)

// APICollector fetches raw product records from the upstream SRP feed, one
// request per configured country. It returns the records as-is; validation
// and typing happen in the normalizer.
type APICollector struct {
	client     *xhttp.Client
	baseURL    string
	apiKey     string
	countries  []string
	from, to   time.Time
	maxRetries int
	rl         *ratelimit.Limiter
	ratePerSec float64
	logger     *xlogger.Logger
}

type APIOption func(*APICollector)

func WithDateRange(from, to time.Time) APIOption {
	return func(c *APICollector) { c.from, c.to = from, to }
}

func WithMaxRetries(n int) APIOption {
	return func(c *APICollector) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

func WithRate(perSec float64) APIOption {
	return func(c *APICollector) {
		if perSec > 0 {
			c.ratePerSec = perSec
		}
	}
}

func WithLogger(l *xlogger.Logger) APIOption {
	return func(c *APICollector) { c.logger = l }
}

func NewAPICollector(baseURL, apiKey string, countries []string, timeout time.Duration, opts ...APIOption) *APICollector {
	c := &APICollector{
		client:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL:    baseURL,
		apiKey:     apiKey,
		countries:  countries,
		maxRetries: 3,
		rl:         ratelimit.New(),
		ratePerSec: 5,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type feedResponse struct {
	Products []models.RawRecord `json:"products"`
}

// Collect fetches the raw batch for every configured country, preserving the
// feed's record order within and across countries.
func (c *APICollector) Collect(ctx context.Context) ([]models.RawRecord, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("collector base_url not configured")
	}

	var records []models.RawRecord
	for _, country := range c.countries {
		batch, err := c.fetchCountry(ctx, country)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", country, err)
		}
		if c.logger != nil {
			c.logger.Info("collected country feed",
				xlogger.String("country", country),
				xlogger.Int("records", len(batch)),
			)
		}
		records = append(records, batch...)
	}
	return records, nil
}

func (c *APICollector) fetchCountry(ctx context.Context, country string) ([]models.RawRecord, error) {
	opts := &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/products",
		Headers: map[string]string{
			"Accept": "application/json",
		},
		QueryParams: map[string][]string{
			"country": {country},
		},
	}
	if c.apiKey != "" {
		opts.Headers["X-API-Key"] = c.apiKey
	}
	if !c.from.IsZero() {
		opts.QueryParams["from"] = []string{util.FormatDate(c.from)}
	}
	if !c.to.IsZero() {
		opts.QueryParams["to"] = []string{util.FormatDate(c.to)}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if !c.rl.Wait(country, c.ratePerSec, c.ratePerSec, 10*time.Second) {
			return nil, fmt.Errorf("rate limit wait timed out for %s", country)
		}

		var resp feedResponse
		lastErr = c.client.SendAndParse(ctx, opts, &resp)
		if lastErr == nil {
			return resp.Products, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.logger != nil {
			c.logger.Warn("feed fetch failed",
				xlogger.String("country", country),
				xlogger.Int("attempt", attempt),
				xlogger.Error(lastErr),
			)
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", c.maxRetries, lastErr)
}
