package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/i474232898/carbon-intensity-proxy/internal/carbon"
	"github.com/i474232898/carbon-intensity-proxy/internal/observability"
)

const (
	DefaultBaseURL = "https://api.carbonintensity.org.uk"
	DefaultTimeout = 10 * time.Second
)

// Config holds the settings for talking to the carbon intensity API.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	BreakerEnabled bool
}

// Client implements carbon.Provider against the National Grid carbon intensity API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

// NewClient creates a Client. Zero-valued config fields fall back to the defaults.
func NewClient(cfg Config, metrics *observability.Metrics, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    metrics,
		logger:     logger.With().Str("component", "upstream").Logger(),
	}
	if cfg.BreakerEnabled {
		c.circuit = newBreaker()
	}
	return c
}

// RegionalPath builds /regional/intensity/{from}/{to}/postcode/{outward}.
func RegionalPath(postcode string, from, to time.Time) string {
	return fmt.Sprintf("/regional/intensity/%s/%s/postcode/%s",
		carbon.FormatTime(from),
		carbon.FormatTime(to),
		url.PathEscape(carbon.OutwardCode(postcode)),
	)
}

// RegionalIntensity fetches regional intensity for the postcode's outward code and
// returns the "data" field of the response.
func (c *Client) RegionalIntensity(ctx context.Context, postcode string, from, to time.Time) (carbon.Intensity, error) {
	u := c.baseURL + RegionalPath(postcode, from, to)
	log := c.logger.With().
		Str("outward_code", carbon.OutwardCode(postcode)).
		Str("from", carbon.FormatTime(from)).
		Str("to", carbon.FormatTime(to)).
		Logger()

	start := time.Now()
	data, err := c.get(ctx, u)
	c.observe(time.Since(start), err)

	if err != nil {
		log.Warn().Err(err).Msg("carbon intensity request failed")
		return nil, err
	}
	log.Debug().Dur("took", time.Since(start)).Msg("carbon intensity request complete")
	return data, nil
}

func (c *Client) get(ctx context.Context, u string) (carbon.Intensity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &carbon.UpstreamError{Kind: carbon.KindTransport, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := do(c.httpClient, c.circuit, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Data carbon.Intensity `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &carbon.UpstreamError{Kind: carbon.KindMalformed, Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.Data == nil {
		return nil, &carbon.UpstreamError{Kind: carbon.KindMalformed, Err: errors.New(`missing "data" field`)}
	}
	return payload.Data, nil
}

func (c *Client) observe(took time.Duration, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamDuration.Observe(took.Seconds())

	outcome := "success"
	var upErr *carbon.UpstreamError
	if errors.As(err, &upErr) {
		outcome = string(upErr.Kind)
	} else if err != nil {
		outcome = string(carbon.KindTransport)
	}
	c.metrics.UpstreamRequests.WithLabelValues(outcome).Inc()
}
