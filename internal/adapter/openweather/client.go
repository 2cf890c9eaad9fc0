// Package openweather implements the Risk Tool on top of the OpenWeatherMap
// current-weather API.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/storm-underwriter/internal/domain"
	"github.com/couchcryptid/storm-underwriter/internal/observability"
)

// PlaceholderAPIKey is the sample key shipped in example configuration. It is
// treated the same as a missing key.
const PlaceholderAPIKey = "YOUR_OPENWEATHERMAP_API_KEY"

// defaultDescription is used when the provider omits the weather array.
const defaultDescription = "clear sky"

// Client implements domain.RiskAssessor using the OpenWeatherMap API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a weather client. A zero timeout leaves the HTTP client
// without a deadline; callers can still bound each call through the context.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// CheckReadiness reports whether a usable credential is configured.
func (c *Client) CheckReadiness(_ context.Context) error {
	return c.checkCredential()
}

// AssessWeatherRisk fetches current conditions for the query and returns a
// RiskReport. Every failure is a *domain.ToolError. The call issues at most
// one request and never retries.
func (c *Client) AssessWeatherRisk(ctx context.Context, query domain.LocationQuery) (domain.RiskReport, error) {
	report, err := c.assess(ctx, &query)
	c.record(query, err)
	return report, err
}

// assess normalizes *query in place so callers log what was actually sent.
func (c *Client) assess(ctx context.Context, query *domain.LocationQuery) (domain.RiskReport, error) {
	if err := c.checkCredential(); err != nil {
		return domain.RiskReport{}, err
	}

	q, err := domain.NewLocationQuery(query.City, query.CountryCode)
	if err != nil {
		return domain.RiskReport{}, domain.NewInvalidQueryError(err)
	}
	*query = q

	params := url.Values{
		"q":     {q.String()},
		"appid": {c.apiKey},
		"units": {"imperial"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.RiskReport{}, domain.NewTransportError(fmt.Errorf("create request: %w", err))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.RiskReport{}, domain.NewTransportError(fmt.Errorf("weather request: %w", redactKey(err, c.apiKey)))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.RiskReport{}, domain.NewNotFoundError(q.City)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.RiskReport{}, domain.NewTransportError(
			fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var owm response
	if err := json.NewDecoder(resp.Body).Decode(&owm); err != nil {
		return domain.RiskReport{}, domain.NewTransportError(fmt.Errorf("decode response: %w", err))
	}

	if owm.Cod != http.StatusOK {
		return domain.RiskReport{}, domain.NewNotFoundError(q.City)
	}

	return owm.toReport(q.City), nil
}

func (c *Client) checkCredential() error {
	switch c.apiKey {
	case "":
		return domain.NewConfigurationError("WEATHER_API_KEY is not set.")
	case PlaceholderAPIKey:
		return domain.NewConfigurationError("Please update WEATHER_API_KEY with your valid key.")
	}
	return nil
}

func (c *Client) record(query domain.LocationQuery, err error) {
	if err == nil {
		c.metrics.WeatherRequests.WithLabelValues("success").Inc()
		c.logger.Debug("weather risk assessed", "city", query.City, "country_code", query.CountryCode)
		return
	}
	te := domain.AsToolError(err)
	c.metrics.WeatherRequests.WithLabelValues(string(te.Kind)).Inc()
	c.logger.Warn("weather risk assessment failed",
		"city", query.City,
		"country_code", query.CountryCode,
		"kind", te.Kind,
		"error", te.Message,
	)
}

// redactKey strips the credential from URL errors, which embed the full request URL.
func redactKey(err error, key string) error {
	var urlErr *url.Error
	if key == "" || !errors.As(err, &urlErr) {
		return err
	}
	urlErr.URL = strings.ReplaceAll(urlErr.URL, url.QueryEscape(key), "REDACTED")
	return err
}
