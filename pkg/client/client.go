package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nsmops/zeeklook/pkg/config"
	"github.com/nsmops/zeeklook/pkg/models"
	"github.com/nsmops/zeeklook/pkg/zeek"
)

const defaultTimeout = 15 * time.Second

// Client talks to the monitor appliance's Zeek log API.
type Client struct {
	cfg     config.Context
	httpCli *http.Client
	retry   *retrier.Retrier
	version string
}

// LogTypeDescriptor describes one browsable log type as reported by the API.
type LogTypeDescriptor struct {
	Type           string `json:"type"`
	Display        string `json:"display"`
	Available      bool   `json:"available"`
	EstimatedCount int    `json:"estimated_count"`
}

// PageRequest identifies one page of one log type under the active filters.
type PageRequest struct {
	LogType string
	Page    int
	PerPage int
	Filters models.FilterCriteria
}

// PageResult is one fetched page of entries plus the server's page window.
type PageResult struct {
	Entries    []zeek.Entry `json:"entries"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	TotalPages int          `json:"total_pages"`
	LogType    string       `json:"log_type"`
}

// ServiceCount is one slice of the service distribution.
type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// TrendPoint is one bucket of the connection trend series.
type TrendPoint struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
}

// DomainCount is one entry of the DNS top-domains list.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// DNSStats aggregates DNS activity over the lookback window.
type DNSStats struct {
	TopDomains    []DomainCount  `json:"top_domains"`
	QueryTypes    map[string]int `json:"query_types"`
	ResponseCodes map[string]int `json:"response_codes"`
	TotalQueries  int            `json:"total_queries"`
}

// NewClient creates a log API client for the given context. Transient
// transport failures are retried with exponential backoff; HTTP-level errors
// are not.
func NewClient(cfg config.Context, version string) *Client {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	transport := http.DefaultTransport
	if cfg.Insecure {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		cfg:     cfg,
		httpCli: &http.Client{Timeout: timeout, Transport: transport},
		retry:   retrier.New(retrier.ExponentialBackoff(3, 200*time.Millisecond), nil),
		version: version,
	}
}

// BaseURL returns the configured appliance URL.
func (c *Client) BaseURL() string {
	return c.cfg.URL
}

// ListLogTypes fetches the available log types with estimated counts.
func (c *Client) ListLogTypes(ctx context.Context) ([]LogTypeDescriptor, error) {
	var body struct {
		Logs []LogTypeDescriptor `json:"logs"`
	}
	if err := c.getJSON(ctx, "/api/zeek/logs", nil, &body); err != nil {
		return nil, err
	}
	return body.Logs, nil
}

// FetchPage fetches one page of log entries. Filter fields that are empty are
// omitted from the query entirely.
func (c *Client) FetchPage(ctx context.Context, req PageRequest) (*PageResult, error) {
	params := req.Filters.Values()
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("per_page", strconv.Itoa(req.PerPage))

	var result PageResult
	path := "/api/zeek/logs/" + url.PathEscape(req.LogType)
	if err := c.getJSON(ctx, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ServiceStats fetches the service distribution for the lookback window.
func (c *Client) ServiceStats(ctx context.Context, hours int) ([]ServiceCount, error) {
	params := url.Values{"hours": {strconv.Itoa(hours)}}
	var body struct {
		Services []ServiceCount `json:"services"`
	}
	if err := c.getJSON(ctx, "/api/zeek/stats/services", params, &body); err != nil {
		return nil, err
	}
	return body.Services, nil
}

// DNSStatistics fetches DNS aggregates (top domains, query types, response
// codes) for the lookback window.
func (c *Client) DNSStatistics(ctx context.Context, hours int) (*DNSStats, error) {
	params := url.Values{"hours": {strconv.Itoa(hours)}}
	var body DNSStats
	if err := c.getJSON(ctx, "/api/zeek/stats/dns", params, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// ConnectionTrends fetches bucketed connection counts over time.
func (c *Client) ConnectionTrends(ctx context.Context, hours, intervalMinutes int) ([]TrendPoint, error) {
	params := url.Values{
		"hours":    {strconv.Itoa(hours)},
		"interval": {strconv.Itoa(intervalMinutes)},
	}
	var body struct {
		Trends []TrendPoint `json:"trends"`
	}
	if err := c.getJSON(ctx, "/api/zeek/stats/trends", params, &body); err != nil {
		return nil, err
	}
	return body.Trends, nil
}

// getJSON performs a GET and decodes the JSON response. Every failure mode
// (transport, non-2xx status, malformed body) comes back as a single error so
// callers have one place to catch it.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := strings.TrimRight(c.cfg.URL, "/") + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	log.Debug().Str("url", u).Msg("log API request")

	var resp *http.Response
	err := c.retry.RunCtx(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "zeeklook/"+c.version)
		if c.cfg.Username != "" {
			req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
		}

		var doErr error
		resp, doErr = c.httpCli.Do(req)
		return doErr
	})
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("can't close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("log API returned %s for %s: %s", resp.Status, path, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "malformed response from %s", path)
	}
	return nil
}
