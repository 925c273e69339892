// Package remote fetches the filing documents over HTTP.
package remote

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"filings/internal/core"
	"filings/internal/sheets"
)

// Default document paths relative to the base URL.
const (
	RecordsPath = "/data/contributors.json"
	TotalsPath  = "/data/contributor_totals.json"
)

// Client reads both documents from a web server.
type Client struct {
	baseURL     *url.URL
	recordsPath string
	totalsPath  string
	http        *http.Client
}

var _ sheets.Source = (*Client)(nil)

// New returns a client for baseURL. Empty paths fall back to the defaults and
// a zero timeout keeps the pooled client's own limit.
func New(baseURL, recordsPath, totalsPath string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}
	if recordsPath == "" {
		recordsPath = RecordsPath
	}
	if totalsPath == "" {
		totalsPath = TotalsPath
	}
	hc := newHTTPClientWithPooling()
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{baseURL: u, recordsPath: recordsPath, totalsPath: totalsPath, http: hc}, nil
}

// WithHTTPClient replaces the underlying client, for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) Name() string { return "http:" + c.baseURL.Host }

func (c *Client) ReadRecords(ctx context.Context) ([]core.RawRow, error) {
	var rows []core.RawRow
	err := c.get(ctx, c.recordsPath, func(r io.Reader) error {
		var err error
		rows, err = sheets.DecodeRecords(r)
		return err
	})
	return rows, err
}

func (c *Client) ReadTotals(ctx context.Context) (map[string]core.RawTotal, error) {
	var totals map[string]core.RawTotal
	err := c.get(ctx, c.totalsPath, func(r io.Reader) error {
		var err error
		totals, err = sheets.DecodeTotals(r)
		return err
	})
	return totals, err
}

func (c *Client) get(ctx context.Context, path string, decode func(io.Reader) error) error {
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	target := c.baseURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("get %s: %w", target, sheets.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("get %s: unexpected status %d", target, resp.StatusCode)
	}
	return decode(resp.Body)
}

// newHTTPClientWithPooling creates an HTTP client with connection pooling,
// timeouts and keep-alive settings suited to a handful of large downloads.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}
