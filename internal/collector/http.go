package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxPayload caps how many bytes a source reads for one symbol.
const DefaultMaxPayload int64 = 32 << 20

// HTTPSource fetches {BaseURL}/{symbol}.csv.
type HTTPSource struct {
	BaseURL  string
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPSource creates a new source with optional proxy support.
func NewHTTPSource(baseURL, proxyURL string) *HTTPSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		MaxBytes: DefaultMaxPayload,
	}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) Fetch(ctx context.Context, symbol string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s.csv", s.BaseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, unavailable(symbol, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, unavailable(symbol, fmt.Errorf("fetch csv: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(symbol, fmt.Errorf("fetch csv: status %d", resp.StatusCode))
	}
	limit := maxPayload(s.MaxBytes)
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, unavailable(symbol, fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > limit {
		return nil, unavailable(symbol, fmt.Errorf("read body: larger than %d bytes", limit))
	}
	return body, nil
}

func maxPayload(n int64) int64 {
	if n <= 0 {
		return DefaultMaxPayload
	}
	return n
}
