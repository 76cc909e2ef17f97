package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// DefaultIndexURL is the Mojang Java runtime catalog.
const DefaultIndexURL = "https://piston-meta.mojang.com/v1/products/java-runtime/2ec0cc96c44e5a76b9c8b7c39df7210883d12871/all.json"

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPSource fetches the catalog index from a remote HTTP server.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource creates a Source that fetches the index from a URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}
}

// NewHTTPSourceWithClient creates an HTTPSource with a custom HTTP client.
// This is useful for testing or custom timeout/transport configuration.
func NewHTTPSourceWithClient(url string, client *http.Client) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: client,
	}
}

// Client returns the HTTP client used by the source.
func (s *HTTPSource) Client() *http.Client {
	return s.httpClient
}

// GetIndex fetches and parses the index from the remote server.
func (s *HTTPSource) GetIndex(ctx context.Context) (Index, error) {
	data, err := fetch(ctx, s.httpClient, s.url)
	if err != nil {
		return nil, err
	}
	return ParseIndex(data)
}

// fetch reads a whole document over HTTP.
func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	ui.Debug("Fetching %s", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return data, nil
}
