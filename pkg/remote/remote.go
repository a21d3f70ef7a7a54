// Package remote fetches canonical reference files the local configuration
// is checked against.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/conformhq/conform/pkg/core"
)

// DefaultBaseURL is the canonical reference tree.
const DefaultBaseURL = "https://raw.githubusercontent.com/conformhq/conform/master"

// Fetcher returns the text contents of a reference file by name.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// HTTPFetcher fetches reference files over HTTP and memoizes them for the
// lifetime of the process, so checking many files hits the network once per
// reference name.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client

	mu    sync.RWMutex
	cache map[string]string
}

// NewHTTPFetcher creates a fetcher for the given base URL; empty means
// DefaultBaseURL.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		cache:   make(map[string]string),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, name string) (string, error) {
	f.mu.RLock()
	text, ok := f.cache[name]
	f.mu.RUnlock()
	if ok {
		return text, nil
	}

	url := strings.TrimSuffix(f.BaseURL, "/") + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrRemoteUnavailable, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: GET %s: %s", core.ErrRemoteUnavailable, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrRemoteUnavailable, err)
	}

	text = string(body)
	f.mu.Lock()
	f.cache[name] = text
	f.mu.Unlock()
	return text, nil
}

// StaticFetcher serves reference files from memory. Used in tests and for
// air-gapped runs with a vendored reference tree.
type StaticFetcher map[string]string

func (f StaticFetcher) Fetch(_ context.Context, name string) (string, error) {
	text, ok := f[name]
	if !ok {
		return "", fmt.Errorf("%w: no reference file %q", core.ErrRemoteUnavailable, name)
	}
	return text, nil
}
