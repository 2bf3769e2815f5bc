// Package fetcher retrieves raw bytes from URLs or local file paths and
// decodes JSON payloads.
package fetcher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	// ErrFetch indicates the source could not be read at all
	// (network failure, missing local file).
	ErrFetch = errors.New("fetch failed")

	// ErrParse indicates the payload is not valid JSON.
	ErrParse = errors.New("invalid JSON")
)

// Client retrieves bytes over HTTP or from the local filesystem.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a fetcher with the given HTTP timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsURL reports whether the source is an http(s) URL.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch returns the raw bytes at the given URL or local file path.
//
// For HTTP sources a non-2xx status is not treated as a transport failure:
// the response body is returned as-is and malformed content is detected
// downstream. Only an unreadable source fails, wrapping ErrFetch.
func (c *Client) Fetch(source string) ([]byte, error) {
	if IsURL(source) {
		return c.fetchURL(source)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read from %s: %v", ErrFetch, source, err)
	}
	return data, nil
}

func (c *Client) fetchURL(source string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read from %s: %v", ErrFetch, source, err)
	}
	req.Header.Set("User-Agent", "CatalogImporter/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read from %s: %v", ErrFetch, source, err)
	}
	defer resp.Body.Close()

	// Error pages are still a readable body; status handling is the
	// caller's concern.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read from %s: %v", ErrFetch, source, err)
	}
	return data, nil
}

// DecodeJSON decodes a JSON payload into a generic value. Numbers are kept
// as json.Number so large GTINs survive undamaged.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return value, nil
}
