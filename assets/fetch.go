// Package assets loads the fragment shader source, either from disk or
// over HTTP.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"cloudscape/core"
)

// maxShaderSize bounds how much of a response is read
const maxShaderSize = 4 << 20

// Fetcher loads a single text resource
type Fetcher struct {
	Location string
	Timeout  time.Duration
	Client   *http.Client
}

// NewFetcher creates a fetcher for a file path or an http(s) URL
func NewFetcher(location string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		Location: location,
		Timeout:  timeout,
		Client:   http.DefaultClient,
	}
}

// Fetch returns the resource text. Any failure, including a non-2xx
// status or the timeout expiring, is a *core.ResourceFetchError.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	var (
		text string
		err  error
	)
	if isURL(f.Location) {
		text, err = f.fetchHTTP(ctx)
	} else {
		text, err = f.fetchFile(ctx)
	}
	if err != nil {
		return "", &core.ResourceFetchError{Resource: f.Location, Err: err}
	}
	return text, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (f *Fetcher) fetchHTTP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Location, nil)
	if err != nil {
		return "", err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShaderSize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *Fetcher) fetchFile(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, err := os.ReadFile(f.Location)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
