package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	maxAttempts       = 3
	defaultRetryDelay = time.Second
)

// HTTPFetcher downloads images over http(s) with retries on transient failures
type HTTPFetcher struct {
	client     *http.Client
	retryDelay time.Duration
	maxBytes   int64
}

// NewHTTPFetcher creates an HTTP fetcher tuned for single image downloads.
// timeout bounds one attempt; bodies over maxBytes fail with ErrTooLarge.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	fetcher := NewHTTPFetcherWithClient(&http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("too many redirects (limit: 3)")
			}
			return nil
		},
	}, defaultRetryDelay)
	return fetcher.WithMaxBytes(maxBytes)
}

// NewHTTPFetcherWithClient creates a fetcher around client. The n-th retry
// waits n*retryDelay.
func NewHTTPFetcherWithClient(client *http.Client, retryDelay time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: client, retryDelay: retryDelay}
}

// WithMaxBytes limits the body size; zero or less means no limit
func (h *HTTPFetcher) WithMaxBytes(maxBytes int64) *HTTPFetcher {
	h.maxBytes = maxBytes
	return h
}

func (h *HTTPFetcher) Fetch(ctx context.Context, imageURL string, dst io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	req.Header.Set("Accept", "image/*, */*")
	req.Header.Set("User-Agent", "Go-Image-Analyzer/1.0")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err = h.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}

		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}

		retryable := err != nil
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				// 4xx is final
				return fmt.Errorf("failed to fetch image: client error: status code %d", resp.StatusCode)
			}
			lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
			retryable = resp.StatusCode >= 500
			resp = nil
		}

		if !retryable || attempt == maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * h.retryDelay):
		}
	}

	if resp == nil {
		if lastErr != nil {
			return fmt.Errorf("failed to fetch image after %d attempts: %w", maxAttempts, lastErr)
		}
		return fmt.Errorf("failed to fetch image after %d attempts: unknown error", maxAttempts)
	}
	defer resp.Body.Close()

	if h.maxBytes > 0 && resp.ContentLength > h.maxBytes {
		return fmt.Errorf("%w: content length %d over %d bytes", ErrTooLarge, resp.ContentLength, h.maxBytes)
	}
	if err := copyLimited(dst, resp.Body, h.maxBytes); err != nil {
		return fmt.Errorf("failed to read image body: %w", err)
	}
	return nil
}
