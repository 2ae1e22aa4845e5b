package fetcher

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"saju-match/internal/config"
)

// StatusError is returned for a non-2xx response that was not retried away.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

type Client struct {
	httpClient  *http.Client
	retryOn     map[int]bool
	maxAttempts int
	backoff     time.Duration
	multiplier  float64
	jitterMS    int
}

func New(timeout time.Duration, retry config.RetryConfig) *Client {
	m := make(map[int]bool)
	for _, s := range retry.RetryOnStatus {
		m[s] = true
	}
	c := &Client{
		httpClient:  &http.Client{Timeout: timeout},
		retryOn:     m,
		maxAttempts: retry.MaxAttempts,
		backoff:     time.Duration(retry.BackoffMS) * time.Millisecond,
		multiplier:  retry.Multiplier,
		jitterMS:    retry.JitterMS,
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = 1
	}
	if c.backoff <= 0 {
		c.backoff = 200 * time.Millisecond
	}
	if c.multiplier <= 0 {
		c.multiplier = 2
	}
	if c.jitterMS < 0 {
		c.jitterMS = 0
	}
	return c
}

// Get fetches url and returns the body of a 2xx response. Transport errors
// and statuses listed in RetryOnStatus are retried up to MaxAttempts.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	backoff := c.backoff
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, retry, err := c.once(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == c.maxAttempts {
			break
		}
		jitter := time.Duration(rand.Intn(c.jitterMS+1)) * time.Millisecond
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff + jitter):
		}
		backoff = time.Duration(float64(backoff) * c.multiplier)
	}
	return nil, lastErr
}

func (c *Client) once(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/xml")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, false, nil
	}
	return nil, c.retryOn[resp.StatusCode], &StatusError{Code: resp.StatusCode, Status: resp.Status}
}
