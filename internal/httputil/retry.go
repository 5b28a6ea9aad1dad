// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the web catalog source.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff when
// the server does not name a delay. Tests override this to avoid real
// sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 5

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests). The Zotero API names its required delay in a Retry-After or
// Backoff header; when present that delay is honored, otherwise the wait
// falls back to exponential backoff starting at RetryBaseDelay.
//
// A Backoff header on an otherwise successful response is also honored
// before returning, so paged loads self-throttle. When maxRetries is 0
// the default (5) is used. If the context is cancelled during a wait the
// function returns ctx.Err(). After exhausting retries the last 429
// response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			if delay := headerDelay(resp.Header.Get("Backoff")); delay > 0 {
				if err := sleep(ctx, delay); err != nil {
					resp.Body.Close()
					return nil, err
				}
			}
			return resp, nil
		}

		// Exhausted retries — return the 429 response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		wait := headerDelay(resp.Header.Get("Retry-After"))
		if wait == 0 {
			wait = headerDelay(resp.Header.Get("Backoff"))
		}
		if wait == 0 {
			wait = time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

// headerDelay parses a delay header value in whole seconds. Unparseable
// or absent values yield zero.
func headerDelay(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
