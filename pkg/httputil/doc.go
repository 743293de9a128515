// Package httputil provides HTTP utilities for fetching remote matrices.
//
// # Overview
//
// This package provides the infrastructure behind URL matrix sources:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/cortica/http/)
// with configurable TTL. Connectivity matrices published at stable URLs
// rarely change, so repeated analyses skip the network entirely.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, err := cache.Get("matrix:"+url, &body)  // Check cache
//	if !ok {
//	    body = fetch(url)
//	    cache.Set("matrix:"+url, body)          // Store for later
//	}
//
// Cache keys should be namespaced by source kind to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff between attempts:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchOnce(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/cortica/http/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `cortica cache clear` or by deleting the
// cache directory.
package httputil
