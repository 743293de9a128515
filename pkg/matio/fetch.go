package matio

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/httputil"
	"github.com/siddlokray/cortica/pkg/observability"
)

const fetchTimeout = 30 * time.Second

// FetchMatrix downloads a matrix from a URL, with retry for transient
// failures and an optional HTTP cache. The format is chosen by the URL
// path extension. Pass a nil cache to always hit the network.
func FetchMatrix(ctx context.Context, rawURL string, hc *httputil.Cache) (connectivity.Matrix, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return connectivity.Matrix{}, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return connectivity.Matrix{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse URL")
	}
	format, err := FormatForPath(u.Path)
	if err != nil {
		return connectivity.Matrix{}, err
	}

	body, err := fetchBody(ctx, rawURL, hc)
	if err != nil {
		return connectivity.Matrix{}, err
	}
	return ReadMatrix(strings.NewReader(body), format)
}

// fetchBody returns the response body for a URL, consulting the cache
// first. Fresh fetches are stored back under the matrix namespace.
func fetchBody(ctx context.Context, rawURL string, hc *httputil.Cache) (string, error) {
	var cached *httputil.Cache
	if hc != nil {
		cached = hc.Namespace("matrix:")
		var body string
		if ok, err := cached.Get(rawURL, &body); ok && err == nil {
			return body, nil
		}
	}

	var body string
	err := httputil.RetryWithBackoff(ctx, func() error {
		b, err := fetchOnce(ctx, rawURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return "", err
	}

	if cached != nil {
		_ = cached.Set(rawURL, body)
	}
	return body, nil
}

func fetchOnce(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		// Connection failures and timeouts are worth another attempt.
		return "", &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to read the body.
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork,
			"fetch %s: status %d", rawURL, resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound:
		return "", errors.New(errors.ErrCodeNotFound, "fetch %s: status %d", rawURL, resp.StatusCode)
	default:
		return "", errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL)}
	}
	return string(data), nil
}
