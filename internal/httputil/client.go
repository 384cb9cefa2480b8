// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across providers.
package httputil

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout is applied when a config carries no explicit timeout.
const DefaultTimeout = 30 * time.Second

// NewClient returns an HTTP client with the given timeout, or
// DefaultTimeout when timeout is zero.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// StatusError reports a non-2xx response as an error carrying the endpoint
// name and status code.
func StatusError(api string, resp *http.Response) error {
	return fmt.Errorf("%s returned HTTP %d", api, resp.StatusCode)
}
