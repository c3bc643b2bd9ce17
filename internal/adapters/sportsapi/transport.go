package sportsapi

import (
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveMaxRetries(n int) uint64 {
	if n < 0 {
		return defaultMaxRetries
	}
	return uint64(n)
}

func resolveInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultInitialInterval
	}
	return d
}
