package sportsapi

import "time"

const (
	defaultBaseURL         = "https://stgapi.betradar.com/v1"
	defaultHTTPTimeout     = 10 * time.Second
	defaultMaxRetries      = 3
	defaultInitialInterval = 100 * time.Millisecond
	defaultMaxInterval     = 2 * time.Second
	accessTokenHeader      = "x-access-token"
	maxErrorBody           = 512
)
