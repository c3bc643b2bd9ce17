package loadgen

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Observations  int           // Number of observations to generate
	EventIDs      []string      // Events observations are spread over
	Languages     []string      // Languages the service renders in
	Workers       int           // Number of concurrent submitters
	Timeout       time.Duration // HTTP request timeout
	SettleTimeout time.Duration // How long to wait for background rendering
	Seed          uint64        // Generator seed; zero picks one from the clock
	OutputFile    string        // Output file for observations, empty to skip
	Verbose       bool          // Enable verbose logging
}

// Observation is the body posted to /observations.
type Observation struct {
	ObservationID string   `json:"observation_id"`
	EventID       string   `json:"event_id"`
	MarketID      int      `json:"market_id"`
	Specifiers    string   `json:"specifiers,omitempty"`
	OutcomeIDs    []string `json:"outcome_ids"`
}

// AckResponse represents the response from observation submission.
type AckResponse struct {
	Status        string `json:"status"`
	ObservationID string `json:"observation_id"`
	Duplicate     bool   `json:"duplicate"`
}

// RenderedName mirrors an entry of GET /names/event/{event_id}.
type RenderedName struct {
	EventID    string `json:"event_id"`
	MarketID   int    `json:"market_id"`
	Specifiers string `json:"specifiers"`
	OutcomeID  string `json:"outcome_id"`
	Language   string `json:"lang"`
	Name       string `json:"name"`
}

// Stats holds run statistics.
type Stats struct {
	ObservationsGenerated int
	ObservationsSubmitted int
	ObservationsAccepted  int
	ObservationsDuplicate int
	ObservationsFailed    int
	NamesExpected         int
	NamesStored           int
	NamesMissing          int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
