// Package types contains common types used across the application
package types

import "strconv"

// RenderedName is one stored market or outcome name.
type RenderedName struct {
	EventID    string `json:"event_id"`
	MarketID   int    `json:"market_id"`
	Specifiers string `json:"specifiers,omitempty"`
	OutcomeID  string `json:"outcome_id,omitempty"`
	Language   string `json:"lang"`
	Name       string `json:"name"`
}

// Key identifies a rendered name within its event.
func (n RenderedName) Key() string {
	return strconv.Itoa(n.MarketID) + "#" + n.Specifiers + "#" + n.OutcomeID + "#" + n.Language
}

// NameResponse is returned by the on-demand naming endpoints.
type NameResponse struct {
	Name string `json:"name"`
}
