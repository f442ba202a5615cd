package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// NewsEvent is one economic-calendar entry trades can be tagged against.
type NewsEvent struct {
	Hash      string
	Date      time.Time
	Currency  string
	Impact    string
	Title     string
	Actual    string
	Forecast  string
	Previous  string
	SourceURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventDigest builds a deterministic hash over the immutable identity fields.
// Actual/Forecast/Previous are intentionally excluded so feed refreshes
// upsert instead of duplicating.
func EventDigest(date time.Time, currency, title string) string {
	parts := []string{
		date.UTC().Format(time.RFC3339),
		strings.TrimSpace(strings.ToUpper(currency)),
		strings.TrimSpace(strings.ToLower(title)),
	}

	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h[:])
}

// WithHash ensures Hash is populated from the event identity.
func (e NewsEvent) WithHash() NewsEvent {
	if e.Hash != "" {
		return e
	}

	e.Hash = EventDigest(e.Date, e.Currency, e.Title)
	return e
}

type ListEventsOptions struct {
	Limit int
	From  *time.Time
	To    *time.Time
}
