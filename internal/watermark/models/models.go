package models

import "time"

// Watermark binds a marker to the disclosure it was issued for. Immutable.
type Watermark struct {
	Marker    string
	PartnerID string
	UserID    string
	Timestamp time.Time
	CreatedAt time.Time
}

// DecodeResult is the outcome of resolving a marker. Found=false is a normal
// outcome, not an error.
type DecodeResult struct {
	Found     bool
	Watermark *Watermark
}

// DecodeLogEntry is one successful attribution.
type DecodeLogEntry struct {
	Leaked    string
	Culprit   string
	UserID    string
	Timestamp time.Time
	DecodedAt time.Time
}
