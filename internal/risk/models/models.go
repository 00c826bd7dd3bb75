package models

import "time"

const (
	MinScore = 0
	MaxScore = 100
)

// Trait names attached to a partner's score.
const (
	TraitRepeatOffender  = "repeat-offender"
	TraitHighVelocity    = "high-velocity"
	TraitOffHours        = "off-hours"
	TraitAutomatedClient = "automated-client"
)

// TrapEvent is one detected hit attributed to a partner.
type TrapEvent struct {
	PartnerID string
	UserID    string
	IP        string
	UserAgent string
	Matched   string
	RiskDelta int
	Timestamp time.Time
}

// Hit is the part of a TrapEvent the engine keeps to recompute traits.
type Hit struct {
	At        time.Time `json:"at"`
	Delta     int       `json:"delta"`
	Automated bool      `json:"automated,omitempty"`
}

// State is the stored per-partner record. Hits holds events since the last
// reset that are still inside the trait window.
type State struct {
	PartnerID string    `json:"partner_id"`
	Score     int       `json:"score"`
	Hits      []Hit     `json:"hits,omitempty"`
	Escalated bool      `json:"escalated"`
	UpdatedAt time.Time `json:"updated_at"`
	ResetAt   time.Time `json:"reset_at,omitzero"`
}

// Score is the read view of a partner's risk.
type Score struct {
	PartnerID string
	Score     int
	Traits    []string
	UpdatedAt time.Time
}

// Clamp bounds v to [MinScore, MaxScore].
func Clamp(v int) int {
	return max(MinScore, min(MaxScore, v))
}
