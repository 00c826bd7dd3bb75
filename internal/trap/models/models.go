package models

import (
	riskmodels "datasentinel/internal/risk/models"
)

// MatchKind names the store a submitted value was found in.
type MatchKind string

const (
	MatchNone       MatchKind = "none"
	MatchHoneytoken MatchKind = "honeytoken"
	MatchWatermark  MatchKind = "watermark"
)

// DefaultRiskDelta is the score contribution of one trap hit.
const DefaultRiskDelta = 20

// TestResult is the outcome of checking a value a partner was seen using.
// PartnerID is the partner the hit is attributed to; it differs from
// SubmittedPartner when the matched artifact resolves to someone else.
type TestResult struct {
	Hit              bool
	Match            MatchKind
	SubmittedPartner string
	PartnerID        string
	UserID           string
	Reference        string
	Mismatch         bool
	Detail           string
	Score            *riskmodels.Score
}

// SimulationResult is the outcome of a synthetic hit.
type SimulationResult struct {
	TrapHit bool
	Score   *riskmodels.Score
}
