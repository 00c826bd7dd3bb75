package audit

import "time"

// Kind classifies an audit entry.
type Kind string

const (
	KindTrapHit        Kind = "trap_hit"
	KindDecodeAttempt  Kind = "decode_attempt"
	KindAccessDecision Kind = "access_decision"
	KindRestriction    Kind = "restriction"
	KindRiskReset      Kind = "risk_reset"
	KindEscalation     Kind = "escalation"
)

// Outcome values used across kinds.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeGranted  = "granted"
	OutcomeDenied   = "denied"
	OutcomeHit      = "hit"
)

// Entry is one append-only audit record. Seq is assigned by the store and
// defines the log order.
type Entry struct {
	Seq        int64     `json:"seq"`
	Kind       Kind      `json:"kind"`
	PartnerID  string    `json:"partner_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	IP         string    `json:"ip,omitempty"`
	RiskDelta  int       `json:"risk_delta,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Filter narrows List results. Zero fields match everything; Limit 0 means no limit.
type Filter struct {
	Kinds     []Kind
	PartnerID string
	UserID    string
	Outcome   string
	Since     time.Time
	Limit     int
}

// Matches reports whether e passes every set criterion.
func (f Filter) Matches(e Entry) bool {
	if len(f.Kinds) > 0 {
		ok := false
		for _, k := range f.Kinds {
			if e.Kind == k {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.PartnerID != "" && e.PartnerID != f.PartnerID {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.Outcome != "" && e.Outcome != f.Outcome {
		return false
	}
	if !f.Since.IsZero() && e.OccurredAt.Before(f.Since) {
		return false
	}
	return true
}
