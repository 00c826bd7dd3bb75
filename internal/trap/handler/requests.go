package handler

import (
	"strings"
	"time"

	"datasentinel/internal/audit"
	"datasentinel/internal/trap/models"
)

type SimulateRequest struct {
	PartnerID string `json:"partner_id" validate:"required,ref"`
	UserID    string `json:"user_id" validate:"required,ref"`
}

func (r *SimulateRequest) Normalize() {
	r.PartnerID = strings.TrimSpace(r.PartnerID)
	r.UserID = strings.TrimSpace(r.UserID)
}

type TestValueRequest struct {
	PartnerID string `json:"partner_id" validate:"required,ref"`
	Value     string `json:"value" validate:"required,notblank,max=512"`
}

func (r *TestValueRequest) Normalize() {
	r.PartnerID = strings.TrimSpace(r.PartnerID)
}

type SimulateResponse struct {
	TrapHit   bool     `json:"trap_hit"`
	RiskScore int      `json:"risk_score"`
	Traits    []string `json:"traits"`
}

type TestValueResponse struct {
	Result ResultBody `json:"result"`
}

// ResultBody is the detail of one trap check. Partner is the attributed
// partner; Warning is set when it differs from the submitter.
type ResultBody struct {
	Hit       bool   `json:"hit"`
	Match     string `json:"match"`
	Partner   string `json:"partner_id"`
	UserID    string `json:"user_id,omitempty"`
	Detail    string `json:"detail"`
	Warning   bool   `json:"partner_mismatch"`
	RiskScore *int   `json:"risk_score,omitempty"`
}

func toResultBody(r *models.TestResult) ResultBody {
	body := ResultBody{
		Hit:     r.Hit,
		Match:   string(r.Match),
		Partner: r.PartnerID,
		UserID:  r.UserID,
		Detail:  r.Detail,
		Warning: r.Mismatch,
	}
	if r.Score != nil {
		score := r.Score.Score
		body.RiskScore = &score
	}
	return body
}

type LogEntry struct {
	PartnerID string    `json:"partner_id"`
	UserID    string    `json:"user_id,omitempty"`
	Matched   string    `json:"matched"`
	Source    string    `json:"source"`
	IP        string    `json:"ip,omitempty"`
	RiskDelta int       `json:"risk_delta"`
	Timestamp time.Time `json:"timestamp"`
}

func toLogEntry(e audit.Entry) LogEntry {
	return LogEntry{
		PartnerID: e.PartnerID,
		UserID:    e.UserID,
		Matched:   e.Subject,
		Source:    e.Detail,
		IP:        e.IP,
		RiskDelta: e.RiskDelta,
		Timestamp: e.OccurredAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
