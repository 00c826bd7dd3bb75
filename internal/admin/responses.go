package admin

import (
	"time"

	"datasentinel/internal/audit"
)

type StatsResponse struct {
	Honeytokens         int       `json:"honeytokens"`
	AttributedTokens    int       `json:"attributed_honeytokens"`
	PartnersTracked     int       `json:"partners_tracked"`
	HighRiskPartners    int       `json:"high_risk_partners"`
	Restrictions        int       `json:"restrictions"`
	PendingRestrictions int       `json:"pending_restriction_requests"`
	TrapHits            int       `json:"trap_hits"`
	DecodeAttempts      int       `json:"decode_attempts"`
	AccessGranted       int       `json:"access_granted"`
	AccessDenied        int       `json:"access_denied"`
	Timestamp           time.Time `json:"timestamp"`
}

type PartnerSummaryResponse struct {
	Requests     int        `json:"total_requests"`
	Granted      int        `json:"granted"`
	Denied       int        `json:"denied"`
	TrapHits     int        `json:"trap_hits"`
	RiskScore    int        `json:"risk_score"`
	Traits       []string   `json:"traits"`
	HighRisk     bool       `json:"high_risk"`
	RestrictedTo []string   `json:"restricted_users"`
	PartnerWide  bool       `json:"partner_wide_block"`
	LastActivity *time.Time `json:"last_activity"`
}

type UserSummaryResponse struct {
	Requests           int        `json:"total_requests"`
	Granted            int        `json:"granted"`
	Denied             int        `json:"denied"`
	TrapHits           int        `json:"trap_hits"`
	RestrictedPartners []string   `json:"restricted_partners"`
	LastActivity       *time.Time `json:"last_activity"`
}

type RestrictedPartnerResponse struct {
	PartnerWide bool      `json:"partner_wide"`
	Users       []string  `json:"restricted_users"`
	UserCount   int       `json:"restricted_user_count"`
	RiskScore   int       `json:"risk_score"`
	Traits      []string  `json:"traits"`
	Since       time.Time `json:"since"`
}

type AuditEventsResponse struct {
	Events []audit.Entry `json:"events"`
	Total  int           `json:"total"`
}
