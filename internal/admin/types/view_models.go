package types

import "time"

// Stats is the admin dashboard headline.
type Stats struct {
	Honeytokens         int
	AttributedTokens    int
	PartnersTracked     int
	HighRiskPartners    int
	Restrictions        int
	PendingRestrictions int
	TrapHits            int
	DecodeAttempts      int
	AccessGranted       int
	AccessDenied        int
	Timestamp           time.Time
}

// PartnerSummary aggregates one partner's activity from the audit log and
// its current risk.
type PartnerSummary struct {
	PartnerID    string
	Requests     int
	Granted      int
	Denied       int
	TrapHits     int
	RiskScore    int
	Traits       []string
	HighRisk     bool
	RestrictedTo []string
	PartnerWide  bool
	LastActivity time.Time
}

// UserSummary aggregates decisions and hits involving one user.
type UserSummary struct {
	UserID             string
	Requests           int
	Granted            int
	Denied             int
	TrapHits           int
	RestrictedPartners []string
	LastActivity       time.Time
}

// RestrictedPartner groups enforced restrictions by partner.
type RestrictedPartner struct {
	PartnerID   string
	PartnerWide bool
	Users       []string
	RiskScore   int
	Traits      []string
	Since       time.Time
}
