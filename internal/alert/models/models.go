package models

import "time"

// AdminAlertType is the category of an alert shown to administrators.
type AdminAlertType string

const (
	TypeUserEscalation AdminAlertType = "user_escalation"
	TypeHighRisk       AdminAlertType = "high_risk"
)

// Source says what raised an admin alert.
type Source string

const (
	SourceRiskThreshold Source = "risk_threshold"
	SourceUserRequest   Source = "user_request"
	SourceAccessDenial  Source = "access_denial"
)

type AdminAlert struct {
	ID        string
	Type      AdminAlertType
	Source    Source
	Message   string
	PartnerID string
	UserID    string
	RiskScore int
	Reason    string
	CreatedAt time.Time
}

// UserAlert tells a user that a partner holding their data was caught
// misusing markers.
type UserAlert struct {
	ID        string
	UserID    string
	PartnerID string
	Message   string
	Risk      int
	CreatedAt time.Time
}

// Level grades a user notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelThreat  Level = "threat"
)

// CanEscalate reports whether a notification at this level offers the user
// a way to escalate to an administrator.
func (l Level) CanEscalate() bool {
	return l == LevelWarning || l == LevelThreat
}

type Notification struct {
	ID          string
	UserID      string
	PartnerID   string
	Level       Level
	Message     string
	CanEscalate bool
	CreatedAt   time.Time
}
