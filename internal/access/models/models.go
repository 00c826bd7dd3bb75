package models

import (
	"strings"
	"time"

	consentmodels "datasentinel/internal/consent/models"
)

// Status is the outcome of one access evaluation.
type Status string

const (
	StatusGranted Status = "granted"
	StatusDenied  Status = "denied"
)

// Reason explains a decision. Denial reasons are listed in evaluation order.
type Reason string

const (
	ReasonRestricted       Reason = "restricted"
	ReasonNoConsent        Reason = "no_consent"
	ReasonExpired          Reason = "expired"
	ReasonHighRisk         Reason = "high_risk"
	ReasonAllChecksPassed  Reason = "all_checks_passed"
	ReasonAuditUnavailable Reason = "audit_unavailable"
)

// AllUsers in a restriction's UserID blocks the partner for every user.
const AllUsers = "*"

// Request is a partner's ask for a set of users' data.
type Request struct {
	PartnerID string
	Region    string
	Purpose   string
	DaysValid int
	UserIDs   []string
}

// Category maps the request purpose to the consent flag it needs. A purpose
// naming a category uses that flag; everything else is standard access and
// needs the policy flag.
func (r Request) Category() consentmodels.Category {
	switch c := consentmodels.Category(strings.ToLower(strings.TrimSpace(r.Purpose))); c {
	case consentmodels.CategoryWatermark, consentmodels.CategoryHoneytoken, consentmodels.CategoryPolicy:
		return c
	}
	return consentmodels.CategoryPolicy
}

// Decision is produced once per (partner, user) and never mutated afterwards.
type Decision struct {
	PartnerID   string
	UserID      string
	Status      Status
	Reason      Reason
	Expiry      *time.Time
	EvaluatedAt time.Time
}

func (d Decision) Granted() bool {
	return d.Status == StatusGranted
}

// Restriction blocks PartnerID from UserID's data until explicitly lifted.
type Restriction struct {
	PartnerID string
	UserID    string
	Reason    string
	CreatedAt time.Time
}

func (r Restriction) PartnerWide() bool {
	return r.UserID == AllUsers
}

// RestrictionRequest is a user's pending ask; it has no effect on access
// until an administrator approves it.
type RestrictionRequest struct {
	PartnerID   string
	UserID      string
	RequestedAt time.Time
	ApprovedAt  *time.Time
}

func (r RestrictionRequest) Pending() bool {
	return r.ApprovedAt == nil
}

// Action is an administrator's restriction change.
type Action string

const (
	ActionBlock   Action = "block"
	ActionUnblock Action = "unblock"
)

// Policy is the metadata attached to data shared under a purpose.
type Policy struct {
	Purpose         string
	ExpiryDate      time.Time
	RetentionPolicy string
	GeoRestriction  string
}

const RetentionStandard = "standard"
