package service

import (
	"time"

	"datasentinel/internal/access/models"
	consentmodels "datasentinel/internal/consent/models"
)

// Input groups the signals considered for one (partner, user) pair.
type Input struct {
	Restricted bool
	Consent    *consentmodels.Record
	Category   consentmodels.Category
	RiskScore  int
	Threshold  int
	Now        time.Time
	DaysValid  int
}

// Evaluate applies the access rule chain. The first failing rule decides:
//  1. restriction (partner-wide or for this user)
//  2. consent flag for the requested category
//  3. consent expiry
//  4. partner risk at or above the threshold
func Evaluate(in Input) (models.Status, models.Reason) {
	if in.Restricted {
		return models.StatusDenied, models.ReasonRestricted
	}
	if in.Consent == nil || !in.Consent.Allows(in.Category) {
		return models.StatusDenied, models.ReasonNoConsent
	}
	if in.Consent.Expired(in.Now) {
		return models.StatusDenied, models.ReasonExpired
	}
	if in.RiskScore >= in.Threshold {
		return models.StatusDenied, models.ReasonHighRisk
	}
	return models.StatusGranted, models.ReasonAllChecksPassed
}

// GrantExpiry is the sooner of the requested window and the consent expiry.
func GrantExpiry(in Input) time.Time {
	requested := in.Now.AddDate(0, 0, in.DaysValid)
	if in.Consent != nil && in.Consent.ExpiryDate.Before(requested) {
		return in.Consent.ExpiryDate
	}
	return requested
}

// BuildDecision evaluates in and fills the decision for partnerID/userID.
func BuildDecision(partnerID, userID string, in Input) models.Decision {
	status, reason := Evaluate(in)
	d := models.Decision{
		PartnerID:   partnerID,
		UserID:      userID,
		Status:      status,
		Reason:      reason,
		EvaluatedAt: in.Now,
	}
	if status == models.StatusGranted {
		expiry := GrantExpiry(in)
		d.Expiry = &expiry
	}
	return d
}
