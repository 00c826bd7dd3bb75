package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"datasentinel/internal/access/models"
	consentmodels "datasentinel/internal/consent/models"
)

func TestEvaluatePrecedence(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	full := &consentmodels.Record{UserID: "u", Watermark: true, Policy: true, Honeytoken: true, ExpiryDate: now.AddDate(1, 0, 0)}
	expired := &consentmodels.Record{UserID: "u", Policy: true, ExpiryDate: now.Add(-time.Second)}
	noPolicy := &consentmodels.Record{UserID: "u", Watermark: true, ExpiryDate: now.AddDate(1, 0, 0)}

	tests := []struct {
		name   string
		in     Input
		status models.Status
		reason models.Reason
	}{
		{"restricted beats everything", Input{Restricted: true, Consent: full, RiskScore: 0}, models.StatusDenied, models.ReasonRestricted},
		{"restricted even without consent and high risk", Input{Restricted: true, RiskScore: 100}, models.StatusDenied, models.ReasonRestricted},
		{"missing record", Input{Consent: nil}, models.StatusDenied, models.ReasonNoConsent},
		{"flag not granted", Input{Consent: noPolicy, RiskScore: 10}, models.StatusDenied, models.ReasonNoConsent},
		{"no consent beats expired", Input{Consent: &consentmodels.Record{ExpiryDate: now.Add(-time.Hour)}}, models.StatusDenied, models.ReasonNoConsent},
		{"expired", Input{Consent: expired}, models.StatusDenied, models.ReasonExpired},
		{"expired beats high risk", Input{Consent: expired, RiskScore: 99}, models.StatusDenied, models.ReasonExpired},
		{"at threshold is high risk", Input{Consent: full, RiskScore: 85}, models.StatusDenied, models.ReasonHighRisk},
		{"below threshold is granted", Input{Consent: full, RiskScore: 84}, models.StatusGranted, models.ReasonAllChecksPassed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Now = now
			tt.in.Threshold = 85
			tt.in.DaysValid = 30
			if tt.in.Category == "" {
				tt.in.Category = consentmodels.CategoryPolicy
			}
			status, reason := Evaluate(tt.in)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestGrantExpiryIsTheSoonerBound(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	consentEnd := time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC)
	record := &consentmodels.Record{Policy: true, ExpiryDate: consentEnd}

	d := BuildDecision("partner1", "user1", Input{Consent: record, Category: consentmodels.CategoryPolicy, Now: now, DaysValid: 30, Threshold: 85})
	assert.True(t, d.Granted())
	assert.Equal(t, consentEnd, *d.Expiry)

	d = BuildDecision("partner1", "user1", Input{Consent: record, Category: consentmodels.CategoryPolicy, Now: now, DaysValid: 3, Threshold: 85})
	assert.Equal(t, now.AddDate(0, 0, 3), *d.Expiry)

	d = BuildDecision("partner1", "user1", Input{Now: now, DaysValid: 3, Threshold: 85})
	assert.Nil(t, d.Expiry, "denials carry no expiry")
}

func TestRequestCategory(t *testing.T) {
	assert.Equal(t, consentmodels.CategoryPolicy, models.Request{Purpose: "Demo Access"}.Category())
	assert.Equal(t, consentmodels.CategoryWatermark, models.Request{Purpose: "Watermark"}.Category())
	assert.Equal(t, consentmodels.CategoryHoneytoken, models.Request{Purpose: " honeytoken "}.Category())
}
