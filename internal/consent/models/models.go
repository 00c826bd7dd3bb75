package models

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the per-user authorization flags.
type Category string

const (
	CategoryWatermark  Category = "watermark"
	CategoryPolicy     Category = "policy"
	CategoryHoneytoken Category = "honeytoken"
)

// Record is a user's consent flags and their common expiry. One per user.
type Record struct {
	UserID     string
	Watermark  bool
	Policy     bool
	Honeytoken bool
	ExpiryDate time.Time
	UpdatedAt  time.Time
}

// Allows reports whether the flag for c is set.
func (r *Record) Allows(c Category) bool {
	switch c {
	case CategoryWatermark:
		return r.Watermark
	case CategoryPolicy:
		return r.Policy
	case CategoryHoneytoken:
		return r.Honeytoken
	}
	return false
}

// Expired reports whether the expiry lies strictly before now.
func (r *Record) Expired(now time.Time) bool {
	return r.ExpiryDate.Before(now)
}

// Update is a partial change; nil fields keep their current value.
type Update struct {
	Watermark  *bool
	Policy     *bool
	Honeytoken *bool
	ExpiryDate *time.Time
}

func (u Update) IsEmpty() bool {
	return u.Watermark == nil && u.Policy == nil && u.Honeytoken == nil && u.ExpiryDate == nil
}

// Apply merges u into r.
func (u Update) Apply(r *Record) {
	if u.Watermark != nil {
		r.Watermark = *u.Watermark
	}
	if u.Policy != nil {
		r.Policy = *u.Policy
	}
	if u.Honeytoken != nil {
		r.Honeytoken = *u.Honeytoken
	}
	if u.ExpiryDate != nil {
		r.ExpiryDate = *u.ExpiryDate
	}
}

// ParseExpiry accepts a calendar date (YYYY-MM-DD), meaning the last second of
// that UTC day, or a full RFC 3339 timestamp.
func ParseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return EndOfDay(d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expiry_date must be YYYY-MM-DD or RFC 3339: %q", s)
	}
	return t.UTC(), nil
}

// EndOfDay returns the last second of t's UTC calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
