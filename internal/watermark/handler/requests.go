package handler

import (
	"strings"
	"time"

	"datasentinel/internal/watermark/codec"
	"datasentinel/internal/watermark/models"
	dErrors "datasentinel/pkg/domain-errors"
)

type GenerateRequest struct {
	PartnerID string `json:"partner_id" validate:"required,ref"`
	UserID    string `json:"user_id" validate:"required,ref"`
	Timestamp string `json:"timestamp"`

	issuedAt time.Time
}

func (r *GenerateRequest) Normalize() {
	r.PartnerID = strings.TrimSpace(r.PartnerID)
	r.UserID = strings.TrimSpace(r.UserID)
	r.Timestamp = strings.TrimSpace(r.Timestamp)
}

// Validate parses the optional RFC 3339 timestamp. An empty timestamp means
// the request time.
func (r *GenerateRequest) Validate() error {
	if r.Timestamp == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "timestamp must be an RFC 3339 date-time")
	}
	r.issuedAt = ts
	return nil
}

type VerifyRequest struct {
	Watermark string `json:"watermark" validate:"required,notblank,max=256"`
}

func (r *VerifyRequest) Normalize() {
	r.Watermark = strings.TrimSpace(r.Watermark)
}

type GenerateResponse struct {
	Watermark string `json:"watermark"`
	PartnerID string `json:"partner_id"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

type VerifyResponse struct {
	Culprit   string `json:"culprit"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

type DecodeLogEntry struct {
	Leaked    string    `json:"leaked"`
	Culprit   string    `json:"culprit"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp string    `json:"timestamp"`
	DecodedAt time.Time `json:"decoded_at"`
}

func toDecodeLog(entries []models.DecodeLogEntry) []DecodeLogEntry {
	out := make([]DecodeLogEntry, 0, len(entries))
	for _, e := range entries {
		entry := DecodeLogEntry{
			Leaked:    e.Leaked,
			Culprit:   e.Culprit,
			UserID:    e.UserID,
			DecodedAt: e.DecodedAt,
		}
		if !e.Timestamp.IsZero() {
			entry.Timestamp = codec.CanonicalTime(e.Timestamp)
		}
		out = append(out, entry)
	}
	return out
}
