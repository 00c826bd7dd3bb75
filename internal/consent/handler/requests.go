package handler

import (
	"strings"
	"time"

	"datasentinel/internal/consent/models"
	dErrors "datasentinel/pkg/domain-errors"
)

// UpdateRequest carries a partial consent change. Omitted fields keep their
// stored value.
type UpdateRequest struct {
	Watermark  *bool   `json:"watermark"`
	Policy     *bool   `json:"policy"`
	Honeytoken *bool   `json:"honeytoken"`
	ExpiryDate *string `json:"expiry_date"`

	expiry *time.Time
}

func (r *UpdateRequest) Normalize() {
	if r.ExpiryDate != nil {
		trimmed := strings.TrimSpace(*r.ExpiryDate)
		r.ExpiryDate = &trimmed
	}
}

func (r *UpdateRequest) Validate() error {
	if r.Watermark == nil && r.Policy == nil && r.Honeytoken == nil && r.ExpiryDate == nil {
		return dErrors.New(dErrors.CodeValidation, "at least one consent field is required")
	}
	if r.ExpiryDate != nil {
		t, err := models.ParseExpiry(*r.ExpiryDate)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, err.Error())
		}
		r.expiry = &t
	}
	return nil
}

func (r *UpdateRequest) update() models.Update {
	return models.Update{
		Watermark:  r.Watermark,
		Policy:     r.Policy,
		Honeytoken: r.Honeytoken,
		ExpiryDate: r.expiry,
	}
}

type Response struct {
	UserID     string    `json:"user_id"`
	Watermark  bool      `json:"watermark"`
	Policy     bool      `json:"policy"`
	Honeytoken bool      `json:"honeytoken"`
	ExpiryDate string    `json:"expiry_date"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toResponse(r *models.Record) Response {
	return Response{
		UserID:     r.UserID,
		Watermark:  r.Watermark,
		Policy:     r.Policy,
		Honeytoken: r.Honeytoken,
		ExpiryDate: r.ExpiryDate.UTC().Format(time.DateOnly),
		UpdatedAt:  r.UpdatedAt,
	}
}
