package handler

import (
	"strings"
	"time"

	"datasentinel/internal/honeytoken/models"
)

// TrapInjectRequest plants a honeytoken into a document.
type TrapInjectRequest struct {
	Document string `json:"document" validate:"required,notblank,max=204800"`
	TrapType string `json:"trap_type" validate:"required,oneof=email phone name id"`
}

func (r *TrapInjectRequest) Normalize() {
	r.TrapType = strings.ToLower(strings.TrimSpace(r.TrapType))
	if r.TrapType == "" {
		r.TrapType = string(models.TypeEmail)
	}
}

type HoneytokenResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

type TrapInjectResponse struct {
	RedactedDocument string `json:"redacted_document"`
	TrapValue        string `json:"trap_value"`
}

// KnownHoneytoken is one entry of the known_honeytokens mapping, keyed by value.
type KnownHoneytoken struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	PartnerID *string   `json:"partner_id"`
}

func toHoneytokenResponse(t *models.Honeytoken) HoneytokenResponse {
	return HoneytokenResponse{
		ID:        t.ID,
		Type:      string(t.Type),
		Value:     t.Value,
		CreatedAt: t.CreatedAt,
	}
}

func toKnownHoneytokens(tokens []*models.Honeytoken) map[string]KnownHoneytoken {
	out := make(map[string]KnownHoneytoken, len(tokens))
	for _, t := range tokens {
		entry := KnownHoneytoken{
			ID:        t.ID,
			Type:      string(t.Type),
			CreatedAt: t.CreatedAt,
		}
		if t.IsAssigned() {
			partner := t.AssignedPartner
			entry.PartnerID = &partner
		}
		out[t.Value] = entry
	}
	return out
}
