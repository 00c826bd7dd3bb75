package handler

import (
	"strings"
	"time"

	"datasentinel/internal/access/models"
)

type DataRequest struct {
	PartnerID      string   `json:"partner_id" validate:"required,ref"`
	Region         string   `json:"region" validate:"max=64"`
	Purpose        string   `json:"purpose" validate:"max=256"`
	DaysValid      int      `json:"days_valid" validate:"required,min=1,max=3650"`
	RequestedUsers []string `json:"requested_users" validate:"required,min=1,max=500,dive,ref"`
}

func (r *DataRequest) Normalize() {
	r.PartnerID = strings.TrimSpace(r.PartnerID)
	r.Region = strings.TrimSpace(r.Region)
	r.Purpose = strings.TrimSpace(r.Purpose)
	for i, u := range r.RequestedUsers {
		r.RequestedUsers[i] = strings.TrimSpace(u)
	}
}

func (r *DataRequest) toModel() models.Request {
	return models.Request{
		PartnerID: r.PartnerID,
		Region:    r.Region,
		Purpose:   r.Purpose,
		DaysValid: r.DaysValid,
		UserIDs:   r.RequestedUsers,
	}
}

// BulkRequest items are validated per partner by the service so one bad
// entry does not reject the rest.
type BulkRequest struct {
	Requests []BulkItem `json:"requests" validate:"required,min=1,max=50"`
}

type BulkItem struct {
	PartnerID string   `json:"partner_id"`
	Users     []string `json:"users"`
	Region    string   `json:"region"`
	Purpose   string   `json:"purpose"`
	DaysValid int      `json:"days_valid"`
}

func (b BulkItem) toModel() models.Request {
	return models.Request{
		PartnerID: strings.TrimSpace(b.PartnerID),
		Region:    strings.TrimSpace(b.Region),
		Purpose:   strings.TrimSpace(b.Purpose),
		DaysValid: b.DaysValid,
		UserIDs:   b.Users,
	}
}

type PolicyRequest struct {
	Purpose   string `json:"purpose" validate:"required,notblank,max=256"`
	DaysValid int    `json:"days_valid" validate:"required,min=1,max=3650"`
	Region    string `json:"region" validate:"max=64"`
}

func (r *PolicyRequest) Normalize() {
	r.Purpose = strings.TrimSpace(r.Purpose)
	r.Region = strings.TrimSpace(r.Region)
}

type PairRequest struct {
	PartnerID string `json:"partner_id" validate:"required,ref"`
	UserID    string `json:"user_id" validate:"required,ref"`
}

func (r *PairRequest) Normalize() {
	r.PartnerID = strings.TrimSpace(r.PartnerID)
	r.UserID = strings.TrimSpace(r.UserID)
}

type RestrictRequest struct {
	PartnerID string `json:"partner_id" validate:"required,ref"`
	UserID    string `json:"user_id" validate:"required,ref"`
	Action    string `json:"action" validate:"required,oneof=block unblock"`
}

func (r *RestrictRequest) Normalize() {
	r.PartnerID = strings.TrimSpace(r.PartnerID)
	r.UserID = strings.TrimSpace(r.UserID)
	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	if r.Action == "" {
		r.Action = string(models.ActionBlock)
	}
}

type RestrictPartnerRequest struct {
	PartnerID string `json:"partner_id" validate:"required,ref"`
	Action    string `json:"action" validate:"oneof=block unblock"`
}

func (r *RestrictPartnerRequest) Normalize() {
	r.PartnerID = strings.TrimSpace(r.PartnerID)
	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	if r.Action == "" {
		r.Action = string(models.ActionBlock)
	}
}

type DecisionResponse struct {
	Status string  `json:"status"`
	Expiry *string `json:"expiry"`
	Reason string  `json:"reason"`
}

func toDecisionMap(ds []models.Decision) map[string]DecisionResponse {
	out := make(map[string]DecisionResponse, len(ds))
	for _, d := range ds {
		resp := DecisionResponse{Status: string(d.Status), Reason: string(d.Reason)}
		if d.Expiry != nil {
			formatted := d.Expiry.UTC().Format(time.DateOnly)
			resp.Expiry = &formatted
		}
		out[d.UserID] = resp
	}
	return out
}

type PolicyResponse struct {
	Purpose         string `json:"purpose"`
	ExpiryDate      string `json:"expiry_date"`
	RetentionPolicy string `json:"retention_policy"`
	GeoRestriction  string `json:"geo_restriction"`
}

func toPolicyResponse(p *models.Policy) PolicyResponse {
	return PolicyResponse{
		Purpose:         p.Purpose,
		ExpiryDate:      p.ExpiryDate.Format(time.DateOnly),
		RetentionPolicy: p.RetentionPolicy,
		GeoRestriction:  p.GeoRestriction,
	}
}

type RestrictionRequestResponse struct {
	PartnerID   string     `json:"partner_id"`
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

func toRestrictionRequest(r *models.RestrictionRequest) RestrictionRequestResponse {
	status := "approved"
	if r.Pending() {
		status = "pending"
	}
	return RestrictionRequestResponse{
		PartnerID:   r.PartnerID,
		UserID:      r.UserID,
		Status:      status,
		RequestedAt: r.RequestedAt,
		ApprovedAt:  r.ApprovedAt,
	}
}

type RestrictResponse struct {
	PartnerID string `json:"partner_id"`
	UserID    string `json:"user_id"`
	Action    string `json:"action"`
	Changed   bool   `json:"changed"`
}

type RestrictionResponse struct {
	PartnerID string `json:"partner_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
}

type HistoryEntry struct {
	PartnerID string    `json:"partner_id"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	Purpose   string    `json:"purpose,omitempty"`
	Region    string    `json:"region,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
