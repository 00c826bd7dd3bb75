package handler

import (
	"strings"
	"time"

	"datasentinel/internal/alert/models"
)

type AdminActionRequest struct {
	UserID    string `json:"user_id" validate:"required,ref"`
	PartnerID string `json:"partner_id" validate:"required,ref"`
	Reason    string `json:"reason" validate:"max=1024"`
}

func (r *AdminActionRequest) Normalize() {
	r.UserID = strings.TrimSpace(r.UserID)
	r.PartnerID = strings.TrimSpace(r.PartnerID)
	r.Reason = strings.TrimSpace(r.Reason)
}

type AdminAlertResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Message   string    `json:"message"`
	Partner   string    `json:"partner"`
	User      string    `json:"user,omitempty"`
	RiskScore int       `json:"risk_score"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toAdminAlert(a *models.AdminAlert) AdminAlertResponse {
	return AdminAlertResponse{
		ID:        a.ID,
		Type:      string(a.Type),
		Source:    string(a.Source),
		Message:   a.Message,
		Partner:   a.PartnerID,
		User:      a.UserID,
		RiskScore: a.RiskScore,
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}

type UserAlertResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Partner   string    `json:"partner"`
	Risk      int       `json:"risk"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Partner     string    `json:"partner,omitempty"`
	Level       string    `json:"level"`
	Message     string    `json:"message"`
	CanEscalate bool      `json:"can_escalate"`
	Timestamp   time.Time `json:"timestamp"`
}
