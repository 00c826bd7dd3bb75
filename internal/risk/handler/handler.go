package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/risk/models"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

// Service defines the risk operations exposed over HTTP.
type Service interface {
	GetScore(ctx context.Context, partnerID string) (*models.Score, error)
	ResetScore(ctx context.Context, partnerID string) (*models.Score, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the read-only risk routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/risk_score/{partner_id}", h.HandleGetScore)
}

// RegisterAdmin mounts routes that require the admin capability.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/risk_score/{partner_id}/reset", h.HandleReset)
}

type ScoreResponse struct {
	PartnerID string     `json:"partner_id"`
	Score     int        `json:"score"`
	Traits    []string   `json:"traits"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toScoreResponse(s *models.Score) ScoreResponse {
	resp := ScoreResponse{PartnerID: s.PartnerID, Score: s.Score, Traits: s.Traits}
	if resp.Traits == nil {
		resp.Traits = []string{}
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt
		resp.UpdatedAt = &at
	}
	return resp
}

func (h *Handler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partnerID := chi.URLParam(r, "partner_id")
	if err := validation.CheckReference("partner_id", partnerID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	score, err := h.service.GetScore(ctx, partnerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read risk score",
			"request_id", requestcontext.RequestID(ctx),
			"partner_id", partnerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toScoreResponse(score))
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partnerID := chi.URLParam(r, "partner_id")
	if err := validation.CheckReference("partner_id", partnerID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	score, err := h.service.ResetScore(ctx, partnerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reset risk score",
			"request_id", requestcontext.RequestID(ctx),
			"partner_id", partnerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toScoreResponse(score))
}
