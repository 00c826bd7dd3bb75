package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/anchor/models"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

type Service interface {
	Anchor(ctx context.Context, tokenID string) (*models.Anchor, error)
	Status(ctx context.Context, tokenID string) (*models.Anchor, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/honeytokens/{id}/anchor", h.HandleAnchor)
	r.Get("/honeytokens/{id}/anchor", h.HandleStatus)
}

type Response struct {
	TokenID    string    `json:"token_id"`
	Hash       string    `json:"hash"`
	Registered bool      `json:"registered"`
	Created    bool      `json:"created"`
	CheckedAt  time.Time `json:"checked_at"`
}

func toResponse(a *models.Anchor) Response {
	return Response{
		TokenID:    a.TokenID,
		Hash:       a.Hash,
		Registered: a.Registered,
		Created:    a.Created,
		CheckedAt:  a.CheckedAt,
	}
}

func (h *Handler) HandleAnchor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if err := validation.CheckReference("id", id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	anchor, err := h.service.Anchor(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to anchor honeytoken",
			"request_id", requestcontext.RequestID(ctx),
			"token_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	status := http.StatusOK
	if anchor.Created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, toResponse(anchor))
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if err := validation.CheckReference("id", id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	anchor, err := h.service.Status(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(anchor))
}
