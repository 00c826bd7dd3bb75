package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/consent/models"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

// Service defines the consent operations exposed over HTTP.
type Service interface {
	Get(ctx context.Context, userID string) (*models.Record, error)
	Update(ctx context.Context, userID string, update models.Update) (*models.Record, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/get_consent/{user_id}", h.HandleGet)
	r.Post("/update_consent/{user_id}", h.HandleUpdate)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")
	if err := validation.CheckReference("user_id", userID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Get(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read consent",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(record))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID := chi.URLParam(r, "user_id")
	if err := validation.CheckReference("user_id", userID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.Update(ctx, userID, req.update())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update consent",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(record))
}
