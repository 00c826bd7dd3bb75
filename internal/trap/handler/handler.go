package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/audit"
	"datasentinel/internal/trap/models"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

// Service defines the trap detector operations exposed over HTTP.
type Service interface {
	TestValue(ctx context.Context, partnerID, value string) (*models.TestResult, error)
	SimulateHit(ctx context.Context, partnerID, userID string) (*models.SimulationResult, error)
	Logs(ctx context.Context, userID string) ([]audit.Entry, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/simulate_trap_hit", h.HandleSimulate)
	r.Post("/test_trap_value", h.HandleTestValue)
	r.Get("/user_trap_logs/{user_id}", h.HandleUserLogs)
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/trap_logs", h.HandleAllLogs)
}

func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SimulateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	result, err := h.service.SimulateHit(ctx, req.PartnerID, req.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to simulate trap hit",
			"request_id", requestID,
			"partner_id", req.PartnerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SimulateResponse{
		TrapHit:   result.TrapHit,
		RiskScore: result.Score.Score,
		Traits:    nonNil(result.Score.Traits),
	})
}

func (h *Handler) HandleTestValue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TestValueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	result, err := h.service.TestValue(ctx, req.PartnerID, req.Value)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to test trap value",
			"request_id", requestID,
			"partner_id", req.PartnerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TestValueResponse{Result: toResultBody(result)})
}

func (h *Handler) HandleUserLogs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if err := validation.CheckReference("user_id", userID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeLogs(w, r, userID)
}

func (h *Handler) HandleAllLogs(w http.ResponseWriter, r *http.Request) {
	h.writeLogs(w, r, "")
}

func (h *Handler) writeLogs(w http.ResponseWriter, r *http.Request, userID string) {
	ctx := r.Context()
	entries, err := h.service.Logs(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read trap log",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	out := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLogEntry(e))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
