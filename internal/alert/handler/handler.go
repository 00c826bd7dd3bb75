package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/alert/models"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

// Service defines the alert operations exposed over HTTP.
type Service interface {
	AdminAlerts(ctx context.Context) ([]*models.AdminAlert, error)
	UserAlerts(ctx context.Context, userID string) ([]*models.UserAlert, error)
	Notifications(ctx context.Context, userID string) ([]*models.Notification, error)
	RequestAdminAction(ctx context.Context, userID, partnerID, reason string) (*models.AdminAlert, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/alerts/admin", h.HandleAdminAlerts)
	r.Get("/alerts/{user_id}", h.HandleUserAlerts)
	r.Get("/user_notifications", h.HandleNotifications)
	r.Post("/request_admin_action", h.HandleRequestAdminAction)
}

func (h *Handler) HandleAdminAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	alerts, err := h.service.AdminAlerts(ctx)
	if err != nil {
		h.logError(ctx, "failed to list admin alerts", err)
		httputil.WriteError(w, err)
		return
	}
	out := make([]AdminAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAdminAlert(a))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleUserAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")
	if err := validation.CheckReference("user_id", userID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	alerts, err := h.service.UserAlerts(ctx, userID)
	if err != nil {
		h.logError(ctx, "failed to list user alerts", err)
		httputil.WriteError(w, err)
		return
	}
	out := make([]UserAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, UserAlertResponse{
			ID:        a.ID,
			Message:   a.Message,
			Partner:   a.PartnerID,
			Risk:      a.Risk,
			CreatedAt: a.CreatedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.URL.Query().Get("user_id")
	if userID != "" {
		if err := validation.CheckReference("user_id", userID); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	ns, err := h.service.Notifications(ctx, userID)
	if err != nil {
		h.logError(ctx, "failed to list notifications", err)
		httputil.WriteError(w, err)
		return
	}
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, NotificationResponse{
			ID:          n.ID,
			UserID:      n.UserID,
			Partner:     n.PartnerID,
			Level:       string(n.Level),
			Message:     n.Message,
			CanEscalate: n.CanEscalate,
			Timestamp:   n.CreatedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleRequestAdminAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AdminActionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	alert, err := h.service.RequestAdminAction(ctx, req.UserID, req.PartnerID, req.Reason)
	if err != nil {
		h.logError(ctx, "failed to request admin action", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAdminAlert(alert))
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
