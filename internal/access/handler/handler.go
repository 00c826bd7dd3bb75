package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/access/models"
	"datasentinel/internal/access/service"
	"datasentinel/internal/audit"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

// Service defines the access policy operations exposed over HTTP.
type Service interface {
	RequestData(ctx context.Context, req models.Request) ([]models.Decision, error)
	BulkRequestData(ctx context.Context, reqs []models.Request) ([]service.BulkResult, error)
	GeneratePolicy(ctx context.Context, purpose string, daysValid int, region string) (*models.Policy, error)
	RequestRestriction(ctx context.Context, partnerID, userID string) (*models.RestrictionRequest, error)
	ApproveRestriction(ctx context.Context, partnerID, userID string) (*models.Restriction, error)
	SetRestriction(ctx context.Context, partnerID, userID string, action models.Action) (bool, error)
	RestrictPartner(ctx context.Context, partnerID string, action models.Action) (bool, error)
	RestrictionRequests(ctx context.Context) ([]*models.RestrictionRequest, error)
	RestrictedPartners(ctx context.Context, userID string) ([]string, error)
	AccessHistory(ctx context.Context, userID string) ([]audit.Entry, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the partner and user routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/partner_request_data", h.HandleRequestData)
	r.Post("/bulk_partner_request", h.HandleBulkRequest)
	r.Post("/generate_policy", h.HandleGeneratePolicy)
	r.Post("/request_restriction", h.HandleRequestRestriction)
	r.Get("/user_access_history/{user_id}", h.HandleAccessHistory)
	r.Get("/user_restricted_partners/{user_id}", h.HandleRestrictedPartners)
}

// RegisterAdmin mounts the restriction management routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/restrict_access", h.HandleRestrictAccess)
	r.Post("/restrict_partner_access", h.HandleRestrictPartner)
	r.Post("/approve_restriction", h.HandleApproveRestriction)
	r.Get("/restriction_requests", h.HandleRestrictionRequests)
}

func (h *Handler) HandleRequestData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[DataRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	decisions, err := h.service.RequestData(ctx, req.toModel())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to evaluate partner data request",
			"request_id", requestID,
			"partner_id", req.PartnerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDecisionMap(decisions))
}

func (h *Handler) HandleBulkRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BulkRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	reqs := make([]models.Request, 0, len(req.Requests))
	for _, item := range req.Requests {
		reqs = append(reqs, item.toModel())
	}
	results, err := h.service.BulkRequestData(ctx, reqs)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to evaluate bulk request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := make(map[string]any, len(results))
	for _, res := range results {
		if res.Err != nil {
			h.logger.WarnContext(ctx, "partner request in bulk failed",
				"request_id", requestID,
				"partner_id", res.PartnerID,
				"error", res.Err,
			)
			out[res.PartnerID] = httputil.ErrorBody(res.Err)
			continue
		}
		out[res.PartnerID] = toDecisionMap(res.Decisions)
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleGeneratePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PolicyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	policy, err := h.service.GeneratePolicy(ctx, req.Purpose, req.DaysValid, req.Region)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPolicyResponse(policy))
}

func (h *Handler) HandleRequestRestriction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PairRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	pending, err := h.service.RequestRestriction(ctx, req.PartnerID, req.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to request restriction",
			"request_id", requestID,
			"partner_id", req.PartnerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, toRestrictionRequest(pending))
}

func (h *Handler) HandleAccessHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")
	if err := validation.CheckReference("user_id", userID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	entries, err := h.service.AccessHistory(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read access history",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{
			PartnerID: e.PartnerID,
			Status:    e.Outcome,
			Reason:    e.Reason,
			Purpose:   e.Subject,
			Region:    e.Detail,
			Timestamp: e.OccurredAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleRestrictedPartners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")
	if err := validation.CheckReference("user_id", userID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	partners, err := h.service.RestrictedPartners(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, partners)
}

func (h *Handler) HandleRestrictAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RestrictRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	changed, err := h.service.SetRestriction(ctx, req.PartnerID, req.UserID, models.Action(req.Action))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to change restriction",
			"request_id", requestID,
			"partner_id", req.PartnerID,
			"user_id", req.UserID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RestrictResponse{
		PartnerID: req.PartnerID,
		UserID:    req.UserID,
		Action:    req.Action,
		Changed:   changed,
	})
}

func (h *Handler) HandleRestrictPartner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RestrictPartnerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	changed, err := h.service.RestrictPartner(ctx, req.PartnerID, models.Action(req.Action))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to change partner-wide restriction",
			"request_id", requestID,
			"partner_id", req.PartnerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RestrictResponse{
		PartnerID: req.PartnerID,
		UserID:    models.AllUsers,
		Action:    req.Action,
		Changed:   changed,
	})
}

func (h *Handler) HandleApproveRestriction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PairRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	restriction, err := h.service.ApproveRestriction(ctx, req.PartnerID, req.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to approve restriction",
			"request_id", requestID,
			"partner_id", req.PartnerID,
			"user_id", req.UserID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RestrictionResponse{
		PartnerID: restriction.PartnerID,
		UserID:    restriction.UserID,
		Status:    "restricted",
	})
}

func (h *Handler) HandleRestrictionRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqs, err := h.service.RestrictionRequests(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]RestrictionRequestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toRestrictionRequest(req))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
