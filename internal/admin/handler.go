package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/admin/types"
	"datasentinel/internal/audit"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/requestcontext"
)

// Views is the read-only admin surface.
type Views interface {
	GetStats(ctx context.Context) (*types.Stats, error)
	PartnerActivity(ctx context.Context) ([]*types.PartnerSummary, error)
	UserActivity(ctx context.Context) ([]*types.UserSummary, error)
	RestrictedPartnersDetailed(ctx context.Context) ([]*types.RestrictedPartner, error)
	GetRecentAuditEvents(ctx context.Context, limit int) ([]audit.Entry, error)
}

// Handler handles admin monitoring endpoints. Every route sits behind the
// admin key.
type Handler struct {
	service Views
	logger  *slog.Logger
}

func New(service Views, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/stats", h.HandleGetStats)
	r.Get("/admin/partner_activity_summary", h.HandlePartnerActivity)
	r.Get("/admin/user_activity_summary", h.HandleUserActivity)
	r.Get("/admin/restricted_partners_detailed", h.HandleRestrictedPartners)
	r.Get("/admin/audit/recent", h.HandleGetRecentAuditEvents)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}

func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.service.GetStats(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to get stats", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatsResponse{
		Honeytokens:         stats.Honeytokens,
		AttributedTokens:    stats.AttributedTokens,
		PartnersTracked:     stats.PartnersTracked,
		HighRiskPartners:    stats.HighRiskPartners,
		Restrictions:        stats.Restrictions,
		PendingRestrictions: stats.PendingRestrictions,
		TrapHits:            stats.TrapHits,
		DecodeAttempts:      stats.DecodeAttempts,
		AccessGranted:       stats.AccessGranted,
		AccessDenied:        stats.AccessDenied,
		Timestamp:           stats.Timestamp,
	})
}

func (h *Handler) HandlePartnerActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partners, err := h.service.PartnerActivity(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to summarize partner activity", err)
		return
	}
	out := make(map[string]PartnerSummaryResponse, len(partners))
	for _, p := range partners {
		out[p.PartnerID] = PartnerSummaryResponse{
			Requests:     p.Requests,
			Granted:      p.Granted,
			Denied:       p.Denied,
			TrapHits:     p.TrapHits,
			RiskScore:    p.RiskScore,
			Traits:       p.Traits,
			HighRisk:     p.HighRisk,
			RestrictedTo: orEmpty(p.RestrictedTo),
			PartnerWide:  p.PartnerWide,
			LastActivity: timeOrNil(p.LastActivity),
		}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleUserActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := h.service.UserActivity(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to summarize user activity", err)
		return
	}
	out := make(map[string]UserSummaryResponse, len(users))
	for _, u := range users {
		out[u.UserID] = UserSummaryResponse{
			Requests:           u.Requests,
			Granted:            u.Granted,
			Denied:             u.Denied,
			TrapHits:           u.TrapHits,
			RestrictedPartners: u.RestrictedPartners,
			LastActivity:       timeOrNil(u.LastActivity),
		}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleRestrictedPartners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	partners, err := h.service.RestrictedPartnersDetailed(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list restricted partners", err)
		return
	}
	out := make(map[string]RestrictedPartnerResponse, len(partners))
	for _, p := range partners {
		out[p.PartnerID] = RestrictedPartnerResponse{
			PartnerWide: p.PartnerWide,
			Users:       p.Users,
			UserCount:   len(p.Users),
			RiskScore:   p.RiskScore,
			Traits:      p.Traits,
			Since:       p.Since,
		}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGetRecentAuditEvents returns recent audit entries, newest first.
func (h *Handler) HandleGetRecentAuditEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultRecentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = min(parsed, 1000)
		}
	}

	events, err := h.service.GetRecentAuditEvents(ctx, limit)
	if err != nil {
		h.fail(ctx, w, "failed to get recent audit events", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AuditEventsResponse{
		Events: events,
		Total:  len(events),
	})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
