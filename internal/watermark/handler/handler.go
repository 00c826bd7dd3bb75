package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/watermark/codec"
	"datasentinel/internal/watermark/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/requestcontext"
)

// Service defines the watermark operations exposed over HTTP.
type Service interface {
	Generate(ctx context.Context, partnerID, userID string, ts time.Time) (*models.Watermark, error)
	Decode(ctx context.Context, marker string) (*models.DecodeResult, error)
	DecodeLog(ctx context.Context) ([]models.DecodeLogEntry, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/generate_watermark", h.HandleGenerate)
	r.Post("/verify_watermark", h.HandleVerify)
	r.Get("/decode_log", h.HandleDecodeLog)
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	issuedAt := req.issuedAt
	if issuedAt.IsZero() {
		issuedAt = requestcontext.Now(ctx)
	}

	wm, err := h.service.Generate(ctx, req.PartnerID, req.UserID, issuedAt)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate watermark",
			"request_id", requestID,
			"partner_id", req.PartnerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GenerateResponse{
		Watermark: wm.Marker,
		PartnerID: wm.PartnerID,
		UserID:    wm.UserID,
		Timestamp: codec.CanonicalTime(wm.Timestamp),
	})
}

func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Decode(ctx, req.Watermark)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode watermark",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if !result.Found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "watermark not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, VerifyResponse{
		Culprit:   result.Watermark.PartnerID,
		UserID:    result.Watermark.UserID,
		Timestamp: codec.CanonicalTime(result.Watermark.Timestamp),
	})
}

func (h *Handler) HandleDecodeLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, err := h.service.DecodeLog(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read decode log",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDecodeLog(entries))
}
