package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"datasentinel/internal/honeytoken/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/httputil"
	"datasentinel/pkg/requestcontext"
)

// Service defines the honeytoken operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, t models.Type) (*models.Honeytoken, error)
	InjectIntoDocument(ctx context.Context, document string, t models.Type) (*models.InjectResult, error)
	List(ctx context.Context) ([]*models.Honeytoken, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/generate_honeytoken", h.HandleGenerate)
	r.Post("/trap_inject", h.HandleTrapInject)
	r.Get("/known_honeytokens", h.HandleKnown)
}

// HandleGenerate creates one honeytoken. The optional type query parameter
// defaults to email.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	typ := models.Type(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))))
	if typ == "" {
		typ = models.TypeEmail
	}
	if !typ.IsValid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "type must be one of [email phone name id]"))
		return
	}

	token, err := h.service.Create(ctx, typ)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate honeytoken",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHoneytokenResponse(token))
}

func (h *Handler) HandleTrapInject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TrapInjectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.InjectIntoDocument(ctx, req.Document, models.Type(req.TrapType))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to inject honeytoken",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TrapInjectResponse{
		RedactedDocument: result.RedactedDocument,
		TrapValue:        result.TrapValue,
	})
}

func (h *Handler) HandleKnown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tokens, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list honeytokens",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toKnownHoneytokens(tokens))
}
