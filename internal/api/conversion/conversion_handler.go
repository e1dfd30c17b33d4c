package conversion

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/api"
	"github.com/nepaltrails/trip-planner/internal/types"
)

// Handler handles conversion requests and the admin lead listing.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type requestResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	LeadID    int            `json:"lead_id"`
	EmailSent bool           `json:"email_sent"`
	Data      map[string]any `json:"data"`
}

type leadsResponse struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Leads   []types.Lead `json:"leads"`
}

// Request godoc
// @Summary      Conversion Request
// @Description  Captures a lead and triggers the email flow for the requested type.
// @Tags         Conversion
// @Accept       json
// @Produce      json
// @Param        body body types.ConversionRequest true "Conversion request"
// @Success      200 {object} requestResponse
// @Router       /conversion/request [post]
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ConversionHandler").Start(r.Context(), "Request", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/conversion/request"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Request"))

	var req types.ConversionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.service.Handle(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingType):
			span.SetStatus(codes.Error, "Missing request type")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Request type is required")
		case errors.Is(err, ErrMissingEmail):
			span.SetStatus(codes.Error, "Missing email")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Email address is required")
		case errors.Is(err, types.ErrValidation):
			span.SetStatus(codes.Error, "Validation failed")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Unknown request type")
		default:
			l.ErrorContext(ctx, "Conversion request failed", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Conversion failed")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to process request")
		}
		return
	}

	span.SetStatus(codes.Ok, "Conversion handled")
	api.WriteJSONResponse(w, r, http.StatusOK, requestResponse{
		Success:   true,
		Message:   res.Message,
		LeadID:    res.LeadID,
		EmailSent: res.EmailSent,
		Data: map[string]any{
			"type":      req.Type,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// Leads godoc
// @Summary      List Leads
// @Description  Returns captured leads, newest first. Admin only.
// @Tags         Conversion
// @Produce      json
// @Param        status query string false "Filter by status (new, contacted, converted, lost)"
// @Param        limit query int false "Maximum rows to return (default 50)"
// @Success      200 {object} leadsResponse
// @Security     BearerAuth
// @Router       /leads [get]
func (h *Handler) Leads(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ConversionHandler").Start(r.Context(), "Leads", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/leads"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Leads"))

	status := r.URL.Query().Get("status")
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	leads, err := h.service.ListLeads(ctx, status, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list leads", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lead listing failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve leads")
		return
	}

	span.SetStatus(codes.Ok, "Leads listed")
	api.WriteJSONResponse(w, r, http.StatusOK, leadsResponse{
		Success: true,
		Count:   len(leads),
		Leads:   leads,
	})
}
