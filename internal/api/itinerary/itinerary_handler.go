package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/api"
	"github.com/nepaltrails/trip-planner/internal/types"
)

// Handler handles HTTP requests for itinerary generation.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler creates a new itinerary handler instance.
func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type generateResponse struct {
	Success   bool                   `json:"success"`
	Itinerary []types.DayPlan        `json:"itinerary"`
	Summary   types.ItinerarySummary `json:"summary"`
}

// Generate godoc
// @Summary      Generate Itinerary
// @Description  Builds a day-by-day itinerary from the selected attractions.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        body body types.ItineraryRequest true "Selection, day count, start location"
// @Success      200 {object} generateResponse
// @Failure      400 {object} map[string]interface{}
// @Router       /itinerary/generate [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itinerary/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.StartLocation == "" {
		req.StartLocation = DefaultStartLocation
	}

	result, err := h.service.Generate(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptySelection):
			span.SetStatus(codes.Error, "Empty selection")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Please select at least one attraction")
		case errors.Is(err, ErrUnknownIDs):
			span.SetStatus(codes.Error, "Unknown attraction IDs")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction IDs")
		case errors.Is(err, ErrInvalidDays):
			span.SetStatus(codes.Error, "Invalid day count")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid day count")
		default:
			l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Generation failed")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		}
		return
	}

	span.SetStatus(codes.Ok, "Itinerary generated")
	api.WriteJSONResponse(w, r, http.StatusOK, generateResponse{
		Success:   true,
		Itinerary: result.Itinerary,
		Summary:   result.Summary,
	})
}
