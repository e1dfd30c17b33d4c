package attractions

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/api"
	"github.com/nepaltrails/trip-planner/internal/types"
)

// Handler handles HTTP requests for the attraction catalog.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler creates a new catalog handler instance.
func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type listResponse struct {
	Success     bool               `json:"success"`
	Count       int                `json:"count"`
	Attractions []types.Attraction `json:"attractions"`
}

type getResponse struct {
	Success    bool             `json:"success"`
	Attraction types.Attraction `json:"attraction"`
}

// List godoc
// @Summary      List Attractions
// @Description  Returns catalog attractions with optional filters, sorted by rating.
// @Tags         Attractions
// @Produce      json
// @Param        category query string false "Category filter"
// @Param        region query string false "Region filter"
// @Param        max_cost query number false "Maximum cost in USD"
// @Param        min_rating query number false "Minimum rating"
// @Success      200 {object} listResponse
// @Router       /attractions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AttractionHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "List"))

	var filter types.AttractionFilter
	q := r.URL.Query()
	filter.Category = q.Get("category")
	filter.Region = q.Get("region")
	if v := q.Get("max_cost"); v != "" {
		cost, err := strconv.ParseFloat(v, 64)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "max_cost must be numeric")
			return
		}
		filter.MaxCost = cost
	}
	if v := q.Get("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "min_rating must be numeric")
			return
		}
		filter.MinRating = rating
	}

	list, err := h.service.ListAttractions(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list attractions")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve attractions")
		return
	}

	span.SetStatus(codes.Ok, "Attractions listed")
	api.WriteJSONResponse(w, r, http.StatusOK, listResponse{
		Success:     true,
		Count:       len(list),
		Attractions: list,
	})
}

// Get godoc
// @Summary      Get Attraction
// @Description  Returns a single attraction by ID.
// @Tags         Attractions
// @Produce      json
// @Param        id path int true "Attraction ID"
// @Success      200 {object} getResponse
// @Failure      404 {object} map[string]interface{}
// @Router       /attractions/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AttractionHandler").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions/{id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Get"))

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		l.WarnContext(ctx, "Invalid attraction ID", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid attraction ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID")
		return
	}

	a, err := h.service.GetAttraction(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			span.SetStatus(codes.Error, "Attraction not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "Attraction not found")
			return
		}
		l.ErrorContext(ctx, "Failed to fetch attraction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch attraction")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve attraction")
		return
	}

	span.SetStatus(codes.Ok, "Attraction fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, getResponse{
		Success:    true,
		Attraction: *a,
	})
}
