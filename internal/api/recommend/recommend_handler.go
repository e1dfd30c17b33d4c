package recommend

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

// Handler handles HTTP requests for recommendations.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler creates a new recommendation handler instance.
func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type similarResponse struct {
	Success         bool                     `json:"success"`
	Original        types.AttractionRef      `json:"original"`
	Recommendations []types.ScoredAttraction `json:"recommendations"`
}

type preferencesResponse struct {
	Success         bool                     `json:"success"`
	Count           int                      `json:"count"`
	Recommendations []types.RankedAttraction `json:"recommendations"`
}

type explainResponse struct {
	Success      bool                `json:"success"`
	Explanations []string            `json:"explanations"`
	Attraction   types.AttractionRef `json:"attraction"`
}

// Similar godoc
// @Summary      Similar Attractions
// @Description  Returns attractions similar to the given one by content features.
// @Tags         Recommend
// @Produce      json
// @Param        id path int true "Attraction ID"
// @Param        top_n query int false "Number of recommendations" default(5)
// @Success      200 {object} similarResponse
// @Router       /recommend/similar/{id} [get]
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendHandler").Start(r.Context(), "Similar", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommend/similar/{id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Similar"))

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		span.SetStatus(codes.Error, "Invalid attraction ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid attraction ID")
		return
	}

	topN := 5
	if v := r.URL.Query().Get("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "top_n must be a positive integer")
			return
		}
		topN = n
	}

	original, recs, err := h.service.Similar(ctx, id, topN)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNotFound):
			span.SetStatus(codes.Error, "Attraction not found")
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, types.ErrUnavailable):
			span.SetStatus(codes.Error, "Recommender unavailable")
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Recommender is not ready")
		default:
			l.ErrorContext(ctx, "Failed to compute similar attractions", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Similarity query failed")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get recommendations")
		}
		return
	}

	span.SetStatus(codes.Ok, "Similar attractions returned")
	api.WriteJSONResponse(w, r, http.StatusOK, similarResponse{
		Success:         true,
		Original:        original,
		Recommendations: recs,
	})
}

// ByPreferences godoc
// @Summary      Preference Recommendations
// @Description  Filters and ranks attractions by stated preferences.
// @Tags         Recommend
// @Accept       json
// @Produce      json
// @Param        body body types.PreferenceQuery true "Preferences"
// @Success      200 {object} preferencesResponse
// @Router       /recommend/preferences [post]
func (h *Handler) ByPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendHandler").Start(r.Context(), "ByPreferences", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommend/preferences"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ByPreferences"))

	var q types.PreferenceQuery
	if err := api.DecodeJSONBody(w, r, &q); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	recs, err := h.service.ByPreferences(ctx, q)
	if err != nil {
		if errors.Is(err, types.ErrUnavailable) {
			span.SetStatus(codes.Error, "Recommender unavailable")
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Recommender is not ready")
			return
		}
		l.ErrorContext(ctx, "Failed to compute preference recommendations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Preference query failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get recommendations")
		return
	}

	span.SetStatus(codes.Ok, "Preference recommendations returned")
	api.WriteJSONResponse(w, r, http.StatusOK, preferencesResponse{
		Success:         true,
		Count:           len(recs),
		Recommendations: recs,
	})
}

// Explain godoc
// @Summary      Explain Recommendation
// @Description  Explains why an attraction suits the stated preferences.
// @Tags         Recommend
// @Accept       json
// @Produce      json
// @Param        body body types.ExplainRequest true "Attraction and preferences"
// @Success      200 {object} explainResponse
// @Router       /recommend/explain [post]
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendHandler").Start(r.Context(), "Explain", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommend/explain"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Explain"))

	var req types.ExplainRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Explain(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrValidation):
			span.SetStatus(codes.Error, "Validation failed")
			api.ErrorResponse(w, r, http.StatusBadRequest, "attraction_id is required")
		case errors.Is(err, types.ErrNotFound):
			span.SetStatus(codes.Error, "Attraction not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "Attraction not found")
		case errors.Is(err, types.ErrUnavailable):
			span.SetStatus(codes.Error, "Recommender unavailable")
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Recommender is not ready")
		default:
			l.ErrorContext(ctx, "Failed to explain recommendation", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Explanation failed")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to explain recommendation")
		}
		return
	}

	span.SetStatus(codes.Ok, "Explanation returned")
	api.WriteJSONResponse(w, r, http.StatusOK, explainResponse{
		Success:      true,
		Explanations: result.Explanations,
		Attraction:   result.Attraction,
	})
}
