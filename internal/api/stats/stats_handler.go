package stats

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/api"
	"github.com/nepaltrails/trip-planner/internal/types"
)

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

type statsResponse struct {
	Success bool         `json:"success"`
	Stats   *types.Stats `json:"stats"`
}

// Get godoc
// @Summary      Catalog Stats
// @Description  Returns aggregate catalog statistics.
// @Tags         Stats
// @Produce      json
// @Success      200 {object} statsResponse
// @Router       /stats [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("StatsHandler").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/stats"),
	))
	defer span.End()

	st, err := h.service.GetStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get stats", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Stats failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	span.SetStatus(codes.Ok, "Stats served")
	api.WriteJSONResponse(w, r, http.StatusOK, statsResponse{
		Success: true,
		Stats:   st,
	})
}
