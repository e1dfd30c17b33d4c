package analytics

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

// Handler records recommendation interaction events. Events go straight to
// the repository; there is no service layer worth having here.
type Handler struct {
	repo   Repository
	logger *slog.Logger
}

func NewHandler(repo Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

type trackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Track godoc
// @Summary      Track Analytics
// @Description  Records a recommendation click or conversion event.
// @Tags         Analytics
// @Accept       json
// @Produce      json
// @Param        body body types.AnalyticsEvent true "Event to record"
// @Success      200 {object} trackResponse
// @Router       /analytics/track [post]
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AnalyticsHandler").Start(r.Context(), "Track", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/analytics/track"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Track"))

	var event types.AnalyticsEvent
	if err := api.DecodeJSONBody(w, r, &event); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if event.SessionID == "" {
		event.SessionID = r.RemoteAddr
	}

	if err := h.repo.Track(ctx, event); err != nil {
		l.ErrorContext(ctx, "Failed to track event", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Tracking failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to track analytics")
		return
	}

	span.SetStatus(codes.Ok, "Event tracked")
	api.WriteJSONResponse(w, r, http.StatusOK, trackResponse{
		Success: true,
		Message: "Analytics tracked",
	})
}
