package preferences

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

// Handler handles HTTP requests for saved user preferences.
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

type saveResponse struct {
	Success      bool   `json:"success"`
	PreferenceID int    `json:"preference_id"`
	Message      string `json:"message"`
}

type loadResponse struct {
	Success     bool                    `json:"success"`
	Preferences *types.PreferenceRecord `json:"preferences"`
}

// Save godoc
// @Summary      Save Preferences
// @Description  Saves filter preferences for a session, overwriting any previous save.
// @Tags         Preferences
// @Accept       json
// @Produce      json
// @Param        body body types.SavePreferencesRequest true "Preferences to save"
// @Success      200 {object} saveResponse
// @Router       /preferences/save [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PreferenceHandler").Start(r.Context(), "Save", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/preferences/save"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Save"))

	var req types.SavePreferencesRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.Save(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			span.SetStatus(codes.Error, "Validation failed")
			api.ErrorResponse(w, r, http.StatusBadRequest, "session_id is required")
			return
		}
		l.ErrorContext(ctx, "Failed to save preferences", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Save failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to save preferences")
		return
	}

	span.SetStatus(codes.Ok, "Preferences saved")
	api.WriteJSONResponse(w, r, http.StatusOK, saveResponse{
		Success:      true,
		PreferenceID: id,
		Message:      "Preferences saved successfully",
	})
}

// Load godoc
// @Summary      Load Preferences
// @Description  Returns the saved preferences for a session, or null when none exist.
// @Tags         Preferences
// @Produce      json
// @Param        session_id query string true "Session identifier"
// @Success      200 {object} loadResponse
// @Router       /preferences/load [get]
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PreferenceHandler").Start(r.Context(), "Load", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/preferences/load"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Load"))

	sessionID := r.URL.Query().Get("session_id")

	rec, err := h.service.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			span.SetStatus(codes.Error, "Missing session_id")
			api.ErrorResponse(w, r, http.StatusBadRequest, "session_id is required")
			return
		}
		if errors.Is(err, types.ErrNotFound) {
			// A session with no saved preferences is a normal state,
			// not an error. Clients receive a null record.
			span.SetStatus(codes.Ok, "No preferences saved")
			api.WriteJSONResponse(w, r, http.StatusOK, loadResponse{
				Success:     true,
				Preferences: nil,
			})
			return
		}
		l.ErrorContext(ctx, "Failed to load preferences", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Load failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	span.SetStatus(codes.Ok, "Preferences loaded")
	api.WriteJSONResponse(w, r, http.StatusOK, loadResponse{
		Success:     true,
		Preferences: rec,
	})
}
