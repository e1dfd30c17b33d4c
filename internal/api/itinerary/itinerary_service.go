package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/app/observability/metrics"
	"github.com/nepaltrails/trip-planner/internal/api/attractions"
	"github.com/nepaltrails/trip-planner/internal/types"
)

const (
	// DefaultDays is assumed when the request omits a day count.
	DefaultDays = 5
	// DefaultStartLocation anchors every generated trip.
	DefaultStartLocation = "Kathmandu"
)

// Validation failures carry the exact user-facing message; handlers surface
// them verbatim. All of them match types.ErrValidation.
var (
	ErrEmptySelection = fmt.Errorf("%w: please select at least one attraction", types.ErrValidation)
	ErrUnknownIDs     = fmt.Errorf("%w: invalid attraction IDs", types.ErrValidation)
	ErrInvalidDays    = fmt.Errorf("%w: invalid day count", types.ErrValidation)
)

var _ Service = (*ServiceImpl)(nil)

// Service generates multi-day itineraries from attraction selections.
type Service interface {
	Generate(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResult, error)
}

// Bounds are the accepted day-count limits. Requests outside them are
// rejected, matching the client-side input constraints.
type Bounds struct {
	MinDays int
	MaxDays int
}

type ServiceImpl struct {
	logger  *slog.Logger
	catalog attractions.Service
	bounds  Bounds
}

// NewService creates a new itinerary service instance.
func NewService(catalog attractions.Service, bounds Bounds, logger *slog.Logger) *ServiceImpl {
	if bounds.MinDays <= 0 {
		bounds.MinDays = 3
	}
	if bounds.MaxDays <= 0 {
		bounds.MaxDays = 14
	}
	return &ServiceImpl{
		logger:  logger,
		catalog: catalog,
		bounds:  bounds,
	}
}

func (s *ServiceImpl) Generate(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResult, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.Int("itinerary.days", req.Days),
		attribute.Int("itinerary.selection_size", len(req.AttractionIDs)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Generate"))
	start := time.Now()
	metrics.Get().ItineraryRequestsTotal.Add(ctx, 1)

	if len(req.AttractionIDs) == 0 {
		span.SetStatus(codes.Error, "Empty selection")
		return nil, ErrEmptySelection
	}

	days := req.Days
	if days == 0 {
		days = DefaultDays
	}
	if days < s.bounds.MinDays || days > s.bounds.MaxDays {
		span.SetStatus(codes.Error, "Invalid day count")
		return nil, ErrInvalidDays
	}

	selected, err := s.catalog.GetAttractions(ctx, req.AttractionIDs)
	if err != nil {
		l.ErrorContext(ctx, "Failed to load selected attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Selection load failed")
		return nil, fmt.Errorf("error loading selected attractions: %w", err)
	}
	if len(selected) == 0 {
		span.SetStatus(codes.Error, "Unknown attraction IDs")
		return nil, ErrUnknownIDs
	}

	result := Plan(selected, days)

	metrics.Get().ItineraryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	l.InfoContext(ctx, "Itinerary generated",
		slog.Int("days", result.Summary.TotalDays),
		slog.Int("attractions", result.Summary.AttractionsCount),
	)
	span.SetStatus(codes.Ok, "Itinerary generated")
	return &result, nil
}
