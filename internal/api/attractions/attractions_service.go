package attractions

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service exposes catalog reads to handlers and sibling services.
type Service interface {
	ListAttractions(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error)
	GetAttraction(ctx context.Context, id int) (*types.Attraction, error)
	GetAttractions(ctx context.Context, ids []int) ([]types.Attraction, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

// NewService creates a new catalog service instance.
func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) ListAttractions(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "ListAttractions")
	defer span.End()

	l := s.logger.With(slog.String("method", "ListAttractions"))

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list attractions")
		return nil, fmt.Errorf("error listing attractions: %w", err)
	}

	span.SetStatus(codes.Ok, "Attractions listed")
	return list, nil
}

func (s *ServiceImpl) GetAttraction(ctx context.Context, id int) (*types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "GetAttraction", trace.WithAttributes(
		attribute.Int("attraction.id", id),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetAttraction"), slog.Int("attractionID", id))

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch attraction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch attraction")
		return nil, fmt.Errorf("error fetching attraction: %w", err)
	}

	span.SetStatus(codes.Ok, "Attraction fetched")
	return a, nil
}

func (s *ServiceImpl) GetAttractions(ctx context.Context, ids []int) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "GetAttractions", trace.WithAttributes(
		attribute.Int("attraction.id_count", len(ids)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetAttractions"))

	list, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch attractions")
		return nil, fmt.Errorf("error fetching attractions: %w", err)
	}

	span.SetStatus(codes.Ok, "Attractions fetched")
	return list, nil
}
