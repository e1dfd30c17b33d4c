package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nepaltrails/trip-planner/app/observability/metrics"
	"github.com/nepaltrails/trip-planner/internal/api/attractions"
	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service exposes recommendation queries. The engine is fitted from the
// catalog at startup; Refit rebuilds it after catalog changes.
type Service interface {
	Refit(ctx context.Context) error
	Similar(ctx context.Context, id, topN int) (types.AttractionRef, []types.ScoredAttraction, error)
	ByPreferences(ctx context.Context, q types.PreferenceQuery) ([]types.RankedAttraction, error)
	Explain(ctx context.Context, req types.ExplainRequest) (*types.ExplainResult, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	catalog attractions.Service

	mu     sync.RWMutex
	engine *Engine
}

// NewService creates a recommendation service. Call Refit before serving.
func NewService(catalog attractions.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		catalog: catalog,
	}
}

// Refit rebuilds the engine from the current catalog.
func (s *ServiceImpl) Refit(ctx context.Context) error {
	ctx, span := otel.Tracer("RecommendService").Start(ctx, "Refit")
	defer span.End()

	l := s.logger.With(slog.String("method", "Refit"))

	list, err := s.catalog.ListAttractions(ctx, types.AttractionFilter{})
	if err != nil {
		l.ErrorContext(ctx, "Failed to load catalog for fitting", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Catalog load failed")
		return fmt.Errorf("error loading catalog for recommender: %w", err)
	}
	if len(list) == 0 {
		l.WarnContext(ctx, "Catalog is empty, recommender not fitted")
		span.SetStatus(codes.Error, "Empty catalog")
		return fmt.Errorf("catalog is empty: %w", types.ErrUnavailable)
	}

	engine := Fit(list)

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()

	l.InfoContext(ctx, "Recommender fitted", slog.Int("attractions", engine.Size()))
	span.SetStatus(codes.Ok, "Recommender fitted")
	return nil
}

func (s *ServiceImpl) current() (*Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine == nil {
		return nil, fmt.Errorf("recommender not fitted: %w", types.ErrUnavailable)
	}
	return s.engine, nil
}

func (s *ServiceImpl) Similar(ctx context.Context, id, topN int) (types.AttractionRef, []types.ScoredAttraction, error) {
	ctx, span := otel.Tracer("RecommendService").Start(ctx, "Similar", trace.WithAttributes(
		attribute.Int("attraction.id", id),
		attribute.Int("top_n", topN),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Similar"), slog.Int("attractionID", id))
	metrics.Get().RecommendRequestsTotal.Add(ctx, 1)

	engine, err := s.current()
	if err != nil {
		span.SetStatus(codes.Error, "Recommender not fitted")
		return types.AttractionRef{}, nil, err
	}

	original, results, err := engine.Similar(id, topN)
	if err != nil {
		l.WarnContext(ctx, "Similarity query failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Similarity query failed")
		return types.AttractionRef{}, nil, err
	}

	span.SetStatus(codes.Ok, "Similar attractions computed")
	return original, results, nil
}

func (s *ServiceImpl) ByPreferences(ctx context.Context, q types.PreferenceQuery) ([]types.RankedAttraction, error) {
	ctx, span := otel.Tracer("RecommendService").Start(ctx, "ByPreferences", trace.WithAttributes(
		attribute.String("preference.category", q.Category),
		attribute.String("preference.difficulty", q.Difficulty),
	))
	defer span.End()

	metrics.Get().RecommendRequestsTotal.Add(ctx, 1)

	engine, err := s.current()
	if err != nil {
		span.SetStatus(codes.Error, "Recommender not fitted")
		return nil, err
	}

	results := engine.ByPreferences(q)
	span.SetStatus(codes.Ok, "Preference recommendations computed")
	return results, nil
}

func (s *ServiceImpl) Explain(ctx context.Context, req types.ExplainRequest) (*types.ExplainResult, error) {
	ctx, span := otel.Tracer("RecommendService").Start(ctx, "Explain")
	defer span.End()

	l := s.logger.With(slog.String("method", "Explain"))

	if req.AttractionID == nil {
		span.SetStatus(codes.Error, "Missing attraction_id")
		return nil, fmt.Errorf("attraction_id is required: %w", types.ErrValidation)
	}

	engine, err := s.current()
	if err != nil {
		span.SetStatus(codes.Error, "Recommender not fitted")
		return nil, err
	}

	result, err := engine.Explain(*req.AttractionID, req.Preferences)
	if err != nil {
		l.WarnContext(ctx, "Explanation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Explanation failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Explanation computed")
	return result, nil
}
