package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/nepaltrails/trip-planner/internal/api/attractions"
	"github.com/nepaltrails/trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

const cacheKey = "catalog-stats"

type Service interface {
	GetStats(ctx context.Context) (*types.Stats, error)
}

// ServiceImpl computes catalog aggregates on demand and memoises them.
// Concurrent cache misses collapse into one catalog scan.
type ServiceImpl struct {
	logger  *slog.Logger
	catalog attractions.Service
	cache   *gocache.Cache
	group   singleflight.Group
}

func NewService(catalog attractions.Service, ttl time.Duration, logger *slog.Logger) *ServiceImpl {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ServiceImpl{
		logger:  logger,
		catalog: catalog,
		cache:   gocache.New(ttl, 2*ttl),
	}
}

func (s *ServiceImpl) GetStats(ctx context.Context) (*types.Stats, error) {
	ctx, span := otel.Tracer("StatsService").Start(ctx, "GetStats")
	defer span.End()

	if cached, ok := s.cache.Get(cacheKey); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		span.SetStatus(codes.Ok, "Stats served from cache")
		return cached.(*types.Stats), nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		list, err := s.catalog.ListAttractions(ctx, types.AttractionFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog for stats: %w", err)
		}
		st := compute(list)
		s.cache.SetDefault(cacheKey, st)
		return st, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to compute stats", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Stats computation failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Stats computed")
	return v.(*types.Stats), nil
}

func compute(list []types.Attraction) *types.Stats {
	st := &types.Stats{
		TotalAttractions: len(list),
		Categories:       map[string]int{},
		Regions:          map[string]int{},
	}
	if len(list) == 0 {
		return st
	}

	var ratingSum, costSum float64
	st.CostRange.Min = list[0].AvgCostUSD
	st.CostRange.Max = list[0].AvgCostUSD
	for _, a := range list {
		st.Categories[a.Category]++
		st.Regions[a.Region]++
		ratingSum += a.Rating
		costSum += a.AvgCostUSD
		if a.AvgCostUSD < st.CostRange.Min {
			st.CostRange.Min = a.AvgCostUSD
		}
		if a.AvgCostUSD > st.CostRange.Max {
			st.CostRange.Max = a.AvgCostUSD
		}
	}
	st.AvgRating = ratingSum / float64(len(list))
	st.AvgCost = costSum / float64(len(list))
	return st
}
