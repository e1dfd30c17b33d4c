package itinerary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nepaltrails/trip-planner/app/observability/metrics"
	"github.com/nepaltrails/trip-planner/internal/types"
)

// MockCatalogService is a mock implementation of attractions.Service.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListAttractions(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Attraction), args.Error(1)
}

func (m *MockCatalogService) GetAttraction(ctx context.Context, id int) (*types.Attraction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Attraction), args.Error(1)
}

func (m *MockCatalogService) GetAttractions(ctx context.Context, ids []int) ([]types.Attraction, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Attraction), args.Error(1)
}

func setupItineraryServiceTest() (*ServiceImpl, *MockCatalogService) {
	metrics.InitAppMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockCatalog := new(MockCatalogService)
	service := NewService(mockCatalog, Bounds{MinDays: 3, MaxDays: 14}, logger)
	return service, mockCatalog
}

func TestServiceImpl_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		service, mockCatalog := setupItineraryServiceTest()
		selected := []types.Attraction{
			attraction(1, "Swayambhunath", "Cultural", "Kathmandu Valley", "Easy", 1, 10),
			attraction(3, "Phewa Lake", "Nature", "Pokhara Region", "Easy", 2, 40),
		}
		mockCatalog.On("GetAttractions", ctx, []int{1, 3}).Return(selected, nil).Once()

		result, err := service.Generate(ctx, types.ItineraryRequest{
			AttractionIDs: []int{1, 3},
			Days:          5,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, result.Summary.TotalDays)
		assert.Equal(t, 2, result.Summary.AttractionsCount)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("empty selection", func(t *testing.T) {
		service, mockCatalog := setupItineraryServiceTest()

		_, err := service.Generate(ctx, types.ItineraryRequest{Days: 5})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptySelection))
		assert.True(t, errors.Is(err, types.ErrValidation))
		mockCatalog.AssertNotCalled(t, "GetAttractions")
	})

	t.Run("day count defaults to five", func(t *testing.T) {
		service, mockCatalog := setupItineraryServiceTest()
		selected := []types.Attraction{
			attraction(1, "Swayambhunath", "Cultural", "Kathmandu Valley", "Easy", 1, 10),
		}
		mockCatalog.On("GetAttractions", ctx, []int{1}).Return(selected, nil).Once()

		result, err := service.Generate(ctx, types.ItineraryRequest{AttractionIDs: []int{1}})
		require.NoError(t, err)
		assert.Equal(t, DefaultDays, result.Summary.TotalDays)
	})

	t.Run("day count out of bounds", func(t *testing.T) {
		service, mockCatalog := setupItineraryServiceTest()

		for _, days := range []int{2, 15, -1} {
			_, err := service.Generate(ctx, types.ItineraryRequest{
				AttractionIDs: []int{1},
				Days:          days,
			})
			require.Error(t, err, "days=%d", days)
			assert.True(t, errors.Is(err, ErrInvalidDays))
		}
		mockCatalog.AssertNotCalled(t, "GetAttractions")
	})

	t.Run("unknown attraction IDs", func(t *testing.T) {
		service, mockCatalog := setupItineraryServiceTest()
		mockCatalog.On("GetAttractions", ctx, []int{99}).Return([]types.Attraction{}, nil).Once()

		_, err := service.Generate(ctx, types.ItineraryRequest{
			AttractionIDs: []int{99},
			Days:          5,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownIDs))
	})

	t.Run("catalog error", func(t *testing.T) {
		service, mockCatalog := setupItineraryServiceTest()
		dbErr := errors.New("database connection error")
		mockCatalog.On("GetAttractions", ctx, []int{1}).Return(nil, dbErr).Once()

		_, err := service.Generate(ctx, types.ItineraryRequest{
			AttractionIDs: []int{1},
			Days:          5,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, dbErr))
	})
}
