package attractions

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nepaltrails/trip-planner/internal/types"
)

func setupAttractionRepoTest(t *testing.T) (*PostgresAttractionRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresAttractionRepo(mockPool, logger), mockPool
}

func attractionRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"attraction_id", "name", "category", "region", "rating", "num_reviews",
		"avg_cost_usd", "duration_days", "difficulty", "best_season", "altitude_meters", "description",
	})
}

func TestPostgresAttractionRepo_List(t *testing.T) {
	ctx := context.Background()

	t.Run("no filter", func(t *testing.T) {
		repo, mockPool := setupAttractionRepoTest(t)
		rows := attractionRows().
			AddRow(1, "Everest Base Camp Trek", "Trekking", "Everest Region", 4.8, 2000,
				1500.0, 14, "Hard", "Oct-Nov", 5364, "The classic trek").
			AddRow(3, "Boudhanath Stupa", "Cultural", "Kathmandu Valley", 4.6, 3000,
				5.0, 1, "Easy", "Year-round", 1400, "Great stupa")
		mockPool.ExpectQuery("FROM attractions ORDER BY rating DESC").
			WillReturnRows(rows)

		list, err := repo.List(ctx, types.AttractionFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Everest Base Camp Trek", list[0].Name)
		assert.Equal(t, 1400, list[1].AltitudeMeters)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("combined filters bind in order", func(t *testing.T) {
		repo, mockPool := setupAttractionRepoTest(t)
		mockPool.ExpectQuery(`FROM attractions WHERE category = \$1 AND avg_cost_usd <= \$2 ORDER BY rating DESC`).
			WithArgs("Trekking", 1000.0).
			WillReturnRows(attractionRows())

		_, err := repo.List(ctx, types.AttractionFilter{Category: "Trekking", MaxCost: 1000})
		require.NoError(t, err)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mockPool := setupAttractionRepoTest(t)
		mockPool.ExpectQuery("FROM attractions").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.List(ctx, types.AttractionFilter{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error listing attractions")
	})
}

func TestPostgresAttractionRepo_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mockPool := setupAttractionRepoTest(t)
		rows := attractionRows().
			AddRow(5, "Chitwan Safari", "Wildlife", "Chitwan", 4.4, 1500,
				250.0, 3, "Easy", "Oct-Mar", 415, "Jungle safari")
		mockPool.ExpectQuery(`FROM attractions WHERE attraction_id = \$1`).
			WithArgs(5).
			WillReturnRows(rows)

		a, err := repo.Get(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Chitwan Safari", a.Name)
		assert.Equal(t, 250.0, a.AvgCostUSD)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mockPool := setupAttractionRepoTest(t)
		mockPool.ExpectQuery(`FROM attractions WHERE attraction_id = \$1`).
			WithArgs(999).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Get(ctx, 999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotFound))
	})
}

func TestPostgresAttractionRepo_GetByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input short-circuits", func(t *testing.T) {
		repo, mockPool := setupAttractionRepoTest(t)

		list, err := repo.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, list)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("fetches by ANY", func(t *testing.T) {
		repo, mockPool := setupAttractionRepoTest(t)
		rows := attractionRows().
			AddRow(1, "Everest Base Camp Trek", "Trekking", "Everest Region", 4.8, 2000,
				1500.0, 14, "Hard", "Oct-Nov", 5364, "The classic trek")
		mockPool.ExpectQuery(`FROM attractions WHERE attraction_id = ANY\(\$1\) ORDER BY rating DESC`).
			WithArgs([]int{1, 999}).
			WillReturnRows(rows)

		list, err := repo.GetByIDs(ctx, []int{1, 999})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 1, list[0].ID)
		require.NoError(t, mockPool.ExpectationsWereMet())
	})
}
