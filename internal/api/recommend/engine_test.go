package recommend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nepaltrails/trip-planner/internal/types"
)

func testCatalog() []types.Attraction {
	return []types.Attraction{
		{ID: 1, Name: "Everest Base Camp Trek", Category: "Trekking", Region: "Everest Region",
			Difficulty: "Hard", BestSeason: "Oct-Nov", Rating: 4.8, NumReviews: 2000, AvgCostUSD: 1500, DurationDays: 14},
		{ID: 2, Name: "Annapurna Circuit", Category: "Trekking", Region: "Annapurna Region",
			Difficulty: "Hard", BestSeason: "Oct-Nov", Rating: 4.7, NumReviews: 1800, AvgCostUSD: 1200, DurationDays: 12},
		{ID: 3, Name: "Boudhanath Stupa", Category: "Cultural", Region: "Kathmandu Valley",
			Difficulty: "Easy", BestSeason: "Year-round", Rating: 4.6, NumReviews: 3000, AvgCostUSD: 5, DurationDays: 1},
		{ID: 4, Name: "Pashupatinath Temple", Category: "Cultural", Region: "Kathmandu Valley",
			Difficulty: "Easy", BestSeason: "Year-round", Rating: 4.5, NumReviews: 2500, AvgCostUSD: 10, DurationDays: 1},
		{ID: 5, Name: "Chitwan Safari", Category: "Wildlife", Region: "Chitwan",
			Difficulty: "Easy", BestSeason: "Oct-Mar", Rating: 4.4, NumReviews: 1500, AvgCostUSD: 250, DurationDays: 3},
	}
}

func TestEngine_Similar(t *testing.T) {
	engine := Fit(testCatalog())

	t.Run("trek is most similar to the other trek", func(t *testing.T) {
		original, recs, err := engine.Similar(1, 3)
		require.NoError(t, err)
		assert.Equal(t, "Everest Base Camp Trek", original.Name)
		require.NotEmpty(t, recs)
		assert.Equal(t, 2, recs[0].ID, "the other hard trek should rank first")
	})

	t.Run("scores sorted descending and self excluded", func(t *testing.T) {
		_, recs, err := engine.Similar(3, 10)
		require.NoError(t, err)
		for _, rec := range recs {
			assert.NotEqual(t, 3, rec.ID)
			assert.GreaterOrEqual(t, rec.SimilarityScore, defaultMinSimilarity)
		}
		for i := 1; i < len(recs); i++ {
			assert.GreaterOrEqual(t, recs[i-1].SimilarityScore, recs[i].SimilarityScore)
		}
	})

	t.Run("top_n caps the result", func(t *testing.T) {
		_, recs, err := engine.Similar(3, 1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(recs), 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, _, err := engine.Similar(999, 5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotFound))
	})
}

func TestEngine_ByPreferences(t *testing.T) {
	engine := Fit(testCatalog())

	t.Run("category filter", func(t *testing.T) {
		recs := engine.ByPreferences(types.PreferenceQuery{Category: "Trekking"})
		require.Len(t, recs, 2)
		for _, rec := range recs {
			assert.Equal(t, "Trekking", rec.Category)
		}
	})

	t.Run("budget filter", func(t *testing.T) {
		recs := engine.ByPreferences(types.PreferenceQuery{MaxCost: 100})
		require.Len(t, recs, 2)
		for _, rec := range recs {
			assert.LessOrEqual(t, rec.AvgCostUSD, 100.0)
		}
	})

	t.Run("popularity ranking", func(t *testing.T) {
		recs := engine.ByPreferences(types.PreferenceQuery{Category: "Cultural"})
		require.Len(t, recs, 2)
		// Boudhanath: higher rating and more reviews than Pashupatinath.
		assert.Equal(t, 3, recs[0].ID)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		recs := engine.ByPreferences(types.PreferenceQuery{Category: "Skiing"})
		assert.Empty(t, recs)
	})

	t.Run("top_n default caps at 10", func(t *testing.T) {
		recs := engine.ByPreferences(types.PreferenceQuery{})
		assert.LessOrEqual(t, len(recs), 10)
	})
}

func TestEngine_Explain(t *testing.T) {
	engine := Fit(testCatalog())

	t.Run("matching preferences", func(t *testing.T) {
		res, err := engine.Explain(1, types.PreferenceQuery{
			Category: "Trekking", MaxCost: 2000, Difficulty: "Hard",
		})
		require.NoError(t, err)
		assert.Contains(t, res.Explanations, "Matches your interest in Trekking")
		assert.Contains(t, res.Explanations, "Fits your budget ($1500 < $2000)")
		assert.Contains(t, res.Explanations, "Matches your preferred difficulty level (Hard)")
		assert.Contains(t, res.Explanations, "Highly rated (4.8/5.0) with 2000 reviews")
		assert.Contains(t, res.Explanations, "Best visited in Oct-Nov")
	})

	t.Run("above budget", func(t *testing.T) {
		res, err := engine.Explain(1, types.PreferenceQuery{MaxCost: 500})
		require.NoError(t, err)
		assert.Contains(t, res.Explanations, "Above budget but highly rated option")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := engine.Explain(42, types.PreferenceQuery{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotFound))
	})
}

func TestEngine_SimilarityMatrixSymmetry(t *testing.T) {
	engine := Fit(testCatalog())
	n := engine.Size()
	for i := 0; i < n; i++ {
		assert.InDelta(t, 1.0, engine.similarity[i][i], 1e-9)
		for j := 0; j < n; j++ {
			assert.InDelta(t, engine.similarity[i][j], engine.similarity[j][i], 1e-12)
		}
	}
}
