package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// defaultMinSimilarity filters out barely-related items from similarity results.
const defaultMinSimilarity = 0.1

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "in": {}, "of": {}, "to": {}, "is": {},
}

// Engine is a content-based recommender fitted over the attraction catalog.
// Text features (category, region, difficulty, best season) are TF-IDF
// weighted and combined with min-max scaled numeric features (rating, cost,
// duration); similarity is cosine over the combined vectors.
//
// The engine is immutable after Fit; callers share one instance.
type Engine struct {
	attractions []types.Attraction
	indexByID   map[int]int
	similarity  [][]float64
}

// Fit builds a new engine from the catalog snapshot.
func Fit(attractions []types.Attraction) *Engine {
	e := &Engine{
		attractions: attractions,
		indexByID:   make(map[int]int, len(attractions)),
	}
	for i, a := range attractions {
		e.indexByID[a.ID] = i
	}

	vectors := buildFeatureVectors(attractions)

	n := len(attractions)
	e.similarity = make([][]float64, n)
	for i := 0; i < n; i++ {
		e.similarity[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			s := cosine(vectors[i], vectors[j])
			e.similarity[i][j] = s
			e.similarity[j][i] = s
		}
	}
	return e
}

// Size returns the number of attractions the engine was fitted on.
func (e *Engine) Size() int {
	return len(e.attractions)
}

// Similar returns up to topN attractions most similar to id, excluding the
// item itself and anything below the minimum similarity threshold.
func (e *Engine) Similar(id, topN int) (types.AttractionRef, []types.ScoredAttraction, error) {
	idx, ok := e.indexByID[id]
	if !ok {
		return types.AttractionRef{}, nil, fmt.Errorf("invalid attraction_id: %d: %w", id, types.ErrNotFound)
	}
	if topN <= 0 {
		topN = 5
	}

	type scored struct {
		index int
		score float64
	}
	candidates := make([]scored, 0, len(e.attractions)-1)
	for j, s := range e.similarity[idx] {
		if j == idx || s < defaultMinSimilarity {
			continue
		}
		candidates = append(candidates, scored{index: j, score: s})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	results := make([]types.ScoredAttraction, 0, len(candidates))
	for _, c := range candidates {
		a := e.attractions[c.index]
		results = append(results, types.ScoredAttraction{
			ID:              a.ID,
			Name:            a.Name,
			Category:        a.Category,
			Region:          a.Region,
			Rating:          a.Rating,
			AvgCostUSD:      a.AvgCostUSD,
			SimilarityScore: c.score,
		})
	}
	return e.attractions[idx].Ref(), results, nil
}

// ByPreferences filters the catalog by the stated preferences and ranks the
// remainder by popularity (rating weighted 0.7, normalized review volume 0.3).
func (e *Engine) ByPreferences(q types.PreferenceQuery) []types.RankedAttraction {
	topN := q.TopN
	if topN <= 0 {
		topN = 10
	}

	var filtered []types.Attraction
	for _, a := range e.attractions {
		if q.Category != "" && a.Category != q.Category {
			continue
		}
		if q.MaxCost > 0 && a.AvgCostUSD > q.MaxCost {
			continue
		}
		if q.Difficulty != "" && a.Difficulty != q.Difficulty {
			continue
		}
		filtered = append(filtered, a)
	}
	if len(filtered) == 0 {
		return nil
	}

	maxReviews := 0
	for _, a := range filtered {
		if a.NumReviews > maxReviews {
			maxReviews = a.NumReviews
		}
	}

	popularity := func(a types.Attraction) float64 {
		reviewShare := 0.0
		if maxReviews > 0 {
			reviewShare = float64(a.NumReviews) / float64(maxReviews)
		}
		return a.Rating*0.7 + reviewShare*5*0.3
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return popularity(filtered[i]) > popularity(filtered[j])
	})
	if len(filtered) > topN {
		filtered = filtered[:topN]
	}

	results := make([]types.RankedAttraction, 0, len(filtered))
	for _, a := range filtered {
		results = append(results, types.RankedAttraction{
			ID:           a.ID,
			Name:         a.Name,
			Category:     a.Category,
			Region:       a.Region,
			Rating:       a.Rating,
			AvgCostUSD:   a.AvgCostUSD,
			DurationDays: a.DurationDays,
			Difficulty:   a.Difficulty,
		})
	}
	return results
}

// Explain produces the rule-based reasons an attraction suits the stated
// preferences.
func (e *Engine) Explain(id int, prefs types.PreferenceQuery) (*types.ExplainResult, error) {
	idx, ok := e.indexByID[id]
	if !ok {
		return nil, fmt.Errorf("attraction %d: %w", id, types.ErrNotFound)
	}
	a := e.attractions[idx]

	var explanations []string

	if prefs.Category != "" && a.Category == prefs.Category {
		explanations = append(explanations, fmt.Sprintf("Matches your interest in %s", a.Category))
	}

	if prefs.MaxCost > 0 {
		if a.AvgCostUSD <= prefs.MaxCost {
			explanations = append(explanations, fmt.Sprintf("Fits your budget ($%s < $%s)",
				formatAmount(a.AvgCostUSD), formatAmount(prefs.MaxCost)))
		} else {
			explanations = append(explanations, "Above budget but highly rated option")
		}
	}

	if prefs.Difficulty != "" && a.Difficulty == prefs.Difficulty {
		explanations = append(explanations, fmt.Sprintf("Matches your preferred difficulty level (%s)", a.Difficulty))
	}

	if a.Rating >= 4.0 {
		explanations = append(explanations, fmt.Sprintf("Highly rated (%.1f/5.0) with %d reviews", a.Rating, a.NumReviews))
	}

	explanations = append(explanations, fmt.Sprintf("Best visited in %s", a.BestSeason))

	if len(explanations) == 0 {
		explanations = append(explanations, "Popular destination with good ratings")
	}

	return &types.ExplainResult{
		Explanations: explanations,
		Attraction:   a.Ref(),
	}, nil
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}

// buildFeatureVectors produces one dense vector per attraction: TF-IDF
// weighted text tokens (L2 normalized) followed by min-max scaled numerics.
func buildFeatureVectors(attractions []types.Attraction) [][]float64 {
	n := len(attractions)

	// Tokenize text features and build the vocabulary
	docs := make([][]string, n)
	vocab := make(map[string]int)
	for i, a := range attractions {
		tokens := tokenize(a.Category + " " + a.Region + " " + a.Difficulty + " " + a.BestSeason)
		docs[i] = tokens
		for _, t := range tokens {
			if _, ok := vocab[t]; !ok {
				vocab[t] = len(vocab)
			}
		}
	}

	// Document frequencies
	df := make([]int, len(vocab))
	for _, tokens := range docs {
		seen := make(map[int]struct{}, len(tokens))
		for _, t := range tokens {
			seen[vocab[t]] = struct{}{}
		}
		for idx := range seen {
			df[idx]++
		}
	}

	// Smoothed IDF
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	// Min-max bounds for numeric features
	var minRating, maxRating = math.MaxFloat64, -math.MaxFloat64
	var minCost, maxCost = math.MaxFloat64, -math.MaxFloat64
	var minDur, maxDur = math.MaxFloat64, -math.MaxFloat64
	for _, a := range attractions {
		minRating = math.Min(minRating, a.Rating)
		maxRating = math.Max(maxRating, a.Rating)
		minCost = math.Min(minCost, a.AvgCostUSD)
		maxCost = math.Max(maxCost, a.AvgCostUSD)
		minDur = math.Min(minDur, float64(a.DurationDays))
		maxDur = math.Max(maxDur, float64(a.DurationDays))
	}
	scale := func(v, lo, hi float64) float64 {
		if hi <= lo {
			return 0
		}
		return (v - lo) / (hi - lo)
	}

	vectors := make([][]float64, n)
	dim := len(vocab) + 3
	for i, a := range attractions {
		vec := make([]float64, dim)
		for _, t := range docs[i] {
			vec[vocab[t]]++
		}
		var norm float64
		for j := 0; j < len(vocab); j++ {
			vec[j] *= idf[j]
			norm += vec[j] * vec[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := 0; j < len(vocab); j++ {
				vec[j] /= norm
			}
		}
		vec[len(vocab)] = scale(a.Rating, minRating, maxRating)
		vec[len(vocab)+1] = scale(a.AvgCostUSD, minCost, maxCost)
		vec[len(vocab)+2] = scale(float64(a.DurationDays), minDur, maxDur)
		vectors[i] = vec
	}
	return vectors
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	tokens := fields[:0]
	for _, f := range fields {
		if _, skip := stopWords[f]; skip || len(f) < 2 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
