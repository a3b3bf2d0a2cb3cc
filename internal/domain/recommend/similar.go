package recommend

import (
	"math"
	"math/rand/v2"
	"strings"

	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/platform/metrics"
)

// GenerateSimilarArtworkRecommendations picks up to limit available artworks
// that share the artist or medium of current, or sit within half its price.
// Order is random on every call; membership is not.
func (e *Engine) GenerateSimilarArtworkRecommendations(current catalog.Artwork, artworks []catalog.Artwork, limit int) []catalog.Artwork {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	metrics.RecommendationsTotal.WithLabelValues(string(KindSimilar)).Inc()
	return shuffleTake(SimilarCandidates(current, artworks), limit, e.newRand())
}

func SimilarCandidates(current catalog.Artwork, artworks []catalog.Artwork) []catalog.Artwork {
	out := make([]catalog.Artwork, 0)
	for _, a := range artworks {
		if a.ID == current.ID || !a.IsAvailable() {
			continue
		}
		if IsSimilar(current, a) {
			out = append(out, a)
		}
	}
	return out
}

func IsSimilar(current, a catalog.Artwork) bool {
	if a.Artist == current.Artist || a.Medium == current.Medium {
		return true
	}
	return math.Abs(a.Price-current.Price) < current.Price*0.5
}

// GeneralFilter narrows the anonymous recommendation pool. Zero values mean no constraint.
type GeneralFilter struct {
	Search   string
	MinPrice *float64
	MaxPrice *float64
}

func (f GeneralFilter) Matches(a catalog.Artwork) bool {
	if f.MinPrice != nil && a.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && a.Price > *f.MaxPrice {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Artist), term) ||
		strings.Contains(strings.ToLower(a.Description), term)
}

// GenerateGeneralRecommendations is the fallback for callers without a
// session: a random sample of available artworks matching filter.
func (e *Engine) GenerateGeneralRecommendations(artworks []catalog.Artwork, filter GeneralFilter, limit int) []catalog.Artwork {
	if limit <= 0 {
		limit = DefaultLimit
	}
	pool := make([]catalog.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if a.IsAvailable() && filter.Matches(a) {
			pool = append(pool, a)
		}
	}
	metrics.RecommendationsTotal.WithLabelValues(string(KindGeneral)).Inc()
	return shuffleTake(pool, limit, e.newRand())
}

// shuffleTake permutes pool in place and returns its first n entries.
func shuffleTake(pool []catalog.Artwork, n int, rng *rand.Rand) []catalog.Artwork {
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
