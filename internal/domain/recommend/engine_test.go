package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"gallery-backend/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticHistory(h History) HistoryProvider {
	return HistoryFunc(func(ctx context.Context, userID string) (History, error) {
		return h, nil
	})
}

func ids(artworks []catalog.Artwork) []catalog.ID {
	out := make([]catalog.ID, 0, len(artworks))
	for _, a := range artworks {
		out = append(out, a.ID)
	}
	return out
}

func TestEmptyOrderHistoryYieldsNothing(t *testing.T) {
	e := NewEngine(staticHistory(History{Bookings: []BookingRecord{{ExhibitionID: "x"}}}), WithSeed(1))
	catalogue := []catalog.Artwork{{ID: "1", Artist: "A", Status: catalog.StatusAvailable}}

	res := e.Recommend(context.Background(), "7", catalogue, 6)
	assert.Equal(t, KindNoHistory, res.Kind)
	assert.Empty(t, res.Artworks)
	assert.NotNil(t, res.Artworks)
	assert.Empty(t, e.GeneratePersonalizedRecommendations(context.Background(), "7", catalogue, 6))
}

func TestHistoryFailureDegradesToEmpty(t *testing.T) {
	e := NewEngine(HistoryFunc(func(ctx context.Context, userID string) (History, error) {
		return History{}, errors.New("connection refused")
	}))
	res := e.Recommend(context.Background(), "7", []catalog.Artwork{{ID: "1", Status: catalog.StatusAvailable}}, 6)
	assert.Equal(t, KindUnavailable, res.Kind)
	assert.Empty(t, res.Artworks)
}

func TestHistoryTimeoutIsBounded(t *testing.T) {
	e := NewEngine(HistoryFunc(func(ctx context.Context, userID string) (History, error) {
		time.Sleep(500 * time.Millisecond) // ignores ctx on purpose
		return History{Orders: []OrderRecord{{Artist: "A"}}}, nil
	}), WithHistoryTimeout(20*time.Millisecond))

	start := time.Now()
	res := e.Recommend(context.Background(), "7", []catalog.Artwork{{ID: "1", Status: catalog.StatusAvailable}}, 6)
	assert.Equal(t, KindUnavailable, res.Kind)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestProviderPanicIsContained(t *testing.T) {
	e := NewEngine(HistoryFunc(func(ctx context.Context, userID string) (History, error) {
		panic("boom")
	}))
	res := e.Recommend(context.Background(), "7", []catalog.Artwork{{ID: "1", Status: catalog.StatusAvailable}}, 6)
	assert.Equal(t, KindUnavailable, res.Kind)
}

func TestBlankUserIDAndNilProvider(t *testing.T) {
	e := NewEngine(staticHistory(History{Orders: []OrderRecord{{Artist: "A"}}}))
	assert.Equal(t, KindUnavailable, e.Recommend(context.Background(), " ", nil, 6).Kind)

	assert.Equal(t, KindUnavailable, NewEngine(nil).Recommend(context.Background(), "1", nil, 6).Kind)
}

func TestExcludesSoldAndPurchasedAcrossIDRepresentations(t *testing.T) {
	e := NewEngine(staticHistory(History{Orders: []OrderRecord{
		{ArtworkID: catalog.ParseID(42), Artist: "A", Medium: "Oil", Price: 100},
	}}), WithSeed(3))

	catalogue := []catalog.Artwork{
		{ID: "42", Artist: "A", Medium: "Oil", Price: 100, Status: catalog.StatusAvailable},
		{ID: "43", Artist: "A", Medium: "Oil", Price: 100, Status: catalog.StatusSold},
		{ID: "44", Artist: "B", Medium: "Ink", Price: 900, Status: catalog.StatusAvailable},
	}

	res := e.Recommend(context.Background(), "1", catalogue, 6)
	assert.Equal(t, KindPersonalized, res.Kind)
	assert.True(t, res.Personalized())
	assert.Equal(t, []catalog.ID{"44"}, ids(res.Artworks))
}

func TestAllCandidatesFilteredOut(t *testing.T) {
	e := NewEngine(staticHistory(History{Orders: []OrderRecord{{ArtworkID: "1", Artist: "A"}}}))
	res := e.Recommend(context.Background(), "1", []catalog.Artwork{
		{ID: "1", Status: catalog.StatusAvailable},
		{ID: "2", Status: catalog.StatusSold},
	}, 6)
	assert.Equal(t, KindNoCandidates, res.Kind)
	assert.Empty(t, res.Artworks)
}

func TestLimitAndDefault(t *testing.T) {
	e := NewEngine(staticHistory(History{Orders: []OrderRecord{{ArtworkID: "x", Artist: "A"}}}), WithSeed(9))

	catalogue := make([]catalog.Artwork, 0, 10)
	for i := 0; i < 10; i++ {
		catalogue = append(catalogue, catalog.Artwork{ID: catalog.ParseID(i), Artist: "A", Status: catalog.StatusAvailable})
	}

	assert.Len(t, e.GeneratePersonalizedRecommendations(context.Background(), "1", catalogue, 3), 3)
	assert.Len(t, e.GeneratePersonalizedRecommendations(context.Background(), "1", catalogue, 0), DefaultLimit)
	assert.Len(t, e.GeneratePersonalizedRecommendations(context.Background(), "1", catalogue[:2], 6), 2)
}

func TestCatalogIsNotMutated(t *testing.T) {
	e := NewEngine(staticHistory(History{Orders: []OrderRecord{{ArtworkID: "x", Artist: "B", Price: 10}}}), WithSeed(5))
	catalogue := []catalog.Artwork{
		{ID: "1", Artist: "A", Price: 1, Status: catalog.StatusAvailable},
		{ID: "2", Artist: "B", Price: 10, Status: catalog.StatusAvailable},
	}
	before := append([]catalog.Artwork(nil), catalogue...)

	_ = e.GeneratePersonalizedRecommendations(context.Background(), "1", catalogue, 6)
	assert.Equal(t, before, catalogue)
}

func TestPriceClosestToRangesWins(t *testing.T) {
	catalogue := []catalog.Artwork{
		{ID: "cheap", Artist: "Jane Doe", Medium: "Oil", Price: 50, Status: catalog.StatusAvailable},
		{ID: "mid", Artist: "Jane Doe", Medium: "Oil", Price: 500, Status: catalog.StatusAvailable},
		{ID: "dear", Artist: "Jane Doe", Medium: "Oil", Price: 5000, Status: catalog.StatusAvailable},
	}
	e := NewEngine(staticHistory(History{Orders: []OrderRecord{
		{ArtworkID: "past-1", Artist: "Jane Doe", Medium: "Oil", Price: 500},
	}}))

	wins := 0
	for i := 0; i < 50; i++ {
		got := e.GeneratePersonalizedRecommendations(context.Background(), "1", catalogue, 6)
		require.Len(t, got, 3)
		if got[0].ID == "mid" {
			wins++
		}
	}
	assert.Equal(t, 50, wins)
}

func TestSeededEngineIsDeterministic(t *testing.T) {
	h := History{Orders: []OrderRecord{{ArtworkID: "0", Artist: "A"}}}
	catalogue := make([]catalog.Artwork, 0, 8)
	for i := 1; i <= 8; i++ {
		catalogue = append(catalogue, catalog.Artwork{ID: catalog.ParseID(i), Artist: "A", Status: catalog.StatusAvailable})
	}

	first := NewEngine(staticHistory(h), WithSeed(42)).GeneratePersonalizedRecommendations(context.Background(), "1", catalogue, 8)
	second := NewEngine(staticHistory(h), WithSeed(42)).GeneratePersonalizedRecommendations(context.Background(), "1", catalogue, 8)
	assert.Equal(t, ids(first), ids(second))
}

func TestPersonalizedInvariantsOverRandomCatalogs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	artists := []string{"Jane Doe", "Jane Roe", "Kofi Mensah", "Ama Owusu", "Thabo Nkosi"}
	mediums := []string{"Oil", "Acrylic", "Ink", ""}

	for round := 0; round < 100; round++ {
		n := rng.IntN(20)
		catalogue := make([]catalog.Artwork, 0, n)
		for i := 0; i < n; i++ {
			status := catalog.StatusAvailable
			if rng.IntN(3) == 0 {
				status = catalog.StatusSold
			}
			catalogue = append(catalogue, catalog.Artwork{
				ID:     catalog.ParseID(i),
				Artist: artists[rng.IntN(len(artists))],
				Medium: mediums[rng.IntN(len(mediums))],
				Price:  float64(rng.IntN(5000)),
				Status: status,
			})
		}

		orders := make([]OrderRecord, 0)
		for i, m := 0, rng.IntN(5); i < m; i++ {
			orders = append(orders, OrderRecord{
				ArtworkID: catalog.ParseID(rng.IntN(20)),
				Artist:    artists[rng.IntN(len(artists))],
				Medium:    mediums[rng.IntN(len(mediums))],
				Price:     float64(rng.IntN(5000)),
			})
		}
		limit := 1 + rng.IntN(8)

		e := NewEngine(staticHistory(History{Orders: orders}), WithSeed(uint64(round)))
		got := e.GeneratePersonalizedRecommendations(context.Background(), fmt.Sprint(round), catalogue, limit)

		if len(orders) == 0 {
			assert.Empty(t, got)
			continue
		}
		purchased := AnalyzePreferences(History{Orders: orders}).PurchasedIDs()
		candidates := Candidates(catalogue, purchased)

		assert.LessOrEqual(t, len(got), limit)
		assert.LessOrEqual(t, len(got), len(candidates))
		for _, a := range got {
			assert.Equal(t, catalog.StatusAvailable, a.Status)
			assert.NotContains(t, purchased, a.ID)
		}
	}
}
