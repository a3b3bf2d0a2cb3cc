package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/platform/logger"
	"gallery-backend/internal/platform/metrics"
)

const DefaultHistoryTimeout = 15 * time.Second

// Engine ranks catalog artworks for a user. It holds no per-user state; every
// call fetches history, derives a fresh profile and throws it away.
type Engine struct {
	history HistoryProvider
	timeout time.Duration
	log     *logger.Logger
	newRand func() *rand.Rand
}

type Option func(*Engine)

func WithHistoryTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSeed makes every call draw from the same seeded sequence, so jitter and
// shuffles repeat exactly. Meant for tests.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithRandSource sets the generator factory. It is called once per request;
// the returned generator is not shared between calls.
func WithRandSource(fn func() *rand.Rand) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newRand = fn
		}
	}
}

func NewEngine(history HistoryProvider, opts ...Option) *Engine {
	e := &Engine{
		history: history,
		timeout: DefaultHistoryTimeout,
		log:     logger.Nop(),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GeneratePersonalizedRecommendations returns up to limit artworks ranked for
// userID, or an empty slice when nothing personal can be said. It never fails.
func (e *Engine) GeneratePersonalizedRecommendations(ctx context.Context, userID string, artworks []catalog.Artwork, limit int) []catalog.Artwork {
	return e.Recommend(ctx, userID, artworks, limit).Artworks
}

// Recommend is GeneratePersonalizedRecommendations plus the reason behind the result.
func (e *Engine) Recommend(ctx context.Context, userID string, artworks []catalog.Artwork, limit int) (res Result) {
	log := e.log.With("user_id", userID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("recommendation panic", "panic", fmt.Sprint(r))
			res = emptyResult(KindUnavailable)
		}
		metrics.RecommendationsTotal.WithLabelValues(string(res.Kind)).Inc()
	}()

	if limit <= 0 {
		limit = DefaultLimit
	}
	if strings.TrimSpace(userID) == "" {
		return emptyResult(KindUnavailable)
	}

	h, err := e.fetchHistory(ctx, userID)
	if err != nil {
		log.Warn("history lookup failed", "error", err)
		return emptyResult(KindUnavailable)
	}
	if len(h.Orders) == 0 {
		log.Debug("no purchase history")
		return emptyResult(KindNoHistory)
	}

	prefs := AnalyzePreferences(h)
	candidates := Candidates(artworks, prefs.PurchasedIDs())
	if len(candidates) == 0 {
		log.Debug("no candidates left after filtering", "purchased", len(prefs.PurchaseHistory))
		return emptyResult(KindNoCandidates)
	}

	ranked := Rank(candidates, prefs, e.newRand())
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]catalog.Artwork, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.Artwork)
	}
	log.Debug("recommendations ranked",
		"candidates", len(candidates),
		"returned", len(out),
		"favorite_artists", prefs.FavoriteArtists,
	)
	return Result{Kind: KindPersonalized, Artworks: out}
}

// fetchHistory bounds the provider call by the engine timeout even when the
// provider ignores its context.
func (e *Engine) fetchHistory(ctx context.Context, userID string) (History, error) {
	if e.history == nil {
		return History{}, ErrHistoryUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type reply struct {
		h   History
		err error
	}
	ch := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- reply{err: fmt.Errorf("%w: provider panic: %v", ErrHistoryUnavailable, r)}
			}
		}()
		h, err := e.history.History(ctx, userID)
		ch <- reply{h: h, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return History{}, fmt.Errorf("%w: %w", ErrHistoryUnavailable, r.err)
		}
		return r.h, nil
	case <-ctx.Done():
		return History{}, fmt.Errorf("%w: %w", ErrHistoryUnavailable, ctx.Err())
	}
}

// Candidates keeps available artworks the user has not bought already.
func Candidates(artworks []catalog.Artwork, purchased map[catalog.ID]struct{}) []catalog.Artwork {
	out := make([]catalog.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if !a.IsAvailable() {
			continue
		}
		if _, bought := purchased[a.ID]; bought {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Rank scores candidates and sorts them best first. Exact ties keep catalog order.
func Rank(candidates []catalog.Artwork, prefs Preferences, rng *rand.Rand) []ScoredArtwork {
	scored := make([]ScoredArtwork, 0, len(candidates))
	for _, a := range candidates {
		scored = append(scored, ScoredArtwork{Artwork: a, Score: Score(a, prefs, rng)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func emptyResult(kind Kind) Result {
	return Result{Kind: kind, Artworks: []catalog.Artwork{}}
}
