package recommend

import (
	"context"
	"errors"

	"gallery-backend/internal/domain/catalog"
)

const (
	DefaultLimit        = 6
	DefaultSimilarLimit = 4
)

var ErrHistoryUnavailable = errors.New("user history unavailable")

// OrderRecord is one completed artwork purchase as reported by the history provider.
// Medium is empty when the upstream did not report one.
type OrderRecord struct {
	ArtworkID   catalog.ID
	Artist      string
	Medium      string
	Price       float64
	TotalAmount float64
}

// EffectivePrice prefers the per-item price and falls back to the order total.
func (o OrderRecord) EffectivePrice() float64 {
	if o.Price != 0 {
		return o.Price
	}
	return o.TotalAmount
}

type BookingRecord struct {
	ExhibitionID    catalog.ID
	ExhibitionTitle string
}

type History struct {
	Orders   []OrderRecord
	Bookings []BookingRecord
}

// HistoryProvider is the read side of orders and bookings, keyed by user.
type HistoryProvider interface {
	History(ctx context.Context, userID string) (History, error)
}

// HistoryFunc adapts a plain function to HistoryProvider.
type HistoryFunc func(ctx context.Context, userID string) (History, error)

func (f HistoryFunc) History(ctx context.Context, userID string) (History, error) {
	return f(ctx, userID)
}

// Kind tells the presentation layer which flavour of result it got, so an
// empty list can be rendered as "make your first purchase" rather than an error.
type Kind string

const (
	KindPersonalized Kind = "personalized"
	KindNoHistory    Kind = "no_history"
	KindUnavailable  Kind = "unavailable"
	KindNoCandidates Kind = "no_candidates"
	KindSimilar      Kind = "similar"
	KindGeneral      Kind = "general"
)

type Result struct {
	Kind     Kind
	Artworks []catalog.Artwork
}

func (r Result) Personalized() bool { return r.Kind == KindPersonalized }

type ScoredArtwork struct {
	Artwork catalog.Artwork
	Score   float64
}
