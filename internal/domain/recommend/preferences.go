package recommend

import (
	"math"
	"sort"
	"strings"

	"gallery-backend/internal/domain/catalog"
)

const UnknownMedium = "Unknown"

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

type Purchase struct {
	ArtworkID catalog.ID `json:"artworkId"`
	Artist    string     `json:"artist"`
	Medium    string     `json:"medium"`
	Price     float64    `json:"price"`
}

type ExhibitionVisit struct {
	ExhibitionID    catalog.ID `json:"exhibitionId"`
	ExhibitionTitle string     `json:"exhibitionTitle"`
}

// Preferences is the profile derived from one user's history. It is rebuilt
// on every request and never stored.
type Preferences struct {
	FavoriteArtists  []string     `json:"favoriteArtists"`
	PreferredMediums []string     `json:"preferredMediums"`
	PriceRanges      []PriceRange `json:"priceRanges"`
	PurchaseHistory  []Purchase   `json:"purchaseHistory"`

	// Collected but not scored yet.
	ExhibitionHistory []ExhibitionVisit `json:"exhibitionHistory"`
}

func (p Preferences) PurchasedIDs() map[catalog.ID]struct{} {
	ids := make(map[catalog.ID]struct{}, len(p.PurchaseHistory))
	for _, ph := range p.PurchaseHistory {
		if ph.ArtworkID.IsZero() {
			continue
		}
		ids[ph.ArtworkID] = struct{}{}
	}
	return ids
}

func (p Preferences) InPriceRange(price float64) bool {
	for _, r := range p.PriceRanges {
		if r.Contains(price) {
			return true
		}
	}
	return false
}

// AnalyzePreferences derives the preference profile from raw history.
func AnalyzePreferences(h History) Preferences {
	prefs := Preferences{
		FavoriteArtists:   []string{},
		PreferredMediums:  []string{},
		PriceRanges:       []PriceRange{},
		PurchaseHistory:   make([]Purchase, 0, len(h.Orders)),
		ExhibitionHistory: make([]ExhibitionVisit, 0, len(h.Bookings)),
	}

	artists := newCounter()
	mediums := newCounter()
	prices := make([]float64, 0, len(h.Orders))

	for _, o := range h.Orders {
		artist := strings.TrimSpace(o.Artist)
		medium := strings.TrimSpace(o.Medium)
		price := o.EffectivePrice()

		artists.add(artist)
		if medium != "" {
			mediums.add(medium)
		}
		prices = append(prices, price)

		if medium == "" {
			medium = UnknownMedium
		}
		prefs.PurchaseHistory = append(prefs.PurchaseHistory, Purchase{
			ArtworkID: o.ArtworkID,
			Artist:    artist,
			Medium:    medium,
			Price:     price,
		})
	}

	prefs.FavoriteArtists = artists.ranked()
	prefs.PreferredMediums = mediums.ranked()
	prefs.PriceRanges = priceRangesFor(prices)

	for _, b := range h.Bookings {
		prefs.ExhibitionHistory = append(prefs.ExhibitionHistory, ExhibitionVisit{
			ExhibitionID:    b.ExhibitionID,
			ExhibitionTitle: b.ExhibitionTitle,
		})
	}

	return prefs
}

// priceRangesFor returns two overlapping bands: one around the mean and one
// around the observed extremes. Both are kept; matching either counts.
func priceRangesFor(prices []float64) []PriceRange {
	if len(prices) == 0 {
		return []PriceRange{}
	}

	sum := 0.0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range prices {
		sum += p
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	avg := sum / float64(len(prices))

	return []PriceRange{
		bounded(avg*0.5, avg*2),
		bounded(lo*0.8, hi*1.2),
	}
}

func bounded(min, max float64) PriceRange {
	min = math.Max(0, min)
	if max < min {
		max = min
	}
	return PriceRange{Min: min, Max: max}
}

// counter keeps encounter order so equal counts rank first-seen first.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) ranked() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	sort.SliceStable(out, func(i, j int) bool {
		return c.counts[out[i]] > c.counts[out[j]]
	})
	return out
}
