package recommend

import (
	"math"
	"math/rand/v2"
	"strings"

	"gallery-backend/internal/domain/catalog"
)

const (
	artistTopWeight = 100.0
	artistDecay     = 20.0
	mediumTopWeight = 40.0
	mediumDecay     = 10.0
	priceFitBonus   = 30.0
	affinityBonus   = 15.0
	maxJitter       = 5.0
)

// Score rates one candidate against a profile. rng supplies the tie-break
// jitter in [0, 5); a nil rng scores without jitter.
func Score(a catalog.Artwork, p Preferences, rng *rand.Rand) float64 {
	score := 0.0

	if i := indexOf(p.FavoriteArtists, a.Artist); i >= 0 {
		score += math.Max(0, artistTopWeight-artistDecay*float64(i))
	}

	if i := indexOf(p.PreferredMediums, a.Medium); i >= 0 {
		// Unclamped: a long medium list can push this term negative.
		score += mediumTopWeight - mediumDecay*float64(i)
	}

	if p.InPriceRange(a.Price) {
		score += priceFitBonus
	}

	if sharesArtistToken(a.Artist, p.FavoriteArtists) {
		score += affinityBonus
	}

	if rng != nil {
		score += rng.Float64() * maxJitter
	}

	return score
}

// sharesArtistToken reports whether artist differs from some favourite yet
// contains that favourite's first name token, case-insensitively.
func sharesArtistToken(artist string, favorites []string) bool {
	lowered := strings.ToLower(artist)
	for _, fav := range favorites {
		if artist == fav {
			continue
		}
		token := strings.ToLower(strings.SplitN(fav, " ", 2)[0])
		if token == "" {
			continue
		}
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
