package artworks

import (
	"context"
	"strings"

	"gallery-backend/internal/domain/catalog"

	"gorm.io/gorm"
)

// Catalog loads every artwork in a stable order. Ranking breaks exact ties
// by position, so the order must not change between calls.
func Catalog(ctx context.Context, db *gorm.DB) ([]catalog.Artwork, error) {
	var out []catalog.Artwork
	err := db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

type listFilter struct {
	Status   string
	Artist   string
	Medium   string
	Search   string
	ArtistID uint
}

func listQuery(db *gorm.DB, f listFilter) *gorm.DB {
	q := db.Model(&catalog.Artwork{})
	if f.Status != "" {
		q = q.Where("status = ?", catalog.NormalizeStatus(f.Status))
	}
	if f.Artist != "" {
		q = q.Where("artist = ?", f.Artist)
	}
	if f.Medium != "" {
		q = q.Where("medium = ?", f.Medium)
	}
	if f.ArtistID != 0 {
		q = q.Where("artist_id = ?", f.ArtistID)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(artist) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}
	return q
}
