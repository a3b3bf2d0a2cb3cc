package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
)

// NormalizeStatus maps free-form input onto a known status. Unknown values
// become "sold" so they never leak into recommendations.
func NormalizeStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(StatusAvailable):
		return StatusAvailable
	default:
		return StatusSold
	}
}

type Artwork struct {
	ID ID `gorm:"size:64;primaryKey" json:"id"`

	Title       string `gorm:"not null" json:"title"`
	Artist      string `gorm:"not null;index" json:"artist"`
	ArtistID    *uint  `gorm:"index" json:"artist_id,omitempty"`
	Description string `json:"description"`

	Medium     string  `gorm:"index" json:"medium,omitempty"`
	Dimensions string  `json:"dimensions,omitempty"`
	Year       int     `json:"year,omitempty"`
	Price      float64 `gorm:"not null;default:0" json:"price"`
	ImageURL   string  `gorm:"column:image_url" json:"imageUrl"`

	Status Status `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID.IsZero() {
		a.ID = ID(uuid.NewString())
	}
	if a.Status == "" {
		a.Status = StatusAvailable
	}
	return nil
}

func (a Artwork) IsAvailable() bool {
	return a.Status == StatusAvailable
}
