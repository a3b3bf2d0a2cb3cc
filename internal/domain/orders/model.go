package orders

import (
	"time"

	"gallery-backend/internal/domain/catalog"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ArtworkOrder is one artwork purchase. Artist, medium and price are copied
// from the artwork at order time so history survives catalog edits.
type ArtworkOrder struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	ArtworkID    catalog.ID `gorm:"size:64;not null;index" json:"artworkId"`
	ArtworkTitle string     `json:"artworkTitle"`
	Artist       string     `gorm:"not null" json:"artist"`
	Medium       string     `json:"medium,omitempty"`
	Price        float64    `gorm:"not null;default:0" json:"price"`
	TotalAmount  float64    `gorm:"not null;default:0" json:"totalAmount"`

	ShippingAddress string `json:"shippingAddress,omitempty"`

	Status          string  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StripeSessionID *string `gorm:"uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ExhibitionBooking struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	ExhibitionID    catalog.ID `gorm:"size:64;not null;index" json:"exhibitionId"`
	ExhibitionTitle string     `json:"exhibitionTitle"`

	Slots       int     `gorm:"not null;default:1" json:"slots"`
	TotalAmount float64 `gorm:"not null;default:0" json:"totalAmount"`
	Status      string  `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	TicketCode  string  `gorm:"size:64;uniqueIndex" json:"ticketCode"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
