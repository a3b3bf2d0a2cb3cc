package exhibitions

import (
	"errors"
	"time"

	"gallery-backend/internal/domain/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusUpcoming = "upcoming"
	StatusOngoing  = "ongoing"
	StatusPast     = "past"
)

var ErrClosed = errors.New("exhibition has ended")

type Exhibition struct {
	ID catalog.ID `gorm:"size:64;primaryKey" json:"id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ImageURL    string `gorm:"column:image_url" json:"imageUrl"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	TicketPrice    float64 `gorm:"not null;default:0" json:"ticketPrice"`
	TotalSlots     int     `gorm:"not null;default:0" json:"totalSlots"`
	AvailableSlots int     `gorm:"not null;default:0" json:"availableSlots"`

	Status string `gorm:"type:varchar(20);not null;default:'upcoming'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Exhibition) BeforeCreate(tx *gorm.DB) error {
	if e.ID.IsZero() {
		e.ID = catalog.ID(uuid.NewString())
	}
	if e.Status == "" {
		e.Status = StatusFor(time.Now(), e.StartDate, e.EndDate)
	}
	return nil
}

// StatusFor derives the lifecycle status from the exhibition window.
func StatusFor(now, start, end time.Time) string {
	switch {
	case !end.IsZero() && now.After(end):
		return StatusPast
	case !start.IsZero() && now.Before(start):
		return StatusUpcoming
	case start.IsZero() && end.IsZero():
		return StatusUpcoming
	default:
		return StatusOngoing
	}
}

func (e Exhibition) Bookable(now time.Time) bool {
	return e.AvailableSlots > 0 && StatusFor(now, e.StartDate, e.EndDate) != StatusPast
}
