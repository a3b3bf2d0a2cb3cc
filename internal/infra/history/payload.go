package history

import (
	"time"

	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/orders"
	"gallery-backend/internal/domain/recommend"
)

// Payload is the body of GET /user/:id/orders. The server writes the
// camelCase fields; the client also accepts the snake_case spellings older
// deployments send.
type Payload struct {
	Orders   []OrderPayload   `json:"orders"`
	Bookings []BookingPayload `json:"bookings"`
	Error    string           `json:"error,omitempty"`
}

type OrderPayload struct {
	ID                uint       `json:"id,omitempty"`
	ArtworkID         catalog.ID `json:"artworkId"`
	LegacyArtworkID   catalog.ID `json:"artwork_id,omitempty"`
	ArtworkTitle      string     `json:"artworkTitle,omitempty"`
	Artist            string     `json:"artist"`
	Medium            *string    `json:"medium,omitempty"`
	Price             *float64   `json:"price,omitempty"`
	TotalAmount       *float64   `json:"totalAmount,omitempty"`
	LegacyTotalAmount *float64   `json:"total_amount,omitempty"`
	Status            string     `json:"status,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}

type BookingPayload struct {
	ID              uint       `json:"id,omitempty"`
	ExhibitionID    catalog.ID `json:"exhibitionId"`
	LegacyID        catalog.ID `json:"exhibition_id,omitempty"`
	ExhibitionTitle string     `json:"exhibitionTitle"`
	LegacyTitle     string     `json:"exhibition_title,omitempty"`
	Slots           int        `json:"slots,omitempty"`
	TicketCode      string     `json:"ticketCode,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

func (o OrderPayload) Record() recommend.OrderRecord {
	id := o.ArtworkID
	if id.IsZero() {
		id = o.LegacyArtworkID
	}
	rec := recommend.OrderRecord{ArtworkID: id, Artist: o.Artist}
	if o.Medium != nil {
		rec.Medium = *o.Medium
	}
	if o.Price != nil {
		rec.Price = *o.Price
	}
	switch {
	case o.TotalAmount != nil:
		rec.TotalAmount = *o.TotalAmount
	case o.LegacyTotalAmount != nil:
		rec.TotalAmount = *o.LegacyTotalAmount
	}
	return rec
}

func (b BookingPayload) Record() recommend.BookingRecord {
	rec := recommend.BookingRecord{ExhibitionID: b.ExhibitionID, ExhibitionTitle: b.ExhibitionTitle}
	if rec.ExhibitionID.IsZero() {
		rec.ExhibitionID = b.LegacyID
	}
	if rec.ExhibitionTitle == "" {
		rec.ExhibitionTitle = b.LegacyTitle
	}
	return rec
}

func (p Payload) History() recommend.History {
	h := recommend.History{
		Orders:   make([]recommend.OrderRecord, 0, len(p.Orders)),
		Bookings: make([]recommend.BookingRecord, 0, len(p.Bookings)),
	}
	for _, o := range p.Orders {
		h.Orders = append(h.Orders, o.Record())
	}
	for _, b := range p.Bookings {
		h.Bookings = append(h.Bookings, b.Record())
	}
	return h
}

// NewPayload renders stored orders and bookings in wire form.
func NewPayload(ords []orders.ArtworkOrder, bookings []orders.ExhibitionBooking) Payload {
	p := Payload{
		Orders:   make([]OrderPayload, 0, len(ords)),
		Bookings: make([]BookingPayload, 0, len(bookings)),
	}
	for _, o := range ords {
		created := o.CreatedAt
		price, total := o.Price, o.TotalAmount
		op := OrderPayload{
			ID:           o.ID,
			ArtworkID:    o.ArtworkID,
			ArtworkTitle: o.ArtworkTitle,
			Artist:       o.Artist,
			Price:        &price,
			TotalAmount:  &total,
			Status:       o.Status,
			CreatedAt:    &created,
		}
		if o.Medium != "" {
			medium := o.Medium
			op.Medium = &medium
		}
		p.Orders = append(p.Orders, op)
	}
	for _, b := range bookings {
		created := b.CreatedAt
		p.Bookings = append(p.Bookings, BookingPayload{
			ID:              b.ID,
			ExhibitionID:    b.ExhibitionID,
			ExhibitionTitle: b.ExhibitionTitle,
			Slots:           b.Slots,
			TicketCode:      b.TicketCode,
			CreatedAt:       &created,
		})
	}
	return p
}
