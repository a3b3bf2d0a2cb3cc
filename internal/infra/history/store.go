package history

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gallery-backend/internal/domain/orders"
	"gallery-backend/internal/domain/recommend"
	"gallery-backend/internal/platform/metrics"

	"gorm.io/gorm"
)

var ErrInvalidUser = errors.New("invalid user id")

// Store reads purchase history straight from our own tables.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Load returns a user's completed orders and bookings, oldest first.
func (s *Store) Load(ctx context.Context, userID uint) ([]orders.ArtworkOrder, []orders.ExhibitionBooking, error) {
	var ords []orders.ArtworkOrder
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, orders.StatusCompleted).
		Order("created_at ASC, id ASC").
		Find(&ords).Error; err != nil {
		return nil, nil, fmt.Errorf("load orders: %w", err)
	}

	var bookings []orders.ExhibitionBooking
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, orders.StatusCompleted).
		Order("created_at ASC, id ASC").
		Find(&bookings).Error; err != nil {
		return nil, nil, fmt.Errorf("load bookings: %w", err)
	}
	return ords, bookings, nil
}

func (s *Store) History(ctx context.Context, userID string) (h recommend.History, err error) {
	start := time.Now()
	defer func() {
		metrics.HistoryFetchDuration.WithLabelValues("db", outcome(err)).Observe(time.Since(start).Seconds())
	}()

	uid, err := ParseUserID(userID)
	if err != nil {
		return recommend.History{}, err
	}
	ords, bookings, err := s.Load(ctx, uid)
	if err != nil {
		return recommend.History{}, err
	}
	return NewPayload(ords, bookings).History(), nil
}

func ParseUserID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUser, raw)
	}
	return uint(n), nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
