package stripe

import (
	"strings"

	"gallery-backend/internal/domain/orders"
)

// OrderStatusFor maps a Checkout Session's status/payment_status pair onto
// our order lifecycle.
func OrderStatusFor(sessionStatus, paymentStatus string) string {
	switch strings.TrimSpace(paymentStatus) {
	case "paid", "no_payment_required":
		return orders.StatusCompleted
	}
	switch strings.TrimSpace(sessionStatus) {
	case "expired":
		return orders.StatusCancelled
	default:
		return orders.StatusPending
	}
}
