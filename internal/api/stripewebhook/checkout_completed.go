package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"

	"gallery-backend/database"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/orders"
	payments "gallery-backend/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutSession moves the order behind session along its lifecycle.
// Completed orders mark their artwork sold, which takes it out of every
// recommendation list. A paid order whose artwork was already sold is
// cancelled instead. Replayed events are no-ops.
func handleCheckoutSession(c *gin.Context, session *stripe.CheckoutSession) error {
	orderID, err := orderIDFromSession(session)
	if err != nil {
		return err
	}
	status := payments.OrderStatusFor(string(session.Status), string(session.PaymentStatus))

	return database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var order orders.ArtworkOrder
		if err := tx.First(&order, orderID).Error; err != nil {
			return fmt.Errorf("order %d not found: %w", orderID, err)
		}
		if order.Status == orders.StatusCompleted || order.Status == status {
			return nil
		}

		if status == orders.StatusCompleted {
			// Only the first paid order may take the artwork.
			res := tx.Model(&catalog.Artwork{}).
				Where("id = ? AND status = ?", order.ArtworkID, catalog.StatusAvailable).
				Update("status", catalog.StatusSold)
			if res.Error != nil {
				return fmt.Errorf("failed to mark artwork sold: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				fmt.Printf("❌ Order %d paid for artwork %s which is already sold, needs refund\n", order.ID, order.ArtworkID)
				status = orders.StatusCancelled
			}
		}

		updates := map[string]interface{}{"status": status}
		if session.ID != "" {
			updates["stripe_session_id"] = session.ID
		}
		if session.AmountTotal > 0 {
			updates["total_amount"] = float64(session.AmountTotal) / 100
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
}

func orderIDFromSession(session *stripe.CheckoutSession) (uint, error) {
	raw := ""
	if session.Metadata != nil {
		raw = session.Metadata["order_id"]
	}
	if raw == "" {
		raw = session.ClientReferenceID
	}
	if raw == "" {
		return 0, errors.New("missing order_id (metadata.order_id or client_reference_id)")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid order_id %q", raw)
	}
	return uint(id), nil
}
