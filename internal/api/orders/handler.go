package orders

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gallery-backend/config"
	"gallery-backend/database"
	"gallery-backend/internal/app/http/middleware"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/exhibitions"
	"gallery-backend/internal/domain/orders"
	"gallery-backend/internal/infra/history"
	"gallery-backend/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errSoldOut      = errors.New("not enough slots left")
	errNotAvailable = errors.New("artwork is not available")
	errCheckoutOpen = errors.New("artwork is reserved by an open checkout")
)

// GET /user/:id/orders
// Completed orders and bookings, oldest first. This is also the endpoint the
// remote history client reads.
func GetUserOrders(c *gin.Context) {
	uid, err := history.ParseUserID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	ords, bookings, err := history.NewStore(database.DB).Load(c.Request.Context(), uid)
	if err != nil {
		fmt.Println("❌ Order history error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, history.NewPayload(ords, bookings))
}

// POST /orders/artwork
// Creates a pending order and a Stripe Checkout session for it. The artwork
// stays available until the webhook confirms payment.
func CreateArtworkOrder(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var in struct {
		ArtworkID       catalog.ID `json:"artworkId" binding:"required"`
		ShippingAddress string     `json:"shippingAddress"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var art catalog.Artwork
	err := database.DB.WithContext(c.Request.Context()).First(&art, "id = ?", in.ArtworkID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return
	}
	if !art.IsAvailable() {
		c.JSON(http.StatusConflict, gin.H{"error": errNotAvailable.Error()})
		return
	}

	// Pending orders older than one checkout window can no longer be paid.
	var open int64
	if err := database.DB.Model(&orders.ArtworkOrder{}).
		Where("artwork_id = ? AND status = ? AND created_at > ?", art.ID, orders.StatusPending, time.Now().Add(-stripe.CheckoutTTL)).
		Count(&open).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check open orders"})
		return
	}
	if open > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": errCheckoutOpen.Error()})
		return
	}

	order := orders.ArtworkOrder{
		UserID:          s.UserID,
		ArtworkID:       art.ID,
		ArtworkTitle:    art.Title,
		Artist:          art.Artist,
		Medium:          art.Medium,
		Price:           art.Price,
		TotalAmount:     art.Price,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		Status:          orders.StatusPending,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	cs, err := stripe.NewArtworkCheckout(config.STRIPE_SECRET_KEY, order, art, s.Email, config.APP_URL)
	if err != nil {
		fmt.Println("❌ Checkout error:", err)
		database.DB.Model(&order).Update("status", orders.StatusCancelled)
		if errors.Is(err, stripe.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payments are not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to start checkout"})
		return
	}

	if err := database.DB.Model(&order).Update("stripe_session_id", cs.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store checkout session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order, "url": cs.URL})
}

// POST /orders/exhibition
// Bookings are confirmed immediately; tickets are settled at the door.
func CreateExhibitionBooking(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var in struct {
		ExhibitionID catalog.ID `json:"exhibitionId" binding:"required"`
		Slots        int        `json:"slots"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Slots <= 0 {
		in.Slots = 1
	}

	var booking orders.ExhibitionBooking
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var ex exhibitions.Exhibition
		if err := tx.First(&ex, "id = ?", in.ExhibitionID).Error; err != nil {
			return err
		}
		if exhibitions.StatusFor(time.Now(), ex.StartDate, ex.EndDate) == exhibitions.StatusPast {
			return exhibitions.ErrClosed
		}

		// conditional decrement so concurrent bookings cannot oversell
		res := tx.Model(&exhibitions.Exhibition{}).
			Where("id = ? AND available_slots >= ?", ex.ID, in.Slots).
			Update("available_slots", gorm.Expr("available_slots - ?", in.Slots))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errSoldOut
		}

		booking = orders.ExhibitionBooking{
			UserID:          s.UserID,
			ExhibitionID:    ex.ID,
			ExhibitionTitle: ex.Title,
			Slots:           in.Slots,
			TotalAmount:     ex.TicketPrice * float64(in.Slots),
			Status:          orders.StatusCompleted,
			TicketCode:      uuid.NewString(),
		}
		return tx.Create(&booking).Error
	})

	switch {
	case err == nil:
		c.JSON(http.StatusCreated, booking)
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Exhibition not found"})
	case errors.Is(err, errSoldOut), errors.Is(err, exhibitions.ErrClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		fmt.Println("❌ Booking error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book exhibition"})
	}
}

// GET /tickets
func ListTickets(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var bookings []orders.ExhibitionBooking
	if err := database.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /orders (admin)
func ListAllOrders(c *gin.Context) {
	q := database.DB.WithContext(c.Request.Context()).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var out []orders.ArtworkOrder
	if err := q.Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, out)
}
