package stripe

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/orders"

	stripego "github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

const Currency = "eur"

// CheckoutTTL is how long a checkout session stays payable. Stripe accepts
// 30 minutes as the shortest expiry.
const CheckoutTTL = 30 * time.Minute

var ErrNotConfigured = errors.New("stripe key not configured")

// ArtworkCheckoutParams builds a one-off payment session for a single artwork.
// The order id travels as client_reference_id and in metadata so the webhook
// can find the order again.
func ArtworkCheckoutParams(order orders.ArtworkOrder, art catalog.Artwork, email, appURL string) *stripego.CheckoutSessionParams {
	params := &stripego.CheckoutSessionParams{
		Mode:              stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL:        stripego.String(appURL + "/orders?checkout=success"),
		CancelURL:         stripego.String(appURL + "/artworks/" + art.ID.String() + "?canceled=1"),
		ClientReferenceID: stripego.String(fmt.Sprint(order.ID)),
		ExpiresAt:         stripego.Int64(time.Now().Add(CheckoutTTL).Unix()),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				Quantity: stripego.Int64(1),
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripego.String(Currency),
					UnitAmount: stripego.Int64(ToMinorUnits(order.TotalAmount)),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripego.String(art.Title),
						Description: stripego.String("by " + art.Artist),
					},
				},
			},
		},
		Metadata: map[string]string{
			"order_id":   fmt.Sprint(order.ID),
			"artwork_id": art.ID.String(),
			"user_id":    fmt.Sprint(order.UserID),
		},
	}
	if email != "" {
		params.CustomerEmail = stripego.String(email)
	}
	return params
}

// NewArtworkCheckout creates the session with Stripe and returns it.
func NewArtworkCheckout(key string, order orders.ArtworkOrder, art catalog.Artwork, email, appURL string) (*stripego.CheckoutSession, error) {
	if key == "" {
		return nil, ErrNotConfigured
	}
	stripego.Key = key
	s, err := checkoutsession.New(ArtworkCheckoutParams(order, art, email, appURL))
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return s, nil
}

func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
