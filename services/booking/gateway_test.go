package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76"
)

func TestFromStripeSession(t *testing.T) {
	base := func() *stripe.CheckoutSession {
		return &stripe.CheckoutSession{
			ID:            "cs_1",
			PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			AmountTotal:   45000,
			Currency:      stripe.CurrencyUSD,
			CustomerEmail: "created-with@x.com",
			Metadata:      map[string]string{"bookingId": "bk-1"},
		}
	}

	t.Run("maps core fields", func(t *testing.T) {
		cs := fromStripeSession(base())
		assert.Equal(t, "cs_1", cs.ID)
		assert.Equal(t, SessionPaid, cs.PaymentStatus)
		assert.Equal(t, int64(45000), cs.AmountTotal)
		assert.Equal(t, "usd", cs.Currency)
		assert.Equal(t, "bk-1", cs.Metadata["bookingId"])
		assert.Empty(t, cs.PaymentIntentID)
	})

	t.Run("customer details email wins over the creation echo", func(t *testing.T) {
		s := base()
		s.CustomerDetails = &stripe.CheckoutSessionCustomerDetails{Email: "paid-with@x.com"}
		cs := fromStripeSession(s)
		assert.Equal(t, "paid-with@x.com", cs.CustomerEmail)
	})

	t.Run("falls back to the creation email", func(t *testing.T) {
		s := base()
		s.CustomerDetails = &stripe.CheckoutSessionCustomerDetails{}
		cs := fromStripeSession(s)
		assert.Equal(t, "created-with@x.com", cs.CustomerEmail)
	})

	t.Run("payment intent id when expanded", func(t *testing.T) {
		s := base()
		s.PaymentIntent = &stripe.PaymentIntent{ID: "pi_1"}
		cs := fromStripeSession(s)
		assert.Equal(t, "pi_1", cs.PaymentIntentID)
	})
}
