package booking

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// SessionPaid is the gateway payment status of a settled checkout session.
const SessionPaid = "paid"

// CheckoutSession is the gateway-neutral view of a checkout session.
type CheckoutSession struct {
	ID              string
	PaymentStatus   string
	PaymentIntentID string
	AmountTotal     int64 // smallest currency unit
	Currency        string
	CustomerEmail   string
	Metadata        map[string]string
}

// CheckoutRequest describes the checkout session to create for a booking.
type CheckoutRequest struct {
	BookingID   string
	ServiceName string
	ClientEmail string
	BookingDate string
	Location    string
	TotalCost   float64
}

// PaymentGateway abstracts the third-party payment provider. Only session
// creation and retrieval are needed; confirmation handling is local.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (url string, err error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// StripeGateway implements PaymentGateway on Stripe Checkout. The package
// level stripe.Key is set at startup.
type StripeGateway struct {
	SiteDomain string
}

// CreateCheckoutSession opens a Stripe Checkout session for the booking and
// returns the hosted payment page URL.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	amount := int64(req.TotalCost * 100)

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ServiceName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.ClientEmail),
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(g.SiteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(g.SiteDomain + "/dashboard/payment-cancel"),
	}
	params.Context = ctx
	params.AddMetadata("bookingId", req.BookingID)
	params.AddMetadata("serviceName", req.ServiceName)
	params.AddMetadata("clientEmail", req.ClientEmail)
	params.AddMetadata("bookingDate", req.BookingDate)
	params.AddMetadata("location", req.Location)

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return s.URL, nil
}

// RetrieveSession fetches a checkout session by id.
func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", sessionID, err)
	}
	return fromStripeSession(s), nil
}

// fromStripeSession maps a Stripe checkout session onto the gateway-neutral
// view. CustomerDetails carries the email the payer actually completed with;
// the top-level customer_email is only an echo of session creation.
func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	cs := &CheckoutSession{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		cs.CustomerEmail = s.CustomerDetails.Email
	}
	if s.PaymentIntent != nil {
		cs.PaymentIntentID = s.PaymentIntent.ID
	}
	return cs
}
