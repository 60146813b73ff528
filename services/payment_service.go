package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"quickstay-backend/models"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"gorm.io/gorm"
)

// PaymentService creates Stripe Checkout Sessions for existing bookings.
// The bookingId travels in the session metadata so the webhook can route
// the completion event back to the right booking.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// CheckoutAmountCents converts a booking total to the minor currency unit
// Stripe expects.
func CheckoutAmountCents(totalPrice float64) int64 {
	return int64(math.Round(totalPrice * 100))
}

// CreateCheckoutSession builds a hosted checkout for the booking and
// returns its URL. origin is the browser origin used for the redirect
// targets after payment.
func (s *PaymentService) CreateCheckoutSession(bookingID uint, origin string) (string, error) {
	var booking models.Booking
	if err := s.DB.Preload("Hotel").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBookingNotFound
		}
		return "", fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	if origin == "" {
		origin = "http://localhost:5173"
	}
	origin = strings.TrimRight(origin, "/")

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(booking.Hotel.Name),
					},
					UnitAmount: stripe.Int64(CheckoutAmountCents(booking.TotalPrice)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(origin + "/loader/my-bookings"),
		CancelURL:  stripe.String(origin + "/my-bookings"),
	}
	params.AddMetadata("bookingId", strconv.FormatUint(uint64(booking.ID), 10))

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}
