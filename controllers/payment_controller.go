package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"quickstay-backend/services"
	"quickstay-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

type CheckoutSessionPayload struct {
	BookingID uint `json:"bookingId" binding:"required"`
}

// PaymentController exposes checkout-session creation and the payment
// processor's webhook.
type PaymentController struct {
	PaymentSvc *services.PaymentService
	BookingSvc *services.BookingService

	// Shared secret the processor signs webhook payloads with.
	WebhookSecret string
}

func NewPaymentController(paymentSvc *services.PaymentService, bookingSvc *services.BookingService, webhookSecret string) *PaymentController {
	return &PaymentController{
		PaymentSvc:    paymentSvc,
		BookingSvc:    bookingSvc,
		WebhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession handles POST /api/bookings/stripe-payment.
func (ctrl *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var payload CheckoutSessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bookingId is required")
		return
	}

	url, err := ctrl.PaymentSvc.CreateCheckoutSession(payload.BookingID, c.GetHeader("Origin"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("CreateCheckoutSession error for booking %d: %v", payload.BookingID, err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// StripeWebhook handles POST /api/stripe.
//
// Signature verification runs over the raw request bytes exactly as
// received; the payload must never be parsed or re-serialized first.
// Apart from a bad signature or a missing booking reference, the event is
// always acknowledged: the processor retries unacknowledged deliveries
// indefinitely, and ConfirmPayment is idempotent under redelivery.
func (ctrl *PaymentController) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "failed to read payload")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), ctrl.WebhookSecret)
	if err != nil {
		log.Printf("stripe webhook: signature verification failed: %v", err)
		c.String(http.StatusBadRequest, "Webhook Error: %v", err)
		return
	}

	if event.Type != "checkout.session.completed" {
		log.Printf("stripe webhook: ignoring event type %s", event.Type)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Printf("stripe webhook: failed to decode session object: %v", err)
		c.String(http.StatusBadRequest, "invalid session payload")
		return
	}

	bookingRef := session.Metadata["bookingId"]
	if bookingRef == "" {
		log.Printf("stripe webhook: checkout.session.completed without bookingId metadata")
		c.String(http.StatusBadRequest, "missing booking reference")
		return
	}
	bookingID, err := strconv.ParseUint(bookingRef, 10, 64)
	if err != nil {
		log.Printf("stripe webhook: malformed bookingId %q", bookingRef)
		c.String(http.StatusBadRequest, "missing booking reference")
		return
	}

	if err := ctrl.BookingSvc.ConfirmPayment(uint(bookingID)); err != nil {
		// Acknowledge regardless so the processor stops retrying; the
		// inconsistency is reported through logs.
		if errors.Is(err, services.ErrBookingNotFound) {
			log.Printf("stripe webhook: no booking %s for completed checkout", bookingRef)
		} else {
			log.Printf("stripe webhook: failed to confirm booking %s: %v", bookingRef, err)
		}
	} else {
		log.Printf("stripe webhook: booking %s marked as paid", bookingRef)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
