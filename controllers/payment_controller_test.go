package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quickstay-backend/models"
	"quickstay-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testStripeSecret = "whsec_test_secret"

func newStripeWebhookRouter(db *gorm.DB) (*gin.Engine, *services.BookingService) {
	bookingSvc := services.NewBookingService(db, services.NewAvailabilityService(db))
	ctrl := NewPaymentController(services.NewPaymentService(db), bookingSvc, testStripeSecret)

	r := gin.New()
	r.POST("/api/stripe", ctrl.StripeWebhook)
	return r, bookingSvc
}

// stripeSignature computes the v1 scheme Stripe signs payloads with:
// HMAC-SHA256 over "<timestamp>.<payload>" keyed with the endpoint secret.
func stripeSignature(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts.Unix(), payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedEvent(bookingRef string) string {
	return fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"metadata": {"bookingId": %q}
			}
		}
	}`, bookingRef)
}

func postStripeEvent(r *gin.Engine, payload, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStripeWebhookConfirmsBookingOnce(t *testing.T) {
	db := setupTestDB(t)
	booking := seedPendingBooking(t, db)
	r, _ := newStripeWebhookRouter(db)

	payload := checkoutCompletedEvent(fmt.Sprint(booking.ID))

	// At-least-once delivery: the processor may send the event repeatedly.
	for i := 0; i < 3; i++ {
		w := postStripeEvent(r, payload, stripeSignature([]byte(payload), testStripeSecret, time.Now()))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	var got models.Booking
	require.NoError(t, db.First(&got, booking.ID).Error)
	assert.True(t, got.IsPaid)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	assert.Equal(t, models.PaymentMethodOnline, got.PaymentMethod)
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	db := setupTestDB(t)
	booking := seedPendingBooking(t, db)
	r, _ := newStripeWebhookRouter(db)

	payload := checkoutCompletedEvent(fmt.Sprint(booking.ID))
	signature := stripeSignature([]byte(payload), testStripeSecret, time.Now())

	// Any mutation of the signed bytes invalidates the signature.
	tampered := strings.Replace(payload, "checkout.session.completed", "checkout.session.completed ", 1)
	w := postStripeEvent(r, tampered, signature)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Wrong secret on an untouched payload fails the same way.
	w = postStripeEvent(r, payload, stripeSignature([]byte(payload), "whsec_wrong", time.Now()))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got models.Booking
	require.NoError(t, db.First(&got, booking.ID).Error)
	assert.False(t, got.IsPaid)
	assert.Equal(t, models.BookingStatusPending, got.Status)
}

func TestStripeWebhookMissingBookingReference(t *testing.T) {
	db := setupTestDB(t)
	seedPendingBooking(t, db)
	r, _ := newStripeWebhookRouter(db)

	payload := `{
		"id": "evt_test_2",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_2", "object": "checkout.session", "metadata": {}}}
	}`
	w := postStripeEvent(r, payload, stripeSignature([]byte(payload), testStripeSecret, time.Now()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing booking reference")
}

func TestStripeWebhookUnknownBookingIsAcknowledged(t *testing.T) {
	db := setupTestDB(t)
	seedPendingBooking(t, db)
	r, _ := newStripeWebhookRouter(db)

	payload := checkoutCompletedEvent("99999")
	w := postStripeEvent(r, payload, stripeSignature([]byte(payload), testStripeSecret, time.Now()))

	// Acked so the processor stops retrying; the mismatch is only logged.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStripeWebhookIgnoresOtherEventTypes(t *testing.T) {
	db := setupTestDB(t)
	booking := seedPendingBooking(t, db)
	r, _ := newStripeWebhookRouter(db)

	payload := `{
		"id": "evt_test_3",
		"object": "event",
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_test_1", "object": "payment_intent"}}
	}`
	w := postStripeEvent(r, payload, stripeSignature([]byte(payload), testStripeSecret, time.Now()))
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Booking
	require.NoError(t, db.First(&got, booking.ID).Error)
	assert.False(t, got.IsPaid)
	assert.Equal(t, models.BookingStatusPending, got.Status)
}
