package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
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

var clerkSigningKey = []byte("clerk-webhook-test-signing-key!!")

func clerkTestSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString(clerkSigningKey)
}

func newClerkWebhookRouter(db *gorm.DB) *gin.Engine {
	ctrl := NewClerkController(services.NewUserService(db), clerkTestSecret())
	r := gin.New()
	r.POST("/api/clerk", ctrl.Webhook)
	return r
}

// svixHeaders signs the payload the way the provider does: HMAC-SHA256 over
// "<id>.<timestamp>.<payload>" keyed with the decoded endpoint secret.
func svixHeaders(msgID string, ts time.Time, payload []byte) http.Header {
	signed := fmt.Sprintf("%s.%d.%s", msgID, ts.Unix(), payload)
	mac := hmac.New(sha256.New, clerkSigningKey)
	mac.Write([]byte(signed))

	h := http.Header{}
	h.Set("svix-id", msgID)
	h.Set("svix-timestamp", fmt.Sprint(ts.Unix()))
	h.Set("svix-signature", "v1,"+base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	return h
}

func postClerkEvent(r *gin.Engine, payload string, headers http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/clerk", strings.NewReader(payload))
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func clerkUserPayload(eventType, id, email, first, last string) string {
	return fmt.Sprintf(`{
		"type": %q,
		"data": {
			"id": %q,
			"first_name": %q,
			"last_name": %q,
			"image_url": "https://img.example.com/u.png",
			"email_addresses": [{"email_address": %q}]
		}
	}`, eventType, id, first, last, email)
}

func TestClerkWebhookCreatesUser(t *testing.T) {
	db := setupTestDB(t)
	r := newClerkWebhookRouter(db)

	payload := clerkUserPayload("user.created", "user_new", "new@example.com", "New", "Guest")
	w := postClerkEvent(r, payload, svixHeaders("msg_1", time.Now(), []byte(payload)))
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user_new").Error)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "New Guest", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestClerkWebhookUpdatesUser(t *testing.T) {
	db := setupTestDB(t)
	r := newClerkWebhookRouter(db)

	require.NoError(t, db.Create(&models.User{
		ID: "user_1", Email: "old@example.com", Username: "Old Name", Role: models.RoleHotelOwner,
	}).Error)

	payload := clerkUserPayload("user.updated", "user_1", "fresh@example.com", "Fresh", "Name")
	w := postClerkEvent(r, payload, svixHeaders("msg_2", time.Now(), []byte(payload)))
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user_1").Error)
	assert.Equal(t, "fresh@example.com", user.Email)
	assert.Equal(t, "Fresh Name", user.Username)
	// Locally-granted role survives profile updates.
	assert.Equal(t, models.RoleHotelOwner, user.Role)
}

func TestClerkWebhookDeletesUser(t *testing.T) {
	db := setupTestDB(t)
	r := newClerkWebhookRouter(db)

	require.NoError(t, db.Create(&models.User{ID: "user_1", Email: "x@example.com"}).Error)

	payload := `{"type": "user.deleted", "data": {"id": "user_1"}}`
	w := postClerkEvent(r, payload, svixHeaders("msg_3", time.Now(), []byte(payload)))
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", "user_1").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestClerkWebhookRejectsBadSignature(t *testing.T) {
	db := setupTestDB(t)
	r := newClerkWebhookRouter(db)

	payload := clerkUserPayload("user.created", "user_new", "new@example.com", "New", "Guest")
	headers := svixHeaders("msg_4", time.Now(), []byte(payload))

	tampered := strings.Replace(payload, "new@example.com", "evil@example.com", 1)
	w := postClerkEvent(r, tampered, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestClerkWebhookIgnoresOtherEventTypes(t *testing.T) {
	db := setupTestDB(t)
	r := newClerkWebhookRouter(db)

	payload := `{"type": "session.created", "data": {"id": "sess_1"}}`
	w := postClerkEvent(r, payload, svixHeaders("msg_5", time.Now(), []byte(payload)))
	assert.Equal(t, http.StatusOK, w.Code)
}
