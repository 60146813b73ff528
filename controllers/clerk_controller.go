package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"quickstay-backend/models"
	"quickstay-backend/services"
	"quickstay-backend/utils"

	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
)

type clerkUserData struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ImageURL       string `json:"image_url"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

type clerkEvent struct {
	Data clerkUserData `json:"data"`
	Type string        `json:"type"`
}

// ClerkController receives the identity provider's user-sync webhook.
type ClerkController struct {
	UserSvc *services.UserService

	// Signing secret issued by the provider for this endpoint.
	WebhookSecret string
}

func NewClerkController(userSvc *services.UserService, webhookSecret string) *ClerkController {
	return &ClerkController{UserSvc: userSvc, WebhookSecret: webhookSecret}
}

func (d clerkUserData) toUser() models.User {
	email := ""
	if len(d.EmailAddresses) > 0 {
		email = d.EmailAddresses[0].EmailAddress
	}
	return models.User{
		ID:       d.ID,
		Email:    email,
		Username: strings.TrimSpace(d.FirstName + " " + d.LastName),
		Image:    d.ImageURL,
	}
}

// Webhook handles POST /api/clerk.
//
// The svix signature covers the raw payload bytes, so the body is read
// untouched before any JSON decoding.
func (ctrl *ClerkController) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read payload")
		return
	}

	wh, err := svix.NewWebhook(ctrl.WebhookSecret)
	if err != nil {
		log.Printf("clerk webhook: invalid webhook secret: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "webhook not configured")
		return
	}
	if err := wh.Verify(payload, c.Request.Header); err != nil {
		log.Printf("clerk webhook: signature verification failed: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid signature")
		return
	}

	var event clerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	switch event.Type {
	case "user.created", "user.updated":
		if err := ctrl.UserSvc.Upsert(event.Data.toUser()); err != nil {
			log.Printf("clerk webhook: %s for %s failed: %v", event.Type, event.Data.ID, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to sync user")
			return
		}
	case "user.deleted":
		if err := ctrl.UserSvc.Delete(event.Data.ID); err != nil {
			log.Printf("clerk webhook: delete for %s failed: %v", event.Data.ID, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to delete user")
			return
		}
	default:
		log.Printf("clerk webhook: ignoring event type %s", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Webhook received"})
}
