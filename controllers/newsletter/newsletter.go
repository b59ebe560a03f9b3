package newsletterController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sattva/database"
	"sattva/middleware"
	"sattva/models"
	"sattva/utils"
)

func Subscribe(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSubscribe").(*struct {
		Email string `json:"email"`
	})

	db := database.Database.Db

	// Re-subscribing flips an existing unsubscribed record back on
	var subscriber models.NewsletterSubscriber
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&subscriber).Error; err == nil {
		if !subscriber.Unsubscribed {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Already subscribed!", nil)
		}
		subscriber.Unsubscribed = false
		if err := db.Save(&subscriber).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscribed successfully!", nil)
	}

	subscriber = models.NewsletterSubscriber{
		Email:            reqData.Email,
		UnsubscribeToken: uuid.NewString(),
	}
	if err := db.Create(&subscriber).Error; err != nil {
		log.Printf("Error saving subscriber: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
	}

	// Push to the newsletter provider in the background; provider failures do
	// not fail the subscription.
	go func(email string) {
		if err := utils.SyncNewsletterSubscriber(email); err != nil {
			log.Printf("Newsletter provider sync failed for %s: %v", email, err)
			return
		}
		database.Database.Db.Model(&models.NewsletterSubscriber{}).
			Where("email = ?", email).Update("provider_synced", true)
	}(subscriber.Email)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscribed successfully!", nil)
}

func Unsubscribe(c *fiber.Ctx) error {
	token := c.Params("token")

	db := database.Database.Db

	var subscriber models.NewsletterSubscriber
	if err := db.Where("unsubscribe_token = ? AND is_deleted = ?", token, false).First(&subscriber).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscriber not found!", nil)
	}

	subscriber.Unsubscribed = true
	if err := db.Save(&subscriber).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unsubscribe!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unsubscribed successfully!", nil)
}
