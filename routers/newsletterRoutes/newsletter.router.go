package newsletterRoutes

import (
	"github.com/gofiber/fiber/v2"

	newsletterControllers "sattva/controllers/newsletter"
	newsletterValidators "sattva/validators/newsletter"
)

func SetupNewsletterRoutes(app *fiber.App) {
	newsletterGroup := app.Group("/newsletter")

	newsletterGroup.Post("/subscribe", newsletterValidators.Subscribe(), newsletterControllers.Subscribe)
	newsletterGroup.Get("/unsubscribe/:token", newsletterControllers.Unsubscribe)
}
