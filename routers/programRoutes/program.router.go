package programRoutes

import (
	"github.com/gofiber/fiber/v2"

	programControllers "sattva/controllers/program"
	"sattva/middleware"
	programValidators "sattva/validators/program"
)

// SetupProgramRoutes sets up the program catalog and progression routes
func SetupProgramRoutes(app *fiber.App) {
	programGroup := app.Group("/program")

	// Catalog and journey
	programGroup.Get("/list", middleware.JWTMiddleware, programControllers.GetPrograms)
	programGroup.Get("/:slug", middleware.JWTMiddleware, programValidators.ProgramSlug(), programControllers.GetProgramDetails)
	programGroup.Get("/:slug/journey", middleware.JWTMiddleware, programValidators.ProgramSlug(), programControllers.GetJourney)

	// Intro engagement toggle (engaged:false is a hard reset)
	programGroup.Post("/:slug/intro", middleware.JWTMiddleware, programValidators.ProgramSlug(), programValidators.IntroToggle(), programControllers.SetIntroEngagement)

	// Progression actions: setDay, completeDay, reopenDay
	programGroup.Post("/:slug/progress", middleware.JWTMiddleware, programValidators.ProgramSlug(), programValidators.ProgressAction(), programControllers.ApplyProgressAction)

	// Day state autosave
	programGroup.Put("/:slug/day/:day/state", middleware.JWTMiddleware, programValidators.ProgramSlug(), programValidators.DayStatePatch(), programControllers.SaveDayState)

	// Single-day or full-program reset
	programGroup.Delete("/:slug/state", middleware.JWTMiddleware, programValidators.ProgramSlug(), programValidators.ResetScope(), programControllers.ResetProgress)
}
