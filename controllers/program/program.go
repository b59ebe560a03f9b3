package programController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"sattva/database"
	"sattva/middleware"
	"sattva/models"
	programModels "sattva/models/program"
	"sattva/progression"
	"sattva/store"
)

// newEngine builds a progression engine over the global database
func newEngine() *progression.Engine {
	db := database.Database.Db
	return progression.NewEngine(
		store.NewUnitStore(db),
		store.NewEnrollmentStore(db),
		store.NewDayStateStore(db),
	)
}

// currentUser resolves the authenticated user or responds USER_NOT_FOUND
func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.ApiError(c, fiber.StatusUnauthorized, progression.CodeUserNotFound)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.ApiError(c, fiber.StatusUnauthorized, progression.CodeUserNotFound)
	}
	return &user, nil
}

// findProgram resolves a published program by slug. An unknown slug surfaces as
// NO_PUBLISHED_UNITS: a program that does not exist has no published units.
func findProgram(c *fiber.Ctx, slug string) (*programModels.Program, error) {
	var prog programModels.Program
	if err := database.Database.Db.Where("slug = ? AND is_deleted = ? AND is_published = ?", slug, false, true).First(&prog).Error; err != nil {
		return nil, middleware.ApiError(c, fiber.StatusNotFound, progression.CodeNoPublishedUnits)
	}
	return &prog, nil
}

// engineError maps engine failures onto the {ok:false, error:code} envelope
func engineError(c *fiber.Ctx, err error) error {
	var incomplete *progression.IncompleteDayError
	if errors.As(err, &incomplete) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"ok":        false,
			"error":     progression.CodeIncompleteDay,
			"practiced": incomplete.Practiced,
			"journal":   incomplete.Journal,
		})
	}

	var coded *progression.Error
	if errors.As(err, &coded) {
		statusCode := fiber.StatusBadRequest
		if coded.Code == progression.CodeNoPublishedUnits {
			statusCode = fiber.StatusNotFound
		}
		return middleware.ApiError(c, statusCode, coded.Code)
	}

	log.Printf("Progression engine error: %v", err)
	return middleware.ApiError(c, fiber.StatusInternalServerError, progression.CodeServerError)
}

// GetPrograms lists published programs
func GetPrograms(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var programs []programModels.Program
	if err := database.Database.Db.Where("is_deleted = ? AND is_published = ?", false, true).Order("created_at asc").Find(&programs).Error; err != nil {
		return middleware.ApiError(c, fiber.StatusInternalServerError, progression.CodeServerError)
	}

	return c.JSON(fiber.Map{
		"ok":       true,
		"programs": programs,
	})
}

// GetProgramDetails returns a program with its published units and the
// caller's enrollment, if any
func GetProgramDetails(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	prog, err := findProgram(c, c.Locals("programSlug").(string))
	if err != nil {
		return err
	}

	var units []programModels.ProgramUnit
	if err := database.Database.Db.
		Where("program_id = ? AND status = ? AND is_deleted = ?", prog.ID, programModels.UnitPublished, false).
		Order("unit_type asc, unit_index asc").Find(&units).Error; err != nil {
		return middleware.ApiError(c, fiber.StatusInternalServerError, progression.CodeServerError)
	}

	var enrollment *programModels.Enrollment
	var record programModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND program_id = ?", user.ID, prog.ID).First(&record).Error; err == nil {
		enrollment = &record
	}

	return c.JSON(fiber.Map{
		"ok":         true,
		"program":    prog,
		"units":      units,
		"enrollment": enrollment,
	})
}

// GetJourney returns the computed sidebar layout for the program
func GetJourney(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	slug := c.Locals("programSlug").(string)
	prog, err := findProgram(c, slug)
	if err != nil {
		return err
	}

	layout, err := newEngine().Journey(user.ID, prog.ID, slug)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":           true,
		"items":        layout.Items,
		"percent":      layout.Percent,
		"doneCount":    layout.DoneCount,
		"total":        layout.Total,
		"continueHref": layout.ContinueHref,
	})
}
