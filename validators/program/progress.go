package programValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sattva/middleware"
	"sattva/progression"
)

// ProgramSlug validates the :slug route param
func ProgramSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeMissingSlug)
		}

		c.Locals("programSlug", slug)
		return c.Next()
	}
}

// IntroToggle validates the intro engagement body
func IntroToggle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Engaged *bool `json:"engaged"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeInvalidBody)
		}
		if reqData.Engaged == nil {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeInvalidBody)
		}

		c.Locals("validatedIntro", reqData)
		return c.Next()
	}
}

// ProgressAction validates the {action, day?} body. The action discriminator
// itself is checked by the engine so unknown actions get UNKNOWN_ACTION.
func ProgressAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Action string `json:"action"`
			Day    *int   `json:"day"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeInvalidBody)
		}
		if strings.TrimSpace(reqData.Action) == "" {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeInvalidBody)
		}
		if reqData.Day != nil && *reqData.Day < 1 {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeInvalidDay)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// DayStatePatch validates the :day route param and the partial state body
func DayStatePatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := strconv.Atoi(strings.TrimSpace(c.Params("day")))
		if err != nil || day < 1 {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeInvalidDay)
		}

		patch := new(progression.StatePatch)
		if err := c.BodyParser(patch); err != nil {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeInvalidBody)
		}

		c.Locals("day", day)
		c.Locals("validatedStatePatch", patch)
		return c.Next()
	}
}

// ResetScope validates the reset query: either day=N or all=true
func ResetScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("all") == "true" {
			c.Locals("resetAll", true)
			return c.Next()
		}

		day, err := strconv.Atoi(strings.TrimSpace(c.Query("day")))
		if err != nil || day < 1 {
			return middleware.ApiError(c, fiber.StatusBadRequest, progression.CodeInvalidDay)
		}

		c.Locals("resetDay", day)
		return c.Next()
	}
}
