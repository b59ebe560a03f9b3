package programController

import (
	"github.com/gofiber/fiber/v2"

	"sattva/progression"
)

// SetIntroEngagement toggles the user's intro engagement for the program.
// Disengaging wipes every saved day state, so the caller gets a reset flag
// back to redirect or toast accordingly.
func SetIntroEngagement(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	prog, err := findProgram(c, c.Locals("programSlug").(string))
	if err != nil {
		return err
	}

	reqData := c.Locals("validatedIntro").(*struct {
		Engaged *bool `json:"engaged"`
	})

	result, err := newEngine().SetIntroEngagement(user.ID, prog.ID, *reqData.Engaged)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":            true,
		"engaged":       result.Engaged,
		"reset":         result.Reset,
		"lastPublished": result.LastPublished,
	})
}

// ApplyProgressAction runs a setDay/completeDay/reopenDay action
func ApplyProgressAction(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	prog, err := findProgram(c, c.Locals("programSlug").(string))
	if err != nil {
		return err
	}

	reqData := c.Locals("validatedProgress").(*struct {
		Action string `json:"action"`
		Day    *int   `json:"day"`
	})

	result, err := newEngine().Apply(user.ID, prog.ID, progression.Action(reqData.Action), reqData.Day)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":         true,
		"currentDay": result.CurrentDay,
		"status":     result.Status,
	})
}

// SaveDayState partially updates the day's practice record. No journal
// validation happens here; autosaving half-filled entries is fine.
func SaveDayState(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	prog, err := findProgram(c, c.Locals("programSlug").(string))
	if err != nil {
		return err
	}

	day := c.Locals("day").(int)
	patch := c.Locals("validatedStatePatch").(*progression.StatePatch)

	state, err := newEngine().SaveDayState(user.ID, prog.ID, day, *patch)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"state": state,
	})
}

// ResetProgress deletes one day's record (day=N) or every record (all=true),
// moving the cursor accordingly
func ResetProgress(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	prog, err := findProgram(c, c.Locals("programSlug").(string))
	if err != nil {
		return err
	}

	engine := newEngine()

	if all, _ := c.Locals("resetAll").(bool); all {
		result, err := engine.ResetProgram(user.ID, prog.ID)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{
			"ok":         true,
			"scope":      "all",
			"currentDay": result.CurrentDay,
			"status":     result.Status,
		})
	}

	day := c.Locals("resetDay").(int)
	result, err := engine.ResetDay(user.ID, prog.ID, day)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":         true,
		"scope":      "day",
		"currentDay": result.CurrentDay,
		"status":     result.Status,
	})
}
