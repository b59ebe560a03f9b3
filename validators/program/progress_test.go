package programValidator

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatorApp() *fiber.App {
	app := fiber.New()

	okHandler := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	}

	app.Post("/program/:slug/progress", ProgramSlug(), ProgressAction(), okHandler)
	app.Post("/program/:slug/intro", ProgramSlug(), IntroToggle(), okHandler)
	app.Put("/program/:slug/day/:day/state", ProgramSlug(), DayStatePatch(), okHandler)
	app.Delete("/program/:slug/state", ProgramSlug(), ResetScope(), okHandler)

	// Slug-less route to exercise the missing-slug guard
	app.Post("/progress", ProgramSlug(), okHandler)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp.StatusCode, payload
}

func TestProgramSlugRequired(t *testing.T) {
	app := newValidatorApp()

	status, payload := doRequest(t, app, "POST", "/progress", `{"action":"setDay"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "MISSING_SLUG", payload["error"])
}

func TestProgressActionValidation(t *testing.T) {
	app := newValidatorApp()

	status, payload := doRequest(t, app, "POST", "/program/wakeup/progress", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", payload["error"])

	status, payload = doRequest(t, app, "POST", "/program/wakeup/progress", `{"day":2}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", payload["error"], "action is required")

	status, payload = doRequest(t, app, "POST", "/program/wakeup/progress", `{"action":"completeDay","day":0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_DAY", payload["error"])

	status, payload = doRequest(t, app, "POST", "/program/wakeup/progress", `{"action":"completeDay","day":2}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, payload["ok"])
}

func TestIntroToggleValidation(t *testing.T) {
	app := newValidatorApp()

	status, payload := doRequest(t, app, "POST", "/program/wakeup/intro", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", payload["error"], "engaged is required")

	status, payload = doRequest(t, app, "POST", "/program/wakeup/intro", `{"engaged":false}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, payload["ok"])
}

func TestDayStatePatchValidation(t *testing.T) {
	app := newValidatorApp()

	status, payload := doRequest(t, app, "PUT", "/program/wakeup/day/zero/state", `{"practiced":true}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_DAY", payload["error"])

	status, payload = doRequest(t, app, "PUT", "/program/wakeup/day/2/state", `{"practiced":true,"data":{"q1":"fine"}}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, payload["ok"])
}

func TestResetScopeValidation(t *testing.T) {
	app := newValidatorApp()

	status, payload := doRequest(t, app, "DELETE", "/program/wakeup/state", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_DAY", payload["error"], "either day or all is required")

	status, payload = doRequest(t, app, "DELETE", "/program/wakeup/state?day=2", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, payload["ok"])

	status, payload = doRequest(t, app, "DELETE", "/program/wakeup/state?all=true", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, payload["ok"])
}
