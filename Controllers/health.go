package Controllers

import (
	"Compass/Gemini"
	"Compass/Store"
	"os"

	"github.com/gofiber/fiber/v2"
)

// HealthController reports the composite status of the generation API
// configuration and the document store connection.
type HealthController struct {
	Generator *Gemini.Client
	Primary   Store.Store // nil when Firestore is unavailable
}

func NewHealthController(generator *Gemini.Client, primary Store.Store) *HealthController {
	return &HealthController{Generator: generator, Primary: primary}
}

func (hc *HealthController) Health(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":     "ok",
		"env_loaded": os.Getenv("GEMINI_API_KEY") != "",
	}
	if hc.Generator != nil && hc.Generator.IsConfigured() {
		status["gemini"] = "configured"
	} else {
		status["gemini"] = "missing_api_key"
	}
	if hc.Primary != nil {
		status["firebase"] = "connected"
	} else {
		status["firebase"] = "not_initialized"
	}
	return c.Status(fiber.StatusOK).JSON(status)
}
