package Controllers

import (
	"Compass/Briefing"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// BriefingController serves the daily AI briefing.
type BriefingController struct {
	Assembler *Briefing.Assembler
}

func NewBriefingController(assembler *Briefing.Assembler) *BriefingController {
	return &BriefingController{Assembler: assembler}
}

// GetBriefing returns today's briefing for the user, generating it at most
// once per day unless force_refresh bypasses the cache.
func (bc *BriefingController) GetBriefing(c *fiber.Ctx) error {
	force, _ := strconv.ParseBool(c.Query("force_refresh", "false"))

	text, err := bc.Assembler.Generate(c.Context(), resolveUID(c), force)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"briefing": text})
}
