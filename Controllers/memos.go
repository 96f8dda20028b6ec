package Controllers

import (
	"Compass/Models"
	"Compass/Store"
	"log"

	"github.com/gofiber/fiber/v2"
)

// MemoController serves the memo pad. The memo list is replaced wholesale on
// every save, last writer wins.
type MemoController struct {
	Primary  Store.Store // nil when Firestore is unavailable
	Fallback *Store.MemoryStore
}

func NewMemoController(primary Store.Store, fallback *Store.MemoryStore) *MemoController {
	return &MemoController{Primary: primary, Fallback: fallback}
}

func (mc *MemoController) store() Store.Store {
	if mc.Primary != nil {
		return mc.Primary
	}
	return mc.Fallback
}

func (mc *MemoController) demoMode() bool { return mc.Primary == nil }

// GetMemos returns the user's memo list. A failing store yields an empty
// list, not an error.
func (mc *MemoController) GetMemos(c *fiber.Ctx) error {
	items, err := mc.store().GetMemos(c.Context(), resolveUID(c))
	if err != nil {
		log.Printf("Error fetching memos: %v", err)
		items = nil
	}
	if items == nil {
		items = []Models.MemoItem{}
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// SaveMemos replaces the whole memo list.
func (mc *MemoController) SaveMemos(c *fiber.Ctx) error {
	var req Models.SaveMemosRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := mc.store().SaveMemos(c.Context(), resolveUID(c), req.Items); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save memos: " + err.Error(),
		})
	}

	message := "Saved"
	if mc.demoMode() {
		message = "Saved to memory store"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}
