package Controllers

import (
	"Compass/Excel"
	"Compass/Gemini"
	"Compass/Models"
	"Compass/Store"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ScheduleController serves the events calendar and the spreadsheet upload
// pipeline.
type ScheduleController struct {
	Primary   Store.Store // nil when Firestore is unavailable
	Fallback  *Store.MemoryStore
	Processor *Excel.Processor
}

func NewScheduleController(primary Store.Store, fallback *Store.MemoryStore, processor *Excel.Processor) *ScheduleController {
	return &ScheduleController{Primary: primary, Fallback: fallback, Processor: processor}
}

func (sc *ScheduleController) store() Store.Store {
	if sc.Primary != nil {
		return sc.Primary
	}
	return sc.Fallback
}

func (sc *ScheduleController) demoMode() bool { return sc.Primary == nil }

// GetEvents lists all events. A failing store yields an empty list, not an
// error.
func (sc *ScheduleController) GetEvents(c *fiber.Ctx) error {
	events, err := sc.store().GetEvents(c.Context())
	if err != nil {
		log.Printf("Error fetching events: %v", err)
		events = nil
	}
	if events == nil {
		events = []Models.Event{}
	}
	return c.Status(fiber.StatusOK).JSON(events)
}

// UploadSchedule runs the extraction pipeline over an uploaded spreadsheet
// and persists the extracted events.
func (sc *ScheduleController) UploadSchedule(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided. Please upload an Excel file.",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file.",
		})
	}
	defer src.Close()
	contents, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file.",
		})
	}

	events, err := sc.Processor.ProcessSchedule(c.Context(), file.Filename, contents)
	if err != nil {
		return extractionFailure(c, err)
	}
	if len(events) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to extract events or empty file.",
		})
	}

	saved, err := sc.store().SaveEvents(c.Context(), events)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save to database: " + err.Error(),
		})
	}

	message := fmt.Sprintf("Successfully processed and saved %d events.", len(saved))
	if sc.demoMode() {
		message = fmt.Sprintf("Processed and saved %d events (Demo Mode)", len(saved))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"events":  saved,
	})
}

// extractionFailure maps pipeline errors onto the right status: bad uploads
// are client errors, generation failures are upstream errors, unparseable
// replies are server errors carrying the raw excerpt.
func extractionFailure(c *fiber.Ctx, err error) error {
	if errors.Is(err, Excel.ErrInvalidFileType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Please upload an Excel file.",
		})
	}
	var apiErr *Gemini.APIError
	if errors.Is(err, Gemini.ErrNotConfigured) || errors.As(err, &apiErr) {
		return upstreamError(c, err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Processing failed: " + err.Error(),
	})
}

// DeleteEvent removes one event by its identifier.
func (sc *ScheduleController) DeleteEvent(c *fiber.Ctx) error {
	id := c.Params("event_id")
	if err := sc.store().DeleteEvent(c.Context(), id); err != nil {
		if errors.Is(err, Store.ErrNotFound) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Event not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete event: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Event deleted"})
}
