package Controllers

import (
	"Compass/Gemini"
	"Compass/Models"
	"Compass/Store"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TaskController serves the task CRUD and AI analysis endpoints.
type TaskController struct {
	Primary   Store.Store // nil when Firestore is unavailable
	Fallback  *Store.MemoryStore
	Generator Gemini.TextGenerator
}

func NewTaskController(primary Store.Store, fallback *Store.MemoryStore, generator Gemini.TextGenerator) *TaskController {
	return &TaskController{Primary: primary, Fallback: fallback, Generator: generator}
}

func (tc *TaskController) store() Store.Store {
	if tc.Primary != nil {
		return tc.Primary
	}
	return tc.Fallback
}

func (tc *TaskController) demoMode() bool { return tc.Primary == nil }

// GetTasks returns every non-deleted task for the user.
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	tasks, err := tc.store().GetTasks(c.Context(), resolveUID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch tasks: " + err.Error(),
		})
	}
	if tasks == nil {
		tasks = []Models.Task{}
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

// CreateTask stores a new task with a server-generated id and timestamp.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var req Models.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	uid := req.UID
	if uid == "" {
		uid = resolveUID(c)
	}
	content := req.Task
	if content == "" {
		content = "Untitled Task"
	}
	priority := req.Priority
	if priority == "" {
		priority = Models.PriorityMedium
	}

	task := Models.Task{
		ID:        uuid.NewString(),
		UID:       uid,
		Content:   content,
		DueDate:   req.DueDate,
		Priority:  priority,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if tc.demoMode() {
		task.Note = "Demo Mode: Saved to memory only"
	}

	if err := tc.store().CreateTask(c.Context(), task); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save task: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// UpdateTask applies a partial update. Fields outside the allow-list are
// silently dropped; an update with nothing left reports a no-op.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	allowed := Models.FilterTaskUpdates(updates)
	if len(allowed) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "no_updates"})
	}

	if err := tc.store().UpdateTask(c.Context(), id, allowed); err != nil {
		if errors.Is(err, Store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task: " + err.Error(),
		})
	}

	resp := fiber.Map{"status": "success", "updates": allowed}
	if tc.demoMode() {
		resp["note"] = "Demo Mode: Saved to memory only"
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// AnalyzeTask extracts {task, due_date, priority} from free text via the
// generation API.
func (tc *TaskController) AnalyzeTask(c *fiber.Ctx) error {
	var req Models.AnalyzeTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	reply, err := tc.Generator.GenerateContent(c.Context(), analyzePrompt(req.Text, time.Now()))
	if err != nil {
		return upstreamError(c, err)
	}

	var result Models.TaskAnalysis
	if err := Gemini.ExtractJSONObject(reply, &result); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze task: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func analyzePrompt(text string, now time.Time) string {
	return fmt.Sprintf(`You are a helpful assistant. Extract the following details from the user's input:
- task: The main task description.
- due_date: The due date in ISO 8601 format (YYYY-MM-DD) if mentioned. If "next Tuesday", calculate it based on today (%s). If not mentioned, return null.
- priority: High, Medium, or Low. Infer from context (e.g., "urgent", "important" = High). Default to Medium.

Return ONLY a valid JSON object.

User Input: "%s"`, now.Format("2006-01-02"), text)
}
