package Models

import "strings"

// Task priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Task is a single to-do item. Tasks are never physically deleted, only
// flagged with is_deleted.
type Task struct {
	ID          string `json:"id" firestore:"id"`
	UID         string `json:"uid" firestore:"uid"`
	Content     string `json:"content" firestore:"content"`
	DueDate     string `json:"due_date" firestore:"due_date"`
	Priority    string `json:"priority" firestore:"priority"`
	IsCompleted bool   `json:"is_completed" firestore:"is_completed"`
	IsDeleted   bool   `json:"is_deleted" firestore:"is_deleted"`
	CreatedAt   string `json:"created_at" firestore:"created_at"`
	Note        string `json:"note,omitempty" firestore:"-"`
}

// taskUpdateFields is the allow-list for PATCH /tasks/:id. Anything else in
// the request body is silently dropped.
var taskUpdateFields = map[string]bool{
	"is_completed": true,
	"is_deleted":   true,
	"priority":     true,
	"content":      true,
	"due_date":     true,
}

// FilterTaskUpdates returns only the entries whose field is in the update
// allow-list.
func FilterTaskUpdates(updates map[string]interface{}) map[string]interface{} {
	allowed := make(map[string]interface{})
	for field, value := range updates {
		if taskUpdateFields[field] {
			allowed[field] = value
		}
	}
	return allowed
}

// NormalizeDate truncates an ISO timestamp to its calendar date portion.
// Canonical dates are YYYY-MM-DD.
func NormalizeDate(s string) string {
	if i := strings.Index(s, "T"); i >= 0 {
		return s[:i]
	}
	return s
}

// CreateTaskRequest is the POST /tasks payload.
type CreateTaskRequest struct {
	UID      string `json:"uid"`
	Task     string `json:"task"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
}

// AnalyzeTaskRequest is the POST /tasks/analyze payload.
type AnalyzeTaskRequest struct {
	Text string `json:"text" validate:"required"`
}

// TaskAnalysis is the structured result extracted from free text.
type TaskAnalysis struct {
	Task     string `json:"task"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
}
