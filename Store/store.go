package Store

import (
	"Compass/Models"
	"context"
	"errors"
)

// ErrNotFound is returned when an identifier matches nothing.
var ErrNotFound = errors.New("not found")

// Store is the document-store surface the handlers and the briefing
// assembler depend on. FirestoreStore is the real implementation;
// MemoryStore is the non-persistent fallback used when Firestore is
// unavailable.
type Store interface {
	GetTasks(ctx context.Context, uid string) ([]Models.Task, error)
	// GetOpenTasks returns non-deleted, non-completed tasks for uid.
	GetOpenTasks(ctx context.Context, uid string) ([]Models.Task, error)
	CreateTask(ctx context.Context, task Models.Task) error
	// UpdateTask applies an already allow-list-filtered field map.
	UpdateTask(ctx context.Context, id string, updates map[string]interface{}) error

	GetEvents(ctx context.Context) ([]Models.Event, error)
	// GetEventsFrom returns events dated on or after date (YYYY-MM-DD).
	GetEventsFrom(ctx context.Context, date string) ([]Models.Event, error)
	// SaveEvents persists the batch and returns it with generated IDs filled
	// in.
	SaveEvents(ctx context.Context, events []Models.Event) ([]Models.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	GetMemos(ctx context.Context, uid string) ([]Models.MemoItem, error)
	// SaveMemos replaces uid's memo list wholesale.
	SaveMemos(ctx context.Context, uid string, items []Models.MemoItem) error
}
