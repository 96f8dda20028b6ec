package Store

import (
	"Compass/Models"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory fallback used when Firestore is unavailable.
// Nothing survives a restart. Expected concurrency is a single user, but the
// collections are still mutex-guarded against racing requests.
type MemoryStore struct {
	mu     sync.Mutex
	tasks  []Models.Task
	events []Models.Event
	memos  map[string][]Models.MemoItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{memos: make(map[string][]Models.MemoItem)}
}

// NewDemoStore returns a MemoryStore pre-seeded with sample data so the
// dashboard is usable without any credentials. Seed dates are relative to
// the current day to keep the briefing meaningful.
func NewDemoStore() *MemoryStore {
	m := NewMemoryStore()
	now := time.Now()
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }

	m.tasks = []Models.Task{
		{
			ID: uuid.NewString(), UID: "default_user",
			Content: "Submit the semester report", DueDate: day(0),
			Priority: Models.PriorityHigh, CreatedAt: now.Format(time.RFC3339),
		},
		{
			ID: uuid.NewString(), UID: "default_user",
			Content: "Review field trip permission slips", DueDate: day(2),
			Priority: Models.PriorityMedium, CreatedAt: now.Format(time.RFC3339),
		},
		{
			ID: uuid.NewString(), UID: "default_user",
			Content: "Order whiteboard markers",
			Priority: Models.PriorityLow, CreatedAt: now.Format(time.RFC3339),
		},
	}
	m.events = []Models.Event{
		{
			ID: uuid.NewString(), Title: "Staff Meeting", Date: day(0),
			Time: "15:00~16:00", Location: "Conference Room",
			Participants: "Teachers", Manager: "Principal",
			Type: Models.EventTypeOfficial,
		},
		{
			ID: uuid.NewString(), Title: "Science Fair", Date: day(1),
			Time: Models.EventTimeAllDay, Location: "Gymnasium",
			Participants: "3-6 Graders", Type: Models.EventTypeOfficial,
		},
		{
			ID: uuid.NewString(), Title: "District Workshop", Date: day(4),
			Time: "10:00~12:00", Location: "District Office",
			Type: Models.EventTypeTrip, Note: "Business trip",
		},
	}
	m.memos["default_user"] = []Models.MemoItem{
		{ID: uuid.NewString(), Text: "Call the bus company about pickup times"},
		{ID: uuid.NewString(), Text: "Check projector in room 203", Checked: true},
	}
	return m
}

func (m *MemoryStore) GetTasks(ctx context.Context, uid string) ([]Models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := []Models.Task{}
	for _, t := range m.tasks {
		if t.UID == uid && !t.IsDeleted {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (m *MemoryStore) GetOpenTasks(ctx context.Context, uid string) ([]Models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := []Models.Task{}
	for _, t := range m.tasks {
		if t.UID == uid && !t.IsDeleted && !t.IsCompleted {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (m *MemoryStore) CreateTask(ctx context.Context, task Models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *MemoryStore) UpdateTask(ctx context.Context, id string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID != id {
			continue
		}
		applyTaskUpdates(&m.tasks[i], updates)
		return nil
	}
	return ErrNotFound
}

func applyTaskUpdates(t *Models.Task, updates map[string]interface{}) {
	for field, value := range updates {
		switch field {
		case "content":
			if s, ok := value.(string); ok {
				t.Content = s
			}
		case "due_date":
			if s, ok := value.(string); ok {
				t.DueDate = s
			}
		case "priority":
			if s, ok := value.(string); ok {
				t.Priority = s
			}
		case "is_completed":
			if b, ok := value.(bool); ok {
				t.IsCompleted = b
			}
		case "is_deleted":
			if b, ok := value.(bool); ok {
				t.IsDeleted = b
			}
		}
	}
}

func (m *MemoryStore) GetEvents(ctx context.Context) ([]Models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]Models.Event, len(m.events))
	copy(events, m.events)
	return events, nil
}

func (m *MemoryStore) GetEventsFrom(ctx context.Context, date string) ([]Models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := []Models.Event{}
	for _, ev := range m.events {
		if ev.Date >= date {
			events = append(events, ev)
		}
	}
	return events, nil
}

func (m *MemoryStore) SaveEvents(ctx context.Context, events []Models.Event) ([]Models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make([]Models.Event, 0, len(events))
	for _, ev := range events {
		ev.ID = uuid.NewString()
		m.events = append(m.events, ev)
		saved = append(saved, ev)
	}
	return saved, nil
}

func (m *MemoryStore) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, ev := range m.events {
		if ev.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) GetMemos(ctx context.Context, uid string) ([]Models.MemoItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]Models.MemoItem, len(m.memos[uid]))
	copy(items, m.memos[uid])
	return items, nil
}

func (m *MemoryStore) SaveMemos(ctx context.Context, uid string, items []Models.MemoItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	replaced := make([]Models.MemoItem, len(items))
	copy(replaced, items)
	m.memos[uid] = replaced
	return nil
}
