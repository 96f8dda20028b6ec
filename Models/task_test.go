package Models

import "testing"

func TestFilterTaskUpdates(t *testing.T) {
	updates := map[string]interface{}{
		"content":      "new text",
		"is_completed": true,
		"id":           "evil-overwrite",
		"uid":          "someone-else",
		"created_at":   "1999-01-01",
	}

	allowed := FilterTaskUpdates(updates)
	if len(allowed) != 2 {
		t.Fatalf("got %d allowed fields, want 2: %v", len(allowed), allowed)
	}
	if allowed["content"] != "new text" || allowed["is_completed"] != true {
		t.Errorf("allowed fields mangled: %v", allowed)
	}
}

func TestFilterTaskUpdatesAllDropped(t *testing.T) {
	allowed := FilterTaskUpdates(map[string]interface{}{"id": "x", "uid": "y"})
	if len(allowed) != 0 {
		t.Errorf("got %v, want empty map", allowed)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-09-02", "2026-09-02"},
		{"2026-09-02T14:30:00", "2026-09-02"},
		{"2026-09-02T14:30:00+09:00", "2026-09-02"},
		{"", ""},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
