package Briefing

import (
	"Compass/Models"
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestComputeWindowsMidweek(t *testing.T) {
	// 2026-09-02 is a Wednesday.
	w := ComputeWindows(day(t, "2026-09-02").Add(14 * time.Hour))

	if got := w.Today.Format(dateLayout); got != "2026-09-02" {
		t.Errorf("Today = %s", got)
	}
	if got := w.Tomorrow.Format(dateLayout); got != "2026-09-03" {
		t.Errorf("Tomorrow = %s", got)
	}
	if got := w.WeekEnd.Format(dateLayout); got != "2026-09-06" {
		t.Errorf("WeekEnd = %s, want upcoming Sunday", got)
	}
	if got := w.NextWeekStart.Format(dateLayout); got != "2026-09-07" {
		t.Errorf("NextWeekStart = %s", got)
	}
	if got := w.NextWeekEnd.Format(dateLayout); got != "2026-09-13" {
		t.Errorf("NextWeekEnd = %s", got)
	}
}

func TestComputeWindowsSunday(t *testing.T) {
	// On a Sunday the current week collapses to that single day.
	w := ComputeWindows(day(t, "2026-09-06"))

	if !w.WeekEnd.Equal(w.Today) {
		t.Errorf("WeekEnd = %s, want same as Today", w.WeekEnd.Format(dateLayout))
	}
	if got := w.NextWeekStart.Format(dateLayout); got != "2026-09-07" {
		t.Errorf("NextWeekStart = %s, want Monday", got)
	}
}

func TestBucketEvents(t *testing.T) {
	w := ComputeWindows(day(t, "2026-09-02"))
	events := []Models.Event{
		{Title: "yesterday", Date: "2026-09-01"},
		{Title: "today", Date: "2026-09-02"},
		{Title: "tomorrow", Date: "2026-09-03"},
		{Title: "this week", Date: "2026-09-05"},
		{Title: "week boundary", Date: "2026-09-06"},
		{Title: "next week", Date: "2026-09-07"},
		{Title: "next week end", Date: "2026-09-13"},
		{Title: "beyond", Date: "2026-09-14"},
		{Title: "garbage", Date: "soon"},
		{Title: "timestamped", Date: "2026-09-02T09:00:00"},
	}

	b := BucketEvents(events, w)

	wantTitles := func(got []Models.Event, want ...string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("got %d events, want %d (%v)", len(got), len(want), want)
		}
		for i := range want {
			if got[i].Title != want[i] {
				t.Errorf("event[%d] = %q, want %q", i, got[i].Title, want[i])
			}
		}
	}

	wantTitles(b.Today, "today", "timestamped")
	wantTitles(b.Tomorrow, "tomorrow")
	wantTitles(b.ThisWeek, "this week", "week boundary")
	wantTitles(b.NextWeek, "next week", "next week end")
}

func TestBucketEventsSundayCollapsesThisWeek(t *testing.T) {
	w := ComputeWindows(day(t, "2026-09-06"))
	events := []Models.Event{
		{Title: "today", Date: "2026-09-06"},
		{Title: "monday", Date: "2026-09-07"},
	}

	b := BucketEvents(events, w)
	if len(b.Today) != 1 || len(b.ThisWeek) != 0 || len(b.NextWeek) != 1 {
		t.Errorf("sunday buckets = today:%d thisweek:%d nextweek:%d",
			len(b.Today), len(b.ThisWeek), len(b.NextWeek))
	}
}

func TestBucketEventsTimeSort(t *testing.T) {
	w := ComputeWindows(day(t, "2026-09-02"))
	events := []Models.Event{
		{Title: "lunch", Date: "2026-09-02", Time: "12:00"},
		{Title: "ceremony", Date: "2026-09-02", Time: "All Day"},
		{Title: "standup", Date: "2026-09-02", Time: "09:00"},
		{Title: "untimed", Date: "2026-09-02"},
	}

	b := BucketEvents(events, w)
	got := make([]string, len(b.Today))
	for i, ev := range b.Today {
		got[i] = ev.Title
	}
	want := []string{"ceremony", "untimed", "standup", "lunch"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted today = %v, want %v", got, want)
		}
	}
}

func TestBucketTasks(t *testing.T) {
	today := day(t, "2026-09-02")
	tasks := []Models.Task{
		{Content: "late", DueDate: "2026-08-30"},
		{Content: "now", DueDate: "2026-09-02"},
		{Content: "soonish", DueDate: "2026-09-20"},
		{Content: "whenever"},
		{Content: "mangled", DueDate: "next tuesday"},
		{Content: "timestamped", DueDate: "2026-09-02T10:00:00Z"},
	}

	b := BucketTasks(tasks, today)

	if len(b.Overdue) != 1 || b.Overdue[0].Content != "late" {
		t.Errorf("overdue = %v", b.Overdue)
	}
	if len(b.DueToday) != 2 {
		t.Errorf("due today = %d, want 2", len(b.DueToday))
	}
	if len(b.Upcoming) != 1 || b.Upcoming[0].Content != "soonish" {
		t.Errorf("upcoming = %v", b.Upcoming)
	}
	if len(b.NoDate) != 2 {
		t.Errorf("no date = %d, want 2 (missing and unparsable)", len(b.NoDate))
	}
}
