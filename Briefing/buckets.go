package Briefing

import (
	"Compass/Models"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Windows holds the calendar boundaries briefing buckets are cut against.
// All values are midnight-truncated in server-local time.
type Windows struct {
	Today         time.Time
	Tomorrow      time.Time
	WeekEnd       time.Time // upcoming Sunday, inclusive
	NextWeekStart time.Time
	NextWeekEnd   time.Time
}

// ComputeWindows derives the bucket boundaries from the server's local date.
// When today is Sunday the current week collapses to just today and next
// week starts tomorrow.
func ComputeWindows(now time.Time) Windows {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysToSunday := (7 - int(today.Weekday())) % 7
	weekEnd := today.AddDate(0, 0, daysToSunday)
	nextWeekStart := weekEnd.AddDate(0, 0, 1)
	return Windows{
		Today:         today,
		Tomorrow:      today.AddDate(0, 0, 1),
		WeekEnd:       weekEnd,
		NextWeekStart: nextWeekStart,
		NextWeekEnd:   nextWeekStart.AddDate(0, 0, 6),
	}
}

// parseDate accepts canonical YYYY-MM-DD, truncating an embedded time
// component first. ok is false for anything unparsable.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = Models.NormalizeDate(strings.TrimSpace(s))
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EventBuckets groups events by time window for the briefing prompt.
type EventBuckets struct {
	Today    []Models.Event
	Tomorrow []Models.Event
	ThisWeek []Models.Event
	NextWeek []Models.Event
}

// BucketEvents assigns each event to exactly one window. Events dated in the
// past, outside every window, or with an unparsable date are dropped.
// Same-day buckets sort by time string; multi-day buckets sort by date.
func BucketEvents(events []Models.Event, w Windows) EventBuckets {
	var b EventBuckets
	for _, ev := range events {
		d, ok := parseDate(ev.Date, w.Today.Location())
		if !ok || d.Before(w.Today) {
			continue
		}
		switch {
		case d.Equal(w.Today):
			b.Today = append(b.Today, ev)
		case d.Equal(w.Tomorrow):
			b.Tomorrow = append(b.Tomorrow, ev)
		case d.After(w.Tomorrow) && !d.After(w.WeekEnd):
			b.ThisWeek = append(b.ThisWeek, ev)
		case !d.Before(w.NextWeekStart) && !d.After(w.NextWeekEnd):
			b.NextWeek = append(b.NextWeek, ev)
		}
	}
	sortByTime(b.Today)
	sortByTime(b.Tomorrow)
	sortByDate(b.ThisWeek)
	sortByDate(b.NextWeek)
	return b
}

// timeSortKey puts "All Day" and missing times first via an empty-string
// default; everything else sorts lexically on the raw time string.
func timeSortKey(ev Models.Event) string {
	if ev.Time == "" || ev.Time == Models.EventTimeAllDay {
		return ""
	}
	return ev.Time
}

func sortByTime(events []Models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return timeSortKey(events[i]) < timeSortKey(events[j])
	})
}

func sortByDate(events []Models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return timeSortKey(events[i]) < timeSortKey(events[j])
	})
}

// TaskBuckets groups open tasks by due date for the briefing prompt.
type TaskBuckets struct {
	Overdue  []Models.Task
	DueToday []Models.Task
	Upcoming []Models.Task
	NoDate   []Models.Task
}

// BucketTasks compares each task's due date against today. An absent or
// unparsable due date lands the task in NoDate, never in an error.
func BucketTasks(tasks []Models.Task, today time.Time) TaskBuckets {
	var b TaskBuckets
	for _, t := range tasks {
		if strings.TrimSpace(t.DueDate) == "" {
			b.NoDate = append(b.NoDate, t)
			continue
		}
		due, ok := parseDate(t.DueDate, today.Location())
		if !ok {
			b.NoDate = append(b.NoDate, t)
			continue
		}
		switch {
		case due.Before(today):
			b.Overdue = append(b.Overdue, t)
		case due.Equal(today):
			b.DueToday = append(b.DueToday, t)
		default:
			b.Upcoming = append(b.Upcoming, t)
		}
	}
	return b
}
