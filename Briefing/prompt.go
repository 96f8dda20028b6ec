package Briefing

import (
	"Compass/Models"
	"fmt"
	"strings"
	"time"
)

// noScheduleMarker is the literal the prompt rules require for sections
// without entries.
const noScheduleMarker = "일정 없음"

// maxListedTasks caps the upcoming and general task lists embedded in the
// prompt. Overdue and due-today tasks are always listed in full.
const maxListedTasks = 5

func taskLine(t Models.Task) string {
	priority := t.Priority
	if priority == "" {
		priority = Models.PriorityMedium
	}
	if strings.TrimSpace(t.DueDate) == "" {
		return fmt.Sprintf("- %s (P: %s)", t.Content, priority)
	}
	return fmt.Sprintf("- %s (Due: %s, P: %s)", t.Content, Models.NormalizeDate(t.DueDate), priority)
}

func formatTaskLines(tasks []Models.Task, limit int) string {
	if len(tasks) == 0 {
		return "None"
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, taskLine(t))
	}
	return strings.Join(lines, "\n")
}

func formatEventLines(events []Models.Event) string {
	if len(events) == 0 {
		return noScheduleMarker
	}
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		eventTime := ev.Time
		if eventTime == "" {
			eventTime = Models.EventTimeAllDay
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s %s (%s)", ev.Date, eventTime, ev.Title, ev.Location))
	}
	return strings.Join(lines, "\n")
}

func formatMemoLines(memos []Models.MemoItem) string {
	var lines []string
	for _, m := range memos {
		if !m.Checked {
			lines = append(lines, "- "+m.Text)
		}
	}
	if len(lines) == 0 {
		return "No memos."
	}
	return strings.Join(lines, "\n")
}

// RenderPrompt builds the fixed-structure briefing prompt: the bucketed
// tasks and events, unchecked memos, and the instruction block demanding a
// six-section formal-register briefing.
func RenderPrompt(now time.Time, tasks TaskBuckets, events EventBuckets, memos []Models.MemoItem) string {
	todayStr := now.Format(dateLayout)
	return fmt.Sprintf(`Current Date: %s (%s)
User: Head Teacher

[Overdue Tasks] (Must be addressed)
%s

[Today's Tasks] (Due Today)
%s

[Upcoming Tasks]
%s

[General Tasks]
%s

[Today's Schedule (%s)]
%s

[Tomorrow's Schedule]
%s

[Rest of This Week]
%s

[Next Week]
%s

[Memos]
%s

System Prompt:
당신은 학교 교무부장의 유능한 비서입니다. 위 정보를 바탕으로 브리핑을 작성하세요.

**중요:** [Overdue Tasks]와 [Today's Tasks]는 오늘 반드시 처리해야 할 [오늘의 중점] 사항으로 다루세요.

**반드시 아래 형식을 지켜주세요:**

[오늘의 중점 (할 일 및 일정)]
- (중요한 마감기한이 지난 일이나 오늘 마감인 일, 중요 일정 등을 강조)

[오늘 일정]
- (시간) (내용) (장소/담당)

[내일 일정]
- ...

[이번 주 주요 일정]
- ...

[다음 주 주요 예고]
- ...

[기타 메모 및 할 일]
- ...

**규칙:**
1. 날짜가 없는 섹션은 "일정 없음"으로 표시.
2. 할 일 목록 중 날짜가 명시된 것은 해당 날짜 또는 '오늘의 중점'에 반영.
3. 정중한 격식체(하십시오체) 사용.`,
		todayStr, now.Format("Monday"),
		formatTaskLines(tasks.Overdue, 0),
		formatTaskLines(tasks.DueToday, 0),
		formatTaskLines(tasks.Upcoming, maxListedTasks),
		formatTaskLines(tasks.NoDate, maxListedTasks),
		todayStr,
		formatEventLines(events.Today),
		formatEventLines(events.Tomorrow),
		formatEventLines(events.ThisWeek),
		formatEventLines(events.NextWeek),
		formatMemoLines(memos))
}
