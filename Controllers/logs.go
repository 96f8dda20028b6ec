package Controllers

import (
	"Compass/middleware"
	"bufio"
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const logFilePath = "logs/requests.log"

// LogGroup aggregates request log entries sharing a path and method.
type LogGroup struct {
	Path        string               `json:"path"`
	Method      string               `json:"method"`
	Count       int                  `json:"count"`
	AvgLatency  float64              `json:"avg_latency_ms"`
	MaxLatency  float64              `json:"max_latency_ms"`
	SuccessRate float64              `json:"success_rate"`
	Logs        []middleware.LogData `json:"logs"`
}

func readLogEntries(from, to time.Time) ([]middleware.LogData, error) {
	f, err := os.Open(logFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []middleware.LogData{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []middleware.LogData
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry middleware.LogData
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if entry.Timestamp.Before(from) || entry.Timestamp.After(to) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

func parseDateRange(c *fiber.Ctx) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)
	if s := c.Query("date_from"); s != "" {
		if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
			from = t
		}
	}
	if s := c.Query("date_to"); s != "" {
		if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}
	return from, to
}

// GetLogs returns request logs for a date range, grouped by path and method.
func GetLogs(c *fiber.Ctx) error {
	from, to := parseDateRange(c)
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	entries, err := readLogEntries(from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read logs: " + err.Error(),
		})
	}

	groupIndex := make(map[string]*LogGroup)
	for _, entry := range entries {
		key := entry.Method + " " + entry.Path
		group, ok := groupIndex[key]
		if !ok {
			group = &LogGroup{Path: entry.Path, Method: entry.Method}
			groupIndex[key] = group
		}
		group.Count++
		group.AvgLatency += entry.LatencyMS
		if entry.LatencyMS > group.MaxLatency {
			group.MaxLatency = entry.LatencyMS
		}
		if entry.Status < 400 {
			group.SuccessRate++
		}
		if len(group.Logs) < limit {
			group.Logs = append(group.Logs, entry)
		}
	}

	groups := make([]LogGroup, 0, len(groupIndex))
	for _, group := range groupIndex {
		group.AvgLatency /= float64(group.Count)
		group.SuccessRate = group.SuccessRate / float64(group.Count) * 100
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"groups":       groups,
		"total_logs":   len(entries),
		"total_groups": len(groups),
		"date_from":    from,
		"date_to":      to,
	})
}

// GetLogStats returns aggregate counters for a date range.
func GetLogStats(c *fiber.Ctx) error {
	from, to := parseDateRange(c)

	entries, err := readLogEntries(from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read logs: " + err.Error(),
		})
	}

	var totalLatency float64
	statusCounts := make(map[string]int)
	for _, entry := range entries {
		totalLatency += entry.LatencyMS
		bucket := strconv.Itoa(entry.Status/100) + "xx"
		statusCounts[bucket]++
	}
	avgLatency := 0.0
	if len(entries) > 0 {
		avgLatency = totalLatency / float64(len(entries))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total_requests": len(entries),
		"avg_latency_ms": avgLatency,
		"status_counts":  statusCounts,
		"date_from":      from,
		"date_to":        to,
	})
}
