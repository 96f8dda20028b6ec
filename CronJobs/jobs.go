package CronJobs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
)

// LogJanitor trims old entries out of the request log file on a daily
// schedule.
type LogJanitor struct {
	cronScheduler *cron.Cron
	logPath       string
	retention     time.Duration
	jobID         cron.EntryID
}

// NewLogJanitor creates a janitor keeping retentionDays of request logs.
func NewLogJanitor(logPath string, retentionDays int) *LogJanitor {
	return &LogJanitor{
		cronScheduler: cron.New(cron.WithSeconds()),
		logPath:       logPath,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start schedules the daily trim at 03:10.
func (j *LogJanitor) Start() error {
	var err error
	j.jobID, err = j.cronScheduler.AddFunc("0 10 3 * * *", func() {
		log.Println("Running scheduled request log trim")
		if err := j.Trim(); err != nil {
			log.Printf("Log trim failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}
	j.cronScheduler.Start()
	return nil
}

// Stop terminates the scheduler.
func (j *LogJanitor) Stop() {
	j.cronScheduler.Stop()
}

type logTimestamp struct {
	Timestamp time.Time `json:"timestamp"`
}

// Trim rewrites the log file keeping only entries newer than the retention
// window. Lines without a parseable timestamp are dropped.
func (j *LogJanitor) Trim() error {
	f, err := os.Open(j.logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-j.retention)
	var kept []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		var entry logTimestamp
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if entry.Timestamp.After(cutoff) {
			kept = append(kept, line)
		}
	}
	scanErr := scanner.Err()
	f.Close()
	if scanErr != nil {
		return scanErr
	}

	tmpPath := j.logPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	for _, line := range kept {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, j.logPath)
}
