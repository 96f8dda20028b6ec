package middleware

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LogConfig holds configuration for the request logging middleware
type LogConfig struct {
	// Enable console logging
	Console bool
	// Enable file logging
	File bool
	// Log file path
	LogFilePath string
	// Skip logging for specific paths
	SkipPaths []string
}

// LogData contains all the information that will be logged
type LogData struct {
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	Status    int       `json:"status"`
	LatencyMS float64   `json:"latency_ms"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	UID       string    `json:"uid,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// DefaultLogConfig returns the default configuration for the logging
// middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:     true,
		File:        true,
		LogFilePath: "logs/requests.log",
		SkipPaths:   []string{"/health"},
	}
}

// RequestLogger logs every request as a JSON line to the console and the
// requests log file.
func RequestLogger(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.File {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), 0755); err != nil {
			log.Printf("Error creating logs directory: %v", err)
		}
	}

	return func(c *fiber.Ctx) error {
		for _, skipPath := range cfg.SkipPaths {
			if c.Path() == skipPath {
				return c.Next()
			}
		}

		start := time.Now()
		err := c.Next()

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			URL:       c.OriginalURL(),
			Status:    c.Response().StatusCode(),
			LatencyMS: float64(time.Since(start).Microseconds()) / 1000.0,
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		}
		if uid, ok := c.Locals("uid").(string); ok {
			data.UID = uid
		}
		if err != nil {
			data.Error = err.Error()
		}

		logRequest(cfg, data)
		return err
	}
}

func logRequest(cfg LogConfig, data LogData) {
	line, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling log entry: %v", err)
		return
	}

	if cfg.Console {
		log.Println(string(line))
	}
	if cfg.File {
		logToFile(cfg.LogFilePath, string(line))
	}
}

func logToFile(path, line string) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		log.Printf("Error writing log file: %v", err)
	}
}
