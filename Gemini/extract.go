package Gemini

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// The generation API is not trusted to return pure JSON; replies may be
// wrapped in prose or markdown code fences.
var (
	arrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// rawExcerptLimit caps how much of a bad reply ends up in an error message.
const rawExcerptLimit = 500

// ExtractionError reports a model reply that could not be parsed into the
// expected JSON shape. Raw holds a truncated excerpt for diagnosis.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to parse model reply: %v (raw: %s)", e.Err, e.Raw)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractJSONArray locates the outermost JSON array literal anywhere in raw
// and unmarshals it into v. When no bracket span is found, common code-fence
// markers are stripped before parsing.
func ExtractJSONArray(raw string, v interface{}) error {
	return extract(raw, arrayPattern, v)
}

// ExtractJSONObject is the object-literal counterpart of ExtractJSONArray.
func ExtractJSONObject(raw string, v interface{}) error {
	return extract(raw, objectPattern, v)
}

func extract(raw string, pattern *regexp.Regexp, v interface{}) error {
	clean := strings.TrimSpace(raw)
	if match := pattern.FindString(clean); match != "" {
		clean = match
	} else {
		clean = stripFences(clean)
	}
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return &ExtractionError{Raw: Truncate(raw, rawExcerptLimit), Err: err}
	}
	return nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Truncate returns at most n leading bytes of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
