package digikey

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// debugRecord is the per-query diagnostic artifact. It is write-only: nothing
// in the pipeline reads it back.
type debugRecord struct {
	Timestamp      string          `json:"timestamp"`
	Query          string          `json:"query"`
	RequestPayload json.RawMessage `json:"request_payload"`
	StatusCode     int             `json:"status_code"`
	ResponseBody   string          `json:"response_body"`
}

// captureDebug persists one search call's request and raw response.
// Failures here must never fail the search itself.
func (c *Client) captureDebug(query string, payload []byte, statusCode int, body []byte) {
	if c.debugDir == "" {
		return
	}
	rec := debugRecord{
		Timestamp:      time.Now().Format("2006-01-02 15:04:05"),
		Query:          query,
		RequestPayload: json.RawMessage(payload),
		StatusCode:     statusCode,
		ResponseBody:   string(body),
	}
	b, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return
	}
	name := "api_debug_" + sanitizeQuery(query) + ".json"
	_ = os.WriteFile(filepath.Join(c.debugDir, name), b, 0o644)
}

// sanitizeQuery replaces every character outside [a-zA-Z0-9] with a single
// underscore so the query can key a filename.
func sanitizeQuery(q string) string {
	out := make([]rune, 0, len(q))
	for _, r := range q {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
