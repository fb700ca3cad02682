package content

import (
	"math"
	"strconv"

	"github.com/qinary/brandboard/internal/models"
)

// The provider uses different field names per platform and per API version
// for semantically identical metrics. These extractors try an ordered list
// of candidate keys and take the first usable value, so the candidate lists
// stay the single place encoding that mapping knowledge.

// extractNumber returns the first candidate field coercible to a number.
// Accepts native numbers and numeric strings; NaN counts as absent and the
// search continues. Returns 0 when nothing matches.
func extractNumber(raw models.RawPost, keys ...string) float64 {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case float64:
			if !math.IsNaN(v) {
				return v
			}
		case float32:
			if !math.IsNaN(float64(v)) {
				return float64(v)
			}
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case string:
			if n, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(n) {
				return n
			}
		}
	}
	return 0
}

// extractString returns the first candidate field holding a non-empty
// string, or "" when none does.
func extractString(raw models.RawPost, keys ...string) string {
	for _, key := range keys {
		if val, ok := raw[key].(string); ok && val != "" {
			return val
		}
	}
	return ""
}

// Structured date keys checked first; each may be a direct string or an
// object exposing a nested dateTime string (the v2 API's shape).
var structuredDateKeys = []string{"publishedAt", "created", "createTime", "publicationDate"}

// Flat string fallbacks for older response shapes.
var flatDateKeys = []string{"publishDate", "date", "timestamp", "createdAt", "created", "postedAt"}

// extractDate pulls a publication date string out of a raw post, or ""
// when the record carries none.
func extractDate(raw models.RawPost) string {
	for _, key := range structuredDateKeys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if dt, ok := v["dateTime"].(string); ok && dt != "" {
				return dt
			}
		}
	}
	return extractString(raw, flatDateKeys...)
}
