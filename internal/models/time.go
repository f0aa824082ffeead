package models

import (
	"fmt"
	"strings"
	"time"
)

// APITime is a time.Time that tolerates the timestamp formats the backend
// emits: RFC 3339 or bare SQLite datetimes ("2006-01-02 15:04:05").
type APITime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON parses the first matching layout. Null and empty values leave
// the zero time in place.
func (t *APITime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}

	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON renders the wrapped time as RFC 3339.
func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
