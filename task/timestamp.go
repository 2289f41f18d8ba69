package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the zone-less layout the backend uses for task times.
const TimestampLayout = "2006-01-02T15:04:05"

// DeadlineLayout is the layout of the date+time input used for deadlines.
const DeadlineLayout = "2006-01-02T15:04"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	TimestampLayout,
	DeadlineLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp is a point in time as exchanged with the backend. Values
// without a zone are interpreted in the local zone.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// ParseTimestamp parses any layout the backend or a user may produce.
func ParseTimestamp(value string) (*Timestamp, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		var parsed time.Time
		var err error
		if layout == time.RFC3339Nano {
			parsed, err = time.Parse(layout, value)
		} else {
			parsed, err = time.ParseInLocation(layout, value, time.Local)
		}
		if err == nil {
			return &Timestamp{Time: parsed}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

// UnmarshalJSON accepts null, empty strings and every layout ParseTimestamp knows.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, data)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	if parsed == nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed.Time
	return nil
}

// MarshalJSON encodes the timestamp without a zone, in the local zone.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.In(time.Local).Format(TimestampLayout))
}

// timeOf returns the wrapped time or the zero time for nil and empty timestamps.
func timeOf(ts *Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.Time
}
