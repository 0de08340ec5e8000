package booking_models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeLayout is the wire format for booking timestamps: local time, second precision.
const DateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime marshals as DateTimeLayout in the server's local zone.
type LocalDateTime time.Time

func (t LocalDateTime) Time() time.Time { return time.Time(t) }

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).In(time.Local).Format(DateTimeLayout))
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*t = LocalDateTime(parsed)
	return nil
}

// ParseDateTime accepts DateTimeLayout (interpreted in the local zone) or RFC 3339.
func ParseDateTime(s string) (time.Time, error) {
	if parsed, err := time.ParseInLocation(DateTimeLayout, s, time.Local); err == nil {
		return parsed.Truncate(time.Second), nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q, expected %s", s, DateTimeLayout)
	}
	return parsed.Truncate(time.Second), nil
}
