// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical wire and storage format for a Day.
const DayLayout = "2006-01-02"

// Day is a calendar date with day granularity and no time-of-day component.
// Two Day values compare equal with == when they name the same UTC calendar
// day, which makes it safe as a map key and as the ledger bucketing key.
type Day struct {
	t time.Time
}

// NewDay builds a Day from year, month and day in UTC.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates an instant to its UTC calendar day.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return NewDay(u.Year(), u.Month(), u.Day())
}

// Today returns the current UTC calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Day{t: t}, nil
}

// IsZero reports whether the Day is the zero value.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns the Day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d is an earlier calendar day than other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// Time returns the midnight-UTC instant for the day.
func (d Day) Time() time.Time {
	return d.t
}

// String renders the canonical YYYY-MM-DD form.
func (d Day) String() string {
	return d.t.Format(DayLayout)
}

// MarshalJSON renders the Day as a JSON string in canonical form.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON string in canonical form.
func (d *Day) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer, storing the day as its canonical string so
// bucketing is identical across database engines.
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for string, byte-slice and time column values.
func (d *Day) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Day{}
		return nil
	case time.Time:
		*d = DayOf(v)
		return nil
	case string:
		parsed, err := ParseDay(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDay(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Day", value)
	}
}

// GormDataType tells GORM to store Day in a date column.
func (Day) GormDataType() string {
	return "date"
}
