package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// ISODateLayout is the storage and JSON layout of a Date.
	ISODateLayout = "2006-01-02"
	// DisplayDateLayout is the dd/mm/yyyy layout used by task forms.
	DisplayDateLayout = "02/01/2006"
)

// Date is a calendar date without a time-of-day component.
// The zero value means "no date".
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses s as either dd/mm/yyyy or yyyy-mm-dd.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DisplayDateLayout, ISODateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: use dd/mm/yyyy", s)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

// String formats d as yyyy-mm-dd, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(ISODateLayout)
}

// Display formats d as dd/mm/yyyy.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DisplayDateLayout)
}

// GormDataType makes gorm declare the column as DATE.
func (Date) GormDataType() string {
	return "date"
}

// Value stores the date as yyyy-mm-dd so range comparisons work on every driver.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan accepts the representations the sqlite, mysql and postgres drivers return for DATE columns.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	// sqlite may hand back a full timestamp for DATE columns
	if len(s) > len(ISODateLayout) {
		s = s[:len(ISODateLayout)]
	}
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return fmt.Errorf("cannot scan %q into Date: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
