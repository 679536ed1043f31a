// Package calendar provides a day-precision date type and the month arithmetic
// used by range queries and monthly reports.
package calendar

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the wire and storage format of a Date.
const Layout = "2006-01-02"

const (
	MinYear = 1
	MaxYear = 9999
)

var (
	ErrInvalidDate  = errors.New("date must be a valid calendar date in YYYY-MM-DD format")
	ErrInvalidYear  = fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

// Date is a calendar day without a time component. The zero value is the
// unset date and is rejected by validation.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day. Out-of-range
// values are normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates t to its calendar day in t's own location.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current UTC calendar day.
func Today() Date {
	return FromTime(time.Now().UTC())
}

// Parse parses a strict YYYY-MM-DD string. Days that do not exist in the
// given month, such as 2023-02-29, are rejected.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(Layout) {
		return Date{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	if err := ValidateYear(t.Year()); err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("calendar: invalid date %q", s))
	}
	return d
}

func (d Date) Year() int          { return d.t.Year() }
func (d Date) Month() time.Month  { return d.t.Month() }
func (d Date) Day() int           { return d.t.Day() }
func (d Date) Time() time.Time    { return d.t }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// InRange reports whether from <= d <= to.
func (d Date) InRange(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as YYYY-MM-DD so that range comparisons are exact on
// both DATE columns and text columns.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = FromTime(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(Layout) {
		// Some drivers hand back a full timestamp for DATE columns.
		s = s[:len(Layout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return fmt.Errorf("calendar: cannot scan %q: %w", s, err)
	}
	*d = parsed
	return nil
}
