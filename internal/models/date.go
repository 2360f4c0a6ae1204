package models

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing front-matter dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Date is an optional front-matter date. The zero value means "absent".
type Date struct {
	Raw   string
	Time  time.Time
	Valid bool
}

// ParseDate parses an ISO-like date string. Blank input yields the zero Date.
// Input that is present but matches no known layout keeps Raw with Valid=false.
func ParseDate(raw string) Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date{Raw: raw, Time: t, Valid: true}
		}
	}
	return Date{Raw: raw}
}

// DateFromTime wraps an already known instant.
func DateFromTime(t time.Time) Date {
	return Date{Raw: t.Format("2006-01-02"), Time: t, Valid: true}
}

// IsZero reports whether the date was absent from the front-matter.
func (d Date) IsZero() bool {
	return d.Raw == ""
}

// String returns the date as written by the author.
func (d Date) String() string {
	return d.Raw
}

// MarshalText encodes the date as the author wrote it.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Raw), nil
}

// UnmarshalText reparses the author's text, so encoded dates decode to the
// same value.
func (d *Date) UnmarshalText(b []byte) error {
	*d = ParseDate(string(b))
	return nil
}

// Compare orders two present dates chronologically. Parseable dates sort
// before unparseable ones; two unparseable dates compare by their raw text.
func (d Date) Compare(other Date) int {
	switch {
	case d.Valid && other.Valid:
		return d.Time.Compare(other.Time)
	case d.Valid:
		return 1
	case other.Valid:
		return -1
	default:
		return strings.Compare(d.Raw, other.Raw)
	}
}

// MonthYear formats the date as "Jan 2006", falling back to the raw text.
func (d Date) MonthYear() string {
	if !d.Valid {
		return d.Raw
	}
	return d.Time.Format("Jan 2006")
}
