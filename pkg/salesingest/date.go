package salesingest

import (
	"fmt"
	"time"
)

// Date layouts accepted for the target date argument. The one-shot CLI uses
// the compact form; schedulers typically hand over their ISO run date.
const (
	DateLayoutCompact = "20060102"
	DateLayoutISO     = "2006-01-02"
)

// Date is a calendar date with no time-of-day component, always UTC.
// Row timestamps are truncated to a Date before comparison so that
// time-of-day never influences batch membership.
type Date struct {
	t time.Time
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseTargetDate parses a target date in YYYYMMDD or YYYY-MM-DD form.
// Returns an error wrapping ErrInvalidDate on any other input.
func ParseTargetDate(s string) (Date, error) {
	for _, layout := range []string{DateLayoutCompact, DateLayoutISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q (expected YYYYMMDD)", ErrInvalidDate, s)
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date as a UTC midnight time.Time.
func (d Date) Time() time.Time {
	return d.t
}

// String returns the ISO form, e.g. "2025-06-16".
func (d Date) String() string {
	return d.t.Format(DateLayoutISO)
}

// MarshalJSON encodes the date in ISO form.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO-form date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(DateLayoutISO, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}
