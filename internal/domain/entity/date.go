// Package entity contains the core business objects of the back office.
package entity

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the canonical text form of a Date.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when text cannot be read as a calendar date.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day without time of day, held in its canonical YYYY-MM-DD form.
// The zero value means "no date". Canonical values order correctly as strings.
type Date string

// ParseDate reads a calendar date. Besides YYYY-MM-DD it accepts RFC 3339
// timestamps, keeping only their date part.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}

	return "", errors.Wrapf(ErrInvalidDate, "%q", s)
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// IsZero reports whether no date is set.
func (d Date) IsZero() bool {
	return d == ""
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return string(d) < string(o)
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return string(d) > string(o)
}

func (d Date) String() string {
	return string(d)
}

// Ptr returns nil for the zero date, for nullable columns.
func (d Date) Ptr() *string {
	if d.IsZero() {
		return nil
	}
	s := string(d)

	return &s
}

// DateFromPtr is the inverse of Ptr.
func DateFromPtr(s *string) Date {
	if s == nil {
		return ""
	}

	return Date(*s)
}
