// Package shared provides the shared kernel for the Visa bounded context.
//
// Domain Purity: This package contains only pure domain types with no I/O,
// no context.Context, and no time.Now() calls.
package shared

import (
	"errors"
	"strings"
	"time"
)

// Category is the administrative class of stay permit. It has no effect on
// validation or classification and is carried through for display.
type Category string

const (
	CategoryWork      Category = "work"
	CategoryVisit     Category = "visit"
	CategoryResidence Category = "residence"
	CategoryTransit   Category = "transit"
	CategoryFamily    Category = "family"
)

// categoryLabels is the single source of truth for supported categories.
var categoryLabels = map[Category]string{
	CategoryWork:      "Work Visa (تأشيرة عمل)",
	CategoryVisit:     "Visit Visa (تأشيرة زيارة)",
	CategoryResidence: "Residence Permit (إقامة)",
	CategoryTransit:   "Transit Visa (تأشيرة عبور)",
	CategoryFamily:    "Family Visa (تأشيرة عائلية)",
}

// ErrUnknownCategory indicates a visa category outside the supported set.
var ErrUnknownCategory = errors.New("unknown visa category")

// ParseCategory constructs a Category from external input.
// An empty value defaults to CategoryWork, matching the form default.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryWork, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// Categories returns the supported categories in display order.
func Categories() []Category {
	return []Category{CategoryWork, CategoryVisit, CategoryResidence, CategoryTransit, CategoryFamily}
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the bilingual display label. Unknown categories fall back to
// the work visa label.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return "Work Visa"
}

func (c Category) String() string {
	return string(c)
}

// Status is the classification of a visa relative to a reference date.
type Status string

const (
	StatusValid        Status = "valid"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// Text returns the human readable status.
func (s Status) Text() string {
	switch s {
	case StatusValid:
		return "Valid"
	case StatusExpiringSoon:
		return "Expiring Soon"
	case StatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

func (s Status) String() string {
	return string(s)
}

// Date is a calendar date without a timezone. Two dates are always a whole
// number of days apart.
//
// Invariants:
//   - The underlying time is midnight UTC
type Date struct {
	t time.Time
}

const (
	isoLayout     = time.DateOnly
	displayLayout = "02/01/2006"
	secondsPerDay = 24 * 60 * 60
)

// ErrInvalidDate indicates a date string that is not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")

// NewDate creates a Date. Out-of-range values normalize the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date shown on the wall clock of t, in t's own
// location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

// MustDate parses a date, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddYears returns the date n calendar years later. 29 February rolls over to
// 1 March in non-leap target years.
func (d Date) AddYears(n int) Date {
	return Date{t: d.t.AddDate(n, 0, 0)}
}

// DaysUntil returns the signed number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// IsZero returns true if this is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

// String returns the ISO form (YYYY-MM-DD).
func (d Date) String() string {
	return d.t.Format(isoLayout)
}

// Display returns the en-GB form (DD/MM/YYYY).
func (d Date) Display() string {
	return d.t.Format(displayLayout)
}

// Country is an accepted country of issue for travel documents.
type Country string

// CountryOther terminates the accepted list as an explicit catch-all.
const CountryOther Country = "Other"

var acceptedCountries = []Country{
	"India", "Philippines", "Egypt", "Bangladesh", "Pakistan",
	"Sri Lanka", "Nepal", "Indonesia", "Jordan", "Syria",
	"Lebanon", "Palestine", "Yemen", "Sudan", "Ethiopia",
	CountryOther,
}

// AcceptedCountries returns the accepted countries of issue in display order.
func AcceptedCountries() []Country {
	out := make([]Country, len(acceptedCountries))
	copy(out, acceptedCountries)
	return out
}

// ParseCountry matches s against the accepted list, ignoring case and
// surrounding whitespace, and returns the canonical spelling.
func ParseCountry(s string) (Country, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, c := range acceptedCountries {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// IsAccepted reports whether c is exactly one of the accepted countries.
func (c Country) IsAccepted() bool {
	for _, accepted := range acceptedCountries {
		if c == accepted {
			return true
		}
	}
	return false
}

func (c Country) String() string {
	return string(c)
}
