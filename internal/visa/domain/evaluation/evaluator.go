// Package evaluation classifies a visa validity window relative to a reference
// date.
//
// Domain Purity: This package contains only pure domain logic. The reference
// date and the random source are received as parameters.
package evaluation

import (
	"errors"

	"visacheck/internal/visa/domain/identity"
	"visacheck/internal/visa/domain/shared"
)

const (
	// ExpiringSoonDays is the inclusive upper bound of the expiring-soon band.
	ExpiringSoonDays = 30

	// Synthesized expiry offsets are drawn from [synthMinOffset, synthMinOffset+synthSpan-1].
	synthMinOffset = -30
	synthSpan      = 365

	// validityYears is the length of a synthesized window.
	validityYears = 2

	demoHolderName = "DEMO USER"
)

// ErrInvertedWindow indicates an issue date that is not before the expiry date.
var ErrInvertedWindow = errors.New("issue date must be before expiry date")

// RandomSource supplies the offset for synthesized windows.
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Window is the validity period of a visa.
//
// Invariants:
//   - Issue is strictly before Expiry
type Window struct {
	issue  shared.Date
	expiry shared.Date
}

// NewWindow creates a validated Window.
func NewWindow(issue, expiry shared.Date) (Window, error) {
	if !issue.Before(expiry) {
		return Window{}, ErrInvertedWindow
	}
	return Window{issue: issue, expiry: expiry}, nil
}

// MustWindow creates a Window, panicking if inverted.
// Use only in tests or when the dates are known to be ordered.
func MustWindow(issue, expiry shared.Date) Window {
	w, err := NewWindow(issue, expiry)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Window) Issue() shared.Date  { return w.issue }
func (w Window) Expiry() shared.Date { return w.expiry }

// SynthesizeWindow generates a demo window around the reference date. rnd
// must not be nil. The
// expiry lies between 30 days before and 334 days after the reference date,
// and the visa was issued two calendar years before expiry.
func SynthesizeWindow(reference shared.Date, rnd RandomSource) Window {
	offset := rnd.IntN(synthSpan) + synthMinOffset
	expiry := reference.AddDays(offset)
	return Window{
		issue:  expiry.AddYears(-validityYears),
		expiry: expiry,
	}
}

// Holder carries the display fields echoed on a Record. They are opaque and
// not validated here.
type Holder struct {
	DisplayName    string
	Nationality    string
	IdentifierEcho string
}

// HolderFor builds the demo holder shown for a validated identifier.
func HolderFor(in identity.Input, regulated bool) Holder {
	return Holder{
		DisplayName:    demoHolderName,
		Nationality:    in.Nationality(),
		IdentifierEcho: in.Echo(regulated),
	}
}

// Record is the result of one evaluation. It is a value: constructed fresh per
// call and never mutated.
type Record struct {
	Status            shared.Status
	Category          shared.Category
	IssueDate         shared.Date
	ExpiryDate        shared.Date
	DaysRemaining     int
	HolderDisplayName string
	Nationality       string
	IdentifierEcho    string
	// Synthesized is true when the window was generated rather than supplied.
	Synthesized bool
}

// Evaluate classifies a visa. When window is nil one is synthesized from rnd,
// which is otherwise left untouched and may be nil. Given a window, or a nil
// window with a non-nil rnd, Evaluate never fails. A nil window with a nil rnd
// is a programming error and panics.
func Evaluate(category shared.Category, reference shared.Date, window *Window, rnd RandomSource, holder Holder) Record {
	synthesized := window == nil
	var w Window
	if synthesized {
		w = SynthesizeWindow(reference, rnd)
	} else {
		w = *window
	}

	delta := reference.DaysUntil(w.expiry)
	return Record{
		Status:            Classify(delta),
		Category:          category,
		IssueDate:         w.issue,
		ExpiryDate:        w.expiry,
		DaysRemaining:     max(0, delta),
		HolderDisplayName: holder.DisplayName,
		Nationality:       holder.Nationality,
		IdentifierEcho:    holder.IdentifierEcho,
		Synthesized:       synthesized,
	}
}

// Classify maps the signed number of days until expiry to a status.
func Classify(daysUntilExpiry int) shared.Status {
	switch {
	case daysUntilExpiry < 0:
		return shared.StatusExpired
	case daysUntilExpiry <= ExpiringSoonDays:
		return shared.StatusExpiringSoon
	default:
		return shared.StatusValid
	}
}
