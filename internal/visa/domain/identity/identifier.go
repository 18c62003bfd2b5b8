// Package identity validates the identifiers a visa check is keyed on.
//
// Domain Purity: This package contains only pure domain logic with no I/O,
// no context.Context, and no time.Now() calls.
package identity

import (
	"errors"
	"strings"

	"visacheck/internal/visa/domain/shared"
)

// Kind selects which identifier representation is active for a request.
type Kind string

const (
	KindNationalID     Kind = "civil_id"
	KindTravelDocument Kind = "passport"
)

const (
	nationalIDLength  = 12
	travelDocumentMin = 6
	travelDocumentMax = 12

	// placeholderEcho is shown in place of a civil ID when the holder was
	// identified by travel document.
	placeholderEcho = "2XXXXXXXXXXX"
)

// Validation errors. Exactly one is reported per failed validation.
var (
	ErrInvalidNationalID     = errors.New("invalid national ID: must be exactly 12 digits")
	ErrInvalidTravelDocument = errors.New("invalid travel document number: must be 6-12 letters or digits")
	ErrMissingCountryOfIssue = errors.New("country of issue is required for travel documents")
	ErrUnknownIdentifierKind = errors.New("unknown identifier kind")
)

// Input is the identifier a caller submits.
//
// Invariants:
//   - CountryOfIssue is set only when Kind is KindTravelDocument
type Input struct {
	Kind           Kind
	Value          string
	CountryOfIssue shared.Country
}

// NationalID builds an Input for a national (civil) identifier.
func NationalID(value string) Input {
	return Input{Kind: KindNationalID, Value: value}
}

// TravelDocument builds an Input for a passport or equivalent document.
func TravelDocument(value string, countryOfIssue shared.Country) Input {
	return Input{Kind: KindTravelDocument, Value: value, CountryOfIssue: countryOfIssue}
}

// ParseKind constructs a Kind from external input.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindNationalID, KindTravelDocument:
		return k, nil
	case "":
		return KindNationalID, nil
	default:
		return "", ErrUnknownIdentifierKind
	}
}

// Validate checks the structure of an identifier. Rules run in order and the
// first violation is returned: the value's shape, then the country of issue.
// A national ID carrying a country of issue is rejected as ErrInvalidNationalID.
func Validate(in Input) error {
	switch in.Kind {
	case KindNationalID:
		// A country of issue means a second representation is active.
		if !isNationalID(in.Value) || in.CountryOfIssue != "" {
			return ErrInvalidNationalID
		}
		return nil
	case KindTravelDocument:
		if !isTravelDocument(in.Value) {
			return ErrInvalidTravelDocument
		}
		if !in.CountryOfIssue.IsAccepted() {
			return ErrMissingCountryOfIssue
		}
		return nil
	default:
		return ErrUnknownIdentifierKind
	}
}

func isNationalID(v string) bool {
	if len(v) != nationalIDLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !isDigit(v[i]) {
			return false
		}
	}
	return true
}

func isTravelDocument(v string) bool {
	if len(v) < travelDocumentMin || len(v) > travelDocumentMax {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if !isDigit(c) && !isLetter(c) {
			return false
		}
	}
	return true
}

// Byte-wise checks: any multi-byte rune fails both predicates, so lengths are
// safely measured in bytes.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Reason maps a validation error to a stable machine-readable code.
// Returns "" for errors that did not come from Validate.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidNationalID):
		return "invalid_national_id"
	case errors.Is(err, ErrInvalidTravelDocument):
		return "invalid_travel_document"
	case errors.Is(err, ErrMissingCountryOfIssue):
		return "missing_country_of_issue"
	case errors.Is(err, ErrUnknownIdentifierKind):
		return "unknown_identifier_kind"
	default:
		return ""
	}
}

// Echo returns the identifier as shown back to the holder. Travel documents
// echo the civil ID placeholder. In regulated mode all but the last four
// characters are masked.
func (in Input) Echo(regulated bool) string {
	if in.Kind != KindNationalID {
		return placeholderEcho
	}
	if !regulated || len(in.Value) <= 4 {
		return in.Value
	}
	return strings.Repeat("X", len(in.Value)-4) + in.Value[len(in.Value)-4:]
}

// Nationality returns the display nationality: the country of issue for
// travel documents, otherwise the demo default.
func (in Input) Nationality() string {
	if in.Kind == KindTravelDocument && in.CountryOfIssue != "" {
		return in.CountryOfIssue.String()
	}
	return "India"
}
