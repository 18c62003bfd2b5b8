package handler

import (
	"strings"

	"visacheck/internal/visa/domain/identity"
	"visacheck/internal/visa/domain/shared"
	"visacheck/internal/visa/service"
	dErrors "visacheck/pkg/domain-errors"
)

const maxFieldLength = 64

// CheckRequest is the HTTP request body for POST /visa/check.
type CheckRequest struct {
	IDType         string `json:"id_type"`
	CivilID        string `json:"civil_id"`
	PassportNumber string `json:"passport_number"`
	Nationality    string `json:"nationality"`
	VisaType       string `json:"visa_type"`
	IssueDate      string `json:"issue_date,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`

	// Parsed values (populated by Validate)
	parsed service.CheckRequest
}

// Validate normalizes and parses the request. Identifier rules are left to
// the service so rejections are counted and audited in one place.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	for _, field := range []string{r.IDType, r.CivilID, r.PassportNumber, r.Nationality, r.VisaType, r.IssueDate, r.ExpiryDate} {
		if len(field) > maxFieldLength {
			return dErrors.New(dErrors.CodeValidation, "fields must be at most 64 characters")
		}
	}

	kind, err := identity.ParseKind(strings.TrimSpace(r.IDType))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "id_type must be civil_id or passport")
	}

	switch kind {
	case identity.KindNationalID:
		r.parsed.Identifier = identity.NationalID(strings.TrimSpace(r.CivilID))
	case identity.KindTravelDocument:
		r.parsed.Identifier = identity.TravelDocument(strings.TrimSpace(r.PassportNumber), parseNationality(r.Nationality))
	}

	r.parsed.Category = shared.Category(strings.ToLower(strings.TrimSpace(r.VisaType)))

	if r.parsed.IssueDate, err = parseOptionalDate(r.IssueDate); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "issue_date must be YYYY-MM-DD")
	}
	if r.parsed.ExpiryDate, err = parseOptionalDate(r.ExpiryDate); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "expiry_date must be YYYY-MM-DD")
	}
	return nil
}

// Parsed returns the service request built by Validate.
func (r *CheckRequest) Parsed() service.CheckRequest {
	return r.parsed
}

// parseNationality canonicalizes a known country. Unknown values pass through
// so the validator reports them.
func parseNationality(raw string) shared.Country {
	raw = strings.TrimSpace(raw)
	if c, ok := shared.ParseCountry(raw); ok {
		return c
	}
	return shared.Country(raw)
}

func parseOptionalDate(raw string) (*shared.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := shared.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
