package handler

import (
	"time"

	"visacheck/internal/visa/domain/evaluation"
	"visacheck/internal/visa/domain/shared"
	"visacheck/internal/visa/service"
)

// CheckResponse is the HTTP response for POST /visa/check.
type CheckResponse struct {
	Status        string           `json:"status"`
	StatusText    string           `json:"status_text"`
	VisaType      string           `json:"visa_type"`
	VisaTypeLabel string           `json:"visa_type_label"`
	IssueDate     string           `json:"issue_date"`
	ExpiryDate    string           `json:"expiry_date"`
	DaysRemaining int              `json:"days_remaining"`
	HolderName    string           `json:"holder_name"`
	Nationality   string           `json:"nationality"`
	CivilID       string           `json:"civil_id"`
	Guidance      GuidanceResponse `json:"guidance"`
	ReferenceDate string           `json:"reference_date"`
	CheckedAt     time.Time        `json:"checked_at"`
	Demo          bool             `json:"demo"`
	Disclaimer    string           `json:"disclaimer,omitempty"`
}

// GuidanceResponse is the guidance portion of the response.
type GuidanceResponse struct {
	Headline     string   `json:"headline"`
	ActionsTitle string   `json:"actions_title,omitempty"`
	Actions      []string `json:"actions,omitempty"`
}

// ValidationErrorResponse extends the error envelope with the rejection reason.
type ValidationErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Reason           string `json:"reason"`
}

// OptionResponse is one entry of a form option list.
type OptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FromResult converts a service CheckResult to an HTTP response.
func FromResult(result *service.CheckResult) *CheckResponse {
	rec := result.Record
	resp := &CheckResponse{
		Status:        string(rec.Status),
		StatusText:    rec.Status.Text(),
		VisaType:      string(rec.Category),
		VisaTypeLabel: rec.Category.Label(),
		IssueDate:     rec.IssueDate.String(),
		ExpiryDate:    rec.ExpiryDate.String(),
		DaysRemaining: rec.DaysRemaining,
		HolderName:    rec.HolderDisplayName,
		Nationality:   rec.Nationality,
		CivilID:       rec.IdentifierEcho,
		Guidance: GuidanceResponse{
			Headline:     result.Guidance.Headline,
			ActionsTitle: result.Guidance.ActionsTitle,
			Actions:      result.Guidance.Actions,
		},
		ReferenceDate: result.ReferenceDate.String(),
		CheckedAt:     result.CheckedAt,
		Demo:          result.Demo(),
	}
	if resp.Demo {
		resp.Disclaimer = evaluation.Disclaimer
	}
	return resp
}

func categoryOptions() []OptionResponse {
	categories := shared.Categories()
	out := make([]OptionResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, OptionResponse{Value: string(c), Label: c.Label()})
	}
	return out
}

func countryOptions() []OptionResponse {
	countries := shared.AcceptedCountries()
	out := make([]OptionResponse, 0, len(countries))
	for _, c := range countries {
		out = append(out, OptionResponse{Value: string(c), Label: string(c)})
	}
	return out
}
