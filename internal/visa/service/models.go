package service

import (
	"time"

	"visacheck/internal/visa/domain/evaluation"
	"visacheck/internal/visa/domain/identity"
	"visacheck/internal/visa/domain/shared"
)

// CheckRequest is one visa lookup. IssueDate and ExpiryDate are optional but
// must be supplied together; when absent a demo window is synthesized.
type CheckRequest struct {
	Identifier identity.Input
	Category   shared.Category
	IssueDate  *shared.Date
	ExpiryDate *shared.Date
}

// CheckResult is the outcome of a successful lookup.
type CheckResult struct {
	Record   evaluation.Record
	Guidance evaluation.Guidance
	// ReferenceDate is the calendar date the record was evaluated against.
	ReferenceDate shared.Date
	CheckedAt     time.Time
}

// Demo reports whether the record came from a synthesized window.
func (r *CheckResult) Demo() bool {
	return r.Record.Synthesized
}
