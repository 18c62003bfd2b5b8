package evaluation

import "visacheck/internal/visa/domain/shared"

// Guidance is the text shown alongside a status.
type Guidance struct {
	Headline string
	// ActionsTitle is empty when no action is needed.
	ActionsTitle string
	Actions      []string
}

// GuidanceFor returns the headline and recommended actions for a status.
func GuidanceFor(status shared.Status) Guidance {
	switch status {
	case shared.StatusValid:
		return Guidance{Headline: "Your visa is currently valid"}
	case shared.StatusExpiringSoon:
		return Guidance{
			Headline:     "Your visa will expire soon - consider renewal",
			ActionsTitle: "Recommended Actions",
			Actions: []string{
				"Start your visa renewal process immediately",
				"Gather required documents (passport, photos, medical certificate)",
				"Contact your employer/sponsor for renewal assistance",
				"Visit the MOI Kuwait website for online renewal options",
			},
		}
	case shared.StatusExpired:
		return Guidance{
			Headline:     "Your visa has expired - please take action",
			ActionsTitle: "Urgent Actions Required",
			Actions: []string{
				"Contact the Ministry of Interior immediately",
				"You may be subject to overstay fines",
				"Consult with your employer/sponsor about next steps",
				"Consider seeking legal advice if needed",
			},
		}
	default:
		return Guidance{}
	}
}

// Disclaimer accompanies every demo result.
const Disclaimer = "This is a demonstration result. For official visa status verification, " +
	"please visit the Ministry of Interior Kuwait official website at moi.gov.kw"
