package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different sampling and routing per category.
type EventCategory string

const (
	// CategorySecurity covers events relevant to abuse monitoring, such as
	// malformed identifiers submitted to a lookup. Never sampled.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity. These can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from service logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	// Decision is the outcome of the action (e.g. a visa status).
	Decision string
	// Reason is the machine-readable cause of a rejection.
	Reason    string
	RequestID string
	IP        string
	// SubjectIDHash is a SHA-256 hash of the identifier being looked up.
	// Used for traceability without storing raw PII.
	SubjectIDHash string
}

type AuditEvent string

const (
	EventVisaStatusChecked AuditEvent = "visa_status_checked"
	EventVisaCheckRejected AuditEvent = "visa_check_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventVisaStatusChecked: CategoryOperations,
	EventVisaCheckRejected: CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// NewEvent builds an Event for action with its category filled in.
func NewEvent(action AuditEvent) Event {
	return Event{Category: action.Category(), Action: string(action)}
}

// HashSubject returns the hex SHA-256 of an identifier. Empty input hashes to
// the empty string so absent subjects stay absent.
func HashSubject(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
