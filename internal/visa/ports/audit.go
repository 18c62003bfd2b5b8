package ports

import (
	"context"

	"visacheck/pkg/platform/audit"
)

// AuditPort defines the interface for emitting audit events.
// This matches the ops Tracker but is defined here to maintain hexagonal
// boundaries.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
