// Package domain contains the pure domain model for the Visa bounded context.
//
// # Visa Bounded Context
//
// The Visa context answers one question: given an identifier and a visa
// category, what is the validity status of the visa? There is no registry
// behind it yet, so the validity window is either supplied by the caller or
// synthesized from an injected random source.
//
// # Subdomain Structure
//
//	visa/domain/
//	├── shared/      # Shared Kernel - Category, Status, Date, Country
//	├── identity/    # Identifier validation (national ID, travel document)
//	└── evaluation/  # Window synthesis, status classification, guidance
//
// # Shared Kernel (shared/)
//
//   - Category: administrative class of stay permit, display only
//   - Status: Valid, ExpiringSoon, Expired
//   - Date: timezone-naive calendar date with exact day arithmetic
//   - Country: accepted countries of issue, terminated by "Other"
//
// # Identity (identity/)
//
// Validates the structure of an identifier before evaluation proceeds.
//
// Key Invariants:
//   - A national ID is exactly 12 ASCII digits
//   - A travel document number is 6-12 ASCII letters or digits
//   - A travel document always carries an accepted country of issue
//   - Validation reports exactly one error, structure before country
//
// # Evaluation (evaluation/)
//
// Classifies a validity window relative to a reference date.
//
// Key Invariants:
//   - Issue date is strictly before expiry date
//   - DaysRemaining is never negative
//   - Evaluate never fails for a well-formed window
//
// # Domain Purity
//
//	✓ No I/O (no database, HTTP, filesystem access)
//	✓ No context.Context in function signatures
//	✓ No time.Now() or rand.* calls - time and randomness are received as parameters
//	✓ Pure input → output functions, fully testable without mocks
//
// The application layer (service/) injects the reference date and the random
// source, and coordinates logging, metrics and audit.
package domain
