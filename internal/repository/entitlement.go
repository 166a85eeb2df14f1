package repository

import (
	"context"

	"paperscan/internal/model"
)

// EntitlementRepository defines data access for paid entitlements using SQL
// queries only. No business logic here — strictly persistence operations.
type EntitlementRepository interface {
	// Upsert inserts the entitlement or, when the email already exists,
	// refreshes its tier, status, payment references and updated_at.
	// Returns the stored row.
	Upsert(ctx context.Context, e *model.Entitlement) (*model.Entitlement, error)

	// FindByEmail returns the entitlement for an email.
	// Returns sql.ErrNoRows when the email has never been entitled.
	FindByEmail(ctx context.Context, email string) (*model.Entitlement, error)

	// UpdateStatus flips the activation state of an existing entitlement.
	// Unknown emails are a no-op.
	UpdateStatus(ctx context.Context, email string, status model.EntitlementStatus) error

	// UpdateStatusBySubscription flips the activation state of the
	// entitlement carrying the given subscription reference. Unknown
	// references are a no-op.
	UpdateStatusBySubscription(ctx context.Context, subscriptionRef string, status model.EntitlementStatus) error
}

// BillingEventRepository records processed payment-provider event IDs so
// webhook retries never apply twice.
type BillingEventRepository interface {
	// MarkProcessed records the event ID and reports whether this call was
	// the first to see it. A false return means the event was already
	// handled and must be skipped.
	MarkProcessed(ctx context.Context, eventID, email string) (bool, error)
}
