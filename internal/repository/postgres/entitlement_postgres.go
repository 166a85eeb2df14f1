package postgres

import (
	"context"
	"database/sql"

	"paperscan/internal/model"
	"paperscan/internal/repository"
)

// EntitlementPostgres is a PostgreSQL implementation of
// repository.EntitlementRepository. It uses database/sql with parameterized
// queries and contains no business logic.
type EntitlementPostgres struct {
	db *sql.DB
}

// NewEntitlementPostgres creates a new EntitlementPostgres repository.
func NewEntitlementPostgres(db *sql.DB) *EntitlementPostgres {
	return &EntitlementPostgres{db: db}
}

var _ repository.EntitlementRepository = (*EntitlementPostgres)(nil)

// Upsert inserts or refreshes the entitlement row keyed by email.
func (r *EntitlementPostgres) Upsert(ctx context.Context, e *model.Entitlement) (*model.Entitlement, error) {
	const q = `
		INSERT INTO entitlements (email, tier, status, payment_ref, subscription_ref)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			tier             = EXCLUDED.tier,
			status           = EXCLUDED.status,
			payment_ref      = EXCLUDED.payment_ref,
			subscription_ref = EXCLUDED.subscription_ref,
			updated_at       = now()
		RETURNING email, tier, status, payment_ref, subscription_ref, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		e.Email,
		e.Tier,
		e.Status,
		e.PaymentRef,
		e.SubscriptionRef,
	)
	var out model.Entitlement
	if err := row.Scan(
		&out.Email,
		&out.Tier,
		&out.Status,
		&out.PaymentRef,
		&out.SubscriptionRef,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByEmail fetches a single entitlement by email.
func (r *EntitlementPostgres) FindByEmail(ctx context.Context, email string) (*model.Entitlement, error) {
	const q = `
		SELECT email, tier, status, payment_ref, subscription_ref, created_at, updated_at
		FROM entitlements
		WHERE email = $1
	`
	row := r.db.QueryRowContext(ctx, q, email)
	var e model.Entitlement
	if err := row.Scan(
		&e.Email,
		&e.Tier,
		&e.Status,
		&e.PaymentRef,
		&e.SubscriptionRef,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateStatus flips an entitlement's activation state. Unknown emails do
// not return an error.
func (r *EntitlementPostgres) UpdateStatus(ctx context.Context, email string, status model.EntitlementStatus) error {
	const q = `
		UPDATE entitlements
		SET status = $2, updated_at = now()
		WHERE email = $1
	`
	res, err := r.db.ExecContext(ctx, q, email, status)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// UpdateStatusBySubscription flips the activation state of the entitlement
// holding the subscription reference. Unknown references do not return an
// error.
func (r *EntitlementPostgres) UpdateStatusBySubscription(ctx context.Context, subscriptionRef string, status model.EntitlementStatus) error {
	const q = `
		UPDATE entitlements
		SET status = $2, updated_at = now()
		WHERE subscription_ref = $1
	`
	res, err := r.db.ExecContext(ctx, q, subscriptionRef, status)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// BillingEventPostgres is a PostgreSQL implementation of
// repository.BillingEventRepository.
type BillingEventPostgres struct {
	db *sql.DB
}

// NewBillingEventPostgres creates a new BillingEventPostgres repository.
func NewBillingEventPostgres(db *sql.DB) *BillingEventPostgres {
	return &BillingEventPostgres{db: db}
}

var _ repository.BillingEventRepository = (*BillingEventPostgres)(nil)

// MarkProcessed records the event ID. The primary key makes duplicates a
// clean no-op; rows affected tells us whether this call won the insert.
func (r *BillingEventPostgres) MarkProcessed(ctx context.Context, eventID, email string) (bool, error) {
	const q = `
		INSERT INTO billing_events (event_id, email)
		VALUES ($1, $2)
		ON CONFLICT (event_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, q, eventID, email)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
