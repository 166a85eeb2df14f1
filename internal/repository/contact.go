package repository

import (
	"context"
	"time"

	"paperscan/internal/model"
)

// ContactSearchQuery holds the optional filters of a contact search.
// Zero values mean "no filter".
type ContactSearchQuery struct {
	Term    string
	Subject model.ContactSubject
	Status  model.ContactStatus
	Page    PageQuery
}

// ContactRepository defines data access for the support inbox.
type ContactRepository interface {
	// Insert stores a new message and returns it with the generated ID and
	// created_at filled in.
	Insert(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error)

	// CountRecentByEmail counts messages from an email within the trailing
	// window, used for rate limiting.
	CountRecentByEmail(ctx context.Context, email string, window time.Duration) (int, error)

	// Recent returns the newest messages, most recent first.
	Recent(ctx context.Context, limit int) ([]model.ContactMessage, error)

	// UpdateStatus moves a message to a new triage state, stamping
	// processed_at. Returns sql.ErrNoRows when the ID does not exist.
	UpdateStatus(ctx context.Context, id int64, status model.ContactStatus, responseSent bool) error

	// Search returns messages matching the filters with a total count.
	Search(ctx context.Context, q ContactSearchQuery) (*PageResult[model.ContactMessage], error)

	// Analytics aggregates message counts by subject and status over the
	// trailing number of days.
	Analytics(ctx context.Context, days int) (*model.ContactAnalytics, error)

	// RecordDailyRollup bumps the per-day (date, subject, status) counter
	// used for long-term reporting.
	RecordDailyRollup(ctx context.Context, day time.Time, subject model.ContactSubject, status model.ContactStatus) error
}
