package postgres

import (
	"context"
	"database/sql"
	"time"

	"paperscan/internal/model"
	"paperscan/internal/repository"
)

// ContactPostgres is a PostgreSQL implementation of
// repository.ContactRepository.
type ContactPostgres struct {
	db *sql.DB
}

// NewContactPostgres creates a new ContactPostgres repository.
func NewContactPostgres(db *sql.DB) *ContactPostgres {
	return &ContactPostgres{db: db}
}

var _ repository.ContactRepository = (*ContactPostgres)(nil)

const contactColumns = `id, name, email, subject, body, status, created_at, processed_at, source_ip, user_agent, response_sent`

func scanContact(s interface{ Scan(...any) error }) (*model.ContactMessage, error) {
	var m model.ContactMessage
	if err := s.Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.Subject,
		&m.Body,
		&m.Status,
		&m.CreatedAt,
		&m.ProcessedAt,
		&m.SourceIP,
		&m.UserAgent,
		&m.ResponseSent,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// Insert stores a new contact message and returns the stored record.
func (r *ContactPostgres) Insert(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	const q = `
		INSERT INTO contact_messages (name, email, subject, body, status, source_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contactColumns
	row := r.db.QueryRowContext(ctx, q,
		m.Name,
		m.Email,
		m.Subject,
		m.Body,
		m.Status,
		m.SourceIP,
		m.UserAgent,
	)
	return scanContact(row)
}

// CountRecentByEmail counts messages sent by the email within the window.
func (r *ContactPostgres) CountRecentByEmail(ctx context.Context, email string, window time.Duration) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM contact_messages
		WHERE email = $1 AND created_at >= now() - $2::interval
	`
	var n int
	if err := r.db.QueryRowContext(ctx, q, email, window.String()).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Recent returns the newest messages, most recent first.
func (r *ContactPostgres) Recent(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	const q = `
		SELECT ` + contactColumns + `
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContactMessage, 0)
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus moves a message to a new triage state and stamps processed_at.
func (r *ContactPostgres) UpdateStatus(ctx context.Context, id int64, status model.ContactStatus, responseSent bool) error {
	const q = `
		UPDATE contact_messages
		SET status = $2, processed_at = now(), response_sent = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, status, responseSent)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Search returns messages matching the filters plus a total count. Empty
// filter fields are ignored via the ($n = '' OR ...) pattern so a single
// query covers every combination.
func (r *ContactPostgres) Search(ctx context.Context, sq repository.ContactSearchQuery) (*repository.PageResult[model.ContactMessage], error) {
	const qCount = `
		SELECT COUNT(*)
		FROM contact_messages
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%' OR body ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR subject = $2)
		  AND ($3 = '' OR status = $3)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, sq.Term, string(sq.Subject), string(sq.Status)).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + contactColumns + `
		FROM contact_messages
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%' OR body ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR subject = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.QueryContext(ctx, qList, sq.Term, string(sq.Subject), string(sq.Status), sq.Page.Limit, sq.Page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContactMessage, 0)
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ContactMessage]{
		Items: items,
		Total: total,
	}, nil
}

// Analytics aggregates counts by subject and by status over the trailing
// number of days.
func (r *ContactPostgres) Analytics(ctx context.Context, days int) (*model.ContactAnalytics, error) {
	out := &model.ContactAnalytics{PeriodDays: days}

	const qTotal = `
		SELECT COUNT(*)
		FROM contact_messages
		WHERE created_at >= now() - make_interval(days => $1)
	`
	if err := r.db.QueryRowContext(ctx, qTotal, days).Scan(&out.TotalContacts); err != nil {
		return nil, err
	}

	const qSubject = `
		SELECT subject, COUNT(*)
		FROM contact_messages
		WHERE created_at >= now() - make_interval(days => $1)
		GROUP BY subject
		ORDER BY COUNT(*) DESC, subject
	`
	rows, err := r.db.QueryContext(ctx, qSubject, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sc model.SubjectCount
		if err := rows.Scan(&sc.Subject, &sc.Count); err != nil {
			return nil, err
		}
		out.BySubject = append(out.BySubject, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const qStatus = `
		SELECT status, COUNT(*)
		FROM contact_messages
		WHERE created_at >= now() - make_interval(days => $1)
		GROUP BY status
		ORDER BY COUNT(*) DESC, status
	`
	srows, err := r.db.QueryContext(ctx, qStatus, days)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var sc model.StatusCount
		if err := srows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out.ByStatus = append(out.ByStatus, sc)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// RecordDailyRollup inserts the day's (date, subject, status) marker. The
// unique index makes repeats a no-op.
func (r *ContactPostgres) RecordDailyRollup(ctx context.Context, day time.Time, subject model.ContactSubject, status model.ContactStatus) error {
	const q = `
		INSERT INTO contact_analytics (contact_date, subject, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (contact_date, subject, status) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, day.Format("2006-01-02"), subject, status)
	return err
}
