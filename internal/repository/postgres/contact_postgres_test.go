package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"paperscan/internal/model"
	"paperscan/internal/repository"
)

var contactTestColumns = []string{"id", "name", "email", "subject", "body", "status", "created_at", "processed_at", "source_ip", "user_agent", "response_sent"}

func contactRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows(contactTestColumns).
		AddRow(id, "Jean Dupont", "jean@example.com", "technical_issue", "Le PDF ne passe pas.", "new", time.Now(), nil, "203.0.113.9", "curl/8.0", false)
}

func TestContactPostgres_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContactPostgres(db)
	ctx := context.Background()

	msg := &model.ContactMessage{
		Name:      "Jean Dupont",
		Email:     "jean@example.com",
		Subject:   model.SubjectTechnicalIssue,
		Body:      "Le PDF ne passe pas.",
		Status:    model.ContactNew,
		SourceIP:  "203.0.113.9",
		UserAgent: "curl/8.0",
	}

	mock.ExpectQuery("INSERT INTO contact_messages").
		WithArgs(msg.Name, msg.Email, msg.Subject, msg.Body, msg.Status, msg.SourceIP, msg.UserAgent).
		WillReturnRows(contactRow(42))

	result, err := repo.Insert(ctx, msg)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(42), result.ID)
	assert.Equal(t, model.ContactNew, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactPostgres_CountRecentByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContactPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs("jean@example.com", "5m0s").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountRecentByEmail(ctx, "jean@example.com", 5*time.Minute)

	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestContactPostgres_Recent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContactPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM contact_messages ORDER BY").
		WithArgs(10).
		WillReturnRows(contactRow(7))

	items, err := repo.Recent(ctx, 10)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
}

func TestContactPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContactPostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE contact_messages").
			WithArgs(int64(7), model.ContactResolved, true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 7, model.ContactResolved, true)
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectExec("UPDATE contact_messages").
			WithArgs(int64(99), model.ContactResolved, false).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 99, model.ContactResolved, false)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestContactPostgres_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContactPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs("pdf", "technical_issue", "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT (.+) FROM contact_messages").
		WithArgs("pdf", "technical_issue", "", 20, 0).
		WillReturnRows(contactRow(7))

	res, err := repo.Search(ctx, repository.ContactSearchQuery{
		Term:    "pdf",
		Subject: model.SubjectTechnicalIssue,
		Page:    repository.PageQuery{Limit: 20, Offset: 0},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestContactPostgres_Analytics(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContactPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	mock.ExpectQuery("SELECT subject, COUNT\\(\\*\\)").
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows([]string{"subject", "count"}).
			AddRow("technical_issue", 3).
			AddRow("other", 2))

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\)").
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("new", 4).
			AddRow("resolved", 1))

	res, err := repo.Analytics(ctx, 30)

	assert.NoError(t, err)
	assert.Equal(t, 5, res.TotalContacts)
	assert.Equal(t, 30, res.PeriodDays)
	assert.Len(t, res.BySubject, 2)
	assert.Len(t, res.ByStatus, 2)
	assert.Equal(t, "technical_issue", res.BySubject[0].Subject)
}

func TestContactPostgres_RecordDailyRollup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContactPostgres(db)
	ctx := context.Background()

	day := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)

	mock.ExpectExec("INSERT INTO contact_analytics").
		WithArgs("2026-08-28", model.SubjectOther, model.ContactNew).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.RecordDailyRollup(ctx, day, model.SubjectOther, model.ContactNew)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
