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
)

var entitlementColumns = []string{"email", "tier", "status", "payment_ref", "subscription_ref", "created_at", "updated_at"}

func TestEntitlementPostgres_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewEntitlementPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	ent := &model.Entitlement{
		Email:      "buyer@example.com",
		Tier:       model.TierPro,
		Status:     model.EntitlementActive,
		PaymentRef: "cs_123",
	}

	rows := sqlmock.NewRows(entitlementColumns).
		AddRow(ent.Email, ent.Tier, ent.Status, ent.PaymentRef, "", now, now)

	mock.ExpectQuery("INSERT INTO entitlements").
		WithArgs(ent.Email, ent.Tier, ent.Status, ent.PaymentRef, "").
		WillReturnRows(rows)

	result, err := repo.Upsert(ctx, ent)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, ent.Email, result.Email)
	assert.Equal(t, model.EntitlementActive, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntitlementPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewEntitlementPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(entitlementColumns).
			AddRow("buyer@example.com", "pro", "active", "cs_123", "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM entitlements WHERE email = ?").
			WithArgs("buyer@example.com").
			WillReturnRows(rows)

		ent, err := repo.FindByEmail(ctx, "buyer@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, ent)
		assert.True(t, ent.IsPro())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entitlements WHERE email = ?").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		ent, err := repo.FindByEmail(ctx, "nobody@example.com")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, ent)
	})
}

func TestEntitlementPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewEntitlementPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE entitlements").
		WithArgs("buyer@example.com", model.EntitlementInactive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatus(ctx, "buyer@example.com", model.EntitlementInactive)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingEventPostgres_MarkProcessed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewBillingEventPostgres(db)
	ctx := context.Background()

	t.Run("first delivery", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO billing_events").
			WithArgs("evt_1", "buyer@example.com").
			WillReturnResult(sqlmock.NewResult(0, 1))

		first, err := repo.MarkProcessed(ctx, "evt_1", "buyer@example.com")

		assert.NoError(t, err)
		assert.True(t, first)
	})

	t.Run("duplicate delivery", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO billing_events").
			WithArgs("evt_1", "buyer@example.com").
			WillReturnResult(sqlmock.NewResult(0, 0))

		first, err := repo.MarkProcessed(ctx, "evt_1", "buyer@example.com")

		assert.NoError(t, err)
		assert.False(t, first)
	})
}
