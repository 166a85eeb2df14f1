package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"paperscan/internal/model"
	"paperscan/internal/repository"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Insert(ctx context.Context, msg *model.ContactMessage) (*model.ContactMessage, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) CountRecentByEmail(ctx context.Context, email string, window time.Duration) (int, error) {
	args := m.Called(ctx, email, window)
	return args.Int(0), args.Error(1)
}

func (m *MockContactRepository) Recent(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) UpdateStatus(ctx context.Context, id int64, status model.ContactStatus, responseSent bool) error {
	args := m.Called(ctx, id, status, responseSent)
	return args.Error(0)
}

func (m *MockContactRepository) Search(ctx context.Context, q repository.ContactSearchQuery) (*repository.PageResult[model.ContactMessage], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ContactMessage]), args.Error(1)
}

func (m *MockContactRepository) Analytics(ctx context.Context, days int) (*model.ContactAnalytics, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactAnalytics), args.Error(1)
}

func (m *MockContactRepository) RecordDailyRollup(ctx context.Context, day time.Time, subject model.ContactSubject, status model.ContactStatus) error {
	args := m.Called(ctx, day, subject, status)
	return args.Error(0)
}
