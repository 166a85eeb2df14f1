package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperscan/internal/model"
)

type MockEntitlementRepository struct {
	mock.Mock
}

func (m *MockEntitlementRepository) Upsert(ctx context.Context, e *model.Entitlement) (*model.Entitlement, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entitlement), args.Error(1)
}

func (m *MockEntitlementRepository) FindByEmail(ctx context.Context, email string) (*model.Entitlement, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entitlement), args.Error(1)
}

func (m *MockEntitlementRepository) UpdateStatus(ctx context.Context, email string, status model.EntitlementStatus) error {
	args := m.Called(ctx, email, status)
	return args.Error(0)
}

func (m *MockEntitlementRepository) UpdateStatusBySubscription(ctx context.Context, subscriptionRef string, status model.EntitlementStatus) error {
	args := m.Called(ctx, subscriptionRef, status)
	return args.Error(0)
}

type MockBillingEventRepository struct {
	mock.Mock
}

func (m *MockBillingEventRepository) MarkProcessed(ctx context.Context, eventID, email string) (bool, error) {
	args := m.Called(ctx, eventID, email)
	return args.Bool(0), args.Error(1)
}
