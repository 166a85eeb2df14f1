package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paperscan/internal/model"
	"paperscan/internal/service"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) AnalyzePaper(ctx context.Context, req service.PaperRequest) (*model.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisService) AnalyzeURL(ctx context.Context, req service.URLRequest) (*model.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisService) AnalyzeBatch(ctx context.Context, req service.BatchRequest) (*model.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResult), args.Error(1)
}

type MockEntitlementService struct {
	mock.Mock
}

func (m *MockEntitlementService) IsPro(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) ProcessWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	args := m.Called(ctx, payload, sigHeader)
	return args.Error(0)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, req service.ContactRequest) (*service.ContactReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ContactReceipt), args.Error(1)
}

func (m *MockContactService) Analytics(ctx context.Context, days int) (*model.ContactAnalytics, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactAnalytics), args.Error(1)
}

func (m *MockContactService) Recent(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactMessage), args.Error(1)
}

func (m *MockContactService) UpdateStatus(ctx context.Context, id int64, status model.ContactStatus, responseSent bool) error {
	args := m.Called(ctx, id, status, responseSent)
	return args.Error(0)
}

func (m *MockContactService) Search(ctx context.Context, term string, subject model.ContactSubject, status model.ContactStatus, limit, offset int) (*service.ContactListResult, error) {
	args := m.Called(ctx, term, subject, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ContactListResult), args.Error(1)
}
