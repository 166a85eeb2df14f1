package mocks

import (
	"context"

	"paperscan/internal/mail"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

var _ mail.Mailer = (*MockMailer)(nil)
