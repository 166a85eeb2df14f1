package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"paperscan/internal/repository"
)

// EntitlementService resolves whether an email has active paid access.
type EntitlementService interface {
	// IsPro reports whether the email currently holds an active entitlement.
	// Unknown emails are simply free, not an error.
	IsPro(ctx context.Context, email string) (bool, error)
}

type entitlementService struct {
	repo repository.EntitlementRepository
}

// NewEntitlementService constructs a new EntitlementService.
func NewEntitlementService(repo repository.EntitlementRepository) EntitlementService {
	return &entitlementService{repo: repo}
}

func (s *entitlementService) IsPro(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, nil
	}

	ent, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return ent.IsPro(), nil
}

// normalizeEmail folds the identity key so "Jean@X.fr" and "jean@x.fr" are
// the same buyer.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
