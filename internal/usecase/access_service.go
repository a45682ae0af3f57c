package usecase

import (
	"context"

	"go.uber.org/zap"

	domainErrors "github.com/flexdb/flexdb-server/internal/domain/errors"
	"github.com/flexdb/flexdb-server/internal/domain/repository"
)

// AccessService is the gate in front of every mutating operation. It checks
// an already-verified caller identity against the allow-list; it issues no
// sessions or tokens itself. The configured administrator email is always
// implicitly allowed and cannot be removed from the list.
type AccessService struct {
	adminEmail string
	emails     repository.AllowedEmailRepository
	logger     *zap.Logger
}

// NewAccessService creates a new access service.
func NewAccessService(
	adminEmail string,
	emails repository.AllowedEmailRepository,
	logger *zap.Logger,
) *AccessService {
	return &AccessService{
		adminEmail: adminEmail,
		emails:     emails,
		logger:     logger,
	}
}

// Authorize allows callers on the allow-list or the administrator.
func (s *AccessService) Authorize(ctx context.Context, email string) error {
	if email == "" {
		return domainErrors.ErrUnauthorized
	}
	if email == s.adminEmail {
		return nil
	}

	allowed, err := s.emails.Exists(ctx, email)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.Warn("Access denied", zap.String("email", email))
		return domainErrors.ErrUnauthorized
	}

	return nil
}

// AuthorizeAdmin allows only the administrator, regardless of the allow-list.
func (s *AccessService) AuthorizeAdmin(ctx context.Context, email string) error {
	if email == "" || email != s.adminEmail {
		s.logger.Warn("Admin access denied", zap.String("email", email))
		return domainErrors.ErrUnauthorized
	}
	return nil
}

// ListEmails returns the stored allow-list.
func (s *AccessService) ListEmails(ctx context.Context) ([]string, error) {
	return s.emails.List(ctx)
}

// AddEmail puts an email on the allow-list if absent and returns the
// updated list.
func (s *AccessService) AddEmail(ctx context.Context, email string) ([]string, error) {
	exists, err := s.emails.Exists(ctx, email)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s.emails.Add(ctx, email); err != nil {
			return nil, err
		}
		s.logger.Info("Email added to allow-list", zap.String("email", email))
	}

	return s.emails.List(ctx)
}

// RemoveEmail drops an email from the allow-list, unless it is the
// administrator's, and returns the updated list.
func (s *AccessService) RemoveEmail(ctx context.Context, email string) ([]string, error) {
	if email != s.adminEmail {
		if err := s.emails.Remove(ctx, email); err != nil {
			return nil, err
		}
		s.logger.Info("Email removed from allow-list", zap.String("email", email))
	}

	return s.emails.List(ctx)
}
