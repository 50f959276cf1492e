package service

import (
	"context"
	"fmt"

	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/model"
)

// TokenService issues and verifies access tokens for principals.
// Tokens are stateless: nothing is persisted on issue or checked on verify
// beyond the signature and the embedded expiry.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

func (s *TokenService) Issue(ctx context.Context, principal model.Principal) (string, error) {
	token, err := s.manager.Issue(principal)
	if err != nil {
		s.logger.Error("Token service: failed to issue token",
			"email", principal.Email,
			"error", err.Error())
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Debug("Token service: token issued", "email", principal.Email)

	return token, nil
}

// Verify returns the principal the token was issued for. Failures wrap one of
// model.ErrTokenMissing, model.ErrTokenInvalid or model.ErrTokenExpired.
func (s *TokenService) Verify(ctx context.Context, token string) (model.Principal, error) {
	principal, err := s.manager.Verify(token)
	if err != nil {
		s.logger.Debug("Token service: token rejected", "error", err.Error())
		return model.Principal{}, err
	}
	return principal, nil
}
