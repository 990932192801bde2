// Token verification for API routes. Login, registration, and token
// issuance are owned by the account service; this API only needs to
// check access tokens and resolve the caller's user ID.

package auth

import (
	"context"
	"errors"

	"github.com/imadgeboyega/gamelink-backend/internal/common/utils"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Service validates access tokens.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
}

// Config holds service configuration
type Config struct {
	JWTSecret string
}

type service struct {
	config *Config
}

// NewService creates a new auth service
func NewService(config *Config) Service {
	return &service{config: config}
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
