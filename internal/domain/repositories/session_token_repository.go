package repositories

import (
	"context"
	"time"

	"ico-admin.backend/internal/domain/entities"
)

// SessionTokenRepository defines admin session storage
type SessionTokenRepository interface {
	Create(ctx context.Context, token *entities.SessionToken) error
	// Find returns the session for token issued to roleID
	Find(ctx context.Context, token string, roleID int) (*entities.SessionToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
