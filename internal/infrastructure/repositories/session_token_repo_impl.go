package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ico-admin.backend/internal/domain/entities"
	"ico-admin.backend/internal/infrastructure/models"
	"ico-admin.backend/pkg/utils"
)

// SessionTokenRepository implements admin session storage
type SessionTokenRepository struct {
	db *gorm.DB
}

// NewSessionTokenRepository creates a new session token repository
func NewSessionTokenRepository(db *gorm.DB) *SessionTokenRepository {
	return &SessionTokenRepository{db: db}
}

// Create stores a new session
func (r *SessionTokenRepository) Create(ctx context.Context, token *entities.SessionToken) error {
	if token.ID == uuid.Nil {
		token.ID = utils.GenerateUUIDv7()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	m := &models.SessionToken{
		ID:        token.ID,
		Token:     token.Token,
		RoleID:    token.RoleID,
		AdminID:   token.AdminID,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// Find gets the session for token issued to roleID
func (r *SessionTokenRepository) Find(ctx context.Context, token string, roleID int) (*entities.SessionToken, error) {
	var m models.SessionToken
	if err := GetDB(ctx, r.db).Where("token = ? AND role_id = ?", token, roleID).First(&m).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &entities.SessionToken{
		ID:        m.ID,
		Token:     m.Token,
		RoleID:    m.RoleID,
		AdminID:   m.AdminID,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

// DeleteByToken removes a session. Removing a missing session is not an error.
func (r *SessionTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return GetDB(ctx, r.db).Where("token = ?", token).Delete(&models.SessionToken{}).Error
}

// DeleteExpired purges sessions that expired before now
func (r *SessionTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).Where("expires_at < ?", now).Delete(&models.SessionToken{})
	return result.RowsAffected, result.Error
}
