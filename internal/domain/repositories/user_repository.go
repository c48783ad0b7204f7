package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ico-admin.backend/internal/domain/entities"
)

// UserRepository defines end user and KYC data operations.
// Moderation methods are conditional updates and return ErrConflict when the guard does not hold.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByWallet(ctx context.Context, address string) (*entities.User, error)
	List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error)
	Count(ctx context.Context, filter entities.UserFilter) (int64, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time, kycOnly bool) (int64, error)

	SetKYCState(ctx context.Context, id uuid.UUID, state entities.KYCState, checkedAt time.Time) error
	ClearKYC(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	DisableTwoFactor(ctx context.Context, id uuid.UUID) error
	UpdateSettings(ctx context.Context, id uuid.UUID, input entities.AccountSettingsInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}
