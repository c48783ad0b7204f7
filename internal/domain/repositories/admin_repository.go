package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"ico-admin.backend/internal/domain/entities"
)

// AdminRepository defines admin data operations
type AdminRepository interface {
	Create(ctx context.Context, admin *entities.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error)
	GetByUsername(ctx context.Context, username string) (*entities.Admin, error)
	// FindSubAdmin matches a restricted admin by id and bound IP address
	FindSubAdmin(ctx context.Context, id uuid.UUID, ipAddress string) (*entities.Admin, error)
	UsernameTaken(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, admin *entities.Admin) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetOTP(ctx context.Context, id uuid.UUID, otp null.Int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.AdminFilter) ([]*entities.Admin, error)
	Count(ctx context.Context, filter entities.AdminFilter) (int64, error)
}

// PermissionRepository defines the permission catalogue operations
type PermissionRepository interface {
	List(ctx context.Context) ([]*entities.Permission, error)
	Ensure(ctx context.Context, permission *entities.Permission) error
}
