package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/infrastructure/models"
	"ico-admin.backend/pkg/utils"
)

// AdminRepository implements admin data operations
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create creates a new admin
func (r *AdminRepository) Create(ctx context.Context, admin *entities.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = utils.GenerateUUIDv7()
	}
	now := time.Now().UTC()
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now

	m := toAdminModel(admin)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets an admin by ID
func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error) {
	var m models.Admin
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return r.toEntity(&m), nil
}

// GetByUsername gets an admin by username. The match is case-sensitive.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*entities.Admin, error) {
	var m models.Admin
	if err := GetDB(ctx, r.db).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return r.toEntity(&m), nil
}

// FindSubAdmin gets a restricted admin bound to ipAddress
func (r *AdminRepository) FindSubAdmin(ctx context.Context, id uuid.UUID, ipAddress string) (*entities.Admin, error) {
	var m models.Admin
	err := GetDB(ctx, r.db).
		Where("id = ? AND role_id = ? AND ip_address = ?", id, entities.RoleSubAdmin, ipAddress).
		First(&m).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return r.toEntity(&m), nil
}

// UsernameTaken reports whether another admin already uses username
func (r *AdminRepository) UsernameTaken(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error) {
	query := GetDB(ctx, r.db).Model(&models.Admin{}).Where("username = ?", username)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates profile, permissions and bound IP of an admin
func (r *AdminRepository) Update(ctx context.Context, admin *entities.Admin) error {
	admin.UpdatedAt = time.Now().UTC()
	updates := map[string]interface{}{
		"fname":       admin.FName,
		"lname":       admin.LName,
		"username":    admin.Username,
		"permissions": toPermissionSlice(admin.Permissions),
		"ip_address":  admin.IPAddress,
		"updated_at":  admin.UpdatedAt,
	}
	if admin.PasswordHash != "" {
		updates["password"] = admin.PasswordHash
	}

	result := GetDB(ctx, r.db).Model(&models.Admin{}).Where("id = ?", admin.ID).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword stores a new password hash and clears any pending OTP
func (r *AdminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).Model(&models.Admin{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":   passwordHash,
		"otp":        gorm.Expr("NULL"),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetOTP stores or clears the password reset OTP
func (r *AdminRepository) SetOTP(ctx context.Context, id uuid.UUID, otp null.Int) error {
	result := GetDB(ctx, r.db).Model(&models.Admin{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp":        otp,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes an admin
func (r *AdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.Admin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists admins newest first
func (r *AdminRepository) List(ctx context.Context, filter entities.AdminFilter) ([]*entities.Admin, error) {
	var ms []models.Admin
	query := paginate(r.filtered(ctx, filter), filter.Offset, filter.Limit)
	if err := query.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	admins := make([]*entities.Admin, 0, len(ms))
	for i := range ms {
		admins = append(admins, r.toEntity(&ms[i]))
	}
	return admins, nil
}

// Count counts admins matching filter
func (r *AdminRepository) Count(ctx context.Context, filter entities.AdminFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AdminRepository) filtered(ctx context.Context, filter entities.AdminFilter) *gorm.DB {
	query := GetDB(ctx, r.db).Model(&models.Admin{})
	if filter.RoleID != 0 {
		query = query.Where("role_id = ?", filter.RoleID)
	}
	return searchAny(query, filter.Query, "fname", "lname", "fname || ' ' || lname", "username", "ip_address")
}

func (r *AdminRepository) toEntity(m *models.Admin) *entities.Admin {
	permissions := make([]entities.AdminPermission, 0, len(m.Permissions))
	for _, p := range m.Permissions {
		permissions = append(permissions, entities.AdminPermission{
			PermissionID:   p.PermissionID,
			PermissionName: p.PermissionName,
		})
	}
	return &entities.Admin{
		ID:           m.ID,
		FName:        m.FName,
		LName:        m.LName,
		Username:     m.Username,
		PasswordHash: m.Password,
		OTP:          m.OTP,
		RoleID:       m.RoleID,
		RoleName:     m.RoleName,
		Permissions:  permissions,
		IPAddress:    m.IPAddress,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toAdminModel(e *entities.Admin) *models.Admin {
	return &models.Admin{
		ID:          e.ID,
		FName:       e.FName,
		LName:       e.LName,
		Username:    e.Username,
		Password:    e.PasswordHash,
		OTP:         e.OTP,
		RoleID:      e.RoleID,
		RoleName:    e.RoleName,
		Permissions: toPermissionSlice(e.Permissions),
		IPAddress:   e.IPAddress,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toPermissionSlice(in []entities.AdminPermission) datatypes.JSONSlice[models.AdminPermission] {
	out := make(datatypes.JSONSlice[models.AdminPermission], 0, len(in))
	for _, p := range in {
		out = append(out, models.AdminPermission{
			PermissionID:   p.PermissionID,
			PermissionName: p.PermissionName,
		})
	}
	return out
}

// PermissionRepository implements permission catalogue operations
type PermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// List lists the catalogue ordered by permission id
func (r *PermissionRepository) List(ctx context.Context) ([]*entities.Permission, error) {
	var ms []models.Permission
	if err := GetDB(ctx, r.db).Order("permission_id").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Permission, 0, len(ms))
	for _, m := range ms {
		out = append(out, &entities.Permission{
			ID:             m.ID,
			PermissionID:   m.PermissionID,
			PermissionName: m.PermissionName,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out, nil
}

// Ensure inserts a permission unless its permission id is already present.
// An existing id keeps its name since admins embed the id and name pair.
func (r *PermissionRepository) Ensure(ctx context.Context, permission *entities.Permission) error {
	if permission.ID == uuid.Nil {
		permission.ID = utils.GenerateUUIDv7()
	}
	if permission.CreatedAt.IsZero() {
		permission.CreatedAt = time.Now().UTC()
	}
	m := &models.Permission{
		ID:             permission.ID,
		PermissionID:   permission.PermissionID,
		PermissionName: permission.PermissionName,
		CreatedAt:      permission.CreatedAt,
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "permission_id"}},
		DoNothing: true,
	}).Create(m).Error
}
