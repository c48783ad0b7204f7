package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/domain/repositories"
	"ico-admin.backend/pkg/crypto"
	"ico-admin.backend/pkg/utils"
	"ico-admin.backend/pkg/validation"
)

var subAdminMessages = validation.Messages{
	"fname.required":              msgNameMissingFirst,
	"fname":                       msgInvalidName,
	"lname.required":              msgNameMissingLast,
	"lname":                       msgInvalidName,
	"username.required":           msgUsernameMissing,
	"username":                    msgInvalidUsername,
	"password.required":           msgPasswordMissing,
	"ipAddress.required":          msgIPAddressMissing,
	"permissions":                 msgPermissionMissing,
	"permissions.permission_id":   msgPermissionInvalid,
	"permissions.permission_name": msgPermissionInvalid,
}

// AdminUsecase manages sub-admins and the permission catalogue
type AdminUsecase struct {
	adminRepo      repositories.AdminRepository
	permissionRepo repositories.PermissionRepository
	validator      *validation.Validator
	bcryptCost     int
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	adminRepo repositories.AdminRepository,
	permissionRepo repositories.PermissionRepository,
	validator *validation.Validator,
	bcryptCost int,
) *AdminUsecase {
	return &AdminUsecase{
		adminRepo:      adminRepo,
		permissionRepo: permissionRepo,
		validator:      validator,
		bcryptCost:     bcryptCost,
	}
}

// ListSubAdmins returns a page of restricted admins, newest first
func (u *AdminUsecase) ListSubAdmins(ctx context.Context, params utils.PaginationParams, query string) (*entities.SubAdminList, error) {
	offset, limit := window(params)
	filter := entities.AdminFilter{
		Query:  query,
		RoleID: entities.RoleSubAdmin,
		Offset: offset,
		Limit:  limit,
	}

	admins, err := u.adminRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	count, err := u.adminRepo.Count(ctx, filter)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	views := make([]*entities.SubAdminView, 0, len(admins))
	for _, admin := range admins {
		views = append(views, admin.View())
	}
	return &entities.SubAdminList{FetchAllUser: views, AdminsCount: count}, nil
}

// CreateSubAdmin registers a restricted admin
func (u *AdminUsecase) CreateSubAdmin(ctx context.Context, input *entities.CreateSubAdminInput) (*entities.SubAdminView, error) {
	trimAll(&input.FName, &input.LName, &input.Username, &input.IPAddress)
	if err := validateInput(u.validator, input, subAdminMessages); err != nil {
		return nil, err
	}
	if err := u.ensureUsernameFree(ctx, input.Username, nil); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPasswordWithCost(input.Password, u.bcryptCost)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	admin := &entities.Admin{
		FName:        input.FName,
		LName:        input.LName,
		Username:     input.Username,
		PasswordHash: hash,
		RoleID:       entities.RoleSubAdmin,
		RoleName:     entities.RoleNameSubAdmin,
		Permissions:  input.Permissions,
		IPAddress:    input.IPAddress,
	}
	if err := u.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, usernameExists()
		}
		return nil, domainerrors.InternalError(err)
	}
	return admin.View(), nil
}

// UpdateSubAdmin edits a restricted admin. The password is replaced only when one is supplied.
func (u *AdminUsecase) UpdateSubAdmin(ctx context.Context, id uuid.UUID, input *entities.UpdateSubAdminInput) (*entities.SubAdminView, error) {
	trimAll(&input.FName, &input.LName, &input.Username, &input.IPAddress)
	if err := validateInput(u.validator, input, subAdminMessages); err != nil {
		return nil, err
	}

	admin, err := u.getSubAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.ensureUsernameFree(ctx, input.Username, &id); err != nil {
		return nil, err
	}

	admin.FName = input.FName
	admin.LName = input.LName
	admin.Username = input.Username
	admin.Permissions = input.Permissions
	admin.IPAddress = input.IPAddress
	admin.PasswordHash = ""
	if input.Password != "" {
		hash, err := crypto.HashPasswordWithCost(input.Password, u.bcryptCost)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		admin.PasswordHash = hash
	}

	if err := u.adminRepo.Update(ctx, admin); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			return nil, usernameExists()
		case errors.Is(err, domainerrors.ErrNotFound):
			return nil, domainerrors.NotFound(msgUserNotFound)
		}
		return nil, domainerrors.InternalError(err)
	}
	return admin.View(), nil
}

// DeleteSubAdmin removes a restricted admin account. Full admins are reported as not found.
func (u *AdminUsecase) DeleteSubAdmin(ctx context.Context, id uuid.UUID) error {
	admin, err := u.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgUserAlreadyGone)
		}
		return domainerrors.InternalError(err)
	}
	if !admin.IsSubAdmin() {
		return domainerrors.NotFound(msgUserNotFound)
	}

	if err := u.adminRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgUserAlreadyGone)
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

// GetSubAdmin returns one restricted admin without credentials
func (u *AdminUsecase) GetSubAdmin(ctx context.Context, id uuid.UUID) (*entities.SubAdminView, error) {
	admin, err := u.getSubAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	return admin.View(), nil
}

// GetSubAdminPermissions returns the permissions granted to one restricted admin
func (u *AdminUsecase) GetSubAdminPermissions(ctx context.Context, id uuid.UUID) (*entities.SubAdminPermissions, error) {
	admin, err := u.getSubAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	permissions := admin.Permissions
	if permissions == nil {
		permissions = []entities.AdminPermission{}
	}
	return &entities.SubAdminPermissions{ID: admin.ID, Permissions: permissions}, nil
}

// ListAllPermissions returns the permission catalogue
func (u *AdminUsecase) ListAllPermissions(ctx context.Context) ([]*entities.Permission, error) {
	permissions, err := u.permissionRepo.List(ctx)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return permissions, nil
}

// getSubAdmin loads a restricted admin. Full admins are invisible to the sub-admin endpoints.
func (u *AdminUsecase) getSubAdmin(ctx context.Context, id uuid.UUID) (*entities.Admin, error) {
	admin, err := u.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgUserNotFound)
		}
		return nil, domainerrors.InternalError(err)
	}
	if !admin.IsSubAdmin() {
		return nil, domainerrors.NotFound(msgUserNotFound)
	}
	return admin, nil
}

func (u *AdminUsecase) ensureUsernameFree(ctx context.Context, username string, excludeID *uuid.UUID) error {
	taken, err := u.adminRepo.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if taken {
		return usernameExists()
	}
	return nil
}

func usernameExists() error {
	return domainerrors.Validation(msgUsernameExists, domainerrors.FieldError{Field: "username", Message: msgUsernameExists})
}
