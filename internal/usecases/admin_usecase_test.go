package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/usecases"
	"ico-admin.backend/pkg/crypto"
	"ico-admin.backend/pkg/utils"
	"ico-admin.backend/pkg/validation"
)

func newAdminUsecaseForTest() (*usecases.AdminUsecase, *MockAdminRepository, *MockPermissionRepository) {
	adminRepo := new(MockAdminRepository)
	permRepo := new(MockPermissionRepository)
	return usecases.NewAdminUsecase(adminRepo, permRepo, validation.Default(), 4), adminRepo, permRepo
}

func validSubAdminInput() *entities.CreateSubAdminInput {
	return &entities.CreateSubAdminInput{
		FName:       "Jane",
		LName:       "Roe",
		Username:    "jane@mail.com",
		Password:    "secret",
		IPAddress:   "10.0.0.1",
		Permissions: []entities.AdminPermission{{PermissionID: 1, PermissionName: "users"}},
	}
}

func TestAdminUsecase_CreateSubAdmin_Success(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()

	adminRepo.On("UsernameTaken", mock.Anything, "jane@mail.com", (*uuid.UUID)(nil)).Return(false, nil).Once()
	adminRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Admin) bool {
		return a.RoleID == entities.RoleSubAdmin &&
			a.RoleName == entities.RoleNameSubAdmin &&
			crypto.CheckPassword("secret", a.PasswordHash)
	})).Return(nil).Once()

	view, err := uc.CreateSubAdmin(context.Background(), validSubAdminInput())
	require.NoError(t, err)
	assert.Equal(t, "jane@mail.com", view.Username)
	assert.Len(t, view.Permissions, 1)
	adminRepo.AssertExpectations(t)
}

func TestAdminUsecase_CreateSubAdmin_ValidationMessages(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()

	cases := []struct {
		name    string
		mutate  func(in *entities.CreateSubAdminInput)
		message string
	}{
		{"missing first name", func(in *entities.CreateSubAdminInput) { in.FName = "  " }, "First name is missing"},
		{"missing last name", func(in *entities.CreateSubAdminInput) { in.LName = "" }, "Last name is missing"},
		{"missing username", func(in *entities.CreateSubAdminInput) { in.Username = "" }, "Username is missing"},
		{"missing password", func(in *entities.CreateSubAdminInput) { in.Password = "" }, "Password is missing"},
		{"missing ip", func(in *entities.CreateSubAdminInput) { in.IPAddress = "" }, "IP Address is missing"},
		{"name with symbols", func(in *entities.CreateSubAdminInput) { in.FName = "Jane!" }, "Please enter valid name."},
		{"name too long", func(in *entities.CreateSubAdminInput) { in.LName = "abcdefghijklmnopqrstu" }, "Please enter valid name."},
		{"username not an email", func(in *entities.CreateSubAdminInput) { in.Username = "jane" }, "Please enter valid username."},
		{"username too long", func(in *entities.CreateSubAdminInput) { in.Username = "jane.roe.long@mail.com" }, "Please enter valid username."},
		{"no permissions", func(in *entities.CreateSubAdminInput) { in.Permissions = nil }, "Permissions are missing."},
		{"empty permissions", func(in *entities.CreateSubAdminInput) { in.Permissions = []entities.AdminPermission{} }, "Permissions are missing."},
		{"bad permission id", func(in *entities.CreateSubAdminInput) {
			in.Permissions = []entities.AdminPermission{{PermissionID: 0, PermissionName: "users"}}
		}, "Invalid permission data."},
		{"bad permission name", func(in *entities.CreateSubAdminInput) {
			in.Permissions = []entities.AdminPermission{{PermissionID: 2}}
		}, "Invalid permission data."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSubAdminInput()
			tc.mutate(in)
			_, err := uc.CreateSubAdmin(context.Background(), in)
			assertAppError(t, err, 400, tc.message)
		})
	}
	adminRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUsecase_CreateSubAdmin_DuplicateUsername(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()

	adminRepo.On("UsernameTaken", mock.Anything, "jane@mail.com", (*uuid.UUID)(nil)).Return(true, nil).Once()

	_, err := uc.CreateSubAdmin(context.Background(), validSubAdminInput())
	assertAppError(t, err, 400, "Username already exists")
	appErr, _ := domainerrors.AsAppError(err)
	assert.Equal(t, domainerrors.CodeValidation, appErr.Code)
}

func TestAdminUsecase_CreateSubAdmin_DuplicateRace(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()

	adminRepo.On("UsernameTaken", mock.Anything, "jane@mail.com", (*uuid.UUID)(nil)).Return(false, nil).Once()
	adminRepo.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists).Once()

	_, err := uc.CreateSubAdmin(context.Background(), validSubAdminInput())
	assertAppError(t, err, 400, "Username already exists")
}

func TestAdminUsecase_UpdateSubAdmin(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()
	id := uuid.New()
	input := &entities.UpdateSubAdminInput{
		FName:       "Jane",
		LName:       "Doe",
		Username:    "jane@mail.com",
		IPAddress:   "10.0.0.2",
		Permissions: []entities.AdminPermission{{PermissionID: 2, PermissionName: "kyc"}},
	}

	adminRepo.On("GetByID", mock.Anything, id).Return(&entities.Admin{ID: id, PasswordHash: "old-hash", RoleID: entities.RoleSubAdmin}, nil).Once()
	adminRepo.On("UsernameTaken", mock.Anything, "jane@mail.com", &id).Return(false, nil).Once()
	adminRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Admin) bool {
		return a.ID == id && a.PasswordHash == "" && a.LName == "Doe" && a.IPAddress == "10.0.0.2"
	})).Return(nil).Once()

	view, err := uc.UpdateSubAdmin(context.Background(), id, input)
	require.NoError(t, err)
	assert.Equal(t, "Doe", view.LName)
	adminRepo.AssertExpectations(t)
}

func TestAdminUsecase_UpdateSubAdmin_RehashesSuppliedPassword(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()
	id := uuid.New()

	adminRepo.On("GetByID", mock.Anything, id).Return(&entities.Admin{ID: id, RoleID: entities.RoleSubAdmin}, nil).Once()
	adminRepo.On("UsernameTaken", mock.Anything, "jane@mail.com", &id).Return(false, nil).Once()
	adminRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Admin) bool {
		return crypto.CheckPassword("next", a.PasswordHash)
	})).Return(nil).Once()

	_, err := uc.UpdateSubAdmin(context.Background(), id, &entities.UpdateSubAdminInput{
		FName:       "Jane",
		LName:       "Roe",
		Username:    "jane@mail.com",
		Password:    "next",
		IPAddress:   "10.0.0.1",
		Permissions: []entities.AdminPermission{{PermissionID: 1, PermissionName: "users"}},
	})
	require.NoError(t, err)
}

func TestAdminUsecase_UpdateSubAdmin_Errors(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()
	missing := uuid.New()
	taken := uuid.New()
	input := func() *entities.UpdateSubAdminInput {
		return &entities.UpdateSubAdminInput{
			FName:       "Jane",
			LName:       "Roe",
			Username:    "jane@mail.com",
			IPAddress:   "10.0.0.1",
			Permissions: []entities.AdminPermission{{PermissionID: 1, PermissionName: "users"}},
		}
	}

	adminRepo.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err := uc.UpdateSubAdmin(context.Background(), missing, input())
	assertAppError(t, err, 404, "User not found.")

	adminRepo.On("GetByID", mock.Anything, taken).Return(&entities.Admin{ID: taken, RoleID: entities.RoleSubAdmin}, nil).Once()
	adminRepo.On("UsernameTaken", mock.Anything, "jane@mail.com", &taken).Return(true, nil).Once()
	_, err = uc.UpdateSubAdmin(context.Background(), taken, input())
	assertAppError(t, err, 400, "Username already exists")
}

func TestAdminUsecase_DeleteSubAdmin(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()
	id := uuid.New()

	adminRepo.On("GetByID", mock.Anything, id).Return(&entities.Admin{ID: id, RoleID: entities.RoleSubAdmin}, nil).Once()
	adminRepo.On("Delete", mock.Anything, id).Return(nil).Once()
	require.NoError(t, uc.DeleteSubAdmin(context.Background(), id))

	adminRepo.On("GetByID", mock.Anything, id).Return(nil, domainerrors.ErrNotFound).Once()
	err := uc.DeleteSubAdmin(context.Background(), id)
	assertAppError(t, err, 404, "User already Deleted")
	adminRepo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestAdminUsecase_SubAdminEndpointsIgnoreFullAdmins(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()
	ctx := context.Background()
	id := uuid.New()
	adminRepo.On("GetByID", mock.Anything, id).
		Return(&entities.Admin{ID: id, Username: "root@mail.com", RoleID: entities.RoleAdmin}, nil)

	_, err := uc.GetSubAdmin(ctx, id)
	assertAppError(t, err, 404, "User not found.")

	_, err = uc.GetSubAdminPermissions(ctx, id)
	assertAppError(t, err, 404, "User not found.")

	_, err = uc.UpdateSubAdmin(ctx, id, &entities.UpdateSubAdminInput{
		FName:       "Root",
		LName:       "Admin",
		Username:    "root@mail.com",
		IPAddress:   "10.0.0.1",
		Permissions: []entities.AdminPermission{{PermissionID: 1, PermissionName: "users"}},
	})
	assertAppError(t, err, 404, "User not found.")

	err = uc.DeleteSubAdmin(ctx, id)
	assertAppError(t, err, 404, "User not found.")

	adminRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	adminRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	adminRepo.AssertNotCalled(t, "UsernameTaken", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUsecase_ListSubAdmins(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()
	params := utils.GetPaginationParams(2, 5)
	expected := entities.AdminFilter{Query: "jan", RoleID: entities.RoleSubAdmin, Offset: 5, Limit: 5}

	adminRepo.On("List", mock.Anything, expected).Return([]*entities.Admin{
		{ID: uuid.New(), Username: "jane@mail.com", PasswordHash: "hash", RoleID: 3},
	}, nil).Once()
	adminRepo.On("Count", mock.Anything, expected).Return(int64(6), nil).Once()

	list, err := uc.ListSubAdmins(context.Background(), params, "jan")
	require.NoError(t, err)
	assert.Equal(t, int64(6), list.AdminsCount)
	require.Len(t, list.FetchAllUser, 1)
	assert.Equal(t, "jane@mail.com", list.FetchAllUser[0].Username)
}

func TestAdminUsecase_ListSubAdmins_Unpaginated(t *testing.T) {
	uc, adminRepo, _ := newAdminUsecaseForTest()
	expected := entities.AdminFilter{RoleID: entities.RoleSubAdmin}

	adminRepo.On("List", mock.Anything, expected).Return([]*entities.Admin{}, nil).Once()
	adminRepo.On("Count", mock.Anything, expected).Return(int64(0), nil).Once()

	list, err := uc.ListSubAdmins(context.Background(), utils.ParsePaginationParams("", ""), "")
	require.NoError(t, err)
	assert.Empty(t, list.FetchAllUser)
}

func TestAdminUsecase_GetSubAdminAndPermissions(t *testing.T) {
	uc, adminRepo, permRepo := newAdminUsecaseForTest()
	id := uuid.New()
	admin := &entities.Admin{
		ID:          id,
		Username:    "jane@mail.com",
		RoleID:      entities.RoleSubAdmin,
		Permissions: []entities.AdminPermission{{PermissionID: 1, PermissionName: "users"}},
	}
	adminRepo.On("GetByID", mock.Anything, id).Return(admin, nil).Twice()

	view, err := uc.GetSubAdmin(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, view.ID)

	perms, err := uc.GetSubAdminPermissions(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, admin.Permissions, perms.Permissions)

	missing := uuid.New()
	adminRepo.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.GetSubAdminPermissions(context.Background(), missing)
	assertAppError(t, err, 404, "User not found.")

	permRepo.On("List", mock.Anything).Return([]*entities.Permission{{PermissionID: 1, PermissionName: "users"}}, nil).Once()
	all, err := uc.ListAllPermissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
