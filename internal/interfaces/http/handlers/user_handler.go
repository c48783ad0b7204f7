package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ico-admin.backend/internal/domain/entities"
	"ico-admin.backend/internal/interfaces/http/response"
	"ico-admin.backend/internal/usecases"
	"ico-admin.backend/pkg/utils"
)

const (
	msgUsersFound   = "User found successfully"
	msgUsersCounted = "Get Users successfully"
)

// UserService is the user and KYC logic behind UserHandler
type UserService interface {
	ListUsers(ctx context.Context, params utils.PaginationParams, query, statusFilter string) (*entities.UserList, error)
	ListKycUsers(ctx context.Context, params utils.PaginationParams, query, statusFilter string) (*entities.KycUserList, error)
	ApproveKyc(ctx context.Context, id uuid.UUID) error
	RejectKyc(ctx context.Context, id uuid.UUID, reason string) error
	DeleteKycDocuments(ctx context.Context, id uuid.UUID) error
	SuspendAccount(ctx context.Context, id uuid.UUID) error
	ReactivateAccount(ctx context.Context, id uuid.UUID) error
	DisableTwoFactor(ctx context.Context, id uuid.UUID) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	UpdateAccountSettings(ctx context.Context, address string, input *entities.AccountSettingsInput) error
	ViewUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	ViewKyc(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetUsersCount(ctx context.Context) (*entities.UserCounts, error)
	GetUserByAddress(ctx context.Context, address string) (*entities.PublicProfile, error)
}

// UserHandler handles end user and KYC moderation endpoints
type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers returns a page of users with their purchase totals
// GET /users/userList
func (h *UserHandler) ListUsers(c *gin.Context) {
	list, err := h.users.ListUsers(c.Request.Context(), pagination(c), c.Query("query"), c.Query("statusFilter"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":         msgUsersFound,
		"users":           list.Users,
		"totalUsersCount": list.TotalUsersCount,
	})
}

// ListKycUsers returns a page of users that submitted KYC
// GET /users/kycUserList
func (h *UserHandler) ListKycUsers(c *gin.Context) {
	list, err := h.users.ListKycUsers(c.Request.Context(), pagination(c), c.Query("query"), c.Query("statusFilter"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":         msgUsersFound,
		"users":           list.Users,
		"totalUsersCount": list.TotalUsersCount,
	})
}

// moderate runs a state change on the user in the id path parameter
func (h *UserHandler) moderate(c *gin.Context, action func(context.Context, uuid.UUID) error, message string) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := action(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, message)
}

// ApproveKyc GET /users/acceptKyc/:id
func (h *UserHandler) ApproveKyc(c *gin.Context) {
	h.moderate(c, h.users.ApproveKyc, usecases.MsgKycApproved)
}

// RejectKyc POST /users/rejectKyc/:id
func (h *UserHandler) RejectKyc(c *gin.Context) {
	var input entities.RejectKycInput
	if err := bindOptionalJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	h.moderate(c, func(ctx context.Context, id uuid.UUID) error {
		return h.users.RejectKyc(ctx, id, input.Message)
	}, usecases.MsgKycRejected)
}

// DeleteKyc GET /users/deleteKyc/:id
func (h *UserHandler) DeleteKyc(c *gin.Context) {
	h.moderate(c, h.users.DeleteKycDocuments, usecases.MsgKycDeleted)
}

// SuspendUser POST /users/suspendUser/:id
func (h *UserHandler) SuspendUser(c *gin.Context) {
	h.moderate(c, h.users.SuspendAccount, usecases.MsgUserSuspended)
}

// ActivateUser POST /users/activeUser/:id
func (h *UserHandler) ActivateUser(c *gin.Context) {
	h.moderate(c, h.users.ReactivateAccount, usecases.MsgUserActivated)
}

// DisableTwoFactor POST /users/twoFADisableUser/:id
func (h *UserHandler) DisableTwoFactor(c *gin.Context) {
	h.moderate(c, h.users.DisableTwoFactor, usecases.MsgTwoFactorDisabled)
}

// DeleteUser removes a user and every transaction of their wallet
// GET /users/deleteUser/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	h.moderate(c, h.users.DeleteAccount, usecases.MsgUserDeleted)
}

// UpdateAccountSettings edits a user's profile
// PUT /users/updateAccountSettings/:address
func (h *UserHandler) UpdateAccountSettings(c *gin.Context) {
	var input entities.AccountSettingsInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.users.UpdateAccountSettings(c.Request.Context(), c.Param("address"), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, usecases.MsgSettingsUpdated)
}

// ViewUser GET /users/viewUser/:id
func (h *UserHandler) ViewUser(c *gin.Context) {
	h.view(c, h.users.ViewUser)
}

// ViewKyc GET /users/viewKyc/:id
func (h *UserHandler) ViewKyc(c *gin.Context) {
	h.view(c, h.users.ViewKyc)
}

func (h *UserHandler) view(c *gin.Context, load func(context.Context, uuid.UUID) (*entities.User, error)) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := load(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":        msgUsersFound,
		"user":           user,
		"passport_url":   user.PassportURL,
		"user_photo_url": user.UserPhotoURL,
	})
}

// GetUsersCount returns the dashboard user tiles
// GET /users/getUsersCount
func (h *UserHandler) GetUsersCount(c *gin.Context) {
	counts, err := h.users.GetUsersCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":                   msgUsersCounted,
		"totalUser":                 counts.TotalUser,
		"totalKYCUser":              counts.TotalKYCUser,
		"sinceLastWeekUserCount":    counts.SinceLastWeekUserCount,
		"sinceLastWeekKYCUserCount": counts.SinceLastWeekKYCUserCount,
	})
}

// GetUserByAddress returns the public profile of a wallet
// GET /auth/getuser/:address
func (h *UserHandler) GetUserByAddress(c *gin.Context) {
	profile, err := h.users.GetUserByAddress(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"docUrl": profile.DocURL,
		"user":   profile,
	})
}
