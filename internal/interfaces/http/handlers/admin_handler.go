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
	msgSubAdminFetched    = "Get Sub Admin By Id successfully"
	msgSubAdminsFetched   = "Get All Sub Admins Successfully"
	msgPermissionsFetched = "Get All Permissions Successfully"
)

// SubAdminService is the sub-admin and permission logic behind AdminHandler
type SubAdminService interface {
	ListSubAdmins(ctx context.Context, params utils.PaginationParams, query string) (*entities.SubAdminList, error)
	CreateSubAdmin(ctx context.Context, input *entities.CreateSubAdminInput) (*entities.SubAdminView, error)
	UpdateSubAdmin(ctx context.Context, id uuid.UUID, input *entities.UpdateSubAdminInput) (*entities.SubAdminView, error)
	DeleteSubAdmin(ctx context.Context, id uuid.UUID) error
	GetSubAdmin(ctx context.Context, id uuid.UUID) (*entities.SubAdminView, error)
	GetSubAdminPermissions(ctx context.Context, id uuid.UUID) (*entities.SubAdminPermissions, error)
	ListAllPermissions(ctx context.Context) ([]*entities.Permission, error)
}

// AdminHandler handles sub-admin management endpoints
type AdminHandler struct {
	admins SubAdminService
}

func NewAdminHandler(admins SubAdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// ListSubAdmins returns a page of sub-admins
// GET /auth/getAllSubAdmins
func (h *AdminHandler) ListSubAdmins(c *gin.Context) {
	list, err := h.admins.ListSubAdmins(c.Request.Context(), pagination(c), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":      msgSubAdminsFetched,
		"fetchAllUser": list.FetchAllUser,
		"adminsCount":  list.AdminsCount,
	})
}

// CreateSubAdmin creates a sub-admin
// POST /auth/createSubAdmins
func (h *AdminHandler) CreateSubAdmin(c *gin.Context) {
	var input entities.CreateSubAdminInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.admins.CreateSubAdmin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": usecases.MsgSubAdminCreated,
		"user":    view,
	})
}

// UpdateSubAdmin updates a sub-admin
// PUT /auth/updateSubAdmins/:id
func (h *AdminHandler) UpdateSubAdmin(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateSubAdminInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.admins.UpdateSubAdmin(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": usecases.MsgSubAdminUpdated,
		"user":    view,
	})
}

// DeleteSubAdmin removes a sub-admin
// GET /auth/deleteSubAdmin/:id
func (h *AdminHandler) DeleteSubAdmin(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.admins.DeleteSubAdmin(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, usecases.MsgSubAdminDeleted)
}

// GetSubAdmin returns one sub-admin
// GET /auth/getSubAdminById/:id
func (h *AdminHandler) GetSubAdmin(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.admins.GetSubAdmin(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":  msgSubAdminFetched,
		"subAdmin": view,
	})
}

// GetSubAdminPermissions returns the permissions granted to a sub-admin
// GET /auth/getSubAdminPermission/:id
func (h *AdminHandler) GetSubAdminPermissions(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	perms, err := h.admins.GetSubAdminPermissions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":  msgSubAdminFetched,
		"subAdmin": perms,
	})
}

// ListAllPermissions returns the permission catalogue
// GET /auth/getAllPermissions
func (h *AdminHandler) ListAllPermissions(c *gin.Context) {
	perms, err := h.admins.ListAllPermissions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":     msgPermissionsFetched,
		"permissions": perms,
	})
}
