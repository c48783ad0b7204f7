package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Admin roles. Any role other than RoleSubAdmin is a full admin.
const (
	RoleAdmin    = 1
	RoleSubAdmin = 3

	RoleNameAdmin    = "admin"
	RoleNameSubAdmin = "sub-admin"
)

// AdminPermission is a permission granted to an admin
type AdminPermission struct {
	PermissionID   int    `json:"permission_id" validate:"gt=0"`
	PermissionName string `json:"permission_name" validate:"required"`
}

// Admin represents a back office operator
type Admin struct {
	ID           uuid.UUID         `json:"id"`
	FName        string            `json:"fname"`
	LName        string            `json:"lname"`
	Username     string            `json:"username"`
	PasswordHash string            `json:"-"`
	OTP          null.Int          `json:"-"`
	RoleID       int               `json:"role_id"`
	RoleName     string            `json:"role_name"`
	Permissions  []AdminPermission `json:"permissions"`
	IPAddress    string            `json:"ipAddress"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// IsSubAdmin reports whether the admin has the restricted role
func (a *Admin) IsSubAdmin() bool {
	return a.RoleID == RoleSubAdmin
}

// SubAdminView is an admin without credentials or role fields
type SubAdminView struct {
	ID          uuid.UUID         `json:"id"`
	FName       string            `json:"fname"`
	LName       string            `json:"lname"`
	Username    string            `json:"username"`
	Permissions []AdminPermission `json:"permissions"`
	IPAddress   string            `json:"ipAddress"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// View strips credentials and role fields
func (a *Admin) View() *SubAdminView {
	return &SubAdminView{
		ID:          a.ID,
		FName:       a.FName,
		LName:       a.LName,
		Username:    a.Username,
		Permissions: a.Permissions,
		IPAddress:   a.IPAddress,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Permission is an entry of the permission catalogue
type Permission struct {
	ID             uuid.UUID `json:"id"`
	PermissionID   int       `json:"permission_id"`
	PermissionName string    `json:"permission_name"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AdminFilter narrows sub-admin listings
type AdminFilter struct {
	Query  string
	RoleID int
	Offset int
	Limit  int
}

// CreateSubAdminInput represents input for creating a sub-admin
type CreateSubAdminInput struct {
	FName       string            `json:"fname" validate:"required,alphanum,max=20"`
	LName       string            `json:"lname" validate:"required,alphanum,max=20"`
	Username    string            `json:"username" validate:"required,adminusername,max=20"`
	Password    string            `json:"password" validate:"required"`
	IPAddress   string            `json:"ipAddress" validate:"required"`
	Permissions []AdminPermission `json:"permissions" validate:"required,min=1,dive"`
}

// UpdateSubAdminInput represents input for updating a sub-admin. An empty password keeps the current one.
type UpdateSubAdminInput struct {
	FName       string            `json:"fname" validate:"required,alphanum,max=20"`
	LName       string            `json:"lname" validate:"required,alphanum,max=20"`
	Username    string            `json:"username" validate:"required,adminusername,max=20"`
	Password    string            `json:"password"`
	IPAddress   string            `json:"ipAddress" validate:"required"`
	Permissions []AdminPermission `json:"permissions" validate:"required,min=1,dive"`
}

// SubAdminList is a page of sub-admins
type SubAdminList struct {
	FetchAllUser []*SubAdminView `json:"fetchAllUser"`
	AdminsCount  int64           `json:"adminsCount"`
}

// SubAdminPermissions lists the permissions granted to one sub-admin
type SubAdminPermissions struct {
	ID          uuid.UUID         `json:"id"`
	Permissions []AdminPermission `json:"permissions"`
}
