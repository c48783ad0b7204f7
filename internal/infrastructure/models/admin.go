package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
)

// AdminPermission is one element of the admins.permissions JSON array
type AdminPermission struct {
	PermissionID   int    `json:"permission_id"`
	PermissionName string `json:"permission_name"`
}

type Admin struct {
	ID          uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	FName       string                               `gorm:"column:fname;type:varchar(100);not null"`
	LName       string                               `gorm:"column:lname;type:varchar(100);not null"`
	Username    string                               `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password    string                               `gorm:"type:varchar(255);not null"`
	OTP         null.Int                             `gorm:"column:otp"`
	RoleID      int                                  `gorm:"not null;default:3"`
	RoleName    string                               `gorm:"type:varchar(50);not null;default:'sub-admin'"`
	Permissions datatypes.JSONSlice[AdminPermission] `gorm:"type:jsonb"`
	IPAddress   string                               `gorm:"column:ip_address;type:varchar(64)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Admin) TableName() string {
	return "admins"
}

type Permission struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID   int       `gorm:"uniqueIndex;not null"`
	PermissionName string    `gorm:"type:varchar(100);not null"`
	CreatedAt      time.Time
}

func (Permission) TableName() string {
	return "permissions"
}

type SessionToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token     string    `gorm:"type:text;uniqueIndex;not null"`
	RoleID    int       `gorm:"not null"`
	AdminID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (SessionToken) TableName() string {
	return "session_tokens"
}
