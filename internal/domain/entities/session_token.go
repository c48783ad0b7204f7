package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SessionToken is a live admin session. A token is valid only while its row exists.
type SessionToken struct {
	ID        uuid.UUID
	Token     string
	RoleID    int
	AdminID   uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// LoginInput represents input for admin login. IPAddress is taken from the ipaddress header.
type LoginInput struct {
	Username  string `json:"userName"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
}

// LoginResult is returned on a successful login
type LoginResult struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
	RoleID int       `json:"roleId"`
}

// AuthContext is the admin identity attached to an authenticated request
type AuthContext struct {
	AdminID  uuid.UUID
	RoleID   int
	Username string
	Access   string
	Token    string
}

// NonceResult is returned when a wallet nonce is issued
type NonceResult struct {
	Message   string `json:"message"`
	TempToken string `json:"tempToken"`
}

// VerifyNonceInput carries a signed nonce message
type VerifyNonceInput struct {
	TempToken string `json:"tempToken" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// ResetPasswordInput represents input for resetting a password with an OTP
type ResetPasswordInput struct {
	Email           string `json:"email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// ChangePasswordInput represents input for changing the logged in admin's password
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// AuthHeaders are the credentials a protected request declares
type AuthHeaders struct {
	Token     string
	RoleID    string
	UserID    string
	IPAddress string
}

// NonceVerification is the outcome of a signed nonce check
type NonceVerification struct {
	Address  string `json:"address"`
	Verified bool   `json:"verified"`
}

// ForgotPasswordInput starts the OTP password reset
type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// VerifyOTPInput checks a mailed one-time passcode. The passcode may be sent as a number or a numeric string.
type VerifyOTPInput struct {
	Email string      `json:"email"`
	OTP   json.Number `json:"otp"`
}
