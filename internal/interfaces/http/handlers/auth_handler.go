package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/interfaces/http/middleware"
	"ico-admin.backend/internal/interfaces/http/response"
	"ico-admin.backend/internal/usecases"
)

// AuthService is the credential and session logic behind AuthHandler
type AuthService interface {
	Login(ctx context.Context, input *entities.LoginInput) (*entities.LoginResult, error)
	Logout(ctx context.Context, token string) error
	IssueNonce(ctx context.Context, address string) (*entities.NonceResult, error)
	VerifyNonce(ctx context.Context, input *entities.VerifyNonceInput) (*entities.NonceVerification, error)
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) error
	ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error
	ChangePassword(ctx context.Context, adminID uuid.UUID, input *entities.ChangePasswordInput) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Nonce issues a message for a wallet to sign
// GET /auth/nonce/:addressId
func (h *AuthHandler) Nonce(c *gin.Context) {
	result, err := h.auth.IssueNonce(c.Request.Context(), c.Param("addressId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// VerifyNonce checks a signed nonce message
// POST /auth/verifyNonce
func (h *AuthHandler) VerifyNonce(c *gin.Context) {
	var input entities.VerifyNonceInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.auth.VerifyNonce(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Login handles admin login
// POST /auth/adminlogin
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}
	input.IPAddress = c.GetHeader(middleware.IPAddressHeader)

	result, err := h.auth.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": usecases.MsgLoggedIn,
		"token":   result.Token,
		"userId":  result.UserID,
		"roleId":  result.RoleID,
	})
}

// Logout closes the caller's session
// POST /auth/adminlogout
func (h *AuthHandler) Logout(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	if err := h.auth.Logout(c.Request.Context(), authCtx.Token); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, usecases.MsgLoggedOut)
}

// ForgotPassword mails a reset passcode
// POST /auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.auth.RequestOTP(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, usecases.MsgOTPSent)
}

// CheckOTP verifies a reset passcode
// POST /auth/checkOTP
func (h *AuthHandler) CheckOTP(c *gin.Context) {
	var input entities.VerifyOTPInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.auth.VerifyOTP(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, usecases.MsgOTPVerified)
}

// ResetPassword sets a new password after a passcode was issued
// POST /auth/resetPassword
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, usecases.MsgPasswordReset)
}

// ChangePassword replaces the logged in admin's password
// POST /users/changePassword
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.ChangePasswordInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), adminID, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, usecases.MsgPasswordChanged)
}
