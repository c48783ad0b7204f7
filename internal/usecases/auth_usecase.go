package usecases

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/domain/repositories"
	"ico-admin.backend/pkg/crypto"
	"ico-admin.backend/pkg/jwt"
	"ico-admin.backend/pkg/logger"
	redispkg "ico-admin.backend/pkg/redis"
	"ico-admin.backend/pkg/validation"
	"ico-admin.backend/pkg/wallet"
)

var (
	resetPasswordMessages = validation.Messages{
		"password.required":        msgPasswordMissing,
		"confirmPassword.required": msgConfirmMissing,
	}
	changePasswordMessages = validation.Messages{
		"oldPassword.required": msgOldPasswordMissing,
		"newPassword.required": msgNewPasswordMissing,
	}
	verifyNonceMessages = validation.Messages{
		"tempToken.required": msgNonceTokenMissing,
		"signature.required": msgSignatureMissing,
	}
)

// SessionCache keeps session records in front of the session table
type SessionCache interface {
	Put(ctx context.Context, token string, data *redispkg.CachedSession) error
	Get(ctx context.Context, token string) (*redispkg.CachedSession, error)
	Delete(ctx context.Context, token string) error
}

// Notifier delivers transactional e-mail
type Notifier interface {
	SendForgotPassword(ctx context.Context, to string, otp int) error
	SendKYCRejected(ctx context.Context, to, reason string) error
}

// AuthUsecase handles admin authentication business logic
type AuthUsecase struct {
	adminRepo   repositories.AdminRepository
	sessionRepo repositories.SessionTokenRepository
	jwtService  *jwt.JWTService
	cache       SessionCache
	notifier    Notifier
	validator   *validation.Validator
	bcryptCost  int
	now         func() time.Time
}

// NewAuthUsecase creates a new auth usecase. cache may be nil when Redis is disabled.
func NewAuthUsecase(
	adminRepo repositories.AdminRepository,
	sessionRepo repositories.SessionTokenRepository,
	jwtService *jwt.JWTService,
	cache SessionCache,
	notifier Notifier,
	validator *validation.Validator,
	bcryptCost int,
) *AuthUsecase {
	return &AuthUsecase{
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		cache:       cache,
		notifier:    notifier,
		validator:   validator,
		bcryptCost:  bcryptCost,
		now:         time.Now,
	}
}

// Login checks admin credentials and opens a session
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.LoginResult, error) {
	admin, err := u.adminRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, domainerrors.InternalError(err)
	}

	if !crypto.CheckPassword(input.Password, admin.PasswordHash) {
		return nil, domainerrors.Unauthorized(msgInvalidCredentials)
	}
	if admin.IsSubAdmin() && input.IPAddress != admin.IPAddress {
		return nil, domainerrors.Unauthorized(msgNotAuthorizedPage)
	}

	token, expiresAt, err := u.jwtService.GenerateAdminToken(admin.ID.String(), admin.Username, admin.RoleName)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	session := &entities.SessionToken{
		Token:     token,
		RoleID:    admin.RoleID,
		AdminID:   admin.ID,
		ExpiresAt: expiresAt,
	}
	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	u.cacheSession(ctx, session)

	return &entities.LoginResult{
		Token:  token,
		UserID: admin.ID,
		RoleID: admin.RoleID,
	}, nil
}

// Logout closes a session. Closing an unknown session succeeds.
func (u *AuthUsecase) Logout(ctx context.Context, token string) error {
	if err := u.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return domainerrors.InternalError(err)
	}
	if u.cache != nil {
		if err := u.cache.Delete(ctx, token); err != nil {
			logger.Warn(ctx, "session cache delete failed", zap.Error(err))
		}
	}
	return nil
}

// Authenticate resolves the admin behind a protected request.
// skipSession bypasses the session store lookup for routes that accept any signed token.
func (u *AuthUsecase) Authenticate(ctx context.Context, headers entities.AuthHeaders, skipSession bool) (*entities.AuthContext, error) {
	rawRole := strings.TrimSpace(headers.RoleID)
	if rawRole == strconv.Itoa(entities.RoleSubAdmin) && headers.IPAddress == "" {
		return nil, domainerrors.Unauthorized(msgRoleIPDenied)
	}
	if headers.Token == "" || rawRole == "" {
		return nil, domainerrors.Unauthorized(msgTokenOrRoleMissing)
	}
	roleID, err := strconv.Atoi(rawRole)
	if err != nil {
		return nil, domainerrors.Unauthorized(msgTokenNotValid)
	}

	if !skipSession {
		ok, err := u.sessionExists(ctx, headers.Token, roleID)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		if !ok {
			return nil, domainerrors.Unauthorized(msgTokenNotValid)
		}
	}

	if roleID == entities.RoleSubAdmin {
		adminID, err := uuid.Parse(headers.UserID)
		if err != nil {
			return nil, domainerrors.Unauthorized(msgTokenNotValid)
		}
		if _, err := u.adminRepo.FindSubAdmin(ctx, adminID, headers.IPAddress); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.Unauthorized(msgTokenNotValid)
			}
			return nil, domainerrors.InternalError(err)
		}
	}

	claims, err := u.jwtService.ValidateAdminToken(headers.Token)
	if err != nil {
		return nil, domainerrors.Unauthorized(msgTokenNotValid)
	}
	adminID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized(msgTokenNotValid)
	}

	return &entities.AuthContext{
		AdminID:  adminID,
		RoleID:   roleID,
		Username: claims.Username,
		Access:   claims.Access,
		Token:    headers.Token,
	}, nil
}

// IssueNonce returns a message for a wallet to sign together with the token that binds it
func (u *AuthUsecase) IssueNonce(ctx context.Context, address string) (*entities.NonceResult, error) {
	if _, err := wallet.NormalizeAddress(address); err != nil {
		return nil, domainerrors.Validation(msgInvalidWallet, domainerrors.FieldError{Field: "addressId", Message: msgInvalidWallet})
	}

	nonce := u.now().UnixMilli()
	tempToken, err := u.jwtService.GenerateNonceToken(nonce, address)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.NonceResult{
		Message:   wallet.NonceMessage(address, nonce),
		TempToken: tempToken,
	}, nil
}

// VerifyNonce checks that the signature over an issued nonce message came from its wallet
func (u *AuthUsecase) VerifyNonce(ctx context.Context, input *entities.VerifyNonceInput) (*entities.NonceVerification, error) {
	if err := validateInput(u.validator, input, verifyNonceMessages); err != nil {
		return nil, err
	}
	claims, err := u.jwtService.ValidateNonceToken(input.TempToken)
	if err != nil {
		return nil, domainerrors.Unauthorized(msgTokenNotValid)
	}

	ok, err := wallet.VerifySignature(claims.Address, wallet.NonceMessage(claims.Address, claims.Nonce), input.Signature)
	if err != nil || !ok {
		return nil, domainerrors.Unauthorized(msgInvalidSignature)
	}
	return &entities.NonceVerification{Address: claims.Address, Verified: true}, nil
}

// RequestOTP mails a password reset passcode to the admin whose username is email
func (u *AuthUsecase) RequestOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validation.IsMailAddress(email) {
		return domainerrors.Validation(msgInvalidEmail, domainerrors.FieldError{Field: "email", Message: msgInvalidEmail})
	}

	admin, err := u.adminRepo.GetByUsername(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgEmailNotExist)
		}
		return domainerrors.InternalError(err)
	}

	otp, err := crypto.GenerateOTP()
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.adminRepo.SetOTP(ctx, admin.ID, null.IntFrom(otp)); err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.notifier.SendForgotPassword(ctx, email, otp); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

// VerifyOTP checks a mailed passcode
func (u *AuthUsecase) VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) error {
	otp, err := strconv.Atoi(input.OTP.String())
	if err != nil {
		return domainerrors.BadRequest(msgSomethingWentWrong)
	}

	admin, err := u.adminRepo.GetByUsername(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest(msgSomethingWentWrong)
		}
		return domainerrors.InternalError(err)
	}
	if !admin.OTP.Valid || admin.OTP.Int != otp {
		return domainerrors.BadRequest(msgSomethingWentWrong)
	}
	return nil
}

// ResetPassword sets a new password once a passcode has been issued, and clears the passcode
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	if err := validateInput(u.validator, input, resetPasswordMessages); err != nil {
		return err
	}
	if input.Password != input.ConfirmPassword {
		return domainerrors.Validation(msgPasswordMismatch, domainerrors.FieldError{Field: "confirmPassword", Message: msgPasswordMismatch})
	}

	admin, err := u.adminRepo.GetByUsername(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgUserNotFound)
		}
		return domainerrors.InternalError(err)
	}
	if !admin.OTP.Valid {
		return domainerrors.BadRequest(msgTokenExpired)
	}

	hash, err := crypto.HashPasswordWithCost(input.Password, u.bcryptCost)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.adminRepo.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

// ChangePassword replaces the password of a logged in admin
func (u *AuthUsecase) ChangePassword(ctx context.Context, adminID uuid.UUID, input *entities.ChangePasswordInput) error {
	if err := validateInput(u.validator, input, changePasswordMessages); err != nil {
		return err
	}
	admin, err := u.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgUserNotFound)
		}
		return domainerrors.InternalError(err)
	}
	if !crypto.CheckPassword(input.OldPassword, admin.PasswordHash) {
		return domainerrors.BadRequest(msgOldPasswordIncorrect)
	}

	hash, err := crypto.HashPasswordWithCost(input.NewPassword, u.bcryptCost)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.adminRepo.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

func (u *AuthUsecase) sessionExists(ctx context.Context, token string, roleID int) (bool, error) {
	if u.cache != nil {
		cached, err := u.cache.Get(ctx, token)
		switch {
		case err == nil:
			if cached.RoleID == roleID && u.now().Before(cached.ExpiresAt) {
				return true, nil
			}
		case !redispkg.IsMiss(err):
			logger.Warn(ctx, "session cache read failed", zap.Error(err))
		}
	}

	session, err := u.sessionRepo.Find(ctx, token, roleID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	u.cacheSession(ctx, session)
	return true, nil
}

func (u *AuthUsecase) cacheSession(ctx context.Context, session *entities.SessionToken) {
	if u.cache == nil {
		return
	}
	err := u.cache.Put(ctx, session.Token, &redispkg.CachedSession{
		AdminID:   session.AdminID.String(),
		RoleID:    session.RoleID,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		logger.Warn(ctx, "session cache write failed", zap.Error(err))
	}
}
