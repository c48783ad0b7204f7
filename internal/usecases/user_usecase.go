package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/domain/repositories"
	"ico-admin.backend/pkg/logger"
	"ico-admin.backend/pkg/metrics"
	"ico-admin.backend/pkg/utils"
	"ico-admin.backend/pkg/validation"
)

var accountSettingsMessages = validation.Messages{
	"email":        msgInvalidEmail,
	"phone":        msgInvalidPhone,
	"phoneCountry": msgInvalidDialCode,
	"location":     msgInvalidCountry,
	"dob":          msgInvalidDOB,
}

// Presigner turns stored document keys into time limited download URLs
type Presigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// UserUsecase handles end user listings and KYC moderation
type UserUsecase struct {
	userRepo  repositories.UserRepository
	txRepo    repositories.TransactionRepository
	uow       repositories.UnitOfWork
	notifier  Notifier
	presigner Presigner
	validator *validation.Validator
	now       func() time.Time
}

// NewUserUsecase creates a new user usecase. presigner may be nil when object storage is not configured.
func NewUserUsecase(
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	notifier Notifier,
	presigner Presigner,
	validator *validation.Validator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:  userRepo,
		txRepo:    txRepo,
		uow:       uow,
		notifier:  notifier,
		presigner: presigner,
		validator: validator,
		now:       time.Now,
	}
}

// ListUsers returns a page of users with the token volume sold to their wallet
func (u *UserUsecase) ListUsers(ctx context.Context, params utils.PaginationParams, query, statusFilter string) (*entities.UserList, error) {
	offset, limit := window(params)
	filter := entities.UserFilter{Query: query, Status: statusFilter, Offset: offset, Limit: limit}

	users, count, err := u.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	wallets := make([]string, 0, len(users))
	for _, user := range users {
		if user.WalletAddress != "" {
			wallets = append(wallets, user.WalletAddress)
		}
	}
	totals, err := u.txRepo.SumPaidByWallets(ctx, wallets)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	out := make([]*entities.UserWithTotal, 0, len(users))
	for _, user := range users {
		out = append(out, &entities.UserWithTotal{User: user, TotalAmount: totals[user.WalletAddress].Round(2)})
	}
	return &entities.UserList{Users: out, TotalUsersCount: count}, nil
}

// ListKycUsers returns a page of users that submitted KYC. statusFilter is Pending, Approved or Rejected.
func (u *UserUsecase) ListKycUsers(ctx context.Context, params utils.PaginationParams, query, statusFilter string) (*entities.KycUserList, error) {
	offset, limit := window(params)
	filter := entities.UserFilter{Query: query, KYCOnly: true, Offset: offset, Limit: limit}
	if state, ok := entities.KYCStateFromFilter(statusFilter); ok {
		filter.KYCState = &state
	}

	users, count, err := u.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &entities.KycUserList{Users: users, TotalUsersCount: count}, nil
}

// ApproveKyc approves a pending KYC
func (u *UserUsecase) ApproveKyc(ctx context.Context, id uuid.UUID) error {
	if err := u.moderate(ctx, id, entities.KYCApproved); err != nil {
		return err
	}
	metrics.KYCModeration.WithLabelValues("approve").Inc()
	return nil
}

// RejectKyc rejects a pending KYC and tells the user why. The mail is best effort.
func (u *UserUsecase) RejectKyc(ctx context.Context, id uuid.UUID, reason string) error {
	if err := u.moderate(ctx, id, entities.KYCRejected); err != nil {
		return err
	}
	metrics.KYCModeration.WithLabelValues("reject").Inc()

	if reason == "" {
		reason = kycRejectNoReason
	}
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		logger.Warn(ctx, "kyc rejection mail skipped", zap.String("userId", id.String()), zap.Error(err))
		return nil
	}
	if user.Email == "" {
		return nil
	}
	if err := u.notifier.SendKYCRejected(ctx, user.Email, reason); err != nil {
		logger.Warn(ctx, "kyc rejection mail failed", zap.String("userId", id.String()), zap.Error(err))
	}
	return nil
}

// DeleteKycDocuments wipes the submitted KYC documents of a user
func (u *UserUsecase) DeleteKycDocuments(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.ClearKYC(ctx, id); err != nil {
		return mapUserUpdate(err, msgKycAlreadyDeleted)
	}
	metrics.KYCModeration.WithLabelValues("delete").Inc()
	return nil
}

// SuspendAccount suspends an active account
func (u *UserUsecase) SuspendAccount(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.SetStatus(ctx, id, entities.UserStatusSuspend); err != nil {
		return mapUserUpdate(err, msgAlreadySuspended)
	}
	return nil
}

// ReactivateAccount reactivates a suspended account
func (u *UserUsecase) ReactivateAccount(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.SetStatus(ctx, id, entities.UserStatusActive); err != nil {
		return mapUserUpdate(err, msgAlreadyActive)
	}
	return nil
}

// DisableTwoFactor turns off the authenticator of a user
func (u *UserUsecase) DisableTwoFactor(ctx context.Context, id uuid.UUID) error {
	if err := u.userRepo.DisableTwoFactor(ctx, id); err != nil {
		return mapUserUpdate(err, msgTwoFactorDisabled)
	}
	return nil
}

// DeleteAccount removes a user and every transaction recorded against their wallet
func (u *UserUsecase) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		user, err := u.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user.WalletAddress != "" {
			if _, err := u.txRepo.DeleteByWallet(ctx, user.WalletAddress); err != nil {
				return err
			}
		}
		return u.userRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgUserNotFound)
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

// UpdateAccountSettings edits the profile of the user owning address
func (u *UserUsecase) UpdateAccountSettings(ctx context.Context, address string, input *entities.AccountSettingsInput) error {
	user, err := u.userRepo.GetByWallet(ctx, address)
	if err != nil {
		return mapUserLookup(err)
	}

	trimAll(&input.FName, &input.LName, &input.Email, &input.Phone, &input.City, &input.ResAddress)
	if err := validateInput(u.validator, input, accountSettingsMessages); err != nil {
		return err
	}

	if err := u.userRepo.UpdateSettings(ctx, user.ID, *input); err != nil {
		return mapUserLookup(err)
	}
	return nil
}

// ViewUser returns a user with presigned document links
func (u *UserUsecase) ViewUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserLookup(err)
	}
	if err := u.presignDocuments(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return user, nil
}

// ViewKyc returns the KYC record of a user with presigned document links
func (u *UserUsecase) ViewKyc(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.ViewUser(ctx, id)
}

// GetUsersCount reports user totals and sign-ups since the start of the previous week
func (u *UserUsecase) GetUsersCount(ctx context.Context) (*entities.UserCounts, error) {
	now := u.now().UTC()
	since := startOfPreviousISOWeek(now)

	var counts entities.UserCounts
	var err error
	if counts.TotalUser, err = u.userRepo.Count(ctx, entities.UserFilter{}); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if counts.TotalKYCUser, err = u.userRepo.Count(ctx, entities.UserFilter{KYCOnly: true}); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if counts.SinceLastWeekUserCount, err = u.userRepo.CountCreatedBetween(ctx, since, now, false); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if counts.SinceLastWeekKYCUserCount, err = u.userRepo.CountCreatedBetween(ctx, since, now, true); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &counts, nil
}

// GetUserByAddress returns the public profile of the user owning address
func (u *UserUsecase) GetUserByAddress(ctx context.Context, address string) (*entities.PublicProfile, error) {
	user, err := u.userRepo.GetByWallet(ctx, address)
	if err != nil {
		return nil, mapUserLookup(err)
	}

	profile := &entities.PublicProfile{
		FName:   user.FName,
		LName:   user.LName,
		Bio:     user.Bio,
		Profile: user.Profile,
	}
	if profile.FName == "" {
		profile.FName = defaultPublicFName
	}
	if profile.LName == "" {
		profile.LName = defaultPublicLName
	}
	if user.Profile != "" && u.presigner != nil {
		url, err := u.presigner.PresignGet(ctx, user.Profile)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		profile.DocURL = url
	}
	return profile, nil
}

func (u *UserUsecase) list(ctx context.Context, filter entities.UserFilter) ([]*entities.User, int64, error) {
	users, err := u.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	count, err := u.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, domainerrors.InternalError(err)
	}
	return users, count, nil
}

// moderate moves a pending KYC to state and explains why it could not
func (u *UserUsecase) moderate(ctx context.Context, id uuid.UUID, state entities.KYCState) error {
	err := u.userRepo.SetKYCState(ctx, id, state, u.now().UTC())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(msgKycNotFound)
	case !errors.Is(err, domainerrors.ErrConflict):
		return domainerrors.InternalError(err)
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound(msgKycNotFound)
		}
		return domainerrors.InternalError(err)
	}
	if user.IsVerified == entities.KYCRejected {
		return domainerrors.Conflict(msgKycAlreadyRejected)
	}
	return domainerrors.Conflict(msgKycAlreadyApproved)
}

func (u *UserUsecase) presignDocuments(ctx context.Context, user *entities.User) error {
	if u.presigner == nil {
		return nil
	}
	passport, err := u.presigner.PresignGet(ctx, user.PassportURL)
	if err != nil {
		return err
	}
	photo, err := u.presigner.PresignGet(ctx, user.UserPhotoURL)
	if err != nil {
		return err
	}
	user.PassportURL = passport
	user.UserPhotoURL = photo
	return nil
}

func mapUserLookup(err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(msgUserNotFound)
	}
	return domainerrors.InternalError(err)
}

// mapUserUpdate maps a conditional user update failure. A lost guard becomes Conflict(conflictMsg).
func mapUserUpdate(err error, conflictMsg string) error {
	if errors.Is(err, domainerrors.ErrConflict) {
		return domainerrors.Conflict(conflictMsg)
	}
	return mapUserLookup(err)
}
