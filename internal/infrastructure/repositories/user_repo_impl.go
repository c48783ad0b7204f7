package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/infrastructure/models"
)

var userSearchColumns = []string{"wallet_address", "fname", "lname", "fname || ' ' || lname", "email", "phone", "city"}

// UserRepository implements end user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return r.toEntity(&m), nil
}

// GetByWallet gets a user by wallet address, ignoring case
func (r *UserRepository) GetByWallet(ctx context.Context, address string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("LOWER(wallet_address) = LOWER(?)", address).First(&m).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return r.toEntity(&m), nil
}

// List lists users newest first
func (r *UserRepository) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	var ms []models.User
	query := paginate(r.filtered(ctx, filter), filter.Offset, filter.Limit)
	if err := query.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, r.toEntity(&ms[i]))
	}
	return users, nil
}

// Count counts users matching filter
func (r *UserRepository) Count(ctx context.Context, filter entities.UserFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCreatedBetween counts users created in [start, end)
func (r *UserRepository) CountCreatedBetween(ctx context.Context, start, end time.Time, kycOnly bool) (int64, error) {
	query := GetDB(ctx, r.db).Model(&models.User{}).Where("created_at >= ? AND created_at < ?", start, end)
	if kycOnly {
		query = query.Where("kyc_completed = ?", true)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SetKYCState moves a pending, non-deleted KYC to state
func (r *UserRepository) SetKYCState(ctx context.Context, id uuid.UUID, state entities.KYCState, checkedAt time.Time) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND is_verified = ? AND is_kyc_deleted = ?", id, entities.KYCPending, false).
		Updates(map[string]interface{}{
			"is_verified":      int(state),
			"admin_checked_at": checkedAt,
			"updated_at":       checkedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id, func(m *models.User) bool { return m.IsKYCDeleted })
	}
	return nil
}

// ClearKYC wipes submitted KYC documents once
func (r *UserRepository) ClearKYC(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND is_kyc_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"mname":            "",
			"res_address":      "",
			"postal_code":      "",
			"city":             "",
			"country_of_issue": "",
			"verified_with":    "",
			"passport_url":     "",
			"user_photo_url":   "",
			"is_verified":      int(entities.KYCPending),
			"kyc_completed":    false,
			"is_kyc_deleted":   true,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id, nil)
	}
	return nil
}

// SetStatus changes the account status when it differs from status
func (r *UserRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND status <> ?", id, status).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id, nil)
	}
	return nil
}

// DisableTwoFactor turns off an enabled authenticator
func (r *UserRepository) DisableTwoFactor(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND is_2fa_enabled = ?", id, true).
		Updates(map[string]interface{}{
			"is_2fa_enabled":        false,
			"is_2fa_login_verified": true,
			"google_auth_secret":    "",
			"updated_at":            time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id, nil)
	}
	return nil
}

// UpdateSettings writes the non-empty profile fields of input
func (r *UserRepository) UpdateSettings(ctx context.Context, id uuid.UUID, input entities.AccountSettingsInput) error {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	set := func(column, value string) {
		if value != "" {
			updates[column] = value
		}
	}
	set("fname", input.FName)
	set("lname", input.LName)
	set("email", input.Email)
	set("phone", input.Phone)
	set("phone_country", input.PhoneCountry)
	set("city", input.City)
	set("location", input.Location)
	set("res_address", input.ResAddress)
	set("dob", input.DOB)

	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) filtered(ctx context.Context, filter entities.UserFilter) *gorm.DB {
	query := GetDB(ctx, r.db).Model(&models.User{})
	columns := userSearchColumns
	if filter.KYCOnly {
		query = query.Where("kyc_completed = ?", true)
		columns = append(append([]string{}, userSearchColumns...), "verified_with")
	}
	if filter.KYCState != nil {
		query = query.Where("is_verified = ?", int(*filter.KYCState))
	}
	if status := strings.TrimSpace(filter.Status); status != "" && status != entities.StatusFilterAll {
		query = query.Where("status = ?", status)
	}
	return searchAny(query, filter.Query, columns...)
}

// classifyMiss explains a conditional update that matched no row.
// A missing row, or one for which gone reports true, is ErrNotFound; anything else lost the race.
func (r *UserRepository) classifyMiss(ctx context.Context, id uuid.UUID, gone func(*models.User) bool) error {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	if gone != nil && gone(&m) {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrConflict
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                 m.ID,
		FName:              m.FName,
		MName:              m.MName,
		LName:              m.LName,
		DOB:                m.DOB,
		FullName:           m.FullName,
		Phone:              m.Phone,
		PhoneCountry:       m.PhoneCountry,
		Email:              m.Email,
		CurrentPre:         m.CurrentPre,
		City:               m.City,
		Location:           m.Location,
		WalletAddress:      m.WalletAddress,
		WalletType:         m.WalletType,
		Nonce:              m.Nonce,
		Bio:                m.Bio,
		Profile:            m.Profile,
		Nationality:        m.Nationality,
		ResAddress:         m.ResAddress,
		PostalCode:         m.PostalCode,
		CountryOfIssue:     m.CountryOfIssue,
		VerifiedWith:       m.VerifiedWith,
		PassportURL:        m.PassportURL,
		UserPhotoURL:       m.UserPhotoURL,
		IsVerified:         entities.KYCState(m.IsVerified),
		KYCCompleted:       m.KYCCompleted,
		KYCSubmittedDate:   m.KYCSubmittedDate,
		Status:             m.Status,
		IsKYCDeleted:       m.IsKYCDeleted,
		AdminCheckedAt:     m.AdminCheckedAt,
		Is2FAEnabled:       m.Is2FAEnabled,
		Is2FALoginVerified: m.Is2FALoginVerified,
		GoogleAuthSecret:   m.GoogleAuthSecret,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
