package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"

	"ico-admin.backend/internal/domain/entities"
	redispkg "ico-admin.backend/pkg/redis"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *entities.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetByUsername(ctx context.Context, username string) (*entities.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindSubAdmin(ctx context.Context, id uuid.UUID, ipAddress string) (*entities.Admin, error) {
	args := m.Called(ctx, id, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *MockAdminRepository) UsernameTaken(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepository) Update(ctx context.Context, admin *entities.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockAdminRepository) SetOTP(ctx context.Context, id uuid.UUID, otp null.Int) error {
	args := m.Called(ctx, id, otp)
	return args.Error(0)
}

func (m *MockAdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminRepository) List(ctx context.Context, filter entities.AdminFilter) ([]*entities.Admin, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Admin), args.Error(1)
}

func (m *MockAdminRepository) Count(ctx context.Context, filter entities.AdminFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Mock PermissionRepository
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) List(ctx context.Context) ([]*entities.Permission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Permission), args.Error(1)
}

func (m *MockPermissionRepository) Ensure(ctx context.Context, permission *entities.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

// Mock SessionTokenRepository
type MockSessionTokenRepository struct {
	mock.Mock
}

func (m *MockSessionTokenRepository) Create(ctx context.Context, token *entities.SessionToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionTokenRepository) Find(ctx context.Context, token string, roleID int) (*entities.SessionToken, error) {
	args := m.Called(ctx, token, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SessionToken), args.Error(1)
}

func (m *MockSessionTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByWallet(ctx context.Context, address string) (*entities.User, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter entities.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountCreatedBetween(ctx context.Context, start, end time.Time, kycOnly bool) (int64, error) {
	args := m.Called(ctx, start, end, kycOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SetKYCState(ctx context.Context, id uuid.UUID, state entities.KYCState, checkedAt time.Time) error {
	args := m.Called(ctx, id, state, checkedAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearKYC(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserRepository) DisableTwoFactor(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSettings(ctx context.Context, id uuid.UUID, input entities.AccountSettingsInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) List(ctx context.Context, filter entities.TransactionFilter) ([]*entities.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter entities.TransactionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) ListByWallet(ctx context.Context, address string) ([]*entities.Transaction, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByHash(ctx context.Context, hash string) (*entities.Transaction, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountPaid(ctx context.Context, scope entities.PaidScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) CountPaidByBucket(ctx context.Context, scope entities.PaidScope, granularity entities.BucketGranularity) ([]entities.BucketCount, error) {
	args := m.Called(ctx, scope, granularity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BucketCount), args.Error(1)
}

func (m *MockTransactionRepository) SumPaid(ctx context.Context, field entities.AmountField, scope entities.PaidScope) (decimal.Decimal, error) {
	args := m.Called(ctx, field, scope)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SumPaidByCurrency(ctx context.Context, field entities.AmountField, scope entities.PaidScope) ([]entities.CurrencyTotal, error) {
	args := m.Called(ctx, field, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CurrencyTotal), args.Error(1)
}

func (m *MockTransactionRepository) SumPaidByWallets(ctx context.Context, wallets []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, wallets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SumOutsideWebsiteByWallet(ctx context.Context, address string) (decimal.Decimal, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) DeleteByWallet(ctx context.Context, address string) (int64, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(int64), args.Error(1)
}

// Mock SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Current(ctx context.Context, now time.Time) (*entities.Sale, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Sale), args.Error(1)
}

func (m *MockSaleRepository) SumTotalToken(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Mock Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendForgotPassword(ctx context.Context, to string, otp int) error {
	args := m.Called(ctx, to, otp)
	return args.Error(0)
}

func (m *MockNotifier) SendKYCRejected(ctx context.Context, to, reason string) error {
	args := m.Called(ctx, to, reason)
	return args.Error(0)
}

// Mock Presigner
type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignGet(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// Mock SessionCache
type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) Put(ctx context.Context, token string, data *redispkg.CachedSession) error {
	args := m.Called(ctx, token, data)
	return args.Error(0)
}

func (m *MockSessionCache) Get(ctx context.Context, token string) (*redispkg.CachedSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redispkg.CachedSession), args.Error(1)
}

func (m *MockSessionCache) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
