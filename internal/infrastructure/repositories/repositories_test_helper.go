package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ico-admin.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), GormConfig())
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createAdminTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admins (
		id TEXT PRIMARY KEY,
		fname TEXT NOT NULL,
		lname TEXT NOT NULL,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		otp INTEGER,
		role_id INTEGER NOT NULL DEFAULT 3,
		role_name TEXT NOT NULL DEFAULT 'sub-admin',
		permissions TEXT,
		ip_address TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPermissionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE permissions (
		id TEXT PRIMARY KEY,
		permission_id INTEGER NOT NULL UNIQUE,
		permission_name TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createSessionTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE session_tokens (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		role_id INTEGER NOT NULL,
		admin_id TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		fname TEXT,
		mname TEXT,
		lname TEXT,
		dob TEXT,
		fullname TEXT,
		phone TEXT,
		phone_country TEXT,
		email TEXT,
		currentpre TEXT,
		city TEXT,
		location TEXT,
		wallet_address TEXT UNIQUE,
		wallet_type TEXT,
		nonce TEXT,
		bio TEXT,
		profile TEXT,
		nationality TEXT,
		res_address TEXT,
		postal_code TEXT,
		country_of_issue TEXT,
		verified_with TEXT,
		passport_url TEXT,
		user_photo_url TEXT,
		is_verified INTEGER NOT NULL DEFAULT 0,
		kyc_completed BOOLEAN NOT NULL DEFAULT 0,
		kyc_submitted_date DATETIME,
		status TEXT NOT NULL DEFAULT 'Active',
		is_kyc_deleted BOOLEAN NOT NULL DEFAULT 0,
		admin_checked_at DATETIME,
		is_2fa_enabled BOOLEAN NOT NULL DEFAULT 0,
		is_2fa_login_verified BOOLEAN NOT NULL DEFAULT 0,
		google_auth_secret TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		transaction_hash TEXT,
		wallet_address TEXT,
		user_wallet_address TEXT,
		status TEXT,
		source TEXT,
		sale_type TEXT,
		price_currency TEXT,
		token_crypto_amount TEXT,
		price_amount TEXT,
		is_sale BOOLEAN NOT NULL DEFAULT 0,
		is_process BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createSaleTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE sales (
		id TEXT PRIMARY KEY,
		name TEXT,
		total_token TEXT,
		start_sale DATETIME NOT NULL,
		end_sale DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func seedUser(t *testing.T, db *gorm.DB, mutate func(*models.User)) *models.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	m := &models.User{
		ID:            uuid.New(),
		FName:         "John",
		LName:         "Doe",
		Email:         "john@example.com",
		WalletAddress: "0x" + uuid.NewString()[:8],
		Status:        "Active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if mutate != nil {
		mutate(m)
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedTransaction(t *testing.T, db *gorm.DB, mutate func(*models.Transaction)) *models.Transaction {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	m := &models.Transaction{
		ID:                uuid.New(),
		TransactionHash:   "0x" + uuid.NewString(),
		WalletAddress:     "0xwallet",
		UserWalletAddress: "0xBuyer",
		Status:            "paid",
		Source:            "purchase",
		PriceCurrency:     "USDT",
		TokenCryptoAmount: "1",
		PriceAmount:       "1",
		IsSale:            true,
		IsProcess:         true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if mutate != nil {
		mutate(m)
	}
	require.NoError(t, db.Create(m).Error)
	return m
}
