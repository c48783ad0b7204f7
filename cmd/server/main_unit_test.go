package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ico-admin.backend/internal/config"
	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/infrastructure/models"
	"ico-admin.backend/internal/infrastructure/repositories"
	"ico-admin.backend/internal/infrastructure/storage"
	plog "ico-admin.backend/pkg/logger"
	"ico-admin.backend/pkg/redis"
)

const testSessionKey = "0000000000000000000000000000000000000000000000000000000000000000"

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origNewSessionCache := newSessionCache
	origNewPresigner := newPresigner
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		newSessionCache = origNewSessionCache
		newPresigner = origNewPresigner
		runServer = origRunServer
		redis.SetClient(nil)
	})

	loadDotenv = func(...string) error { return nil }
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "18080",
			Env:            "development",
			RequestTimeout: 30 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "icoadmin",
			SSLMode:  "disable",
		},
		JWT: config.JWTConfig{
			Secret:      "secret",
			Expiry:      24 * time.Hour,
			NonceExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			SessionEncryptionKey: testSessionKey,
			BcryptCost:           4,
		},
		RateLimit: config.RateLimitConfig{
			Requests: 5,
			Window:   5 * time.Second,
			Prefix:   "test:ratelimit",
		},
		Reporting: config.ReportingConfig{RequireSaleFlags: true},
		Jobs:      config.JobsConfig{SessionCleanupInterval: time.Hour},
	}
}

func sqliteDB(name string) func(string) (*gorm.DB, error) {
	return func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), repositories.GormConfig())
	}
}

func withMiniredis(t *testing.T) {
	t.Helper()
	srv := miniredis.RunT(t)
	initRedis = func(string, string) error { return redis.Init("redis://"+srv.Addr(), "") }
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	initRedis = func(string, string) error { return errors.New("redis down") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestRunMainProcess_SessionCacheError(t *testing.T) {
	withMainHooks(t)
	withMiniredis(t)
	loadCfg = baseTestConfig
	openDB = sqliteDB("main_session_err")
	newSessionCache = func(string) (*redis.SessionCache, error) { return nil, errors.New("bad session key") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session cache")
}

func TestRunMainProcess_SessionCacheSkippedWithoutRedis(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	openDB = sqliteDB("main_no_redis")
	newSessionCache = func(string) (*redis.SessionCache, error) {
		t.Fatal("session cache must not be built without redis")
		return nil, nil
	}
	runServer = func(*http.Server) error { return nil }

	require.NoError(t, runMainProcess())
}

func TestRunMainProcess_StorageError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	openDB = sqliteDB("main_storage_err")
	newPresigner = func(storage.Config) (*storage.Presigner, error) { return nil, errors.New("bad endpoint") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object storage")
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig
	openDB = sqliteDB("main_server_err")
	runServer = func(*http.Server) error { return errors.New("listen failed") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen failed")
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)
	withMiniredis(t)
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Storage = config.StorageConfig{Region: "us-east-1", Bucket: "kyc-docs"}
		return cfg
	}
	openDB = sqliteDB("main_success")

	var served *http.Server
	runServer = func(srv *http.Server) error {
		served = srv
		return nil
	}

	require.NoError(t, runMainProcess())
	require.NotNil(t, served)
	assert.Equal(t, ":18080", served.Addr)
	assert.NotNil(t, served.Handler)
}

func TestGormConfig_DuplicateUsernameIsAlreadyExists(t *testing.T) {
	db, err := sqliteDB("main_gorm_config")("")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}))

	repo := repositories.NewAdminRepository(db)
	ctx := context.Background()
	newAdmin := func() *entities.Admin {
		return &entities.Admin{
			FName:        "Dup",
			LName:        "Admin",
			Username:     "dup@mail.com",
			PasswordHash: "hash",
			RoleID:       entities.RoleSubAdmin,
			RoleName:     entities.RoleNameSubAdmin,
			IPAddress:    "10.0.0.1",
		}
	}

	require.NoError(t, repo.Create(ctx, newAdmin()))
	assert.ErrorIs(t, repo.Create(ctx, newAdmin()), domainerrors.ErrAlreadyExists)
	assert.True(t, repositories.GormConfig().TranslateError)
}

func TestRunMainProcess_InvalidTrustedProxies(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Server.TrustedProxies = []string{"10.0.0.0/99"}
		return cfg
	}
	openDB = sqliteDB("main_bad_proxies")
	runServer = func(*http.Server) error {
		t.Fatal("server must not start with invalid trusted proxies")
		return nil
	}

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid trusted proxies")
}
