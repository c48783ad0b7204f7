package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ico-admin.backend/internal/config"
	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	domainrepo "ico-admin.backend/internal/domain/repositories"
	"ico-admin.backend/internal/infrastructure/models"
	"ico-admin.backend/internal/infrastructure/repositories"
	"ico-admin.backend/pkg/crypto"
	"ico-admin.backend/pkg/validation"
)

const usage = `usage: seed <command> [flags]

commands:
  migrate      create or update the tables
  permissions  insert the default permission catalogue
  admin        create a full admin or reset its password
  hash         print a bcrypt hash of -password`

// defaultPermissions is the catalogue the admin UI expects
var defaultPermissions = []entities.AdminPermission{
	{PermissionID: 1, PermissionName: "Dashboard"},
	{PermissionID: 2, PermissionName: "Users"},
	{PermissionID: 3, PermissionName: "KYC"},
	{PermissionID: 4, PermissionName: "Transactions"},
	{PermissionID: 5, PermissionName: "Sub Admins"},
	{PermissionID: 6, PermissionName: "Settings"},
}

var openSeedDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), repositories.GormConfig())
}

type seedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	openDB  func(dsn string) (*gorm.DB, error)
	out     io.Writer
}

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		openDB:  openSeedDB,
		out:     os.Stdout,
	}
}

type adminInput struct {
	Username string
	Password string
	FName    string
	LName    string
}

func runSeed(args []string, deps seedDeps) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	def := defaultSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.openDB == nil {
		deps.openDB = def.openDB
	}
	if deps.out == nil {
		deps.out = def.out
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	command, rest := args[0], args[1:]
	switch command {
	case "hash":
		return runHash(rest, cfg.Security.BcryptCost, deps.out)
	case "migrate", "permissions", "admin":
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}

	var input adminInput
	if command == "admin" {
		fs := flag.NewFlagSet("admin", flag.ContinueOnError)
		fs.StringVar(&input.Username, "username", "", "admin username, e-mail shaped (required)")
		fs.StringVar(&input.Password, "password", "", "admin password (required)")
		fs.StringVar(&input.FName, "fname", "Super", "first name")
		fs.StringVar(&input.LName, "lname", "Admin", "last name")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := input.validate(); err != nil {
			return err
		}
	}

	db, err := deps.openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx := context.Background()
	switch command {
	case "migrate":
		if err := migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		_, _ = fmt.Fprintln(deps.out, "tables migrated")
		return nil
	case "permissions":
		n, err := seedPermissions(ctx, repositories.NewPermissionRepository(db))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.out, "seeded %d permissions\n", n)
		return nil
	default:
		created, err := seedAdmin(ctx, repositories.NewAdminRepository(db), input, cfg.Security.BcryptCost)
		if err != nil {
			return err
		}
		if created {
			_, _ = fmt.Fprintf(deps.out, "created admin %s\n", input.Username)
		} else {
			_, _ = fmt.Fprintf(deps.out, "reset password of admin %s\n", input.Username)
		}
		return nil
	}
}

func (in adminInput) validate() error {
	if in.Username == "" || in.Password == "" {
		return errors.New("-username and -password are required")
	}
	if !validation.IsMailAddress(in.Username) {
		return fmt.Errorf("username %q is not an e-mail address", in.Username)
	}
	return nil
}

func runHash(args []string, cost int, out io.Writer) error {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	password := fs.String("password", "", "password to hash (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return errors.New("-password is required")
	}
	hash, err := crypto.HashPasswordWithCost(*password, cost)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, hash)
	return nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Permission{},
		&models.SessionToken{},
		&models.User{},
		&models.Transaction{},
		&models.Sale{},
	)
}

func seedPermissions(ctx context.Context, repo domainrepo.PermissionRepository) (int, error) {
	for _, p := range defaultPermissions {
		if err := repo.Ensure(ctx, &entities.Permission{PermissionID: p.PermissionID, PermissionName: p.PermissionName}); err != nil {
			return 0, fmt.Errorf("failed to seed permission %d: %w", p.PermissionID, err)
		}
	}
	return len(defaultPermissions), nil
}

// seedAdmin reports whether a new admin was created. An existing full admin gets its password reset.
func seedAdmin(ctx context.Context, repo domainrepo.AdminRepository, in adminInput, cost int) (bool, error) {
	hash, err := crypto.HashPasswordWithCost(in.Password, cost)
	if err != nil {
		return false, err
	}

	existing, err := repo.GetByUsername(ctx, in.Username)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		admin := &entities.Admin{
			FName:        in.FName,
			LName:        in.LName,
			Username:     in.Username,
			PasswordHash: hash,
			RoleID:       entities.RoleAdmin,
			RoleName:     entities.RoleNameAdmin,
			Permissions:  defaultPermissions,
		}
		if err := repo.Create(ctx, admin); err != nil {
			return false, fmt.Errorf("failed to create admin: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to load admin %s: %w", in.Username, err)
	}

	if existing.IsSubAdmin() {
		return false, fmt.Errorf("%s is a sub-admin, refusing to reset it from the seeder", in.Username)
	}
	if err := repo.UpdatePassword(ctx, existing.ID, hash); err != nil {
		return false, fmt.Errorf("failed to reset password: %w", err)
	}
	return false, nil
}

func main() {
	if err := runSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
