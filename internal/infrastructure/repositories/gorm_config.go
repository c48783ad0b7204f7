package repositories

import "gorm.io/gorm"

// GormConfig is the gorm configuration every connection to the admin database uses.
// The repositories rely on TranslateError to see gorm.ErrDuplicatedKey on unique violations.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	}
}
