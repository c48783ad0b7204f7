package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	FName              string    `gorm:"column:fname;type:varchar(100)"`
	MName              string    `gorm:"column:mname;type:varchar(100)"`
	LName              string    `gorm:"column:lname;type:varchar(100)"`
	DOB                string    `gorm:"column:dob;type:varchar(10)"`
	FullName           string    `gorm:"column:fullname;type:varchar(255)"`
	Phone              string    `gorm:"type:varchar(20)"`
	PhoneCountry       string    `gorm:"type:varchar(10)"`
	Email              string    `gorm:"type:varchar(255)"`
	CurrentPre         string    `gorm:"column:currentpre;type:varchar(50)"`
	City               string    `gorm:"type:varchar(100)"`
	Location           string    `gorm:"type:varchar(10)"`
	WalletAddress      string    `gorm:"type:varchar(64);uniqueIndex"`
	WalletType         string    `gorm:"type:varchar(50)"`
	Nonce              string    `gorm:"type:varchar(64)"`
	Bio                string    `gorm:"type:text"`
	Profile            string    `gorm:"type:text"`
	Nationality        string    `gorm:"type:varchar(100)"`
	ResAddress         string    `gorm:"type:text"`
	PostalCode         string    `gorm:"type:varchar(20)"`
	CountryOfIssue     string    `gorm:"type:varchar(100)"`
	VerifiedWith       string    `gorm:"type:varchar(50)"`
	PassportURL        string    `gorm:"column:passport_url;type:text"`
	UserPhotoURL       string    `gorm:"column:user_photo_url;type:text"`
	IsVerified         int       `gorm:"not null;default:0"`
	KYCCompleted       bool      `gorm:"column:kyc_completed;not null;default:false"`
	KYCSubmittedDate   null.Time `gorm:"column:kyc_submitted_date"`
	Status             string    `gorm:"type:varchar(20);not null;default:'Active'"`
	IsKYCDeleted       bool      `gorm:"column:is_kyc_deleted;not null;default:false"`
	AdminCheckedAt     null.Time `gorm:"column:admin_checked_at"`
	Is2FAEnabled       bool      `gorm:"column:is_2fa_enabled;not null;default:false"`
	Is2FALoginVerified bool      `gorm:"column:is_2fa_login_verified;not null;default:false"`
	GoogleAuthSecret   string    `gorm:"column:google_auth_secret;type:varchar(255)"`
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
}

func (User) TableName() string {
	return "users"
}
