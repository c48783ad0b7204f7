package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// KYCState is the verification state of an end user
type KYCState int

const (
	KYCPending  KYCState = 0
	KYCApproved KYCState = 1
	KYCRejected KYCState = 2
)

// KYCStateFromFilter maps a list status filter to a state
func KYCStateFromFilter(filter string) (KYCState, bool) {
	switch filter {
	case "Pending":
		return KYCPending, true
	case "Approved":
		return KYCApproved, true
	case "Rejected":
		return KYCRejected, true
	}
	return 0, false
}

// Account statuses
const (
	UserStatusActive  = "Active"
	UserStatusSuspend = "Suspend"
)

// StatusFilterAll disables status filtering on listings
const StatusFilterAll = "All"

// User represents an end user of the token sale
type User struct {
	ID                 uuid.UUID `json:"id"`
	FName              string    `json:"fname"`
	MName              string    `json:"mname"`
	LName              string    `json:"lname"`
	DOB                string    `json:"dob"`
	FullName           string    `json:"fullname"`
	Phone              string    `json:"phone"`
	PhoneCountry       string    `json:"phoneCountry"`
	Email              string    `json:"email"`
	CurrentPre         string    `json:"currentpre"`
	City               string    `json:"city"`
	Location           string    `json:"location"`
	WalletAddress      string    `json:"wallet_address"`
	WalletType         string    `json:"wallet_type"`
	Nonce              string    `json:"nonce"`
	Bio                string    `json:"bio"`
	Profile            string    `json:"profile"`
	Nationality        string    `json:"nationality"`
	ResAddress         string    `json:"res_address"`
	PostalCode         string    `json:"postal_code"`
	CountryOfIssue     string    `json:"country_of_issue"`
	VerifiedWith       string    `json:"verified_with"`
	PassportURL        string    `json:"passport_url"`
	UserPhotoURL       string    `json:"user_photo_url"`
	IsVerified         KYCState  `json:"is_verified"`
	KYCCompleted       bool      `json:"kyc_completed"`
	KYCSubmittedDate   null.Time `json:"kyc_submitted_date"`
	Status             string    `json:"status"`
	IsKYCDeleted       bool      `json:"is_kyc_deleted"`
	AdminCheckedAt     null.Time `json:"admin_checked_at"`
	Is2FAEnabled       bool      `json:"is_2FA_enabled"`
	Is2FALoginVerified bool      `json:"is_2FA_login_verified"`
	GoogleAuthSecret   string    `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserWithTotal is a listed user with the token volume bought by their wallet
type UserWithTotal struct {
	*User
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// UserFilter narrows user listings
type UserFilter struct {
	Query    string
	Status   string
	KYCOnly  bool
	KYCState *KYCState
	Offset   int
	Limit    int
}

// PublicProfile is the public part of a user looked up by wallet
type PublicProfile struct {
	FName   string `json:"fname"`
	LName   string `json:"lname"`
	Bio     string `json:"bio"`
	Profile string `json:"profile"`
	DocURL  string `json:"docUrl,omitempty"`
}

// UserCounts feeds the dashboard user tiles
type UserCounts struct {
	TotalUser                 int64 `json:"totalUser"`
	TotalKYCUser              int64 `json:"totalKYCUser"`
	SinceLastWeekUserCount    int64 `json:"sinceLastWeekUserCount"`
	SinceLastWeekKYCUserCount int64 `json:"sinceLastWeekKYCUserCount"`
}

// AccountSettingsInput represents the editable profile fields. Empty fields are left unchanged.
type AccountSettingsInput struct {
	FName        string `json:"fname"`
	LName        string `json:"lname"`
	Email        string `json:"email" validate:"omitempty,mailaddr"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	PhoneCountry string `json:"phoneCountry" validate:"omitempty,dialcode"`
	City         string `json:"city"`
	Location     string `json:"location" validate:"omitempty,country"`
	ResAddress   string `json:"res_address"`
	DOB          string `json:"dob" validate:"omitempty,dob"`
}

// RejectKycInput carries the optional rejection reason
type RejectKycInput struct {
	Message string `json:"message"`
}

// UserList is a page of users with their purchase totals
type UserList struct {
	Users           []*UserWithTotal `json:"users"`
	TotalUsersCount int64            `json:"totalUsersCount"`
}

// KycUserList is a page of users that submitted KYC
type KycUserList struct {
	Users           []*User `json:"users"`
	TotalUsersCount int64   `json:"totalUsersCount"`
}
