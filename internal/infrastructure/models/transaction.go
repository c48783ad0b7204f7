package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionHash   string    `gorm:"type:varchar(255);index"`
	WalletAddress     string    `gorm:"type:varchar(64);index"`
	UserWalletAddress string    `gorm:"type:varchar(64);index"`
	Status            string    `gorm:"type:varchar(20);index"`
	Source            string    `gorm:"type:varchar(50)"`
	SaleType          string    `gorm:"type:varchar(50)"`
	PriceCurrency     string    `gorm:"type:varchar(20)"`
	TokenCryptoAmount string    `gorm:"type:text"`
	PriceAmount       string    `gorm:"type:text"`
	IsSale            bool      `gorm:"not null;default:false"`
	IsProcess         bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (Transaction) TableName() string {
	return "transactions"
}

type Sale struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(100)"`
	TotalToken string    `gorm:"type:text"`
	StartSale  time.Time `gorm:"not null"`
	EndSale    time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

func (Sale) TableName() string {
	return "sales"
}
