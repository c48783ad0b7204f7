package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionStatusPaid marks a settled purchase
const TransactionStatusPaid = "paid"

// SaleTypeOutsideWebsite marks purchases made outside the sale website
const SaleTypeOutsideWebsite = "outside-website"

// Transaction represents a token purchase record
type Transaction struct {
	ID                uuid.UUID `json:"id"`
	TransactionHash   string    `json:"transactionHash"`
	WalletAddress     string    `json:"wallet_address"`
	UserWalletAddress string    `json:"user_wallet_address"`
	Status            string    `json:"status"`
	Source            string    `json:"source"`
	SaleType          string    `json:"sale_type"`
	PriceCurrency     string    `json:"price_currency"`
	TokenCryptoAmount string    `json:"token_cryptoAmount"`
	PriceAmount       string    `json:"price_amount"`
	IsSale            bool      `json:"is_sale"`
	IsProcess         bool      `json:"is_process"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	Query    string
	Status   string
	Types    []string
	Statuses []string
	Offset   int
	Limit    int
}

// TransactionListInput is the body of the transaction listing endpoint
type TransactionListInput struct {
	Types    []string `json:"types"`
	Statuses []string `json:"status"`
}

// Sale is a token sale round
type Sale struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TotalToken string    `json:"total_token"`
	StartSale  time.Time `json:"start_sale"`
	EndSale    time.Time `json:"end_sale"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaidScope selects which paid transactions feed an aggregate. From and To bound created_at exclusively.
type PaidScope struct {
	RequireSaleFlags bool
	From             null.Time
	To               null.Time
	Wallet           string
}

// AmountField names a text amount column that can be summed
type AmountField string

const (
	AmountPrice       AmountField = "price_amount"
	AmountTokenCrypto AmountField = "token_crypto_amount"
)

// CurrencyTotal is an aggregate for one price currency
type CurrencyTotal struct {
	Currency string
	Total    decimal.Decimal
}

// TransactionList is a page of transactions
type TransactionList struct {
	Transactions           []*Transaction `json:"transactions"`
	TotalTransactionsCount int64          `json:"totalTransactionsCount"`
}

// TokenCount is the USDT purchase volume, in tokens and in price currency, as fixed point strings
type TokenCount struct {
	TotalUserCount string `json:"totalUserCount"`
	TotalUsdtCount string `json:"totalUsdtCount"`
}

// CurrencyUSDT is the price currency reported on the dashboard
const CurrencyUSDT = "USDT"
