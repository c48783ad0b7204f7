package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ico-admin.backend/internal/domain/entities"
	"ico-admin.backend/internal/infrastructure/models"
)

// TransactionRepository implements transaction reads and aggregates
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List lists transactions newest first
func (r *TransactionRepository) List(ctx context.Context, filter entities.TransactionFilter) ([]*entities.Transaction, error) {
	var ms []models.Transaction
	query := paginate(r.filtered(ctx, filter), filter.Offset, filter.Limit)
	if err := query.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toTransactionEntities(ms), nil
}

// Count counts transactions matching filter
func (r *TransactionRepository) Count(ctx context.Context, filter entities.TransactionFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByWallet lists the purchases of a buyer wallet, ignoring case
func (r *TransactionRepository) ListByWallet(ctx context.Context, address string) ([]*entities.Transaction, error) {
	var ms []models.Transaction
	err := GetDB(ctx, r.db).
		Where("LOWER(user_wallet_address) = LOWER(?)", address).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return toTransactionEntities(ms), nil
}

// GetByHash gets a transaction by its hash
func (r *TransactionRepository) GetByHash(ctx context.Context, hash string) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).Where("transaction_hash = ?", hash).First(&m).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return toTransactionEntity(&m), nil
}

// CountPaid counts paid transactions in scope
func (r *TransactionRepository) CountPaid(ctx context.Context, scope entities.PaidScope) (int64, error) {
	var count int64
	if err := r.paid(ctx, scope).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPaidByBucket groups paid transactions in scope by UTC day or month, ascending
func (r *TransactionRepository) CountPaidByBucket(ctx context.Context, scope entities.PaidScope, granularity entities.BucketGranularity) ([]entities.BucketCount, error) {
	var rows []struct {
		Label string
		Count int64
	}
	expr := dateBucketExpr(r.db, granularity)
	err := r.paid(ctx, scope).
		Select(expr + " AS label, COUNT(*) AS count").
		Group(expr).
		Order("label").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.BucketCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.BucketCount{Label: row.Label, Count: row.Count})
	}
	return out, nil
}

// SumPaid sums field over paid transactions in scope
func (r *TransactionRepository) SumPaid(ctx context.Context, field entities.AmountField, scope entities.PaidScope) (decimal.Decimal, error) {
	column, err := amountColumn(field)
	if err != nil {
		return decimal.Zero, err
	}
	var row sumRow
	if err := r.paid(ctx, scope).Select(sumExpr(column) + " AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumPaidByCurrency sums field over paid transactions in scope per price currency
func (r *TransactionRepository) SumPaidByCurrency(ctx context.Context, field entities.AmountField, scope entities.PaidScope) ([]entities.CurrencyTotal, error) {
	column, err := amountColumn(field)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Currency string
		Total    decimal.Decimal
	}
	err = r.paid(ctx, scope).
		Select("price_currency AS currency, " + sumExpr(column) + " AS total").
		Group("price_currency").
		Order("price_currency").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.CurrencyTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.CurrencyTotal{Currency: row.Currency, Total: row.Total})
	}
	return out, nil
}

// SumPaidByWallets sums token volume of paid transactions per seller-side wallet
func (r *TransactionRepository) SumPaidByWallets(ctx context.Context, wallets []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(wallets))
	if len(wallets) == 0 {
		return out, nil
	}
	var rows []struct {
		Wallet string
		Total  decimal.Decimal
	}
	err := GetDB(ctx, r.db).Model(&models.Transaction{}).
		Select("wallet_address AS wallet, "+sumExpr("token_crypto_amount")+" AS total").
		Where("status = ? AND wallet_address IN ?", entities.TransactionStatusPaid, wallets).
		Group("wallet_address").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.Wallet] = row.Total
	}
	return out, nil
}

// SumOutsideWebsiteByWallet sums token volume bought outside the website by a buyer wallet
func (r *TransactionRepository) SumOutsideWebsiteByWallet(ctx context.Context, address string) (decimal.Decimal, error) {
	var row sumRow
	err := GetDB(ctx, r.db).Model(&models.Transaction{}).
		Select(sumExpr("token_crypto_amount")+" AS total").
		Where("status = ? AND is_sale = ? AND is_process = ? AND sale_type = ?",
			entities.TransactionStatusPaid, true, false, entities.SaleTypeOutsideWebsite).
		Where("LOWER(user_wallet_address) = LOWER(?)", address).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// CountCreatedBetween counts transactions created in [start, end) regardless of status
func (r *TransactionRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Transaction{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByWallet removes every transaction recorded against a wallet
func (r *TransactionRepository) DeleteByWallet(ctx context.Context, address string) (int64, error) {
	result := GetDB(ctx, r.db).Where("wallet_address = ?", address).Delete(&models.Transaction{})
	return result.RowsAffected, result.Error
}

func (r *TransactionRepository) paid(ctx context.Context, scope entities.PaidScope) *gorm.DB {
	query := GetDB(ctx, r.db).Model(&models.Transaction{}).Where("status = ?", entities.TransactionStatusPaid)
	if scope.RequireSaleFlags {
		query = query.Where("is_sale = ? AND is_process = ?", true, true)
	}
	if scope.From.Valid {
		query = query.Where("created_at > ?", scope.From.Time.UTC())
	}
	if scope.To.Valid {
		query = query.Where("created_at < ?", scope.To.Time.UTC())
	}
	if scope.Wallet != "" {
		query = query.Where("LOWER(user_wallet_address) = LOWER(?)", scope.Wallet)
	}
	return query
}

func (r *TransactionRepository) filtered(ctx context.Context, filter entities.TransactionFilter) *gorm.DB {
	query := GetDB(ctx, r.db).Model(&models.Transaction{})
	if status := strings.TrimSpace(filter.Status); status != "" && status != entities.StatusFilterAll {
		query = query.Where("status = ?", status)
	}
	if len(filter.Types) > 0 {
		query = query.Where("source IN ?", filter.Types)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	return searchAny(query, filter.Query, "transaction_hash")
}

func toTransactionEntities(ms []models.Transaction) []*entities.Transaction {
	out := make([]*entities.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, toTransactionEntity(&ms[i]))
	}
	return out
}

func toTransactionEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:                m.ID,
		TransactionHash:   m.TransactionHash,
		WalletAddress:     m.WalletAddress,
		UserWalletAddress: m.UserWalletAddress,
		Status:            m.Status,
		Source:            m.Source,
		SaleType:          m.SaleType,
		PriceCurrency:     m.PriceCurrency,
		TokenCryptoAmount: m.TokenCryptoAmount,
		PriceAmount:       m.PriceAmount,
		IsSale:            m.IsSale,
		IsProcess:         m.IsProcess,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
