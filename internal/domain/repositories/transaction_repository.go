package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ico-admin.backend/internal/domain/entities"
)

// TransactionRepository defines transaction reads and aggregates. Amount sums are rounded by the caller.
type TransactionRepository interface {
	List(ctx context.Context, filter entities.TransactionFilter) ([]*entities.Transaction, error)
	Count(ctx context.Context, filter entities.TransactionFilter) (int64, error)
	ListByWallet(ctx context.Context, address string) ([]*entities.Transaction, error)
	GetByHash(ctx context.Context, hash string) (*entities.Transaction, error)

	CountPaid(ctx context.Context, scope entities.PaidScope) (int64, error)
	CountPaidByBucket(ctx context.Context, scope entities.PaidScope, granularity entities.BucketGranularity) ([]entities.BucketCount, error)
	SumPaid(ctx context.Context, field entities.AmountField, scope entities.PaidScope) (decimal.Decimal, error)
	SumPaidByCurrency(ctx context.Context, field entities.AmountField, scope entities.PaidScope) ([]entities.CurrencyTotal, error)
	SumPaidByWallets(ctx context.Context, wallets []string) (map[string]decimal.Decimal, error)
	SumOutsideWebsiteByWallet(ctx context.Context, address string) (decimal.Decimal, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)

	DeleteByWallet(ctx context.Context, address string) (int64, error)
}

// SaleRepository defines sale round reads
type SaleRepository interface {
	Current(ctx context.Context, now time.Time) (*entities.Sale, error)
	SumTotalToken(ctx context.Context) (decimal.Decimal, error)
}
