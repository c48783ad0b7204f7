package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/internal/domain/repositories"
	"ico-admin.backend/pkg/utils"
	"ico-admin.backend/pkg/validation"
)

var graphMessages = validation.Messages{
	"option.required":    msgOptionMissing,
	"from_date.required": msgFromDateMissing,
	"to_date.required":   msgToDateMissing,
}

// ReportUsecase serves the transaction dashboard and charts
type ReportUsecase struct {
	txRepo           repositories.TransactionRepository
	saleRepo         repositories.SaleRepository
	validator        *validation.Validator
	requireSaleFlags bool
	now              func() time.Time
}

// NewReportUsecase creates a new report usecase. requireSaleFlags limits aggregates
// to transactions flagged as processed sales.
func NewReportUsecase(
	txRepo repositories.TransactionRepository,
	saleRepo repositories.SaleRepository,
	validator *validation.Validator,
	requireSaleFlags bool,
) *ReportUsecase {
	return &ReportUsecase{
		txRepo:           txRepo,
		saleRepo:         saleRepo,
		validator:        validator,
		requireSaleFlags: requireSaleFlags,
		now:              time.Now,
	}
}

// TimeSeries counts paid transactions in (from, to) per calendar bucket of filterType.
// An unknown filter type yields an empty series.
func (u *ReportUsecase) TimeSeries(ctx context.Context, kind entities.SeriesKind, filterType string, from, to time.Time) ([]entities.SeriesPoint, error) {
	skel, ok := buildSkeleton(kind, filterType, u.now())
	if !ok {
		return []entities.SeriesPoint{}, nil
	}

	counts, err := u.txRepo.CountPaidByBucket(ctx, u.scope(from, to, ""), skel.granularity)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return skel.fill(counts), nil
}

// Graph returns a chart together with the number of transactions in its window.
// Both window bounds are required.
func (u *ReportUsecase) Graph(ctx context.Context, kind entities.SeriesKind, input *entities.GraphInput) (*entities.GraphResult, error) {
	if err := validateInput(u.validator, input, graphMessages); err != nil {
		return nil, err
	}
	if !input.FromDate.Before(input.ToDate) {
		return nil, domainerrors.Validation(msgDateRange, domainerrors.FieldError{Field: "from_date", Message: msgDateRange})
	}
	points, err := u.TimeSeries(ctx, kind, input.Option, input.FromDate, input.ToDate)
	if err != nil {
		return nil, err
	}
	total, err := u.TotalForWindow(ctx, input.FromDate, input.ToDate, "")
	if err != nil {
		return nil, err
	}
	return &entities.GraphResult{TransactionData: points, TotalToken: total}, nil
}

// TotalForWindow counts paid transactions in (from, to), optionally for one buyer wallet
func (u *ReportUsecase) TotalForWindow(ctx context.Context, from, to time.Time, wallet string) (int64, error) {
	count, err := u.txRepo.CountPaid(ctx, u.scope(from, to, wallet))
	if err != nil {
		return 0, domainerrors.InternalError(err)
	}
	return count, nil
}

// TotalPaidAmount sums the price paid over paid transactions
func (u *ReportUsecase) TotalPaidAmount(ctx context.Context) (decimal.Decimal, error) {
	total, err := u.txRepo.SumPaid(ctx, entities.AmountPrice, entities.PaidScope{RequireSaleFlags: u.requireSaleFlags})
	if err != nil {
		return decimal.Zero, domainerrors.InternalError(err)
	}
	return total, nil
}

// TotalCryptoVolume sums the tokens sold, rounded to cents
func (u *ReportUsecase) TotalCryptoVolume(ctx context.Context) (decimal.Decimal, error) {
	total, err := u.txRepo.SumPaid(ctx, entities.AmountTokenCrypto, entities.PaidScope{RequireSaleFlags: u.requireSaleFlags})
	if err != nil {
		return decimal.Zero, domainerrors.InternalError(err)
	}
	return total.Round(2), nil
}

// TotalCryptoVolumeByWallet sums the tokens one wallet bought outside the website, rounded to cents
func (u *ReportUsecase) TotalCryptoVolumeByWallet(ctx context.Context, address string) (decimal.Decimal, error) {
	total, err := u.txRepo.SumOutsideWebsiteByWallet(ctx, address)
	if err != nil {
		return decimal.Zero, domainerrors.InternalError(err)
	}
	return total.Round(2), nil
}

// TotalsByCurrency sums field over paid transactions per price currency
func (u *ReportUsecase) TotalsByCurrency(ctx context.Context, field entities.AmountField) (map[string]decimal.Decimal, error) {
	rows, err := u.txRepo.SumPaidByCurrency(ctx, field, entities.PaidScope{RequireSaleFlags: u.requireSaleFlags})
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.Currency] = row.Total
	}
	return out, nil
}

// TokenCount reports the USDT volume in tokens and in price
func (u *ReportUsecase) TokenCount(ctx context.Context) (*entities.TokenCount, error) {
	tokens, err := u.TotalsByCurrency(ctx, entities.AmountTokenCrypto)
	if err != nil {
		return nil, err
	}
	prices, err := u.TotalsByCurrency(ctx, entities.AmountPrice)
	if err != nil {
		return nil, err
	}
	return &entities.TokenCount{
		TotalUserCount: tokens[entities.CurrencyUSDT].StringFixed(2),
		TotalUsdtCount: prices[entities.CurrencyUSDT].StringFixed(2),
	}, nil
}

// CountSince counts transactions of any status created in [start, end)
func (u *ReportUsecase) CountSince(ctx context.Context, start, end time.Time) (int64, error) {
	count, err := u.txRepo.CountCreatedBetween(ctx, start, end)
	if err != nil {
		return 0, domainerrors.InternalError(err)
	}
	return count, nil
}

// SinceLastWeekSale counts transactions created since the start of the previous week
func (u *ReportUsecase) SinceLastWeekSale(ctx context.Context) (int64, error) {
	now := u.now().UTC()
	return u.CountSince(ctx, startOfPreviousISOWeek(now), now)
}

// FindByOrderID returns the transaction with the given hash
func (u *ReportUsecase) FindByOrderID(ctx context.Context, orderID string) (*entities.Transaction, error) {
	tx, err := u.txRepo.GetByHash(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgTransactionMissing)
		}
		return nil, domainerrors.InternalError(err)
	}
	return tx, nil
}

// CurrentSale returns the running sale round, or nil when none is running
func (u *ReportUsecase) CurrentSale(ctx context.Context) (*entities.Sale, error) {
	sale, err := u.saleRepo.Current(ctx, u.now().UTC())
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerrors.InternalError(err)
	}
	return sale, nil
}

// CheckSale sums the token allocation of all sale rounds
func (u *ReportUsecase) CheckSale(ctx context.Context) (decimal.Decimal, error) {
	total, err := u.saleRepo.SumTotalToken(ctx)
	if err != nil {
		return decimal.Zero, domainerrors.InternalError(err)
	}
	return total, nil
}

// ListTransactions returns a page of transactions, newest first
func (u *ReportUsecase) ListTransactions(
	ctx context.Context,
	params utils.PaginationParams,
	query, statusFilter string,
	input *entities.TransactionListInput,
) (*entities.TransactionList, error) {
	offset, limit := window(params)
	filter := entities.TransactionFilter{
		Query:  query,
		Status: statusFilter,
		Offset: offset,
		Limit:  limit,
	}
	if input != nil {
		filter.Types = input.Types
		filter.Statuses = input.Statuses
	}

	txs, err := u.txRepo.List(ctx, filter)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	count, err := u.txRepo.Count(ctx, filter)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.TransactionList{Transactions: txs, TotalTransactionsCount: count}, nil
}

// ListByWallet returns every transaction bought by a wallet
func (u *ReportUsecase) ListByWallet(ctx context.Context, address string) ([]*entities.Transaction, error) {
	txs, err := u.txRepo.ListByWallet(ctx, address)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return txs, nil
}

func (u *ReportUsecase) scope(from, to time.Time, wallet string) entities.PaidScope {
	scope := entities.PaidScope{RequireSaleFlags: u.requireSaleFlags, Wallet: wallet}
	if !from.IsZero() {
		scope.From = null.TimeFrom(from)
	}
	if !to.IsZero() {
		scope.To = null.TimeFrom(to)
	}
	return scope
}
