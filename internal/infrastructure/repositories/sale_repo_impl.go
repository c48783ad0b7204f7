package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ico-admin.backend/internal/domain/entities"
	"ico-admin.backend/internal/infrastructure/models"
)

// SaleRepository implements sale round reads
type SaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Current gets the sale whose window contains now
func (r *SaleRepository) Current(ctx context.Context, now time.Time) (*entities.Sale, error) {
	var m models.Sale
	err := GetDB(ctx, r.db).
		Where("start_sale <= ? AND end_sale >= ?", now, now).
		Order("start_sale DESC").
		First(&m).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &entities.Sale{
		ID:         m.ID,
		Name:       m.Name,
		TotalToken: m.TotalToken,
		StartSale:  m.StartSale,
		EndSale:    m.EndSale,
		CreatedAt:  m.CreatedAt,
	}, nil
}

// SumTotalToken sums the token allocation of every sale
func (r *SaleRepository) SumTotalToken(ctx context.Context) (decimal.Decimal, error) {
	var row sumRow
	err := GetDB(ctx, r.db).Model(&models.Sale{}).Select(sumExpr("total_token") + " AS total").Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

type sumRow struct {
	Total decimal.Decimal
}
