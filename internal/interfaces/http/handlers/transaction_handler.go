package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ico-admin.backend/internal/domain/entities"
	"ico-admin.backend/internal/interfaces/http/response"
	"ico-admin.backend/pkg/utils"
)

const (
	msgTransactionsFetched = "Transactions get successfully"
	msgTotalsFetched       = "get TotalAmount Amount Successfully"
	msgSalesFetched        = "Sales get successfully"
	msgSaleNotFound        = "Sale Not Found"
)

// ReportService is the transaction reporting logic behind TransactionHandler
type ReportService interface {
	Graph(ctx context.Context, kind entities.SeriesKind, input *entities.GraphInput) (*entities.GraphResult, error)
	TotalPaidAmount(ctx context.Context) (decimal.Decimal, error)
	TotalCryptoVolume(ctx context.Context) (decimal.Decimal, error)
	TotalCryptoVolumeByWallet(ctx context.Context, address string) (decimal.Decimal, error)
	TokenCount(ctx context.Context) (*entities.TokenCount, error)
	SinceLastWeekSale(ctx context.Context) (int64, error)
	FindByOrderID(ctx context.Context, orderID string) (*entities.Transaction, error)
	CurrentSale(ctx context.Context) (*entities.Sale, error)
	CheckSale(ctx context.Context) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, params utils.PaginationParams, query, statusFilter string, input *entities.TransactionListInput) (*entities.TransactionList, error)
	ListByWallet(ctx context.Context, address string) ([]*entities.Transaction, error)
}

// TransactionHandler handles transaction listing, chart and dashboard endpoints
type TransactionHandler struct {
	reports ReportService
}

func NewTransactionHandler(reports ReportService) *TransactionHandler {
	return &TransactionHandler{reports: reports}
}

// ListTransactions returns a page of transactions
// POST /transactions/getTransactions
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var input entities.TransactionListInput
	if err := bindOptionalJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.reports.ListTransactions(c.Request.Context(), pagination(c), c.Query("query"), c.Query("statusFilter"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":                msgTransactionsFetched,
		"transactions":           list.Transactions,
		"totalTransactionsCount": list.TotalTransactionsCount,
	})
}

// SaleGraph POST /transactions/getSaleGrapthValues and /auth/getSaleGrapthValues
func (h *TransactionHandler) SaleGraph(c *gin.Context) {
	h.graph(c, entities.SeriesSale)
}

// LineGraph POST /transactions/getLineGrapthValues and /auth/getLineGrapthValues
func (h *TransactionHandler) LineGraph(c *gin.Context) {
	h.graph(c, entities.SeriesLine)
}

func (h *TransactionHandler) graph(c *gin.Context, kind entities.SeriesKind) {
	var input entities.GraphInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.reports.Graph(c.Request.Context(), kind, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":         msgTotalsFetched,
		"transactionData": result.TransactionData,
		"totalToken":      result.TotalToken,
	})
}

// GetByOrderID GET /transactions/getTransactionByOrderId/:orderId
func (h *TransactionHandler) GetByOrderID(c *gin.Context) {
	tx, err := h.reports.FindByOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":         msgTotalsFetched,
		"transactionData": tx,
	})
}

// TokenCount returns the USDT token and price volume
// GET /transactions/getTokenCount
func (h *TransactionHandler) TokenCount(c *gin.Context) {
	count, err := h.reports.TokenCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":         msgTotalsFetched,
		"totalTokenCount": count,
	})
}

// DashboardData returns the amount collected and the recent sale count
// GET /transactions/getDashboardTransactionData
func (h *TransactionHandler) DashboardData(c *gin.Context) {
	h.totalWithRecentSales(c, h.reports.TotalPaidAmount, "amountCollected")
}

// TotalMid returns the token volume and the recent sale count
// GET /auth/getTotalMid
func (h *TransactionHandler) TotalMid(c *gin.Context) {
	h.totalWithRecentSales(c, h.reports.TotalCryptoVolume, "totalAmount")
}

func (h *TransactionHandler) totalWithRecentSales(c *gin.Context, total func(context.Context) (decimal.Decimal, error), key string) {
	ctx := c.Request.Context()
	amount, err := total(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	recent, err := h.reports.SinceLastWeekSale(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":           msgTotalsFetched,
		key:                 amount,
		"sinceLastWeekSale": recent,
	})
}

// TotalMidByWallet returns the token volume bought outside the website by one wallet
// GET /transactions/getTotalMid/:address
func (h *TransactionHandler) TotalMidByWallet(c *gin.Context) {
	amount, err := h.reports.TotalCryptoVolumeByWallet(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":     msgTotalsFetched,
		"totalAmount": amount,
	})
}

// CheckSale GET /transactions/checkSale
func (h *TransactionHandler) CheckSale(c *gin.Context) {
	total, err := h.reports.CheckSale(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": msgSalesFetched,
		"sales":   gin.H{"totalToken": total},
	})
}

// CurrentSale GET /transactions/getCurrentSale
func (h *TransactionHandler) CurrentSale(c *gin.Context) {
	sale, err := h.reports.CurrentSale(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if sale == nil {
		response.Success(c, http.StatusOK, gin.H{
			"message": msgSaleNotFound,
			"sale":    nil,
		})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": msgSalesFetched,
		"sale":    sale,
	})
}

// ListByWallet GET /transactions/wallet/:address
func (h *TransactionHandler) ListByWallet(c *gin.Context) {
	txs, err := h.reports.ListByWallet(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":      msgTransactionsFetched,
		"transactions": txs,
	})
}
