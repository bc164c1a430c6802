package services

import (
	"context"
	"strings"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"

	"gorm.io/gorm"
)

// transactionService reads the trade history.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// ListTransactions returns trades newest first. Search matches the stock
// symbol, the stock name or the portfolio name, case-insensitively.
// Transactions of deleted portfolios are included.
func (s *transactionService) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Preload("Stock").
		Preload("Portfolio", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })

	if filter.Type != nil {
		q = q.Where("transactions.type = ?", *filter.Type)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Joins("JOIN stocks ON stocks.id = transactions.stock_id").
			Joins("JOIN portfolios ON portfolios.id = transactions.portfolio_id").
			Where("LOWER(stocks.symbol) LIKE ? OR LOWER(stocks.name) LIKE ? OR LOWER(portfolios.name) LIKE ?", like, like, like)
	}

	var transactions []models.Transaction
	if err := q.Order("transactions.timestamp DESC").Order("transactions.id DESC").
		Scopes(pagination.Paginate(filter.Page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
