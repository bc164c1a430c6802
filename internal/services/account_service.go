package services

import (
	"context"

	"stockfolio/internal/models"

	"gorm.io/gorm"
)

// accountService reads the cash account. Only the trade service writes it.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// GetBalance returns the cash balance and when it last changed.
func (s *accountService) GetBalance(ctx context.Context) (*models.AccountBalance, error) {
	return loadBalance(s.db.WithContext(ctx))
}
