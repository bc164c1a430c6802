package services

import (
	"context"
	"slices"
	"time"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 1000
)

// netWorthService records and reads net-worth snapshots.
type netWorthService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewNetWorthService creates a new NetWorthServicer.
func NewNetWorthService(db *gorm.DB) NetWorthServicer {
	return &netWorthService{db: db, now: time.Now}
}

// RecordSnapshot values the whole ledger now and appends a snapshot.
func (s *netWorthService) RecordSnapshot(ctx context.Context, source models.SnapshotSource) (*models.NetWorthSnapshot, error) {
	var snapshot *models.NetWorthSnapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		snapshot, err = recordSnapshot(tx, source, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// recordSnapshot appends a snapshot of the ledger as tx sees it.
func recordSnapshot(tx *gorm.DB, source models.SnapshotSource, at time.Time) (*models.NetWorthSnapshot, error) {
	value, err := valueLedger(tx)
	if err != nil {
		return nil, err
	}

	snapshot := &models.NetWorthSnapshot{
		RecordedAt:     at,
		AccountBalance: value.Cash,
		PortfolioValue: value.TotalPortfolioValue,
		TotalNetWorth:  value.TotalNetWorth,
		Source:         source,
	}
	if err := tx.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// GetHistory returns the most recent limit snapshots, oldest first.
func (s *netWorthService) GetHistory(ctx context.Context, limit int) ([]models.NetWorthSnapshot, error) {
	limit = clampHistoryLimit(limit)

	var snapshots []models.NetWorthSnapshot
	if err := s.db.WithContext(ctx).
		Order("recorded_at DESC").Order("id DESC").
		Limit(limit).
		Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	slices.Reverse(snapshots)
	return snapshots, nil
}

func clampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
