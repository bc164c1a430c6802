package models

import (
	"time"

	"stockfolio/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SnapshotSource records what caused a snapshot.
type SnapshotSource string

const (
	SnapshotSourceTrade     SnapshotSource = "trade"
	SnapshotSourceScheduled SnapshotSource = "scheduled"
)

// NetWorthSnapshot is a point-in-time record of net worth.
// This is immutable time-series data: no Base embed, no soft deletes.
type NetWorthSnapshot struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	RecordedAt     time.Time       `gorm:"not null;index" json:"recorded_at"`
	AccountBalance decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"account_balance"`
	PortfolioValue decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"portfolio_value"`
	TotalNetWorth  decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"total_net_worth"`
	Source         SnapshotSource  `gorm:"size:16;not null" json:"source"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (n *NetWorthSnapshot) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New()
	}
	return nil
}
