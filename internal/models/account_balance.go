package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountID is the key of the single modelled cash account.
const AccountID uint = 1

// AccountBalance is the cash available for trading.
type AccountBalance struct {
	ID          uint            `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"balance"`
	LastUpdated time.Time       `gorm:"not null" json:"last_updated"`
}
