package models

import (
	"time"

	"stockfolio/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock is a tradable instrument from the seeded universe. The price columns
// form a versioned quote record: every accepted price change bumps
// PriceVersion and stamps PriceUpdatedAt, so readers can judge staleness.
type Stock struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol         string          `gorm:"size:10;not null;uniqueIndex" json:"symbol"`
	Name           string          `gorm:"not null" json:"name"`
	CurrentPrice   decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0" json:"current_price"`
	PreviousClose  decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0" json:"previous_close"`
	ChangePercent  decimal.Decimal `gorm:"type:numeric(12,4);not null;default:0" json:"change_percent"`
	Volume         int64           `gorm:"not null;default:0" json:"volume"`
	PriceVersion   int64           `gorm:"not null;default:0" json:"price_version"`
	PriceUpdatedAt *time.Time      `json:"price_updated_at,omitempty"`
	Watchlist      bool            `gorm:"not null;default:false" json:"watchlist"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
