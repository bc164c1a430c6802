package models

import (
	"time"

	"stockfolio/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for soft-deletable tables
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&Stock{},
		&Portfolio{},
		&Holding{},
		&Transaction{},
		&AccountBalance{},
		&NetWorthSnapshot{},
		&AuditLog{},
	}
}
