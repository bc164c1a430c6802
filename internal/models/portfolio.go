package models

// Portfolio groups holdings. Deleting a portfolio soft-deletes the row so
// the transaction history keeps a resolvable reference; names are unique
// among live portfolios only.
type Portfolio struct {
	Base
	Name        string `gorm:"not null;uniqueIndex:uq_portfolios_name,where:deleted_at IS NULL" json:"name"`
	Description string `json:"description"`

	Holdings []Holding `gorm:"foreignKey:PortfolioID" json:"holdings,omitempty"`
}
