package database

import (
	"errors"
	"fmt"
	"time"

	"stockfolio/internal/logger"
	"stockfolio/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedStock struct {
	symbol string
	name   string
	price  string
}

var seedStocks = []seedStock{
	{"AAPL", "Apple Inc.", "175.43"},
	{"GOOGL", "Alphabet Inc.", "2750.12"},
	{"MSFT", "Microsoft Corporation", "338.85"},
	{"AMZN", "Amazon.com Inc.", "3380.00"},
	{"TSLA", "Tesla Inc.", "890.75"},
	{"META", "Meta Platforms Inc.", "325.20"},
	{"NVDA", "NVIDIA Corporation", "445.67"},
	{"NFLX", "Netflix Inc.", "425.89"},
	{"AMD", "Advanced Micro Devices Inc.", "110.45"},
	{"INTC", "Intel Corporation", "55.78"},
}

var seedPortfolios = []struct {
	name        string
	description string
}{
	{"Tech Growth Portfolio", "High-growth technology companies with strong innovation potential"},
	{"Dividend Income Portfolio", "Stable companies with consistent dividend payments"},
	{"Aggressive Growth Portfolio", "High-risk, high-reward growth stocks"},
	{"Blue Chip Portfolio", "Large, established companies with a history of reliable performance"},
	{"ESG Sustainable Portfolio", "Companies with strong environmental, social and governance practices"},
	{"Value Investing Portfolio", "Undervalued companies trading below their intrinsic value"},
	{"International Diversified", "Global exposure across developed and emerging markets"},
	{"Small Cap Growth", "Smaller companies with significant growth potential"},
	{"REIT Portfolio", "Real estate investment trusts for property market exposure"},
	{"Balanced Conservative", "A lower-risk mix focused on capital preservation"},
}

// Seed creates the stock universe, the starter portfolios and the cash
// account if they are missing. Running it again changes nothing.
func Seed(db *gorm.DB, startingBalance decimal.Decimal) error {
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		for _, s := range seedStocks {
			price := decimal.RequireFromString(s.price)
			stock := models.Stock{
				Symbol:         s.symbol,
				Name:           s.name,
				CurrentPrice:   price,
				PreviousClose:  price,
				PriceVersion:   1,
				PriceUpdatedAt: &now,
			}
			if err := tx.Where(models.Stock{Symbol: s.symbol}).FirstOrCreate(&stock).Error; err != nil {
				return fmt.Errorf("seed stock %s: %w", s.symbol, err)
			}
		}

		for _, p := range seedPortfolios {
			portfolio := models.Portfolio{Name: p.name, Description: p.description}
			if err := tx.Where("name = ?", p.name).FirstOrCreate(&portfolio).Error; err != nil {
				return fmt.Errorf("seed portfolio %q: %w", p.name, err)
			}
		}

		var account models.AccountBalance
		err := tx.First(&account, models.AccountID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			account = models.AccountBalance{ID: models.AccountID, Balance: startingBalance, LastUpdated: now}
			if err := tx.Create(&account).Error; err != nil {
				return fmt.Errorf("seed account balance: %w", err)
			}
			logger.Get().Infow("Seeded account balance", "balance", startingBalance.StringFixed(2))
			return nil
		}
		return err
	})
}
