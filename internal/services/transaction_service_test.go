package services

import (
	"context"
	"testing"
	"time"

	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/testutil"
)

func TestTransactionService_ListTransactions(t *testing.T) {
	db := setupDB(t)
	tech, err := NewPortfolioService(db).CreatePortfolio(context.Background(), "Tech Growth", "")
	testutil.AssertNoError(t, err)
	income, err := NewPortfolioService(db).CreatePortfolio(context.Background(), "Dividend Income", "")
	testutil.AssertNoError(t, err)
	aapl := testutil.CreateTestStockWithSymbol(t, db, "AAPL", "175")
	ko := testutil.CreateTestStockWithSymbol(t, db, "KO", "60")

	base := time.Now().Add(-time.Hour)
	testutil.CreateTestTransaction(t, db, tech.ID, aapl.ID, models.TradeBuy, 10, "170", base)
	testutil.CreateTestTransaction(t, db, income.ID, ko.ID, models.TradeBuy, 20, "58", base.Add(time.Minute))
	testutil.CreateTestTransaction(t, db, tech.ID, aapl.ID, models.TradeSell, 4, "175", base.Add(2*time.Minute))
	svc := NewTransactionService(db)

	sell := models.TradeSell
	tests := []struct {
		name   string
		filter TransactionFilter
		want   []int64
	}{
		{"all_newest_first", TransactionFilter{}, []int64{4, 20, 10}},
		{"by_type", TransactionFilter{Type: &sell}, []int64{4}},
		{"search_symbol", TransactionFilter{Search: "ko"}, []int64{20}},
		{"search_portfolio_name", TransactionFilter{Search: "TECH"}, []int64{4, 10}},
		{"search_and_type", TransactionFilter{Search: "aapl", Type: &sell}, []int64{4}},
		{"second_page", TransactionFilter{Page: pagination.PageRequest{Page: 2, PageSize: 2}}, []int64{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, err := svc.ListTransactions(context.Background(), tt.filter)
			testutil.AssertNoError(t, err)
			if len(txns) != len(tt.want) {
				t.Fatalf("expected %d transactions, got %d", len(tt.want), len(txns))
			}
			for i, q := range tt.want {
				if txns[i].Quantity != q {
					t.Errorf("position %d: expected quantity %d, got %d", i, q, txns[i].Quantity)
				}
				if txns[i].Stock.Symbol == "" || txns[i].Portfolio.Name == "" {
					t.Errorf("position %d: expected stock and portfolio preloaded", i)
				}
			}
		})
	}
}
