// Package valuation turns ledger positions and prices into market values and
// profit/loss figures. Everything here is a pure function of its inputs:
// nothing is persisted and inputs are never mutated.
//
// Arithmetic is done in decimal at full precision. Rounding to cents happens
// only at presentation, through Round2.
package valuation

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Position is a quantity of one stock bought at a weighted average price.
type Position struct {
	Symbol      string
	Quantity    int64
	AvgBuyPrice decimal.Decimal
}

// Prices maps a symbol to its current price.
type Prices map[string]decimal.Decimal

// HoldingValue is a position valued at a price.
type HoldingValue struct {
	Position
	Price                decimal.Decimal
	CurrentValue         decimal.Decimal
	CostBasis            decimal.Decimal
	ProfitLoss           decimal.Decimal
	ProfitLossPercentage decimal.Decimal
}

// PortfolioValue aggregates the holdings of one portfolio.
type PortfolioValue struct {
	Holdings             []HoldingValue
	TotalValue           decimal.Decimal
	TotalCostBasis       decimal.Decimal
	TotalProfitLoss      decimal.Decimal
	ProfitLossPercentage decimal.Decimal
}

// AccountValue aggregates every portfolio plus cash.
type AccountValue struct {
	Cash                 decimal.Decimal
	TotalPortfolioValue  decimal.Decimal
	TotalCostBasis       decimal.Decimal
	TotalProfitLoss      decimal.Decimal
	ProfitLossPercentage decimal.Decimal
	TotalNetWorth        decimal.Decimal
}

// ValueHolding values pos at price. A zero quantity yields zero value and
// zero profit/loss.
func ValueHolding(pos Position, price decimal.Decimal) HoldingValue {
	hv := HoldingValue{Position: pos, Price: price}
	if pos.Quantity <= 0 {
		return hv
	}
	qty := decimal.NewFromInt(pos.Quantity)
	hv.CurrentValue = qty.Mul(price)
	hv.CostBasis = qty.Mul(pos.AvgBuyPrice)
	hv.ProfitLoss = hv.CurrentValue.Sub(hv.CostBasis)
	hv.ProfitLossPercentage = Percentage(hv.ProfitLoss, hv.CostBasis)
	return hv
}

// ValuePortfolio values every position and sums the results. A position
// whose symbol has no price is valued at zero.
func ValuePortfolio(positions []Position, prices Prices) PortfolioValue {
	pv := PortfolioValue{Holdings: make([]HoldingValue, 0, len(positions))}
	for _, pos := range positions {
		hv := ValueHolding(pos, prices[pos.Symbol])
		pv.Holdings = append(pv.Holdings, hv)
		pv.TotalValue = pv.TotalValue.Add(hv.CurrentValue)
		pv.TotalCostBasis = pv.TotalCostBasis.Add(hv.CostBasis)
	}
	pv.TotalProfitLoss = pv.TotalValue.Sub(pv.TotalCostBasis)
	pv.ProfitLossPercentage = Percentage(pv.TotalProfitLoss, pv.TotalCostBasis)
	return pv
}

// ValueAccount adds cash to the value of all portfolios.
func ValueAccount(portfolios []PortfolioValue, cash decimal.Decimal) AccountValue {
	av := AccountValue{Cash: cash}
	for _, pv := range portfolios {
		av.TotalPortfolioValue = av.TotalPortfolioValue.Add(pv.TotalValue)
		av.TotalCostBasis = av.TotalCostBasis.Add(pv.TotalCostBasis)
	}
	av.TotalProfitLoss = av.TotalPortfolioValue.Sub(av.TotalCostBasis)
	av.ProfitLossPercentage = Percentage(av.TotalProfitLoss, av.TotalCostBasis)
	av.TotalNetWorth = cash.Add(av.TotalPortfolioValue)
	return av
}

// Percentage returns part/whole*100, or zero when whole is not positive.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// Round2 rounds d to cents for presentation.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
