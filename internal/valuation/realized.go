package valuation

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one executed fill used for realized profit/loss.
type Trade struct {
	Portfolio string
	Symbol    string
	Sell      bool
	Quantity  int64
	Price     decimal.Decimal
	At        time.Time
}

// Realized summarizes the profit/loss locked in by sells.
type Realized struct {
	Amount        decimal.Decimal
	Percentage    decimal.Decimal
	SoldValue     decimal.Decimal
	SoldCostBasis decimal.Decimal
}

type lot struct {
	quantity int64
	price    decimal.Decimal
}

// RealizedPL matches sells against earlier buys first-in first-out, per
// portfolio and symbol. Trades are ordered by time; ties keep input order.
// Sell quantity with no lot left to match contributes zero cost.
func RealizedPL(trades []Trade) Realized {
	ordered := slices.Clone(trades)
	slices.SortStableFunc(ordered, func(a, b Trade) int {
		return a.At.Compare(b.At)
	})

	type key struct{ portfolio, symbol string }
	lots := make(map[key][]lot)

	var r Realized
	for _, t := range ordered {
		k := key{t.Portfolio, t.Symbol}
		if !t.Sell {
			lots[k] = append(lots[k], lot{quantity: t.Quantity, price: t.Price})
			continue
		}

		remaining := t.Quantity
		cost := decimal.Zero
		queue := lots[k]
		for remaining > 0 && len(queue) > 0 {
			take := min(remaining, queue[0].quantity)
			cost = cost.Add(queue[0].price.Mul(decimal.NewFromInt(take)))
			remaining -= take
			queue[0].quantity -= take
			if queue[0].quantity == 0 {
				queue = queue[1:]
			}
		}
		lots[k] = queue

		value := t.Price.Mul(decimal.NewFromInt(t.Quantity))
		r.SoldValue = r.SoldValue.Add(value)
		r.SoldCostBasis = r.SoldCostBasis.Add(cost)
	}

	r.Amount = r.SoldValue.Sub(r.SoldCostBasis)
	r.Percentage = Percentage(r.Amount, r.SoldCostBasis)
	return r
}
