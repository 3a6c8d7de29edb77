package cart

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domain"
)

// DefaultCurrency is used for cart totals when no line carries a currency.
const DefaultCurrency = "USD"

// LineCost multiplies a decimal unit price string by a quantity and returns
// the result as a decimal string. An unparseable price yields "0".
func LineCost(quantity int, unitPrice string) string {
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return "0"
	}
	return price.Mul(decimal.NewFromInt(int64(quantity))).String()
}

// recomputeTotals rebuilds cart-level aggregates from the full line list.
// Currency comes from the first line; an empty cart keeps the default.
func recomputeTotals(c domain.Cart) domain.Cart {
	currency := DefaultCurrency
	if len(c.Lines) > 0 && c.Lines[0].Cost.TotalAmount.CurrencyCode != "" {
		currency = c.Lines[0].Cost.TotalAmount.CurrencyCode
	}

	total := decimal.Zero
	qty := 0
	for _, line := range c.Lines {
		qty += line.Quantity
		if amt, err := decimal.NewFromString(line.Cost.TotalAmount.Amount); err == nil {
			total = total.Add(amt)
		}
	}

	c.TotalQuantity = qty
	c.Cost = domain.CartCost{
		SubtotalAmount: domain.Money{Amount: total.String(), CurrencyCode: currency},
		TotalAmount:    domain.Money{Amount: total.String(), CurrencyCode: currency},
		TotalTaxAmount: domain.Money{Amount: "0", CurrencyCode: currency},
	}
	return c
}
