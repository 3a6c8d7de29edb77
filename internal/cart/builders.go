package cart

import "storefront-backend/internal/domain"

// NewEmptyCart returns a cart with no identity, zero totals and an empty line
// list. The platform assigns an ID on the first confirmed mutation.
func NewEmptyCart() domain.Cart {
	zero := domain.Money{Amount: "0", CurrencyCode: DefaultCurrency}
	return domain.Cart{
		Lines: []domain.CartLine{},
		Cost: domain.CartCost{
			SubtotalAmount: zero,
			TotalAmount:    zero,
			TotalTaxAmount: zero,
		},
	}
}

// buildLine constructs a quantity-1 line from a variant/product pair. The
// merchandise block is a snapshot, deliberately decoupled from the catalog.
func buildLine(variant domain.ProductVariant, product domain.Product) domain.CartLine {
	currency := variant.Price.CurrencyCode
	if currency == "" {
		currency = DefaultCurrency
	}
	return domain.CartLine{
		Quantity: 1,
		Cost: domain.LineCost{
			TotalAmount:       domain.Money{Amount: LineCost(1, variant.Price.Amount), CurrencyCode: currency},
			AmountPerQuantity: domain.Money{Amount: variant.Price.Amount, CurrencyCode: currency},
		},
		Merchandise: domain.Merchandise{
			ID:              variant.ID,
			Title:           variant.Title,
			SelectedOptions: variant.SelectedOptions,
			Product: domain.ProductSummary{
				ID:            product.ID,
				Handle:        product.Handle,
				Title:         product.Title,
				FeaturedImage: product.FeaturedImage,
				Metafields:    product.Metafields,
			},
		},
	}
}

// withQuantity returns a copy of the line at the given quantity with its total
// recomputed from the stored unit price.
func withQuantity(line domain.CartLine, quantity int) domain.CartLine {
	line.Quantity = quantity
	line.Cost.TotalAmount.Amount = LineCost(quantity, line.Cost.AmountPerQuantity.Amount)
	return line
}
