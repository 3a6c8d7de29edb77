package cart

import "storefront-backend/internal/domain"

// UpdateType selects how UpdateItem changes a line's quantity.
type UpdateType string

const (
	UpdatePlus   UpdateType = "plus"
	UpdateMinus  UpdateType = "minus"
	UpdateDelete UpdateType = "delete"
)

// AddItem applies an optimistic add: an existing line for the same merchandise
// is bumped by one, otherwise a new quantity-1 line is appended. The input
// cart is not mutated.
func AddItem(c domain.Cart, variant domain.ProductVariant, product domain.Product) domain.Cart {
	lines := make([]domain.CartLine, len(c.Lines))
	copy(lines, c.Lines)

	merged := false
	for i, line := range lines {
		if line.Merchandise.ID == variant.ID {
			lines[i] = withQuantity(line, line.Quantity+1)
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, buildLine(variant, product))
	}

	c.Lines = lines
	return recomputeTotals(c)
}

// UpdateItem applies plus/minus/delete to the line matching merchandiseID.
// Quantities that reach zero remove the line entirely. An unknown merchandise
// id returns the cart unchanged.
func UpdateItem(c domain.Cart, merchandiseID string, t UpdateType) domain.Cart {
	idx := -1
	for i, line := range c.Lines {
		if line.Merchandise.ID == merchandiseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c
	}

	lines := make([]domain.CartLine, len(c.Lines))
	copy(lines, c.Lines)

	quantity := lines[idx].Quantity
	switch t {
	case UpdatePlus:
		quantity++
	case UpdateMinus:
		quantity--
		if quantity < 0 {
			quantity = 0
		}
	case UpdateDelete:
		quantity = 0
	default:
		return c
	}

	if quantity <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	} else {
		lines[idx] = withQuantity(lines[idx], quantity)
	}

	c.Lines = lines
	return recomputeTotals(c)
}
