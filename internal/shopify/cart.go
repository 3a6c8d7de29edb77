package shopify

import (
	"context"
	"fmt"

	"storefront-backend/internal/domain"
)

const cartFragment = `
fragment cartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
    totalTaxAmount { amount currencyCode }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        cost {
          totalAmount { amount currencyCode }
          amountPerQuantity { amount currencyCode }
        }
        merchandise {
          ... on ProductVariant {
            id
            title
            selectedOptions { name value }
            product {
              id
              handle
              title
              featuredImage { url altText width height }
            }
          }
        }
      }
    }
  }
}`

type connection[T any] struct {
	Edges []edge[T] `json:"edges"`
}

type edge[T any] struct {
	Node T `json:"node"`
}

func (c connection[T]) nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

type cartResource struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
	Cost          struct {
		SubtotalAmount domain.Money  `json:"subtotalAmount"`
		TotalAmount    domain.Money  `json:"totalAmount"`
		TotalTaxAmount *domain.Money `json:"totalTaxAmount"`
	} `json:"cost"`
	Lines connection[cartLineResource] `json:"lines"`
}

type cartLineResource struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Cost     struct {
		TotalAmount       domain.Money `json:"totalAmount"`
		AmountPerQuantity domain.Money `json:"amountPerQuantity"`
	} `json:"cost"`
	Merchandise struct {
		ID              string                  `json:"id"`
		Title           string                  `json:"title"`
		SelectedOptions []domain.SelectedOption `json:"selectedOptions"`
		Product         struct {
			ID            string        `json:"id"`
			Handle        string        `json:"handle"`
			Title         string        `json:"title"`
			FeaturedImage *domain.Image `json:"featuredImage"`
		} `json:"product"`
	} `json:"merchandise"`
}

type cartMutationPayload struct {
	Cart       *cartResource `json:"cart"`
	UserErrors []UserError   `json:"userErrors"`
}

func toDomainCart(res cartResource) *domain.Cart {
	out := &domain.Cart{
		ID:            res.ID,
		CheckoutURL:   res.CheckoutURL,
		TotalQuantity: res.TotalQuantity,
		Lines:         []domain.CartLine{},
	}
	out.Cost.SubtotalAmount = res.Cost.SubtotalAmount
	out.Cost.TotalAmount = res.Cost.TotalAmount
	if res.Cost.TotalTaxAmount != nil {
		out.Cost.TotalTaxAmount = *res.Cost.TotalTaxAmount
	} else {
		out.Cost.TotalTaxAmount = domain.Money{Amount: "0", CurrencyCode: res.Cost.TotalAmount.CurrencyCode}
	}
	for _, node := range res.Lines.nodes() {
		line := domain.CartLine{
			ID:       node.ID,
			Quantity: node.Quantity,
			Cost: domain.LineCost{
				TotalAmount:       node.Cost.TotalAmount,
				AmountPerQuantity: node.Cost.AmountPerQuantity,
			},
			Merchandise: domain.Merchandise{
				ID:              node.Merchandise.ID,
				Title:           node.Merchandise.Title,
				SelectedOptions: node.Merchandise.SelectedOptions,
				Product: domain.ProductSummary{
					ID:            node.Merchandise.Product.ID,
					Handle:        node.Merchandise.Product.Handle,
					Title:         node.Merchandise.Product.Title,
					FeaturedImage: node.Merchandise.Product.FeaturedImage,
				},
			},
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

// CartLineInput adds a merchandise id at a quantity.
type CartLineInput struct {
	MerchandiseID string
	Quantity      int
}

// CartLineUpdateInput changes an existing line's quantity.
type CartLineUpdateInput struct {
	LineID   string
	Quantity int
}

// CreateCart creates an empty cart on the platform.
func (c *Client) CreateCart(ctx context.Context) (*domain.Cart, error) {
	query := `mutation cartCreate { cartCreate { cart { ...cartFields } userErrors { field message } } }` + cartFragment
	data, err := execute[struct {
		CartCreate cartMutationPayload `json:"cartCreate"`
	}](ctx, c, query, nil)
	if err != nil {
		return nil, err
	}
	if err := firstUserError(data.CartCreate.UserErrors); err != nil {
		return nil, err
	}
	if data.CartCreate.Cart == nil {
		return nil, fmt.Errorf("cartCreate returned no cart")
	}
	return toDomainCart(*data.CartCreate.Cart), nil
}

// GetCart fetches the confirmed cart. A null cart (expired server-side) maps
// to domain.ErrNotFound.
func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	query := `query getCart($cartId: ID!) { cart(id: $cartId) { ...cartFields } }` + cartFragment
	data, err := execute[struct {
		Cart *cartResource `json:"cart"`
	}](ctx, c, query, map[string]any{"cartId": cartID})
	if err != nil {
		return nil, err
	}
	if data.Cart == nil {
		return nil, domain.ErrNotFound
	}
	return toDomainCart(*data.Cart), nil
}

// AddCartLines appends merchandise to the cart.
func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []CartLineInput) (*domain.Cart, error) {
	query := `mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) { cart { ...cartFields } userErrors { field message } }
}` + cartFragment

	wire := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		wire = append(wire, map[string]any{"merchandiseId": l.MerchandiseID, "quantity": l.Quantity})
	}
	data, err := execute[struct {
		CartLinesAdd cartMutationPayload `json:"cartLinesAdd"`
	}](ctx, c, query, map[string]any{"cartId": cartID, "lines": wire})
	if err != nil {
		return nil, err
	}
	return mutationCart(data.CartLinesAdd)
}

// UpdateCartLines changes line quantities.
func (c *Client) UpdateCartLines(ctx context.Context, cartID string, lines []CartLineUpdateInput) (*domain.Cart, error) {
	query := `mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) { cart { ...cartFields } userErrors { field message } }
}` + cartFragment

	wire := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		wire = append(wire, map[string]any{"id": l.LineID, "quantity": l.Quantity})
	}
	data, err := execute[struct {
		CartLinesUpdate cartMutationPayload `json:"cartLinesUpdate"`
	}](ctx, c, query, map[string]any{"cartId": cartID, "lines": wire})
	if err != nil {
		return nil, err
	}
	return mutationCart(data.CartLinesUpdate)
}

// RemoveCartLines deletes lines outright.
func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	query := `mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) { cart { ...cartFields } userErrors { field message } }
}` + cartFragment

	data, err := execute[struct {
		CartLinesRemove cartMutationPayload `json:"cartLinesRemove"`
	}](ctx, c, query, map[string]any{"cartId": cartID, "lineIds": lineIDs})
	if err != nil {
		return nil, err
	}
	return mutationCart(data.CartLinesRemove)
}

func mutationCart(payload cartMutationPayload) (*domain.Cart, error) {
	if err := firstUserError(payload.UserErrors); err != nil {
		return nil, err
	}
	if payload.Cart == nil {
		return nil, domain.ErrNotFound
	}
	return toDomainCart(*payload.Cart), nil
}
