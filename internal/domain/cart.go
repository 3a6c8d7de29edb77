package domain

// Money is a decimal amount paired with an ISO currency code. Amounts travel
// as decimal strings end to end to avoid float drift.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Cart is the local projection of the platform cart. ID and CheckoutURL stay
// empty until the platform confirms the first mutation.
type Cart struct {
	ID            string     `json:"id,omitempty"`
	CheckoutURL   string     `json:"checkoutUrl,omitempty"`
	Lines         []CartLine `json:"lines"`
	Cost          CartCost   `json:"cost"`
	TotalQuantity int        `json:"totalQuantity"`
}

// CartCost aggregates cart-level totals. Tax is fixed at zero locally; the
// platform computes real tax at checkout.
type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
	TotalAmount    Money `json:"totalAmount"`
	TotalTaxAmount Money `json:"totalTaxAmount"`
}

// CartLine is one merchandise entry in a cart. A line with quantity 0 is never
// retained; the reducer removes it instead.
type CartLine struct {
	ID          string      `json:"id,omitempty"`
	Quantity    int         `json:"quantity"`
	Cost        LineCost    `json:"cost"`
	Merchandise Merchandise `json:"merchandise"`
}

// LineCost keeps the unit price alongside the line total so quantity changes
// never have to re-derive it by division.
type LineCost struct {
	TotalAmount       Money `json:"totalAmount"`
	AmountPerQuantity Money `json:"amountPerQuantity"`
}

// Merchandise is a read-only snapshot of the variant at the time it was added,
// not a live reference into the catalog.
type Merchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Product         ProductSummary   `json:"product"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductSummary is the denormalized product slice embedded in a cart line.
type ProductSummary struct {
	ID            string      `json:"id"`
	Handle        string      `json:"handle"`
	Title         string      `json:"title"`
	FeaturedImage *Image      `json:"featuredImage,omitempty"`
	Metafields    []Metafield `json:"metafields,omitempty"`
}
