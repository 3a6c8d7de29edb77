package shopify

import (
	"context"

	"storefront-backend/internal/domain"
)

const productFragment = `
fragment productFields on Product {
  id
  handle
  title
  description
  descriptionHtml
  availableForSale
  tags
  priceRange {
    minVariantPrice { amount currencyCode }
    maxVariantPrice { amount currencyCode }
  }
  options { id name values }
  variants(first: 100) {
    edges {
      node {
        id
        title
        availableForSale
        selectedOptions { name value }
        price { amount currencyCode }
      }
    }
  }
  images(first: 20) {
    edges { node { url altText width height } }
  }
  featuredImage { url altText width height }
  seo { title description }
  metafields(identifiers: $metafieldIdentifiers) {
    namespace
    key
    value
    type
    reference {
      ... on MediaImage { image { url altText width height } }
    }
  }
}`

// metafieldIdentifiers names the typed product attributes the storefront
// renders. Unknown identifiers come back null and are dropped.
var metafieldIdentifiers = []map[string]any{
	{"namespace": "custom", "key": "case_color"},
	{"namespace": "custom", "key": "potency"},
	{"namespace": "custom", "key": "terpenes"},
	{"namespace": "custom", "key": "effects"},
}

type productResource struct {
	ID              string                   `json:"id"`
	Handle          string                   `json:"handle"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	DescriptionHTML string                   `json:"descriptionHtml"`
	Available       bool                     `json:"availableForSale"`
	Tags            []string                 `json:"tags"`
	PriceRange      domain.PriceRange        `json:"priceRange"`
	Options         []domain.ProductOption   `json:"options"`
	Variants        connection[variantNode]  `json:"variants"`
	Images          connection[domain.Image] `json:"images"`
	FeaturedImage   *domain.Image            `json:"featuredImage"`
	SEO             domain.SEO               `json:"seo"`
	Metafields      []*domain.Metafield      `json:"metafields"`
}

type variantNode struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	AvailableForSale bool                    `json:"availableForSale"`
	SelectedOptions  []domain.SelectedOption `json:"selectedOptions"`
	Price            domain.Money            `json:"price"`
}

func toDomainProduct(res productResource) domain.Product {
	variants := make([]domain.ProductVariant, 0, len(res.Variants.Edges))
	for _, v := range res.Variants.nodes() {
		variants = append(variants, domain.ProductVariant{
			ID:               v.ID,
			Title:            v.Title,
			AvailableForSale: v.AvailableForSale,
			SelectedOptions:  v.SelectedOptions,
			Price:            v.Price,
		})
	}
	metafields := make([]domain.Metafield, 0, len(res.Metafields))
	for _, m := range res.Metafields {
		if m != nil {
			metafields = append(metafields, *m)
		}
	}
	return domain.Product{
		ID:               res.ID,
		Handle:           res.Handle,
		Title:            res.Title,
		Description:      res.Description,
		DescriptionHTML:  res.DescriptionHTML,
		AvailableForSale: res.Available,
		PriceRange:       res.PriceRange,
		Options:          res.Options,
		Variants:         variants,
		Images:           res.Images.nodes(),
		FeaturedImage:    res.FeaturedImage,
		Metafields:       metafields,
		SEO:              res.SEO,
		Tags:             res.Tags,
	}
}

// GetProduct fetches one product by handle. Missing handles map to
// domain.ErrNotFound so pages can degrade instead of crashing.
func (c *Client) GetProduct(ctx context.Context, handle string) (*domain.Product, error) {
	query := `query getProduct($handle: String!, $metafieldIdentifiers: [HasMetafieldsIdentifier!]!) {
  product(handle: $handle) { ...productFields }
}` + productFragment

	data, err := execute[struct {
		Product *productResource `json:"product"`
	}](ctx, c, query, map[string]any{"handle": handle, "metafieldIdentifiers": metafieldIdentifiers})
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, domain.ErrNotFound
	}
	p := toDomainProduct(*data.Product)
	return &p, nil
}

// ListProducts fetches up to first products, optionally filtered by a
// platform search query string.
func (c *Client) ListProducts(ctx context.Context, first int, search string) ([]domain.Product, error) {
	query := `query listProducts($first: Int!, $query: String, $metafieldIdentifiers: [HasMetafieldsIdentifier!]!) {
  products(first: $first, query: $query, sortKey: TITLE) {
    edges { node { ...productFields } }
  }
}` + productFragment

	vars := map[string]any{"first": first, "metafieldIdentifiers": metafieldIdentifiers}
	if search != "" {
		vars["query"] = search
	}
	data, err := execute[struct {
		Products connection[productResource] `json:"products"`
	}](ctx, c, query, vars)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(data.Products.Edges))
	for _, res := range data.Products.nodes() {
		out = append(out, toDomainProduct(res))
	}
	return out, nil
}

// GetCollectionProducts fetches a collection and its products by handle.
func (c *Client) GetCollectionProducts(ctx context.Context, handle string, first int) (*domain.Collection, []domain.Product, error) {
	query := `query getCollection($handle: String!, $first: Int!, $metafieldIdentifiers: [HasMetafieldsIdentifier!]!) {
  collection(handle: $handle) {
    handle
    title
    description
    seo { title description }
    products(first: $first, sortKey: BEST_SELLING) {
      edges { node { ...productFields } }
    }
  }
}` + productFragment

	data, err := execute[struct {
		Collection *struct {
			Handle      string                      `json:"handle"`
			Title       string                      `json:"title"`
			Description string                      `json:"description"`
			SEO         domain.SEO                  `json:"seo"`
			Products    connection[productResource] `json:"products"`
		} `json:"collection"`
	}](ctx, c, query, map[string]any{"handle": handle, "first": first, "metafieldIdentifiers": metafieldIdentifiers})
	if err != nil {
		return nil, nil, err
	}
	if data.Collection == nil {
		return nil, nil, domain.ErrNotFound
	}
	col := &domain.Collection{
		Handle:      data.Collection.Handle,
		Title:       data.Collection.Title,
		Description: data.Collection.Description,
		SEO:         data.Collection.SEO,
	}
	products := make([]domain.Product, 0, len(data.Collection.Products.Edges))
	for _, res := range data.Collection.Products.nodes() {
		products = append(products, toDomainProduct(res))
	}
	return col, products, nil
}
