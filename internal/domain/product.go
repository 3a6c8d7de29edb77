package domain

// Product is a read-only projection of the upstream catalog entry. It is
// fetched fresh per request and never mutated locally.
type Product struct {
	ID               string           `json:"id"`
	Handle           string           `json:"handle"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	DescriptionHTML  string           `json:"descriptionHtml,omitempty"`
	AvailableForSale bool             `json:"availableForSale"`
	PriceRange       PriceRange       `json:"priceRange"`
	Options          []ProductOption  `json:"options,omitempty"`
	Variants         []ProductVariant `json:"variants,omitempty"`
	Images           []Image          `json:"images,omitempty"`
	FeaturedImage    *Image           `json:"featuredImage,omitempty"`
	Metafields       []Metafield      `json:"metafields,omitempty"`
	SEO              SEO              `json:"seo"`
	Tags             []string         `json:"tags,omitempty"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

type ProductOption struct {
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ProductVariant is a purchasable variation of a product.
type ProductVariant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions,omitempty"`
	Price            Money            `json:"price"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Collection groups products under a handle, mirroring the platform's
// collection object.
type Collection struct {
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SEO         SEO    `json:"seo"`
}
