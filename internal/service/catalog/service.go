package catalog

import (
	"context"
	"io"
	"log"

	"storefront-backend/internal/domain"
)

type catalogClient interface {
	GetProduct(ctx context.Context, handle string) (*domain.Product, error)
	ListProducts(ctx context.Context, first int, search string) ([]domain.Product, error)
	GetCollectionProducts(ctx context.Context, handle string, first int) (*domain.Collection, []domain.Product, error)
}

// ProductView pairs the catalog projection with its decoded attributes, so
// consumers never parse metafield strings themselves.
type ProductView struct {
	domain.Product
	Attributes Attributes `json:"attributes"`
}

// CollectionView is a collection plus its decorated products.
type CollectionView struct {
	domain.Collection
	Products []ProductView `json:"products"`
}

// Service reads the upstream catalog. Products are fetched fresh per request;
// there is no local catalog state to mutate.
type Service struct {
	platform catalogClient
	pageSize int
	logger   *log.Logger
}

// New builds the catalog service. A nil logger discards.
func New(platform catalogClient, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{platform: platform, pageSize: 50, logger: logger}
}

// Product fetches one product by handle with attributes decoded.
func (s *Service) Product(ctx context.Context, handle string) (*ProductView, error) {
	p, err := s.platform.GetProduct(ctx, handle)
	if err != nil {
		return nil, err
	}
	return &ProductView{Product: *p, Attributes: DecodeAttributes(p.Metafields)}, nil
}

// Products lists catalog products, optionally filtered by a search string.
func (s *Service) Products(ctx context.Context, search string) ([]ProductView, error) {
	products, err := s.platform.ListProducts(ctx, s.pageSize, search)
	if err != nil {
		return nil, err
	}
	return decorate(products), nil
}

// Collection fetches a collection and its products by handle.
func (s *Service) Collection(ctx context.Context, handle string) (*CollectionView, error) {
	col, products, err := s.platform.GetCollectionProducts(ctx, handle, s.pageSize)
	if err != nil {
		return nil, err
	}
	return &CollectionView{Collection: *col, Products: decorate(products)}, nil
}

func decorate(products []domain.Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, ProductView{Product: p, Attributes: DecodeAttributes(p.Metafields)})
	}
	return out
}
