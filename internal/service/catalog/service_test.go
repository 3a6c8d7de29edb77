package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront-backend/internal/domain"
)

type stubCatalog struct {
	product    *domain.Product
	productErr error
	list       []domain.Product
	listErr    error
	collection *domain.Collection
	lastSearch string
}

func (s *stubCatalog) GetProduct(context.Context, string) (*domain.Product, error) {
	return s.product, s.productErr
}

func (s *stubCatalog) ListProducts(_ context.Context, _ int, search string) ([]domain.Product, error) {
	s.lastSearch = search
	return s.list, s.listErr
}

func (s *stubCatalog) GetCollectionProducts(context.Context, string, int) (*domain.Collection, []domain.Product, error) {
	if s.listErr != nil {
		return nil, nil, s.listErr
	}
	return s.collection, s.list, nil
}

func TestProductDecodesAttributes(t *testing.T) {
	stub := &stubCatalog{product: &domain.Product{
		Handle: "prerolls",
		Metafields: []domain.Metafield{
			{Namespace: "custom", Key: "case_color", Value: "sage"},
			{Namespace: "custom", Key: "effects", Value: `["Calm"]`},
		},
	}}
	svc := New(stub, nil)

	got, err := svc.Product(context.Background(), "prerolls")
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if got.Attributes.CaseColor != "sage" || len(got.Attributes.Effects) != 1 {
		t.Fatalf("attributes = %+v", got.Attributes)
	}
}

func TestProductNotFoundPassesThrough(t *testing.T) {
	svc := New(&stubCatalog{productErr: domain.ErrNotFound}, nil)
	_, err := svc.Product(context.Background(), "gone")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductsForwardsSearch(t *testing.T) {
	stub := &stubCatalog{list: []domain.Product{{Handle: "a"}, {Handle: "b"}}}
	svc := New(stub, nil)

	got, err := svc.Products(context.Background(), "gummies")
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(got) != 2 || stub.lastSearch != "gummies" {
		t.Fatalf("got %d products, search=%q", len(got), stub.lastSearch)
	}
}

func TestCollectionDecorates(t *testing.T) {
	stub := &stubCatalog{
		collection: &domain.Collection{Handle: "featured", Title: "Featured"},
		list: []domain.Product{{
			Handle:     "a",
			Metafields: []domain.Metafield{{Namespace: "custom", Key: "case_color", Value: "teal"}},
		}},
	}
	svc := New(stub, nil)

	got, err := svc.Collection(context.Background(), "featured")
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if got.Title != "Featured" || len(got.Products) != 1 || got.Products[0].Attributes.CaseColor != "teal" {
		t.Fatalf("collection view = %+v", got)
	}
}
