package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/pkg/backend"
)

type stubFetcher struct {
	products []backend.Product
}

func (s *stubFetcher) ListProducts(ctx context.Context) ([]backend.Product, error) {
	return s.products, nil
}

func (s *stubFetcher) GetProduct(ctx context.Context, id int64) (*backend.Product, error) {
	for _, product := range s.products {
		if product.ID == id {
			p := product
			return &p, nil
		}
	}
	return nil, nil
}

func (s *stubFetcher) ListCategories(ctx context.Context) ([]backend.Category, error) {
	return []backend.Category{{ID: 1, Name: "Clothing"}}, nil
}

func testProducts() []backend.Product {
	return []backend.Product{
		{ID: 1, Name: "Cotton Panjabi", CategoryID: 1, Price: decimal.NewFromInt(500)},
		{ID: 2, Name: "Silk Saree", CategoryID: 1, Price: decimal.NewFromInt(300)},
		{ID: 3, Name: "Clay Teapot", CategoryID: 2, Price: decimal.NewFromInt(150)},
	}
}

func TestProductsSearchIsCaseInsensitive(t *testing.T) {
	svc := NewService(&stubFetcher{products: testProducts()})

	got, err := svc.Products(context.Background(), "PANJABI", 0)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestProductsFiltersByCategory(t *testing.T) {
	svc := NewService(&stubFetcher{products: testProducts()})

	got, err := svc.Products(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestProductsCombinesQueryAndCategory(t *testing.T) {
	svc := NewService(&stubFetcher{products: testProducts()})

	got, err := svc.Products(context.Background(), "saree", 2)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("saree is not in category 2, got %+v", got)
	}
}

func TestProductsNoFiltersReturnsAll(t *testing.T) {
	svc := NewService(&stubFetcher{products: testProducts()})

	got, err := svc.Products(context.Background(), "  ", 0)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected the full catalog, got %d", len(got))
	}
}
