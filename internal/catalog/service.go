package catalog

import (
	"context"
	"strings"

	"github.com/kiarashop/storefront/pkg/backend"
)

// Fetcher is the slice of the backend client the catalog needs.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]backend.Product, error)
	GetProduct(ctx context.Context, id int64) (*backend.Product, error)
	ListCategories(ctx context.Context) ([]backend.Category, error)
}

// Service serves product browsing. Search and category filtering run locally
// over the fetched list; the backend exposes no query parameters for them.
type Service struct {
	fetcher Fetcher
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Products lists the catalog, optionally narrowed by a case-insensitive name
// search and a category.
func (s *Service) Products(ctx context.Context, query string, categoryID int64) ([]backend.Product, error) {
	products, err := s.fetcher.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]backend.Product, 0, len(products))
	for _, product := range products {
		if categoryID != 0 && product.CategoryID != categoryID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(product.Name), query) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered, nil
}

// Product fetches one product by id, straight from the backend.
func (s *Service) Product(ctx context.Context, id int64) (*backend.Product, error) {
	return s.fetcher.GetProduct(ctx, id)
}

// Categories lists the store's categories.
func (s *Service) Categories(ctx context.Context) ([]backend.Category, error) {
	return s.fetcher.ListCategories(ctx)
}
