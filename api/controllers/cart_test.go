package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/internal/cart"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/kv"
)

type testCatalog struct {
	products map[int64]backend.Product
}

func (c *testCatalog) Products(ctx context.Context, query string, categoryID int64) ([]backend.Product, error) {
	out := []backend.Product{}
	for _, product := range c.products {
		out = append(out, product)
	}
	return out, nil
}

func (c *testCatalog) Product(ctx context.Context, id int64) (*backend.Product, error) {
	product, ok := c.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (c *testCatalog) Categories(ctx context.Context) ([]backend.Category, error) {
	return nil, nil
}

func withIDParam(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestAddCartItemResolvesProduct(t *testing.T) {
	store := cart.NewStore(kv.NewMemory(), nil)
	catalog := &testCatalog{products: map[int64]backend.Product{
		1: {ID: 1, Name: "Panjabi", Price: decimal.NewFromInt(500)},
	}}

	body := `{"productId":1,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AddCartItem(store, catalog, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body)
	}
	data := decodeEnvelope(t, resp.Body)
	if data["count"].(float64) != 2 {
		t.Fatalf("expected count 2, got %v", data["count"])
	}
	if store.Count() != 2 {
		t.Fatalf("store not updated, count=%d", store.Count())
	}
}

func TestAddCartItemRejectsMissingProductID(t *testing.T) {
	store := cart.NewStore(kv.NewMemory(), nil)
	catalog := &testCatalog{}

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items", strings.NewReader(`{"quantity":2}`))
	resp := httptest.NewRecorder()
	AddCartItem(store, catalog, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body)
	}
}

func TestSetCartItemQuantityZeroRemoves(t *testing.T) {
	store := cart.NewStore(kv.NewMemory(), nil)
	store.AddItem(context.Background(), backend.Product{ID: 1, Name: "Panjabi", Price: decimal.NewFromInt(500)}, 2)

	req := withIDParam(httptest.NewRequest(http.MethodPut, "/v1/cart/items/1", strings.NewReader(`{"quantity":0}`)), "1")
	resp := httptest.NewRecorder()
	SetCartItemQuantity(store, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body)
	}
	if store.Count() != 0 {
		t.Fatalf("expected empty cart, count=%d", store.Count())
	}
}

func TestRemoveCartItemInvalidID(t *testing.T) {
	store := cart.NewStore(kv.NewMemory(), nil)

	req := withIDParam(httptest.NewRequest(http.MethodDelete, "/v1/cart/items/abc", nil), "abc")
	resp := httptest.NewRecorder()
	RemoveCartItem(store, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body)
	}
}

func TestGetCartShowsLineTotals(t *testing.T) {
	store := cart.NewStore(kv.NewMemory(), nil)
	store.AddItem(context.Background(), backend.Product{ID: 1, Name: "Panjabi", Price: decimal.NewFromInt(500)}, 2)
	store.AddItem(context.Background(), backend.Product{ID: 2, Name: "Saree", Price: decimal.NewFromInt(300)}, 1)

	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	resp := httptest.NewRecorder()
	GetCart(store)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body)
	}
	data := decodeEnvelope(t, resp.Body)
	if data["total"] != "1300" {
		t.Fatalf("expected total 1300, got %v", data["total"])
	}
	items := data["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
}
