package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kiarashop/storefront/pkg/config"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/enums"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := config.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second}
	return New(cfg, staticTokens(token), nil), server
}

func TestPlaceOrderSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 41, "total": 1360, "deliveryCharge": 60, "status": "pending"}`))
	}), "tok-123")

	order, err := client.PlaceOrder(context.Background(), OrderRequest{})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if order.ID != 41 {
		t.Fatalf("unexpected order id %d", order.ID)
	}
	if order.Subtotal().String() != "1300" {
		t.Fatalf("expected subtotal 1300, got %s", order.Subtotal())
	}
}

func TestPlaceGuestOrderOmitsAuthorization(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders/guest" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("guest order must not carry a token")
		}
		w.Write([]byte(`{"id": 7, "status": "pending"}`))
	}), "stale-token")

	if _, err := client.PlaceGuestOrder(context.Background(), OrderRequest{}); err != nil {
		t.Fatalf("guest order: %v", err)
	}
}

func TestServerRejectionRelaysMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "product 9 is out of stock"}`))
	}), "")

	_, err := client.PlaceOrder(context.Background(), OrderRequest{})
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeServerRejected {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if typed.Message() != "product 9 is out of stock" {
		t.Fatalf("server message not relayed: %q", typed.Message())
	}
}

func TestPlainTextRejectionIsRelayed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Invalid email or password"))
	}), "")

	_, err := client.Login(context.Background(), "x@y.z", "nope")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "Invalid email or password" {
		t.Fatalf("plain-text message not relayed: %v", err)
	}
}

func TestNotFoundMapsToNotFoundCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}), "")

	_, err := client.GetOrder(context.Background(), 9999)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNetworkFailureMapsToNetworkCode(t *testing.T) {
	cfg := config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond}
	client := New(cfg, nil, nil)

	_, err := client.ListProducts(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestUpdateOrderStatusBuildsQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"id": 3, "status": "shipped"}`))
	}), "admin-token")

	order, err := client.UpdateOrderStatus(context.Background(), 3, enums.OrderStatusShipped)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if gotQuery != "status=shipped" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if order.Status != enums.OrderStatusShipped {
		t.Fatalf("unexpected status %s", order.Status)
	}
}
