package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kiarashop/storefront/pkg/enums"
)

// PlaceOrder submits an order for the authenticated customer.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var out Order
	err := c.call(ctx, callOptions{
		operation: "place_order",
		method:    http.MethodPost,
		path:      "/orders",
		body:      req,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceGuestOrder submits an order without a session; the server associates it
// by contact details only.
func (c *Client) PlaceGuestOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var out Order
	err := c.call(ctx, callOptions{
		operation: "place_guest_order",
		method:    http.MethodPost,
		path:      "/orders/guest",
		body:      req,
		out:       &out,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrder fetches one order, e.g. for receipt rendering.
func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var out Order
	err := c.call(ctx, callOptions{
		operation: "get_order",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/orders/%d", id),
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyOrders fetches the authenticated customer's own orders.
func (c *Client) ListMyOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	err := c.call(ctx, callOptions{
		operation: "list_my_orders",
		method:    http.MethodGet,
		path:      "/orders/my-orders",
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAllOrders fetches every order; the server enforces the admin role.
func (c *Client) ListAllOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	err := c.call(ctx, callOptions{
		operation: "list_all_orders",
		method:    http.MethodGet,
		path:      "/orders/admin/all",
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrderStatus requests an admin status transition.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status enums.OrderStatus) (*Order, error) {
	var out Order
	err := c.call(ctx, callOptions{
		operation: "update_order_status",
		method:    http.MethodPut,
		path:      fmt.Sprintf("/orders/%d/status?status=%s", id, url.QueryEscape(status.String())),
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
