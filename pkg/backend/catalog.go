package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	err := c.call(ctx, callOptions{
		operation: "list_products",
		method:    http.MethodGet,
		path:      "/products",
		out:       &out,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches a single product by id. This direct fetch is the
// canonical lookup; callers must not fall back to scanning a stale list.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out Product
	err := c.call(ctx, callOptions{
		operation: "get_product",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/products/%d", id),
		out:       &out,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCategories fetches the category tree.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := c.call(ctx, callOptions{
		operation: "list_categories",
		method:    http.MethodGet,
		path:      "/categories",
		out:       &out,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitReview posts a product review for the authenticated customer.
func (c *Client) SubmitReview(ctx context.Context, productID int64, review Review) error {
	return c.call(ctx, callOptions{
		operation: "submit_review",
		method:    http.MethodPost,
		path:      fmt.Sprintf("/reviews/product/%d", productID),
		body:      review,
	})
}
