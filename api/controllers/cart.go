package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/api/responses"
	"github.com/kiarashop/storefront/api/validators"
	"github.com/kiarashop/storefront/internal/cart"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/logger"
)

type cartItemView struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartView struct {
	Items []cartItemView  `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type addItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,min=1"`
	Quantity  int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func viewOf(store *cart.Store) cartView {
	items := store.Items()
	view := cartView{
		Items: make([]cartItemView, 0, len(items)),
		Count: store.Count(),
		Total: store.Total(),
	}
	for _, item := range items {
		view.Items = append(view.Items, cartItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return view
}

// GetCart serves the active cart partition.
func GetCart(store *cart.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, viewOf(store))
	}
}

// AddCartItem resolves the product and merges it into the cart.
func AddCartItem(store *cart.Store, catalog CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalog.Product(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.AddItem(r.Context(), *product, payload.Quantity)
		responses.WriteSuccessStatus(w, http.StatusCreated, viewOf(store))
	}
}

// SetCartItemQuantity overwrites a line's quantity; zero or less removes it.
func SetCartItemQuantity(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.SetQuantity(r.Context(), id, payload.Quantity)
		responses.WriteSuccess(w, viewOf(store))
	}
}

// RemoveCartItem drops a line from the cart.
func RemoveCartItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.RemoveItem(r.Context(), id)
		responses.WriteSuccess(w, viewOf(store))
	}
}

// ClearCart empties the active partition.
func ClearCart(store *cart.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Clear(r.Context())
		responses.WriteSuccess(w, viewOf(store))
	}
}
