package controllers

import (
	"context"
	"net/http"

	"github.com/kiarashop/storefront/api/responses"
	"github.com/kiarashop/storefront/api/validators"
	"github.com/kiarashop/storefront/internal/receipt"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/enums"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/logger"
)

// OrderService is the order history and admin surface the controllers need.
type OrderService interface {
	Get(ctx context.Context, id int64) (*backend.Order, error)
	History(ctx context.Context) ([]backend.Order, error)
	AdminList(ctx context.Context) ([]backend.Order, error)
	AdminSetStatus(ctx context.Context, id int64, status enums.OrderStatus) (*backend.Order, error)
}

// GetOrder serves one order.
func GetOrder(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := fetchOrder(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ListOrderHistory serves the signed-in customer's orders.
func ListOrderHistory(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		orders, err := svc.History(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// GetReceipt serves the plain-text receipt. The order's arithmetic is
// cross-checked first so a broken statement is never shown.
func GetReceipt(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := fetchOrder(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := receipt.Verify(*order); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(receipt.Render(*order)))
	}
}

// GetPrintableReceipt serves the print-formatted receipt.
func GetPrintableReceipt(svc OrderService, storeName string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := fetchOrder(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := receipt.Verify(*order); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(receipt.RenderPrint(storeName, *order)))
	}
}

// AdminListOrders serves every order for the admin board.
func AdminListOrders(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		orders, err := svc.AdminList(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// AdminExportOrdersCSV downloads the full order list as CSV.
func AdminExportOrdersCSV(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		orders, err := svc.AdminList(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
		if err := receipt.WriteCSV(w, orders); err != nil && logg != nil {
			logg.Error(r.Context(), "csv export failed", err)
		}
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminUpdateOrderStatus moves an order through its lifecycle.
func AdminUpdateOrderStatus(svc OrderService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown order status"))
			return
		}

		order, err := svc.AdminSetStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func fetchOrder(svc OrderService, r *http.Request) (*backend.Order, error) {
	if svc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable")
	}
	id, err := validators.ParseIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	return svc.Get(r.Context(), id)
}
