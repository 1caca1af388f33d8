package orders

import (
	"context"

	"github.com/kiarashop/storefront/internal/cart"
	"github.com/kiarashop/storefront/internal/checkout"
	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/logger"
)

// Placer is the slice of the backend client the gateway needs.
type Placer interface {
	PlaceOrder(ctx context.Context, req backend.OrderRequest) (*backend.Order, error)
	PlaceGuestOrder(ctx context.Context, req backend.OrderRequest) (*backend.Order, error)
}

// Gateway submits checkout flows as orders. The authenticated and guest
// endpoints are chosen from the session at the moment of submission, so a
// login mid-checkout changes the path without restarting the flow.
type Gateway struct {
	placer  Placer
	cart    *cart.Store
	session *session.Store
	logger  *logger.Logger
}

func NewGateway(placer Placer, cartStore *cart.Store, sess *session.Store, logg *logger.Logger) *Gateway {
	return &Gateway{
		placer:  placer,
		cart:    cartStore,
		session: sess,
		logger:  logg,
	}
}

// Submit validates the flow, posts the order and, only on a confirmed server
// response, clears the cart and advances the flow to Confirmed. On any error
// the cart and the flow are left untouched for a retry.
func (g *Gateway) Submit(ctx context.Context, flow *checkout.Flow) (*backend.Order, error) {
	form, descriptor, err := flow.SubmitPayload()
	if err != nil {
		return nil, err
	}

	req := buildRequest(form, descriptor, g.cart.Items())
	ident := g.session.Current()

	var order *backend.Order
	if ident.IsGuest() {
		order, err = g.placer.PlaceGuestOrder(ctx, req)
	} else {
		order, err = g.placer.PlaceOrder(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	if err := flow.Confirm(order); err != nil {
		return nil, err
	}
	g.cart.Clear(ctx)

	if g.logger != nil {
		g.logger.Info(g.logger.WithOrderID(ctx, order.ID), "order placed")
	}
	return order, nil
}

func buildRequest(form checkout.Form, descriptor string, items []cart.LineItem) backend.OrderRequest {
	req := backend.OrderRequest{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Email:          form.Email,
		Phone:          form.Phone,
		Address:        form.Address,
		District:       form.District,
		PaymentMethod:  descriptor,
		DeliveryMethod: form.DeliveryMethod.String(),
		DeliveryCharge: form.DeliveryCharge(),
		Comment:        form.Comment,
		Items:          make([]backend.OrderRequestItem, 0, len(items)),
	}
	for _, item := range items {
		req.Items = append(req.Items, backend.OrderRequestItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return req
}
