package controllers

import (
	"context"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/api/responses"
	"github.com/kiarashop/storefront/api/validators"
	"github.com/kiarashop/storefront/internal/cart"
	"github.com/kiarashop/storefront/internal/checkout"
	"github.com/kiarashop/storefront/internal/receipt"
	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/enums"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/logger"
)

// OrderGateway submits a checkout flow to the backend.
type OrderGateway interface {
	Submit(ctx context.Context, flow *checkout.Flow) (*backend.Order, error)
}

// FlowHolder owns the single active checkout flow. A fresh flow replaces a
// confirmed one on the next begin, so the receipt stays visible until then.
type FlowHolder struct {
	mu      sync.Mutex
	flow    *checkout.Flow
	cart    *cart.Store
	session *session.Store
}

func NewFlowHolder(cartStore *cart.Store, sess *session.Store) *FlowHolder {
	return &FlowHolder{cart: cartStore, session: sess}
}

// Current returns the active flow, or nil when no checkout has begun.
func (h *FlowHolder) Current() *checkout.Flow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flow
}

// BeginFresh starts a checkout, reusing an in-progress flow and replacing a
// confirmed or absent one.
func (h *FlowHolder) BeginFresh() (*checkout.Flow, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.flow == nil || h.flow.Step() == checkout.StepConfirmed {
		h.flow = checkout.NewFlow(h.cart, h.session.Current())
	}
	if h.flow.Step() == checkout.StepCart {
		if err := h.flow.Begin(); err != nil {
			return nil, err
		}
	}
	return h.flow, nil
}

type checkoutView struct {
	Step           checkout.Step   `json:"step"`
	Form           checkout.Form   `json:"form"`
	PaymentType    string          `json:"paymentType,omitempty"`
	DeliveryCharge int64           `json:"deliveryCharge"`
	Total          decimal.Decimal `json:"total"`
	Order          *backend.Order  `json:"order,omitempty"`
}

type updateFormRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	District       string `json:"district"`
	PaymentMethod  string `json:"paymentMethod"`
	DeliveryMethod string `json:"deliveryMethod"`
	Comment        string `json:"comment"`
}

type updatePaymentRequest struct {
	Type   string                 `json:"type"`
	Card   checkout.CardDetails   `json:"card"`
	Wallet checkout.WalletDetails `json:"wallet"`
}

func flowView(flow *checkout.Flow) checkoutView {
	view := checkoutView{
		Step:           flow.Step(),
		Form:           flow.Form(),
		DeliveryCharge: flow.DeliveryCharge(),
		Total:          flow.Total(),
		Order:          flow.Order(),
	}
	if payment := flow.Payment(); payment.Type != "" {
		view.PaymentType = payment.Type.String()
	}
	return view
}

func activeFlow(h *FlowHolder) (*checkout.Flow, error) {
	flow := h.Current()
	if flow == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout has not started")
	}
	return flow, nil
}

// GetCheckout serves the current flow state.
func GetCheckout(h *FlowHolder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, err := activeFlow(h)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flowView(flow))
	}
}

// BeginCheckout moves from the cart into the checkout form.
func BeginCheckout(h *FlowHolder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, err := h.BeginFresh()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flowView(flow))
	}
}

// UpdateCheckoutForm replaces the form contents. Fields are validated at the
// step transitions, not here, so partial edits are fine.
func UpdateCheckoutForm(h *FlowHolder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, err := activeFlow(h)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateFormRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form := checkout.Form{
			FirstName:      payload.FirstName,
			LastName:       payload.LastName,
			Email:          payload.Email,
			Phone:          payload.Phone,
			Address:        payload.Address,
			District:       payload.District,
			PaymentMethod:  enums.PaymentMethod(payload.PaymentMethod),
			DeliveryMethod: enums.DeliveryMethod(payload.DeliveryMethod),
			Comment:        payload.Comment,
		}
		if err := flow.UpdateForm(form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flowView(flow))
	}
}

// ProceedToPayment moves an online-payment flow to the payment step.
func ProceedToPayment(h *FlowHolder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, err := activeFlow(h)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := flow.ProceedToPayment(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flowView(flow))
	}
}

// UpdatePaymentDetails replaces the online sub-form.
func UpdatePaymentDetails(h *FlowHolder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, err := activeFlow(h)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		details := checkout.PaymentDetails{
			Type:   enums.OnlinePaymentType(payload.Type),
			Card:   payload.Card,
			Wallet: payload.Wallet,
		}
		if err := flow.UpdatePayment(details); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flowView(flow))
	}
}

// CheckoutBack steps the flow backwards one step.
func CheckoutBack(h *FlowHolder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flow, err := activeFlow(h)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		switch flow.Step() {
		case checkout.StepPayment:
			err = flow.BackToCheckout()
		case checkout.StepCheckout:
			err = flow.BackToCart()
		default:
			err = pkgerrors.New(pkgerrors.CodeStateConflict, "nothing to go back to")
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flowView(flow))
	}
}

// SubmitCheckout places the order through the gateway.
func SubmitCheckout(h *FlowHolder, gateway OrderGateway, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order gateway unavailable"))
			return
		}

		flow, err := activeFlow(h)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := gateway.Submit(r.Context(), flow)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if verifyErr := receipt.Verify(*order); verifyErr != nil && logg != nil {
			logg.Warn(logg.WithOrderID(r.Context(), order.ID), "order totals mismatch: "+verifyErr.Error())
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, flowView(flow))
	}
}
