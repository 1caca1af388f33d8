package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/internal/cart"
	"github.com/kiarashop/storefront/internal/checkout"
	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/enums"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/kv"
)

type stubPlacer struct {
	authRequests  []backend.OrderRequest
	guestRequests []backend.OrderRequest
	order         *backend.Order
	err           error
}

func (s *stubPlacer) PlaceOrder(ctx context.Context, req backend.OrderRequest) (*backend.Order, error) {
	s.authRequests = append(s.authRequests, req)
	return s.order, s.err
}

func (s *stubPlacer) PlaceGuestOrder(ctx context.Context, req backend.OrderRequest) (*backend.Order, error) {
	s.guestRequests = append(s.guestRequests, req)
	return s.order, s.err
}

type fixture struct {
	placer  *stubPlacer
	cart    *cart.Store
	session *session.Store
	gateway *Gateway
	flow    *checkout.Flow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	placer := &stubPlacer{order: &backend.Order{ID: 7, Status: enums.OrderStatusPending}}
	storage := kv.NewMemory()
	cartStore := cart.NewStore(storage, nil)
	sess := session.NewStore(storage, nil)

	cartStore.AddItem(context.Background(), backend.Product{ID: 1, Name: "Panjabi", Price: decimal.NewFromInt(500)}, 2)
	cartStore.AddItem(context.Background(), backend.Product{ID: 2, Name: "Saree", Price: decimal.NewFromInt(300)}, 1)

	flow := checkout.NewFlow(cartStore, sess.Current())
	if err := flow.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	form := flow.Form()
	form.FirstName = "Rima"
	form.Email = "rima@example.com"
	form.Phone = "01700000000"
	form.Address = "12 Green Road"
	form.Comment = "call before delivery"
	if err := flow.UpdateForm(form); err != nil {
		t.Fatalf("update form: %v", err)
	}

	return &fixture{
		placer:  placer,
		cart:    cartStore,
		session: sess,
		gateway: NewGateway(placer, cartStore, sess, nil),
		flow:    flow,
	}
}

func TestSubmitGuestUsesGuestEndpoint(t *testing.T) {
	fx := newFixture(t)

	order, err := fx.gateway.Submit(context.Background(), fx.flow)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if order.ID != 7 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if len(fx.placer.guestRequests) != 1 || len(fx.placer.authRequests) != 0 {
		t.Fatalf("guest submission must hit the guest endpoint: guest=%d auth=%d",
			len(fx.placer.guestRequests), len(fx.placer.authRequests))
	}

	req := fx.placer.guestRequests[0]
	if req.PaymentMethod != "cash" {
		t.Fatalf("unexpected payment descriptor %q", req.PaymentMethod)
	}
	if req.DeliveryCharge != 60 {
		t.Fatalf("unexpected delivery charge %d", req.DeliveryCharge)
	}
	if len(req.Items) != 2 || req.Items[0].ProductID != 1 || req.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", req.Items)
	}

	if fx.cart.Count() != 0 {
		t.Fatal("cart must be cleared after a confirmed order")
	}
	if fx.flow.Step() != checkout.StepConfirmed {
		t.Fatalf("flow must be confirmed, got %s", fx.flow.Step())
	}
}

func TestSubmitAuthenticatedUsesAuthEndpoint(t *testing.T) {
	fx := newFixture(t)
	err := fx.session.Establish(context.Background(), backend.AuthResponse{
		AccessToken: "token",
		UserProfile: backend.UserProfile{ID: 42, Name: "Rima Akter", Email: "rima@example.com", Role: enums.RoleCustomer},
	})
	if err != nil {
		t.Fatalf("establish: %v", err)
	}

	if _, err := fx.gateway.Submit(context.Background(), fx.flow); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(fx.placer.authRequests) != 1 || len(fx.placer.guestRequests) != 0 {
		t.Fatalf("authenticated submission must hit the auth endpoint: guest=%d auth=%d",
			len(fx.placer.guestRequests), len(fx.placer.authRequests))
	}
}

func TestSubmitFailureLeavesCartAndFlowUntouched(t *testing.T) {
	fx := newFixture(t)
	fx.placer.order = nil
	fx.placer.err = pkgerrors.New(pkgerrors.CodeNetwork, "could not reach the store, please try again")

	_, err := fx.gateway.Submit(context.Background(), fx.flow)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNetwork {
		t.Fatalf("expected the backend error back, got %v", err)
	}
	if fx.cart.Count() != 3 {
		t.Fatalf("cart must survive a failed submission, count=%d", fx.cart.Count())
	}
	if fx.flow.Step() != checkout.StepCheckout {
		t.Fatalf("flow must stay at checkout, got %s", fx.flow.Step())
	}
}

func TestSubmitOnlineSendsMaskedDescriptorOnly(t *testing.T) {
	fx := newFixture(t)
	form := fx.flow.Form()
	form.PaymentMethod = enums.PaymentMethodOnline
	if err := fx.flow.UpdateForm(form); err != nil {
		t.Fatalf("update form: %v", err)
	}
	if err := fx.flow.ProceedToPayment(); err != nil {
		t.Fatalf("proceed: %v", err)
	}
	if err := fx.flow.UpdatePayment(checkout.PaymentDetails{
		Type: enums.OnlinePaymentTypeCard,
		Card: checkout.CardDetails{Number: "4111 1111 1111 1234", CVV: "123", PIN: "9999", Expiry: "12/27"},
	}); err != nil {
		t.Fatalf("update payment: %v", err)
	}

	if _, err := fx.gateway.Submit(context.Background(), fx.flow); err != nil {
		t.Fatalf("submit: %v", err)
	}
	req := fx.placer.guestRequests[0]
	if req.PaymentMethod != "Online Payment - Card (****1234)" {
		t.Fatalf("unexpected descriptor %q", req.PaymentMethod)
	}
}

func TestSubmitIncompleteFlowNeverReachesBackend(t *testing.T) {
	fx := newFixture(t)
	form := fx.flow.Form()
	form.Phone = ""
	if err := fx.flow.UpdateForm(form); err != nil {
		t.Fatalf("update form: %v", err)
	}

	_, err := fx.gateway.Submit(context.Background(), fx.flow)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(fx.placer.guestRequests)+len(fx.placer.authRequests) != 0 {
		t.Fatal("an invalid flow must not reach the backend")
	}
}

func TestSubmitEmptiedCartNeverReachesBackend(t *testing.T) {
	fx := newFixture(t)
	fx.cart.Clear(context.Background())

	_, err := fx.gateway.Submit(context.Background(), fx.flow)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(fx.placer.guestRequests)+len(fx.placer.authRequests) != 0 {
		t.Fatal("an order with no items must not reach the backend")
	}
	if got := fx.flow.Step(); got != checkout.StepCheckout {
		t.Fatalf("step = %q, want %q", got, checkout.StepCheckout)
	}
}
