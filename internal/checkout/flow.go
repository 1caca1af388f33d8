package checkout

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/internal/cart"
	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/enums"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
)

// Step is the checkout position. Transitions happen only through the Flow
// methods below, one per legal edge.
type Step string

const (
	StepCart      Step = "cart"
	StepCheckout  Step = "checkout"
	StepPayment   Step = "payment"
	StepConfirmed Step = "confirmed"
)

// Flow sequences a shopper from cart review to a confirmed order. Form fields
// survive back-navigation; only leaving Confirmed is terminal for the order.
type Flow struct {
	mu      sync.Mutex
	step    Step
	form    Form
	payment PaymentDetails
	order   *backend.Order

	cart *cart.Store
}

// NewFlow starts a fresh cycle at the cart step.
func NewFlow(cartStore *cart.Store, ident session.Identity) *Flow {
	return &Flow{
		step: StepCart,
		form: NewForm(ident),
		cart: cartStore,
	}
}

// Step returns the current position.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Form returns the current form contents.
func (f *Flow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// Payment returns the online-payment sub-form contents.
func (f *Flow) Payment() PaymentDetails {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payment
}

// Order returns the confirmed order, if the flow has reached Confirmed.
func (f *Flow) Order() *backend.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

// Begin moves Cart → Checkout. An empty cart is rejected with a user-visible
// message and no state change.
func (f *Flow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepCart {
		return f.wrongStep("begin checkout")
	}
	if f.cart.Count() == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
	}
	f.step = StepCheckout
	return nil
}

// UpdateForm replaces the form contents while on the Checkout step. Switching
// the payment method away from online discards the payment sub-form; its data
// is not part of the payload for other methods.
func (f *Flow) UpdateForm(form Form) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepCheckout {
		return f.wrongStep("edit checkout details")
	}
	if form.PaymentMethod != "" && !form.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a payment method")
	}
	if form.DeliveryMethod != "" && !form.DeliveryMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a delivery method")
	}

	if form.PaymentMethod != enums.PaymentMethodOnline {
		f.payment = PaymentDetails{}
	}
	f.form = form
	return nil
}

// ProceedToPayment moves Checkout → Payment. Only reachable with online
// payment and a complete form; other methods submit directly from Checkout.
func (f *Flow) ProceedToPayment() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepCheckout {
		return f.wrongStep("proceed to payment")
	}
	if err := f.form.Validate(); err != nil {
		return err
	}
	if f.form.PaymentMethod != enums.PaymentMethodOnline {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "payment step applies to online payment only")
	}
	f.step = StepPayment
	return nil
}

// UpdatePayment replaces the online sub-form while on the Payment step.
func (f *Flow) UpdatePayment(details PaymentDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return f.wrongStep("edit payment details")
	}
	f.payment = details
	return nil
}

// BackToCheckout moves Payment → Checkout, preserving everything typed.
func (f *Flow) BackToCheckout() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return f.wrongStep("return to checkout")
	}
	f.step = StepCheckout
	return nil
}

// BackToCart moves Checkout → Cart, preserving the form for a later retry.
func (f *Flow) BackToCart() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepCheckout {
		return f.wrongStep("return to cart")
	}
	f.step = StepCart
	return nil
}

// DeliveryCharge is the charge for the currently selected delivery method.
func (f *Flow) DeliveryCharge() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form.DeliveryCharge()
}

// Total is the cart total plus the delivery charge, shown from Checkout
// onward.
func (f *Flow) Total() decimal.Decimal {
	f.mu.Lock()
	charge := f.form.DeliveryCharge()
	f.mu.Unlock()
	return f.cart.Total().Add(decimal.NewFromInt(charge))
}

// SubmitPayload validates the flow is submittable and returns the form plus
// the payment descriptor to send. No state changes: the step only advances on
// a confirmed server response.
func (f *Flow) SubmitPayload() (Form, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// The cart can be emptied behind an in-progress flow; a zero-item order
	// must never reach the server.
	if f.cart.Count() == 0 {
		return Form{}, "", pkgerrors.New(pkgerrors.CodeValidation, "your cart is empty")
	}

	switch f.step {
	case StepCheckout:
		if err := f.form.Validate(); err != nil {
			return Form{}, "", err
		}
		if f.form.PaymentMethod == enums.PaymentMethodOnline {
			return Form{}, "", pkgerrors.New(pkgerrors.CodeStateConflict, "online payment requires the payment step")
		}
		return f.form, f.form.PaymentMethod.String(), nil
	case StepPayment:
		if err := f.form.Validate(); err != nil {
			return Form{}, "", err
		}
		if err := f.payment.Validate(); err != nil {
			return Form{}, "", err
		}
		return f.form, f.payment.Descriptor(), nil
	}
	return Form{}, "", f.wrongStep("place the order")
}

// Confirm records the server's order and moves to Confirmed. Valid from
// Checkout (cash/pos) or Payment (online).
func (f *Flow) Confirm(order *backend.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepCheckout && f.step != StepPayment {
		return f.wrongStep("confirm the order")
	}
	f.order = order
	f.payment = PaymentDetails{}
	f.step = StepConfirmed
	return nil
}

func (f *Flow) wrongStep(action string) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot "+action+" from the "+string(f.step)+" step")
}
