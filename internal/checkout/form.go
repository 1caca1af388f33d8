package checkout

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/enums"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Form captures the contact, address, payment and delivery choices made
// during checkout.
type Form struct {
	FirstName      string               `json:"firstName" validate:"required"`
	LastName       string               `json:"lastName"`
	Email          string               `json:"email" validate:"required,email"`
	Phone          string               `json:"phone" validate:"required"`
	Address        string               `json:"address" validate:"required"`
	District       string               `json:"district"`
	PaymentMethod  enums.PaymentMethod  `json:"paymentMethod"`
	DeliveryMethod enums.DeliveryMethod `json:"deliveryMethod"`
	Comment        string               `json:"comment"`
}

// NewForm seeds a form from the shopper's identity: defaults cash payment and
// home delivery, prefills contact fields for authenticated customers.
func NewForm(ident session.Identity) Form {
	form := Form{
		PaymentMethod:  enums.PaymentMethodCash,
		DeliveryMethod: enums.DeliveryMethodHome,
	}
	if ident.IsGuest() {
		return form
	}
	first, last := splitName(ident.Name)
	form.FirstName = first
	form.LastName = last
	form.Email = ident.Email
	return form
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// DeliveryCharge is a pure function of the chosen delivery method.
func (f Form) DeliveryCharge() int64 {
	return f.DeliveryMethod.Charge()
}

// Validate checks the required fields and the enum selections.
func (f Form) Validate() error {
	if !f.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a payment method")
	}
	if !f.DeliveryMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a delivery method")
	}
	if err := validate.Struct(f); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "please fill all required fields").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	}
	return "is invalid"
}
