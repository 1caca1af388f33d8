package checkout

import (
	"fmt"
	"strings"

	"github.com/kiarashop/storefront/pkg/enums"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
)

// PaymentDetails is the online-payment sub-form: a tagged variant over card
// and the mobile wallets. The raw fields never leave the process; only the
// masked descriptor is sent with the order.
type PaymentDetails struct {
	Type   enums.OnlinePaymentType `json:"type"`
	Card   CardDetails             `json:"card"`
	Wallet WalletDetails           `json:"wallet"`
}

// CardDetails carries the card variant's fields.
type CardDetails struct {
	Number string `json:"number"`
	CVV    string `json:"cvv"`
	PIN    string `json:"pin"`
	Expiry string `json:"expiry"`
}

// WalletDetails carries the bKash/Nagad variant's fields.
type WalletDetails struct {
	MobileNumber string `json:"mobileNumber"`
	PIN          string `json:"pin"`
	OTP          string `json:"otp"`
}

// Validate checks the required fields of the selected variant, reporting every
// missing field by name.
func (d PaymentDetails) Validate() error {
	if !d.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a payment type")
	}

	missing := map[string]string{}
	switch d.Type {
	case enums.OnlinePaymentTypeCard:
		requireField(missing, "cardNumber", d.Card.Number)
		requireField(missing, "cvv", d.Card.CVV)
		requireField(missing, "pin", d.Card.PIN)
		requireField(missing, "expiry", d.Card.Expiry)
	default:
		requireField(missing, "mobileNumber", d.Wallet.MobileNumber)
		requireField(missing, "pin", d.Wallet.PIN)
		requireField(missing, "otp", d.Wallet.OTP)
	}

	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation,
		fmt.Sprintf("please fill all %s payment details", d.Type.DisplayName())).
		WithDetails(missing)
}

func requireField(missing map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		missing[name] = "is required"
	}
}

// Descriptor derives the masked, human-readable payment string stored on the
// order, e.g. "Online Payment - Card (****1234)".
func (d PaymentDetails) Descriptor() string {
	if d.Type == enums.OnlinePaymentTypeCard {
		digits := strings.ReplaceAll(d.Card.Number, " ", "")
		last4 := digits
		if len(digits) > 4 {
			last4 = digits[len(digits)-4:]
		}
		return fmt.Sprintf("Online Payment - Card (****%s)", last4)
	}
	return fmt.Sprintf("Online Payment - %s (%s)", d.Type.DisplayName(), d.Wallet.MobileNumber)
}
