package enums

import "fmt"

// OnlinePaymentType tags the variant of an online payment sub-form.
type OnlinePaymentType string

const (
	OnlinePaymentTypeCard  OnlinePaymentType = "card"
	OnlinePaymentTypeBkash OnlinePaymentType = "bkash"
	OnlinePaymentTypeNagad OnlinePaymentType = "nagad"
)

var validOnlinePaymentTypes = []OnlinePaymentType{
	OnlinePaymentTypeCard,
	OnlinePaymentTypeBkash,
	OnlinePaymentTypeNagad,
}

// String implements fmt.Stringer.
func (o OnlinePaymentType) String() string {
	return string(o)
}

// DisplayName returns the human-readable wallet/processor name.
func (o OnlinePaymentType) DisplayName() string {
	switch o {
	case OnlinePaymentTypeCard:
		return "Card"
	case OnlinePaymentTypeBkash:
		return "bKash"
	case OnlinePaymentTypeNagad:
		return "Nagad"
	}
	return string(o)
}

// IsValid reports whether the value is a known OnlinePaymentType.
func (o OnlinePaymentType) IsValid() bool {
	for _, candidate := range validOnlinePaymentTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOnlinePaymentType converts raw input into an OnlinePaymentType.
func ParseOnlinePaymentType(value string) (OnlinePaymentType, error) {
	for _, candidate := range validOnlinePaymentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid online payment type %q", value)
}
