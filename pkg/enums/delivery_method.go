package enums

import "fmt"

// DeliveryMethod selects how an order is handed to the customer.
type DeliveryMethod string

const (
	DeliveryMethodHome    DeliveryMethod = "home"
	DeliveryMethodPickup  DeliveryMethod = "pickup"
	DeliveryMethodExpress DeliveryMethod = "express"
)

var validDeliveryMethods = []DeliveryMethod{
	DeliveryMethodHome,
	DeliveryMethodPickup,
	DeliveryMethodExpress,
}

// String implements fmt.Stringer.
func (d DeliveryMethod) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryMethod.
func (d DeliveryMethod) IsValid() bool {
	for _, candidate := range validDeliveryMethods {
		if candidate == d {
			return true
		}
	}
	return false
}

// Charge returns the flat delivery charge for the method in taka.
func (d DeliveryMethod) Charge() int64 {
	switch d {
	case DeliveryMethodHome:
		return 60
	case DeliveryMethodExpress:
		return 130
	default:
		return 0
	}
}

// ParseDeliveryMethod converts raw input into a DeliveryMethod.
func ParseDeliveryMethod(value string) (DeliveryMethod, error) {
	for _, candidate := range validDeliveryMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery method %q", value)
}
