package enums

import "testing"

func TestDeliveryMethodCharge(t *testing.T) {
	tests := []struct {
		method DeliveryMethod
		charge int64
	}{
		{DeliveryMethodHome, 60},
		{DeliveryMethodExpress, 130},
		{DeliveryMethodPickup, 0},
	}
	for _, tt := range tests {
		if got := tt.method.Charge(); got != tt.charge {
			t.Fatalf("method %s expected charge %d got %d", tt.method, tt.charge, got)
		}
	}
}

func TestParseDeliveryMethod(t *testing.T) {
	if _, err := ParseDeliveryMethod("home"); err != nil {
		t.Fatalf("home should parse: %v", err)
	}
	if _, err := ParseDeliveryMethod("drone"); err == nil {
		t.Fatal("drone should not parse")
	}
}

func TestPaymentMethodValidity(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodCash, PaymentMethodOnline, PaymentMethodPOS} {
		if !m.IsValid() {
			t.Fatalf("%s should be valid", m)
		}
	}
	if PaymentMethod("barter").IsValid() {
		t.Fatal("barter should be invalid")
	}
}

func TestOnlinePaymentTypeDisplayName(t *testing.T) {
	if got := OnlinePaymentTypeBkash.DisplayName(); got != "bKash" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := OnlinePaymentTypeNagad.DisplayName(); got != "Nagad" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := OnlinePaymentTypeCard.DisplayName(); got != "Card" {
		t.Fatalf("unexpected display name %q", got)
	}
}

func TestOrderStatusParse(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	if err != nil {
		t.Fatalf("shipped should parse: %v", err)
	}
	if status.IsTerminal() {
		t.Fatal("shipped is not terminal")
	}
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled are terminal")
	}
	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatal("returned should not parse")
	}
}

func TestRoleIsAdmin(t *testing.T) {
	for _, r := range []Role{"admin", "ADMIN", "ROLE_ADMIN"} {
		if !r.IsAdmin() {
			t.Fatalf("%s should be admin", r)
		}
	}
	if RoleCustomer.IsAdmin() {
		t.Fatal("customer is not admin")
	}
}
