package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses() {
		parsed, err := ParseOrderStatus(string(status))
		if err != nil || parsed != status {
			t.Fatalf("round trip failed for %q: %v", status, err)
		}
	}
	if _, err := ParseOrderStatus("refunded"); err == nil {
		t.Fatal("expected refunded to be rejected")
	}
}

func TestPaymentMethodValuesAreDisplayLabels(t *testing.T) {
	if !PaymentMethod("Cash On Delivery (COD)").IsValid() {
		t.Fatal("COD should be valid")
	}
	if PaymentMethod("cod").IsValid() {
		t.Fatal("payment methods are matched verbatim")
	}
}

func TestProvinces(t *testing.T) {
	if len(Provinces()) != 6 {
		t.Fatalf("expected 6 provinces, got %d", len(Provinces()))
	}
	if _, err := ParseProvince("Khyber Pakhtunkhwa"); err == nil {
		t.Fatal("province outside the list must be rejected")
	}
}

func TestShippingAndPaymentStatus(t *testing.T) {
	if !ShippingMethodFast.IsValid() || ShippingMethod("Overnight").IsValid() {
		t.Fatal("unexpected shipping method validity")
	}
	if _, err := ParsePaymentStatus("refunded"); err == nil {
		t.Fatal("expected unknown payment status to fail")
	}
}

func TestParseAdminRole(t *testing.T) {
	if role, err := ParseAdminRole("admin"); err != nil || role != AdminRoleAdmin {
		t.Fatalf("expected admin role, got %q err=%v", role, err)
	}
	if _, err := ParseAdminRole("owner"); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}
