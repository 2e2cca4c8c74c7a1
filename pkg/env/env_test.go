package env

import "testing"

func TestGetFallsBackWhenBlank(t *testing.T) {
	t.Setenv("AURAWAVE_TEST_VALUE", "   ")
	if got := Get("AURAWAVE_TEST_VALUE", "json"); got != "json" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("AURAWAVE_TEST_VALUE", "console")
	if got := Get("AURAWAVE_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected console, got %q", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("AURAWAVE_TEST_FLAG", "true")
	if !Bool("AURAWAVE_TEST_FLAG", false) {
		t.Fatal("expected true")
	}
	t.Setenv("AURAWAVE_TEST_FLAG", "nope")
	if Bool("AURAWAVE_TEST_FLAG", false) {
		t.Fatal("invalid value should fall back")
	}
}
