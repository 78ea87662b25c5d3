package domain

import "testing"

func TestComputeCheckout(t *testing.T) {
	q := ComputeCheckout(135000)
	if q.ServiceFee != 6750 {
		t.Fatalf("service fee: got %d want 6750", q.ServiceFee)
	}
	if q.LevyVAT != 20250 {
		t.Fatalf("levy: got %d want 20250", q.LevyVAT)
	}
	if q.GrandTotal != 162000 {
		t.Fatalf("grand total: got %d want 162000", q.GrandTotal)
	}
}

func TestComputeCheckoutRounds(t *testing.T) {
	// 5% of 45010 = 2250.5, 15% = 6751.5
	q := ComputeCheckout(45010)
	if q.ServiceFee != 2251 || q.LevyVAT != 6752 {
		t.Fatalf("unexpected rounding: %+v", q)
	}
	if q.GrandTotal != 45010+2251+6752 {
		t.Fatalf("grand total mismatch: %+v", q)
	}
}
