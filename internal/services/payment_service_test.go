package services

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"envy/internal/domain/models"
)

func reserved(t *testing.T, svc BookingService) models.Booking {
	t.Helper()
	b, err := svc.Reserve(ReserveInput{PropertyID: "clifton-001", CheckIn: "2025-06-01", CheckOut: "2025-06-04", Client: guest()})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	return b
}

func TestBuildFormSandboxDefaults(t *testing.T) {
	s := newTestStore(t)
	b := reserved(t, BookingService{Store: s})
	svc := PaymentService{Store: s, BaseURL: "https://envy.example/"}

	form := svc.BuildForm(b, "")
	if form.Action != PayFastSandboxURL || form.Method != "POST" {
		t.Fatalf("unexpected action %s %s", form.Method, form.Action)
	}
	want := map[string]string{
		"merchant_id":      "10000100",
		"merchant_key":     "46f0cd694581a",
		"return_url":       "https://envy.example/booking-confirmed?payment=success",
		"cancel_url":       "https://envy.example/checkout?payment=cancelled",
		"notify_url":       "https://envy.example/api/payfast-notify",
		"name_first":       "Naledi",
		"name_last":        "van der Berg",
		"email_address":    "naledi@example.com",
		"cell_number":      "+27 82 555 0101",
		"amount":           "162000.00",
		"item_name":        "ENVY — Villa Aurelia — Clifton First Beach (3 nights)",
		"item_description": "Luxury estate reservation: 2025-06-01 to 2025-06-04",
	}
	for name, v := range want {
		if got := form.Value(name); got != v {
			t.Fatalf("%s: got %q want %q", name, got, v)
		}
	}
	if form.Value("signature") != "" {
		t.Fatalf("no signature expected without a passphrase")
	}
	if svc.Configured() {
		t.Fatalf("blank credentials should not count as configured")
	}

	order := []string{"merchant_id", "merchant_key", "return_url", "cancel_url", "notify_url",
		"name_first", "name_last", "email_address", "cell_number", "amount", "item_name", "item_description"}
	for i, f := range form.Fields {
		if f.Name != order[i] {
			t.Fatalf("field %d: got %s want %s", i, f.Name, order[i])
		}
	}
}

func TestBuildFormLiveWithPassphrase(t *testing.T) {
	s := newTestStore(t)
	b := reserved(t, BookingService{Store: s})
	id, key, pass, live := "m-42", "k-42", "jt7NOE43FZPn", false
	s.SetGatewayConfig(models.GatewayPatch{MerchantID: &id, MerchantKey: &key, Passphrase: &pass, Sandbox: &live})
	svc := PaymentService{Store: s}

	form := svc.BuildForm(b, "http://localhost:3000")
	if form.Action != PayFastLiveURL {
		t.Fatalf("expected live url, got %s", form.Action)
	}
	if form.Value("merchant_id") != "m-42" || !svc.Configured() {
		t.Fatalf("configured credentials not used")
	}
	last := form.Fields[len(form.Fields)-1]
	if last.Name != "signature" || len(last.Value) != 32 {
		t.Fatalf("expected trailing md5 signature, got %+v", last)
	}
	if last.Value != Signature(form.Fields[:len(form.Fields)-1], pass) {
		t.Fatalf("signature does not match its fields")
	}
}

func TestSignatureEncoding(t *testing.T) {
	fields := []FormField{{"merchant_id", "10000100"}, {"name_last", ""}, {"item_name", "A & B"}}
	sum := md5.Sum([]byte("merchant_id=10000100&item_name=A+%26+B"))
	if got := Signature(fields, ""); got != hex.EncodeToString(sum[:]) {
		t.Fatalf("unexpected signature %q", got)
	}
	salted := md5.Sum([]byte("merchant_id=10000100&item_name=A+%26+B&passphrase=salt"))
	if got := Signature(fields, "salt"); got != hex.EncodeToString(salted[:]) {
		t.Fatalf("unexpected salted signature %q", got)
	}
	if Signature(fields, "") != Signature(append(fields, FormField{"email_address", " "}), "") {
		t.Fatalf("blank fields must be skipped")
	}
}

func TestHandleReturn(t *testing.T) {
	s := newTestStore(t)
	svc := PaymentService{Store: s}

	if _, ok := svc.HandleReturn("success"); ok {
		t.Fatalf("nothing to confirm without bookings")
	}

	b := reserved(t, BookingService{Store: s})
	if got, ok := svc.HandleReturn("cancelled"); ok || got.Status != models.StatusPending {
		t.Fatalf("cancelled return must not confirm: %+v", got)
	}

	got, ok := svc.HandleReturn("success")
	if !ok || got.ID != b.ID || got.Status != models.StatusConfirmed {
		t.Fatalf("expected latest booking confirmed, got %+v ok=%v", got, ok)
	}
	if cur := s.CurrentBooking(); cur == nil || cur.Status != models.StatusConfirmed {
		t.Fatalf("current booking not refreshed")
	}
	if _, ok := svc.HandleReturn("success"); ok {
		t.Fatalf("confirmed booking must not be confirmed twice")
	}
}

func TestCheckoutQuote(t *testing.T) {
	q := PaymentService{}.Checkout(models.Booking{TotalCost: 135000})
	if q.ServiceFee != 6750 || q.LevyVAT != 20250 || q.GrandTotal != 162000 {
		t.Fatalf("unexpected quote %+v", q)
	}
	if !strings.HasPrefix(PayFastSandboxURL, "https://sandbox.") {
		t.Fatalf("sandbox url changed")
	}
}
