package services

import (
	"testing"

	"envy/internal/domain"
	"envy/internal/domain/models"
)

func TestReserveCreatesPendingCurrentBooking(t *testing.T) {
	s := newTestStore(t)
	svc := BookingService{Store: s}

	b, err := svc.Reserve(ReserveInput{
		PropertyID: "clifton-001",
		CheckIn:    "2025-06-01",
		CheckOut:   "2025-06-04",
		Client:     guest(),
	})
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if b.Nights != 3 || b.TotalCost != 135000 {
		t.Fatalf("got nights=%d total=%d", b.Nights, b.TotalCost)
	}
	if b.Status != models.StatusPending {
		t.Fatalf("expected pending, got %s", b.Status)
	}
	if b.PropertyTitle != "Villa Aurelia — Clifton First Beach" {
		t.Fatalf("unexpected title snapshot %q", b.PropertyTitle)
	}
	if cur := s.CurrentBooking(); cur == nil || cur.ID != b.ID {
		t.Fatalf("booking did not become current")
	}
}

func TestReserveValidation(t *testing.T) {
	svc := BookingService{Store: newTestStore(t)}
	base := ReserveInput{PropertyID: "clifton-001", CheckIn: "2025-06-01", CheckOut: "2025-06-04", Client: guest()}

	cases := []struct {
		name   string
		mutate func(*ReserveInput)
		check  func(error) bool
	}{
		{"unknown property", func(in *ReserveInput) { in.PropertyID = "nope" }, domain.IsNotFound},
		{"blank name", func(in *ReserveInput) { in.Client.Name = "   " }, domain.IsValidation},
		{"blank email", func(in *ReserveInput) { in.Client.Email = "" }, domain.IsValidation},
		{"blank phone", func(in *ReserveInput) { in.Client.Phone = "" }, domain.IsValidation},
		{"missing check-in", func(in *ReserveInput) { in.CheckIn = "" }, domain.IsValidation},
		{"bad check-out", func(in *ReserveInput) { in.CheckOut = "next week" }, domain.IsValidation},
	}
	for _, tc := range cases {
		in := base
		tc.mutate(&in)
		_, err := svc.Reserve(in)
		if err == nil || !tc.check(err) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
	if n := len(svc.Store.Bookings()); n != 0 {
		t.Fatalf("rejected requests must not create bookings, got %d", n)
	}
}

func TestQuoteBillsAtLeastOneNight(t *testing.T) {
	svc := BookingService{Store: newTestStore(t)}
	q, err := svc.Quote("camps-bay-002", "2025-07-10", "2025-07-10")
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	p, _ := svc.Store.Property("camps-bay-002")
	if q.Nights != 1 || q.TotalCost != p.Price {
		t.Fatalf("unexpected quote %+v", q)
	}
	if len(svc.Store.Bookings()) != 0 {
		t.Fatalf("quote must not book")
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	svc := BookingService{Store: s}

	if st := svc.Stats(); st.TotalBookings != 0 || st.AverageStay != 0 || st.FormattedRevenue != "R 0" {
		t.Fatalf("empty stats: %+v", st)
	}

	a, _ := svc.Reserve(ReserveInput{PropertyID: "clifton-001", CheckIn: "2025-06-01", CheckOut: "2025-06-04", Client: guest()})
	b, _ := svc.Reserve(ReserveInput{PropertyID: "clifton-001", CheckIn: "2025-07-01", CheckOut: "2025-07-05", Client: guest()})
	svc.Reserve(ReserveInput{PropertyID: "clifton-001", CheckIn: "2025-08-01", CheckOut: "2025-08-02", Client: guest()})
	s.UpdateBookingStatus(a.ID, models.StatusConfirmed)
	s.UpdateBookingStatus(b.ID, models.StatusCancelled)

	st := svc.Stats()
	if st.TotalBookings != 3 || st.Pending != 1 || st.Confirmed != 1 || st.Cancelled != 1 {
		t.Fatalf("unexpected counts %+v", st)
	}
	// 3 + 4 + 1 nights at R 45 000
	if st.TotalRevenue != 360000 || st.FormattedRevenue != "R 360 000" {
		t.Fatalf("unexpected revenue %+v", st)
	}
	if st.AverageStay != 3 {
		t.Fatalf("expected average stay 3, got %d", st.AverageStay)
	}
}

func TestSetStatus(t *testing.T) {
	s := newTestStore(t)
	svc := BookingService{Store: s}
	b, _ := svc.Reserve(ReserveInput{PropertyID: "clifton-001", CheckIn: "2025-06-01", CheckOut: "2025-06-04", Client: guest()})

	if _, _, err := svc.SetStatus(b.ID, "archived"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, matched, err := svc.SetStatus("missing", models.StatusConfirmed); matched || err != nil {
		t.Fatalf("unknown id should be an unmatched no-op, matched=%v err=%v", matched, err)
	}

	updated, matched, err := svc.SetStatus(b.ID, models.StatusCancelled)
	if err != nil || !matched || updated.Status != models.StatusCancelled {
		t.Fatalf("cancel failed: %+v matched=%v err=%v", updated, matched, err)
	}
	if _, _, err := svc.SetStatus(b.ID, models.StatusConfirmed); !domain.IsConflict(err) {
		t.Fatalf("expected conflict reopening a cancelled booking, got %v", err)
	}
	if _, _, err := svc.SetStatus(b.ID, models.StatusCancelled); err != nil {
		t.Fatalf("repeating the same status should be allowed, got %v", err)
	}
}
