package services

import (
	"fmt"
	"math"
	"strings"

	"envy/internal/domain"
	"envy/internal/domain/models"
	"envy/internal/store"
	"envy/internal/utils"
)

// BookingService validates guest requests and turns them into pending bookings.
type BookingService struct {
	Store     *store.Store
	RequestID string
}

type ReserveInput struct {
	PropertyID string
	CheckIn    string
	CheckOut   string
	Client     models.ClientDetails
}

// StayQuote previews what a reservation would cost.
type StayQuote struct {
	PropertyID     string `json:"propertyId"`
	CheckIn        string `json:"checkIn"`
	CheckOut       string `json:"checkOut"`
	Nights         int    `json:"nights"`
	NightlyRate    int64  `json:"nightlyRate"`
	TotalCost      int64  `json:"totalCost"`
	FormattedTotal string `json:"formattedTotal"`
}

// BookingStats backs the admin dashboard.
type BookingStats struct {
	TotalBookings    int    `json:"totalBookings"`
	TotalRevenue     int64  `json:"totalRevenue"`
	FormattedRevenue string `json:"formattedRevenue"`
	Pending          int    `json:"pending"`
	Confirmed        int    `json:"confirmed"`
	Cancelled        int    `json:"cancelled"`
	AverageStay      int    `json:"averageStay"`
}

// Reserve records a pending booking for the property and makes it current.
func (s BookingService) Reserve(in ReserveInput) (models.Booking, error) {
	client := models.ClientDetails{
		Name:  utils.NormalizeSpace(in.Client.Name),
		Email: strings.TrimSpace(in.Client.Email),
		Phone: strings.TrimSpace(in.Client.Phone),
	}
	if client.Name == "" {
		return models.Booking{}, domain.ValidationError{Field: "clientDetails.name", Msg: "is required"}
	}
	if client.Email == "" {
		return models.Booking{}, domain.ValidationError{Field: "clientDetails.email", Msg: "is required"}
	}
	if client.Phone == "" {
		return models.Booking{}, domain.ValidationError{Field: "clientDetails.phone", Msg: "is required"}
	}

	q, p, err := s.quote(in.PropertyID, in.CheckIn, in.CheckOut)
	if err != nil {
		return models.Booking{}, err
	}

	b := s.Store.AddBooking(models.BookingInput{
		PropertyID:    p.ID,
		PropertyTitle: p.Title,
		CheckIn:       q.CheckIn,
		CheckOut:      q.CheckOut,
		Nights:        q.Nights,
		TotalCost:     q.TotalCost,
		ClientDetails: client,
		Status:        models.StatusPending,
	})
	utils.LogEvent(s.RequestID, "booking", "reserve",
		fmt.Sprintf("booking_id=%s property_id=%s nights=%d total=%d", b.ID, b.PropertyID, b.Nights, b.TotalCost))
	return b, nil
}

// Quote prices a stay without recording anything.
func (s BookingService) Quote(propertyID, checkIn, checkOut string) (StayQuote, error) {
	q, _, err := s.quote(propertyID, checkIn, checkOut)
	return q, err
}

func (s BookingService) quote(propertyID, checkIn, checkOut string) (StayQuote, models.Property, error) {
	propertyID = strings.TrimSpace(propertyID)
	p, ok := s.Store.Property(propertyID)
	if !ok {
		return StayQuote{}, models.Property{}, domain.NotFoundError{Resource: "property", ID: propertyID}
	}
	checkIn, err := requireDate("checkIn", checkIn)
	if err != nil {
		return StayQuote{}, p, err
	}
	checkOut, err = requireDate("checkOut", checkOut)
	if err != nil {
		return StayQuote{}, p, err
	}

	nights, total := utils.ComputeStay(p.Price, checkIn, checkOut)
	return StayQuote{
		PropertyID:     p.ID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Nights:         nights,
		NightlyRate:    p.Price,
		TotalCost:      total,
		FormattedTotal: utils.FormatZAR(total),
	}, p, nil
}

func requireDate(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", domain.ValidationError{Field: field, Msg: "is required"}
	}
	if _, err := utils.ParseDate(v); err != nil {
		return "", domain.ValidationError{Field: field, Msg: "must be a YYYY-MM-DD date", Err: err}
	}
	return v, nil
}

// Stats summarizes every booking on record, cancelled ones included.
func (s BookingService) Stats() BookingStats {
	bookings := s.Store.Bookings()
	var st BookingStats
	var nights int
	for _, b := range bookings {
		st.TotalRevenue += b.TotalCost
		nights += b.Nights
		switch b.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusConfirmed:
			st.Confirmed++
		case models.StatusCancelled:
			st.Cancelled++
		}
	}
	st.TotalBookings = len(bookings)
	if len(bookings) > 0 {
		st.AverageStay = int(math.Round(float64(nights) / float64(len(bookings))))
	}
	st.FormattedRevenue = utils.FormatZAR(st.TotalRevenue)
	return st
}

// SetStatus is the admin transition out of pending. Decided bookings are not reopened.
func (s BookingService) SetStatus(id string, status models.BookingStatus) (models.Booking, bool, error) {
	if !status.Valid() {
		return models.Booking{}, false, domain.ValidationError{Field: "status", Msg: "must be pending, confirmed or cancelled"}
	}
	b, ok, err := s.Store.TransitionBookingStatus(id, status, func(current models.Booking) error {
		if current.Status.Terminal() && current.Status != status {
			return domain.ConflictError{Resource: "booking", Msg: fmt.Sprintf("already %s", current.Status)}
		}
		return nil
	})
	if err != nil {
		return b, ok, err
	}
	if ok {
		utils.LogEvent(s.RequestID, "booking", "set_status", fmt.Sprintf("booking_id=%s status=%s", id, status))
	}
	return b, ok, nil
}
