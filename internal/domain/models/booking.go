package models

// BookingStatus is the reservation lifecycle state.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is modelled from s.
func (s BookingStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// ClientDetails is owned by the booking that embeds it.
type ClientDetails struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// Booking is a reservation. PropertyTitle and TotalCost are captured when the booking
// is made and are never re-derived from the listing afterwards.
type Booking struct {
	ID            string        `json:"id"`
	PropertyID    string        `json:"propertyId"`
	PropertyTitle string        `json:"propertyTitle"`
	CheckIn       string        `json:"checkIn"`
	CheckOut      string        `json:"checkOut"`
	Nights        int           `json:"nights"`
	TotalCost     int64         `json:"totalCost"`
	ClientDetails ClientDetails `json:"clientDetails"`
	CreatedAt     string        `json:"createdAt"`
	Status        BookingStatus `json:"status"`
}

// Clone returns a pointer to a copy of b, or nil.
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

// BookingInput carries every booking field except the identifier and creation timestamp.
type BookingInput struct {
	PropertyID    string
	PropertyTitle string
	CheckIn       string
	CheckOut      string
	Nights        int
	TotalCost     int64
	ClientDetails ClientDetails
	Status        BookingStatus
}

// Booking builds a booking record from the input.
func (in BookingInput) Booking(id, createdAt string) Booking {
	return Booking{
		ID:            id,
		PropertyID:    in.PropertyID,
		PropertyTitle: in.PropertyTitle,
		CheckIn:       in.CheckIn,
		CheckOut:      in.CheckOut,
		Nights:        in.Nights,
		TotalCost:     in.TotalCost,
		ClientDetails: in.ClientDetails,
		CreatedAt:     createdAt,
		Status:        in.Status,
	}
}
