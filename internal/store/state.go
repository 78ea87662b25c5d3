package store

import (
	"encoding/json"
	"fmt"

	"envy/internal/domain/models"
)

// DefaultStorageKey is the single key the whole aggregate is persisted under.
const DefaultStorageKey = "envy-estate-db"

// State is the persisted aggregate: every listing, every booking in creation order,
// the booking being carried through checkout, and site configuration.
type State struct {
	Properties     []models.Property    `json:"properties"`
	Bookings       []models.Booking     `json:"bookings"`
	CurrentBooking *models.Booking      `json:"currentBooking"`
	HeroMode       models.HeroMode      `json:"heroMode"`
	Gateway        models.GatewayConfig `json:"payfast"`
}

// persistedState mirrors State with optional fields so hydration can tell
// "absent" from "empty".
type persistedState struct {
	Properties     []models.Property     `json:"properties"`
	Bookings       []models.Booking      `json:"bookings"`
	CurrentBooking *models.Booking       `json:"currentBooking"`
	HeroMode       models.HeroMode       `json:"heroMode"`
	Gateway        *models.GatewayConfig `json:"payfast"`
}

// DefaultState is the seed listings, no bookings, video hero and a sandboxed gateway.
func DefaultState() State {
	return State{
		Properties: models.SeedProperties(),
		Bookings:   []models.Booking{},
		HeroMode:   models.HeroVideo,
		Gateway:    models.DefaultGatewayConfig(),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Properties:     make([]models.Property, len(s.Properties)),
		Bookings:       make([]models.Booking, len(s.Bookings)),
		CurrentBooking: s.CurrentBooking.Clone(),
		HeroMode:       s.HeroMode,
		Gateway:        s.Gateway,
	}
	for i, p := range s.Properties {
		out.Properties[i] = p.Clone()
	}
	copy(out.Bookings, s.Bookings)
	return out
}

// Encode serializes the aggregate.
func Encode(s State) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return raw, nil
}

// Decode parses a persisted aggregate and fills whatever is missing:
// no listings falls back to the seed, no bookings to an empty list,
// an unknown hero mode to video and a missing gateway block to sandbox defaults.
// Only unparseable input is an error.
func Decode(raw []byte) (State, error) {
	var p persistedState
	if err := json.Unmarshal(raw, &p); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}

	s := State{
		Properties:     p.Properties,
		Bookings:       p.Bookings,
		CurrentBooking: p.CurrentBooking,
		HeroMode:       p.HeroMode,
		Gateway:        models.DefaultGatewayConfig(),
	}
	if len(s.Properties) == 0 {
		s.Properties = models.SeedProperties()
	}
	if s.Bookings == nil {
		s.Bookings = []models.Booking{}
	}
	if !s.HeroMode.Valid() {
		s.HeroMode = models.HeroVideo
	}
	if p.Gateway != nil {
		s.Gateway = *p.Gateway
	}
	return s, nil
}

func (s *State) propertyIndex(id string) int {
	for i := range s.Properties {
		if s.Properties[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) bookingIndex(id string) int {
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}
