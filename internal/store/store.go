// Package store holds the single in-memory aggregate behind the site: listings, bookings,
// the current booking and site configuration. Every mutation is applied in memory,
// written through to a Repository as one serialized record, then announced to subscribers.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"envy/internal/domain/models"
	"envy/internal/utils"

	"github.com/google/uuid"
)

// ErrNoState is returned by Repository.Load when nothing has been persisted yet.
var ErrNoState = errors.New("no persisted state")

// Repository persists the serialized aggregate under one storage key.
type Repository interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, raw []byte) error
	Clear(ctx context.Context) error
}

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	PropertyAdded        ChangeKind = "property.added"
	PropertyUpdated      ChangeKind = "property.updated"
	PropertyDeleted      ChangeKind = "property.deleted"
	BookingAdded         ChangeKind = "booking.added"
	BookingStatusChanged ChangeKind = "booking.status"
	CurrentBookingSet    ChangeKind = "booking.current"
	HeroModeChanged      ChangeKind = "settings.hero"
	GatewayChanged       ChangeKind = "settings.gateway"
	StoreReset           ChangeKind = "store.reset"
)

// Change is delivered to subscribers after a mutation has been applied and persisted.
type Change struct {
	Kind  ChangeKind
	ID    string
	State State
}

type Option func(*Store)

// WithIDFunc replaces the identifier generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces the time source used for booking timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithTimeout bounds each repository call.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// Store is safe for concurrent use. Mutations are serialized and applied in arrival order;
// readers never wait on persistence or subscribers.
type Store struct {
	// writeMu serializes mutations end to end: apply, persist, notify.
	writeMu sync.Mutex
	mu      sync.Mutex
	state   State
	repo    Repository

	newID   func() string
	now     func() time.Time
	timeout time.Duration

	persistMu  sync.Mutex
	persistErr error

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// New builds a store and hydrates it from repo. Malformed persisted state is discarded
// and replaced by defaults; only a failing repository read is reported.
func New(ctx context.Context, repo Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo:    repo,
		newID:   newID,
		now:     utils.NowUTC,
		timeout: 5 * time.Second,
		subs:    map[int]func(Change){},
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := s.hydrate(ctx)
	if err != nil {
		return nil, err
	}
	s.state = state
	return s, nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Store) hydrate(ctx context.Context) (State, error) {
	if s.repo == nil {
		return DefaultState(), nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.repo.Load(ctx)
	if errors.Is(err, ErrNoState) || (err == nil && len(raw) == 0) {
		return DefaultState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load state: %w", err)
	}

	state, err := Decode(raw)
	if err != nil {
		utils.LogEvent("", "store", "hydrate", "discarding malformed state: "+err.Error())
		if cerr := s.repo.Clear(ctx); cerr != nil {
			utils.LogEvent("", "store", "hydrate", "clear failed: "+cerr.Error())
		}
		return DefaultState(), nil
	}
	return state, nil
}

// Subscribe registers fn for every subsequent Change and returns a func that unregisters it.
// Subscribers run synchronously after the write; they may read the store but must not mutate it.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// LastPersistError returns the error of the most recent write, nil when it succeeded.
func (s *Store) LastPersistError() error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	return s.persistErr
}

// mutate applies fn to the state under the write lock, then persists and notifies.
// fn reports false when nothing matched, in which case nothing is written.
func (s *Store) mutate(fn func(st *State) (kind ChangeKind, id string, ok bool)) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.apply(fn)
}

// apply is mutate for callers already holding writeMu.
func (s *Store) apply(fn func(st *State) (kind ChangeKind, id string, ok bool)) bool {
	s.mu.Lock()
	kind, id, ok := fn(&s.state)
	if !ok {
		s.mu.Unlock()
		return false
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.notify(Change{Kind: kind, ID: id, State: snapshot})
	return true
}

func (s *Store) notify(change Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// persist is best-effort: a failed write is logged and remembered, and the in-memory
// state stays as mutated.
func (s *Store) persist(state State) {
	if s.repo == nil {
		return
	}
	err := s.write(state)
	if err != nil {
		utils.LogEvent("", "store", "persist", err.Error())
	}
	s.persistMu.Lock()
	s.persistErr = err
	s.persistMu.Unlock()
}

func (s *Store) write(state State) error {
	raw, err := Encode(state)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.repo.Save(ctx, raw); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the whole aggregate.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Properties() []models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Property, len(s.state.Properties))
	for i, p := range s.state.Properties {
		out[i] = p.Clone()
	}
	return out
}

// Property reports false when id is unknown.
func (s *Store) Property(id string) (models.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.propertyIndex(id)
	if i < 0 {
		return models.Property{}, false
	}
	return s.state.Properties[i].Clone(), true
}

// AddProperty appends a listing under a freshly generated identifier.
func (s *Store) AddProperty(in models.PropertyInput) models.Property {
	var p models.Property
	s.mutate(func(st *State) (ChangeKind, string, bool) {
		p = in.Property(s.uniqueID(func(id string) bool { return st.propertyIndex(id) >= 0 }))
		st.Properties = append(st.Properties, p)
		return PropertyAdded, p.ID, true
	})
	return p.Clone()
}

// UpdateProperty merges patch into the listing; unknown ids are ignored.
func (s *Store) UpdateProperty(id string, patch models.PropertyPatch) (models.Property, bool) {
	var updated models.Property
	ok := s.mutate(func(st *State) (ChangeKind, string, bool) {
		i := st.propertyIndex(id)
		if i < 0 {
			return "", "", false
		}
		updated = patch.Apply(st.Properties[i])
		updated.ID = id
		st.Properties[i] = updated
		return PropertyUpdated, id, true
	})
	return updated.Clone(), ok
}

// DeleteProperty removes the listing; bookings that reference it keep their snapshot.
func (s *Store) DeleteProperty(id string) bool {
	return s.mutate(func(st *State) (ChangeKind, string, bool) {
		i := st.propertyIndex(id)
		if i < 0 {
			return "", "", false
		}
		props := make([]models.Property, 0, len(st.Properties)-1)
		props = append(props, st.Properties[:i]...)
		props = append(props, st.Properties[i+1:]...)
		st.Properties = props
		return PropertyDeleted, id, true
	})
}

func (s *Store) Bookings() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Booking{}, s.state.Bookings...)
}

func (s *Store) Booking(id string) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.state.bookingIndex(id)
	if i < 0 {
		return models.Booking{}, false
	}
	return s.state.Bookings[i], true
}

// LatestBooking is the most recently created booking.
func (s *Store) LatestBooking() (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Bookings) == 0 {
		return models.Booking{}, false
	}
	return s.state.Bookings[len(s.state.Bookings)-1], true
}

// AddBooking records a booking with a new identifier and creation time and makes it current.
func (s *Store) AddBooking(in models.BookingInput) models.Booking {
	var b models.Booking
	s.mutate(func(st *State) (ChangeKind, string, bool) {
		id := s.uniqueID(func(id string) bool { return st.bookingIndex(id) >= 0 })
		b = in.Booking(id, utils.FormatTimestamp(s.now()))
		st.Bookings = append(st.Bookings, b)
		st.CurrentBooking = b.Clone()
		return BookingAdded, b.ID, true
	})
	return b
}

// UpdateBookingStatus replaces only the status field; unknown ids are ignored.
// The current booking is a copy and is refreshed when it refers to the same booking.
func (s *Store) UpdateBookingStatus(id string, status models.BookingStatus) (models.Booking, bool) {
	b, ok, _ := s.TransitionBookingStatus(id, status, nil)
	return b, ok
}

// TransitionBookingStatus is UpdateBookingStatus guarded by allow. allow sees the booking as it
// is under the write lock, so no other mutation can land between the check and the write.
// When allow returns an error nothing is written and the unchanged booking is returned with it.
func (s *Store) TransitionBookingStatus(id string, status models.BookingStatus, allow func(models.Booking) error) (models.Booking, bool, error) {
	return s.transition(func(st *State) int { return st.bookingIndex(id) }, status, allow)
}

// TransitionLatestBooking applies the same guarded transition to the most recent booking.
// found is false when there are no bookings.
func (s *Store) TransitionLatestBooking(status models.BookingStatus, allow func(models.Booking) error) (models.Booking, bool, error) {
	return s.transition(func(st *State) int { return len(st.Bookings) - 1 }, status, allow)
}

func (s *Store) transition(pick func(st *State) int, status models.BookingStatus, allow func(models.Booking) error) (models.Booking, bool, error) {
	var (
		b     models.Booking
		found bool
		err   error
	)
	s.mutate(func(st *State) (ChangeKind, string, bool) {
		i := pick(st)
		if i < 0 {
			return "", "", false
		}
		found = true
		b = st.Bookings[i]
		if allow != nil {
			if err = allow(b); err != nil {
				return "", "", false
			}
		}
		st.Bookings[i].Status = status
		b = st.Bookings[i]
		if cur := st.CurrentBooking; cur != nil && cur.ID == b.ID {
			st.CurrentBooking = b.Clone()
		}
		return BookingStatusChanged, b.ID, true
	})
	return b, found, err
}

func (s *Store) CurrentBooking() *models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentBooking.Clone()
}

// SetCurrentBooking overwrites the pointer; nil clears it.
func (s *Store) SetCurrentBooking(b *models.Booking) {
	s.mutate(func(st *State) (ChangeKind, string, bool) {
		st.CurrentBooking = b.Clone()
		if b == nil {
			return CurrentBookingSet, "", true
		}
		return CurrentBookingSet, b.ID, true
	})
}

func (s *Store) HeroMode() models.HeroMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HeroMode
}

func (s *Store) SetHeroMode(mode models.HeroMode) {
	s.mutate(func(st *State) (ChangeKind, string, bool) {
		st.HeroMode = mode
		return HeroModeChanged, string(mode), true
	})
}

func (s *Store) GatewayConfig() models.GatewayConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Gateway
}

// SetGatewayConfig merges the supplied fields into the gateway configuration.
func (s *Store) SetGatewayConfig(patch models.GatewayPatch) models.GatewayConfig {
	var cfg models.GatewayConfig
	s.mutate(func(st *State) (ChangeKind, string, bool) {
		st.Gateway = patch.Apply(st.Gateway)
		cfg = st.Gateway
		return GatewayChanged, "", true
	})
	return cfg
}

// Reset clears the repository and restores the default state. The clear runs before the
// state lock is taken, so readers keep seeing the old state until defaults are applied.
func (s *Store) Reset() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		if err := s.repo.Clear(ctx); err != nil {
			utils.LogEvent("", "store", "reset", "clear failed: "+err.Error())
		}
		cancel()
	}
	s.apply(func(st *State) (ChangeKind, string, bool) {
		*st = DefaultState()
		return StoreReset, "", true
	})
}

const maxIDAttempts = 16

// uniqueID draws identifiers until taken reports false. An id source that keeps colliding
// is abandoned for generated UUIDs after maxIDAttempts draws.
func (s *Store) uniqueID(taken func(string) bool) string {
	for i := 0; i < maxIDAttempts; i++ {
		if id := s.newID(); id != "" && !taken(id) {
			return id
		}
	}
	for {
		if id := newID(); !taken(id) {
			return id
		}
	}
}
