package draft

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookingModel "frontdesk/internal/domains/booking/model"
	customerModel "frontdesk/internal/domains/customer/model"
	roomModel "frontdesk/internal/domains/room/model"
	"frontdesk/shared/failure"
)

// State is the lifecycle position of an in-progress booking edit.
type State int

const (
	StateEmpty State = iota
	StateDatesEntered
	StateRoomsQueried
	StateRoomSelected
	StateSubmittable
	StateSubmitting
	StateCommitted
	StateFailed
)

var stateNames = map[State]string{
	StateEmpty:        "empty",
	StateDatesEntered: "dates_entered",
	StateRoomsQueried: "rooms_queried",
	StateRoomSelected: "room_selected",
	StateSubmittable:  "submittable",
	StateSubmitting:   "submitting",
	StateCommitted:    "committed",
	StateFailed:       "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CustomerInfo is the guest identity on a draft. CustomerID is only present
// when the draft was hydrated from an existing booking or the guest was
// picked from search results.
type CustomerInfo struct {
	CustomerID *int64 `json:"customerId,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (c CustomerInfo) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Phone != ""
}

// Snapshot is an immutable copy of the draft handed to observers and the
// submission gateway.
type Snapshot struct {
	ID               string                   `json:"id"`
	State            State                    `json:"state"`
	CheckIn          *time.Time               `json:"checkIn,omitempty"`
	CheckOut         *time.Time               `json:"checkOut,omitempty"`
	Guests           int                      `json:"guests"`
	CandidateRooms   []roomModel.Room         `json:"candidateRooms"`
	SelectedRoom     *roomModel.Room          `json:"selectedRoom,omitempty"`
	ExtraBedsCount   int                      `json:"extraBedsCount"`
	ExtraBedsEnabled bool                     `json:"extraBedsEnabled"`
	Customer         CustomerInfo             `json:"customer"`
	CustomerMatches  []customerModel.Customer `json:"customerMatches"`
	BookingID        *int64                   `json:"bookingId,omitempty"`
	LastError        string                   `json:"lastError,omitempty"`
}

// AvailabilityFinder yields candidate rooms for a stay. Implemented by the
// availability service.
type AvailabilityFinder interface {
	FindAvailableRooms(ctx context.Context, start, end time.Time, guests int) ([]roomModel.Room, error)
}

// CustomerSearcher matches customers by name fragment. Implemented by the
// customer service.
type CustomerSearcher interface {
	Search(ctx context.Context, query string) ([]customerModel.Customer, error)
}

// SubmissionGateway persists a submittable draft. Implemented by the booking
// service.
type SubmissionGateway interface {
	Submit(ctx context.Context, snap Snapshot) (bookingModel.Booking, error)
}

type Deps struct {
	Finder   AvailabilityFinder
	Searcher CustomerSearcher
	Gateway  SubmissionGateway
}

type Options struct {
	SearchDebounce time.Duration
	MinQueryLength int
}

// Session owns one draft. There is exactly one writer (the editing user);
// the mutex exists because availability responses and debounce timers land
// on their own goroutines.
type Session struct {
	mu   sync.Mutex
	deps Deps
	opts Options

	id               string
	state            State
	checkIn          *time.Time
	checkOut         *time.Time
	guests           int
	candidates       []roomModel.Room
	queried          bool
	selected         *roomModel.Room
	extraBeds        int
	extraBedsEnabled bool
	customer         CustomerInfo
	matches          []customerModel.Customer
	bookingID        *int64
	lastError        string

	// queryGen tags every availability request with the input generation it
	// was issued for; responses for superseded generations are discarded, so
	// the candidate list always reflects the latest input, not the latest
	// arrival.
	queryGen    uint64
	searchGen   uint64
	searchTimer *time.Timer

	subscribers []func(Snapshot)
}

// New starts a blank draft session.
func New(deps Deps, opts Options) *Session {
	return &Session{
		id:    uuid.NewString(),
		deps:  deps,
		opts:  opts,
		state: StateEmpty,
	}
}

// NewFromBooking starts a draft hydrated from an existing booking for
// editing. A pre-existing extra-bed count keeps the extra-beds toggle on.
// The caller should follow up with RefreshAvailability to populate the
// candidate list for the booking's stay.
func NewFromBooking(booking bookingModel.Booking, deps Deps, opts Options) *Session {
	s := New(deps, opts)

	checkIn := booking.StartDate
	checkOut := booking.EndDate
	s.checkIn = &checkIn
	s.checkOut = &checkOut

	s.guests = booking.NumPersons
	if s.guests < 1 {
		s.guests = 1
	}

	if booking.Room != nil {
		room := *booking.Room
		s.selected = &room
	}

	s.extraBeds = booking.ExtraBedsCount
	s.extraBedsEnabled = booking.ExtraBedsCount > 0

	if booking.Customer != nil {
		customerID := booking.Customer.CustomerID
		s.customer = CustomerInfo{
			CustomerID: &customerID,
			Name:       booking.Customer.Name,
			Email:      booking.Customer.Email,
			Phone:      booking.Customer.Phone,
		}
	}

	bookingID := booking.BookingID
	s.bookingID = &bookingID

	s.recompute()

	return s
}

func (s *Session) ID() string {
	return s.id
}

// Subscribe registers an observer called with a snapshot after every change.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// SetStay records the stay interval and guest count, then re-queries
// availability. A previously selected room is left in place even though the
// new interval may invalidate it; the user changes it explicitly.
func (s *Session) SetStay(ctx context.Context, checkIn, checkOut time.Time, guests int) {
	s.mu.Lock()

	s.checkIn = &checkIn
	s.checkOut = &checkOut
	s.guests = guests
	s.lastError = ""

	s.recompute()
	s.requery(ctx)
	s.notifyUnlock()
}

// RefreshAvailability re-runs the availability query for the current stay
// without changing any field. Used right after edit-mode hydration.
func (s *Session) RefreshAvailability(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requery(ctx)
}

func (s *Session) requery(ctx context.Context) {
	if s.checkIn == nil || s.checkOut == nil || s.guests < 1 {
		return
	}

	s.queryGen++
	gen := s.queryGen
	checkIn := *s.checkIn
	checkOut := *s.checkOut
	guests := s.guests

	// The initiating request may finish before the query does.
	queryCtx := context.WithoutCancel(ctx)

	go func() {
		rooms, err := s.deps.Finder.FindAvailableRooms(queryCtx, checkIn, checkOut, guests)

		s.mu.Lock()

		if gen != s.queryGen {
			s.mu.Unlock()
			log.Debug().Str("draftID", s.id).Msg("discarding superseded availability response")

			return
		}

		if err != nil {
			s.candidates = nil
			s.queried = false
			s.lastError = err.Error()
		} else {
			s.candidates = rooms
			s.queried = true
		}

		s.recompute()
		s.notifyUnlock()
	}()
}

// SelectRoom picks a room from the current candidate list. Every room change
// resets the extra-bed count and toggle.
func (s *Session) SelectRoom(roomID int64) error {
	s.mu.Lock()

	var picked *roomModel.Room

	for i := range s.candidates {
		if s.candidates[i].ID == roomID {
			picked = &s.candidates[i]

			break
		}
	}

	if picked == nil {
		s.mu.Unlock()

		return failure.Validation("room is not in the current candidate list") //nolint:wrapcheck
	}

	room := *picked
	s.selected = &room
	s.extraBeds = 0
	s.extraBedsEnabled = false

	s.recompute()
	s.notifyUnlock()

	return nil
}

// ClearRoom drops the room selection.
func (s *Session) ClearRoom() {
	s.mu.Lock()

	s.selected = nil
	s.extraBeds = 0
	s.extraBedsEnabled = false

	s.recompute()
	s.notifyUnlock()
}

// SetExtraBeds requests an extra-bed count, clamped to what the selected
// room allows.
func (s *Session) SetExtraBeds(requested int) error {
	s.mu.Lock()

	if s.selected == nil {
		s.mu.Unlock()

		return failure.Validation("no room selected") //nolint:wrapcheck
	}

	s.extraBeds = s.selected.ClampExtraBeds(requested)
	s.extraBedsEnabled = s.extraBeds > 0

	s.notifyUnlock()

	return nil
}

// SetCustomer records the guest identity fields. Clearing any required field
// disables submit again without touching the rest of the draft.
func (s *Session) SetCustomer(info CustomerInfo) {
	s.mu.Lock()

	s.customer = info

	s.recompute()
	s.notifyUnlock()
}

// SearchCustomers schedules a debounced name search. Queries below the
// minimum length clear the match list without a backend call; superseded
// searches are discarded.
func (s *Session) SearchCustomers(ctx context.Context, name string) {
	s.mu.Lock()

	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}

	s.searchGen++
	gen := s.searchGen

	if len(name) < s.opts.MinQueryLength {
		s.matches = nil
		s.notifyUnlock()

		return
	}

	searchCtx := context.WithoutCancel(ctx)

	s.searchTimer = time.AfterFunc(s.opts.SearchDebounce, func() {
		results, err := s.deps.Searcher.Search(searchCtx, name)

		s.mu.Lock()

		if gen != s.searchGen {
			s.mu.Unlock()

			return
		}

		if err != nil {
			s.mu.Unlock()
			log.Error().Err(err).Str("draftID", s.id).Msg("customer search failed")

			return
		}

		s.matches = results
		s.notifyUnlock()
	})
	s.mu.Unlock()
}

// PickCustomer adopts a searched customer, identity included.
func (s *Session) PickCustomer(customer customerModel.Customer) {
	s.mu.Lock()

	customerID := customer.CustomerID
	s.customer = CustomerInfo{
		CustomerID: &customerID,
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
	}
	s.matches = nil

	s.recompute()
	s.notifyUnlock()
}

// Submit hands the draft to the submission gateway. On failure the draft is
// left exactly as entered for correction and an explicit retry; nothing
// retries automatically.
func (s *Session) Submit(ctx context.Context) (bookingModel.Booking, error) {
	s.mu.Lock()

	// A failed draft is retried as-is; an explicit resubmit is the only
	// retry path.
	if s.state == StateFailed {
		s.recompute()
	}

	if s.state != StateSubmittable {
		s.mu.Unlock()

		return bookingModel.Booking{}, failure.Precondition("draft is not submittable") //nolint:wrapcheck
	}

	snap := s.snapshot()
	s.state = StateSubmitting
	s.notifyUnlock()

	booking, err := s.deps.Gateway.Submit(ctx, snap)

	s.mu.Lock()

	if err != nil {
		s.state = StateFailed
		s.lastError = err.Error()
		s.notifyUnlock()

		return bookingModel.Booking{}, err
	}

	s.state = StateCommitted
	s.lastError = ""
	s.notifyUnlock()

	return booking, nil
}

// recompute derives the state from the draft fields. Submitting and the two
// terminal outcomes are set explicitly by Submit, never derived.
func (s *Session) recompute() {
	if s.state == StateSubmitting || s.state == StateCommitted {
		return
	}

	datesEntered := s.checkIn != nil && s.checkOut != nil && s.guests >= 1

	switch {
	case !datesEntered:
		s.state = StateEmpty
	case s.selected != nil && s.customer.Complete():
		s.state = StateSubmittable
	case s.selected != nil:
		s.state = StateRoomSelected
	case s.queried:
		s.state = StateRoomsQueried
	default:
		s.state = StateDatesEntered
	}
}

func (s *Session) snapshot() Snapshot {
	// Both lists stay non-nil so the snapshot serializes as [] before the
	// first query instead of null.
	candidates := make([]roomModel.Room, len(s.candidates))
	copy(candidates, s.candidates)
	matches := make([]customerModel.Customer, len(s.matches))
	copy(matches, s.matches)

	snap := Snapshot{
		ID:               s.id,
		State:            s.state,
		Guests:           s.guests,
		CandidateRooms:   candidates,
		ExtraBedsCount:   s.extraBeds,
		ExtraBedsEnabled: s.extraBedsEnabled,
		Customer:         s.customer,
		CustomerMatches:  matches,
		LastError:        s.lastError,
	}

	if s.checkIn != nil {
		checkIn := *s.checkIn
		snap.CheckIn = &checkIn
	}

	if s.checkOut != nil {
		checkOut := *s.checkOut
		snap.CheckOut = &checkOut
	}

	if s.selected != nil {
		room := *s.selected
		snap.SelectedRoom = &room
	}

	if s.bookingID != nil {
		bookingID := *s.bookingID
		snap.BookingID = &bookingID
	}

	return snap
}

// notifyUnlock snapshots the draft and the subscriber list, releases the
// session lock, and then delivers the snapshot. Subscribers may call back
// into the session. Must be called with s.mu held.
func (s *Session) notifyUnlock() {
	snap := s.snapshot()
	subscribers := make([]func(Snapshot), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}
