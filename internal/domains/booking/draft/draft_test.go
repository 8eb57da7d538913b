package draft_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/domains/booking/draft"
	bookingModel "frontdesk/internal/domains/booking/model"
	customerModel "frontdesk/internal/domains/customer/model"
	roomModel "frontdesk/internal/domains/room/model"
	"frontdesk/shared/failure"
)

var (
	roomStandard = roomModel.Room{ID: 1, RoomNumber: "101", PricePerNight: 80, BaseCapacity: 2, MaxExtraBeds: 0, Active: true}
	roomFamily   = roomModel.Room{ID: 2, RoomNumber: "201", PricePerNight: 120, BaseCapacity: 2, MaxExtraBeds: 2, Active: true}
)

type finderCall struct {
	guests  int
	release chan struct{}
	rooms   []roomModel.Room
	err     error
}

// blockingFinder parks every availability call until the test releases it,
// so response arrival order can be forced.
type blockingFinder struct {
	mu    sync.Mutex
	calls []*finderCall
}

func (f *blockingFinder) FindAvailableRooms(_ context.Context, _, _ time.Time, guests int) ([]roomModel.Room, error) {
	call := &finderCall{guests: guests, release: make(chan struct{})}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	<-call.release

	return call.rooms, call.err
}

func (f *blockingFinder) waitForCall(t *testing.T, n int) *finderCall {
	t.Helper()

	var call *finderCall

	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()

		if len(f.calls) > n {
			call = f.calls[n]

			return true
		}

		return false
	}, time.Second, time.Millisecond)

	return call
}

// immediateFinder answers every availability call with the same result.
type immediateFinder struct {
	rooms []roomModel.Room
	err   error
}

func (f *immediateFinder) FindAvailableRooms(context.Context, time.Time, time.Time, int) ([]roomModel.Room, error) {
	return f.rooms, f.err
}

type stubSearcher struct {
	mu      sync.Mutex
	results map[string][]customerModel.Customer
	queries []string
}

func (s *stubSearcher) Search(_ context.Context, query string) ([]customerModel.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries = append(s.queries, query)

	return s.results[query], nil
}

type stubGateway struct {
	mu       sync.Mutex
	booking  bookingModel.Booking
	errs     []error
	received []draft.Snapshot
}

func (g *stubGateway) Submit(_ context.Context, snap draft.Snapshot) (bookingModel.Booking, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.received = append(g.received, snap)

	if len(g.errs) > 0 {
		err := g.errs[0]
		g.errs = g.errs[1:]

		if err != nil {
			return bookingModel.Booking{}, err
		}
	}

	return g.booking, nil
}

func (g *stubGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.received)
}

func testOptions() draft.Options {
	return draft.Options{SearchDebounce: time.Millisecond, MinQueryLength: 2}
}

func stayWindow() (time.Time, time.Time) {
	checkIn := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 3, 11, 0, 0, 0, time.UTC)

	return checkIn, checkOut
}

func waitForState(t *testing.T, session *draft.Session, want draft.State) {
	t.Helper()

	require.Eventually(t, func() bool {
		return session.Snapshot().State == want
	}, time.Second, time.Millisecond)
}

func TestSession_BlankStartsEmpty(t *testing.T) {
	session := draft.New(draft.Deps{Finder: &immediateFinder{}}, testOptions())

	snap := session.Snapshot()

	assert.Equal(t, draft.StateEmpty, snap.State)
	assert.Nil(t, snap.CheckIn)
	assert.Empty(t, snap.CandidateRooms)
}

func TestSession_SetStayQueriesAvailability(t *testing.T) {
	finder := &immediateFinder{rooms: []roomModel.Room{roomStandard, roomFamily}}
	session := draft.New(draft.Deps{Finder: finder}, testOptions())

	checkIn, checkOut := stayWindow()
	session.SetStay(context.Background(), checkIn, checkOut, 2)

	waitForState(t, session, draft.StateRoomsQueried)

	snap := session.Snapshot()
	require.Len(t, snap.CandidateRooms, 2)
	assert.Equal(t, roomStandard.ID, snap.CandidateRooms[0].ID)
	assert.Equal(t, roomFamily.ID, snap.CandidateRooms[1].ID)
}

func TestSession_StaleAvailabilityResponseDiscarded(t *testing.T) {
	finder := &blockingFinder{}
	session := draft.New(draft.Deps{Finder: finder}, testOptions())

	checkIn, checkOut := stayWindow()

	session.SetStay(context.Background(), checkIn, checkOut, 2)
	first := finder.waitForCall(t, 0)

	session.SetStay(context.Background(), checkIn, checkOut, 3)
	second := finder.waitForCall(t, 1)

	// The newer query answers first.
	second.rooms = []roomModel.Room{roomFamily}
	close(second.release)

	waitForState(t, session, draft.StateRoomsQueried)

	// The older query answers last; its result must not clobber the list.
	first.rooms = []roomModel.Room{roomStandard}
	close(first.release)

	time.Sleep(20 * time.Millisecond)

	snap := session.Snapshot()
	require.Len(t, snap.CandidateRooms, 1)
	assert.Equal(t, roomFamily.ID, snap.CandidateRooms[0].ID)
	assert.Equal(t, 3, snap.Guests)
}

func TestSession_AvailabilityErrorClearsCandidates(t *testing.T) {
	finder := &blockingFinder{}
	session := draft.New(draft.Deps{Finder: finder}, testOptions())

	checkIn, checkOut := stayWindow()

	session.SetStay(context.Background(), checkIn, checkOut, 2)
	first := finder.waitForCall(t, 0)
	first.rooms = []roomModel.Room{roomStandard}
	close(first.release)

	waitForState(t, session, draft.StateRoomsQueried)

	session.SetStay(context.Background(), checkIn, checkOut, 4)
	second := finder.waitForCall(t, 1)
	second.err = errors.New("backend unreachable")
	close(second.release)

	require.Eventually(t, func() bool {
		return session.Snapshot().LastError != ""
	}, time.Second, time.Millisecond)

	snap := session.Snapshot()
	assert.Empty(t, snap.CandidateRooms)
	assert.Equal(t, draft.StateDatesEntered, snap.State)
}

func TestSession_SelectRoomRequiresCandidate(t *testing.T) {
	finder := &immediateFinder{rooms: []roomModel.Room{roomStandard}}
	session := draft.New(draft.Deps{Finder: finder}, testOptions())

	checkIn, checkOut := stayWindow()
	session.SetStay(context.Background(), checkIn, checkOut, 2)

	waitForState(t, session, draft.StateRoomsQueried)

	err := session.SelectRoom(99)
	require.Error(t, err)
	assert.Equal(t, failure.KindValidation, failure.GetKind(err))

	require.NoError(t, session.SelectRoom(roomStandard.ID))
	assert.Equal(t, draft.StateRoomSelected, session.Snapshot().State)
}

func TestSession_RoomChangeResetsExtraBeds(t *testing.T) {
	finder := &immediateFinder{rooms: []roomModel.Room{roomStandard, roomFamily}}
	session := draft.New(draft.Deps{Finder: finder}, testOptions())

	checkIn, checkOut := stayWindow()
	session.SetStay(context.Background(), checkIn, checkOut, 2)

	waitForState(t, session, draft.StateRoomsQueried)

	require.NoError(t, session.SelectRoom(roomFamily.ID))
	require.NoError(t, session.SetExtraBeds(5))

	snap := session.Snapshot()
	assert.Equal(t, 2, snap.ExtraBedsCount, "request above the cap clamps to the cap")
	assert.True(t, snap.ExtraBedsEnabled)

	require.NoError(t, session.SelectRoom(roomStandard.ID))

	snap = session.Snapshot()
	assert.Zero(t, snap.ExtraBedsCount)
	assert.False(t, snap.ExtraBedsEnabled)
}

func TestSession_SetExtraBedsWithoutRoom(t *testing.T) {
	session := draft.New(draft.Deps{Finder: &immediateFinder{}}, testOptions())

	err := session.SetExtraBeds(1)
	require.Error(t, err)
	assert.Equal(t, failure.KindValidation, failure.GetKind(err))
}

func TestSession_SubmittableNeedsRoomAndFullIdentity(t *testing.T) {
	finder := &immediateFinder{rooms: []roomModel.Room{roomStandard}}
	session := draft.New(draft.Deps{Finder: finder}, testOptions())

	checkIn, checkOut := stayWindow()
	session.SetStay(context.Background(), checkIn, checkOut, 2)

	waitForState(t, session, draft.StateRoomsQueried)
	require.NoError(t, session.SelectRoom(roomStandard.ID))

	session.SetCustomer(draft.CustomerInfo{Name: "Ada Lovelace", Email: "ada@example.com"})
	assert.Equal(t, draft.StateRoomSelected, session.Snapshot().State, "missing phone keeps submit disabled")

	session.SetCustomer(draft.CustomerInfo{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+44 20 7946 0018"})
	assert.Equal(t, draft.StateSubmittable, session.Snapshot().State)

	session.SetCustomer(draft.CustomerInfo{Name: "Ada Lovelace", Phone: "+44 20 7946 0018"})
	assert.Equal(t, draft.StateRoomSelected, session.Snapshot().State, "clearing email disables submit again")
}

func TestSession_SubmitBeforeSubmittableNeverCallsGateway(t *testing.T) {
	gateway := &stubGateway{}
	session := draft.New(draft.Deps{Finder: &immediateFinder{}, Gateway: gateway}, testOptions())

	_, err := session.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, failure.KindPrecondition, failure.GetKind(err))
	assert.Zero(t, gateway.callCount())
}

func TestSession_FailedSubmitPreservesDraftForRetry(t *testing.T) {
	finder := &immediateFinder{rooms: []roomModel.Room{roomFamily}}
	gateway := &stubGateway{
		booking: bookingModel.Booking{BookingID: 42},
		errs:    []error{failure.Submission(errors.New("backend rejected the booking"))},
	}
	session := draft.New(draft.Deps{Finder: finder, Gateway: gateway}, testOptions())

	checkIn, checkOut := stayWindow()
	session.SetStay(context.Background(), checkIn, checkOut, 3)

	waitForState(t, session, draft.StateRoomsQueried)
	require.NoError(t, session.SelectRoom(roomFamily.ID))
	require.NoError(t, session.SetExtraBeds(1))
	session.SetCustomer(draft.CustomerInfo{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+44 20 7946 0018"})

	_, err := session.Submit(context.Background())
	require.Error(t, err)

	snap := session.Snapshot()
	assert.Equal(t, draft.StateFailed, snap.State)
	assert.NotEmpty(t, snap.LastError)
	require.NotNil(t, snap.SelectedRoom)
	assert.Equal(t, roomFamily.ID, snap.SelectedRoom.ID)
	assert.Equal(t, 1, snap.ExtraBedsCount)
	assert.Equal(t, "Ada Lovelace", snap.Customer.Name)

	booking, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), booking.BookingID)
	assert.Equal(t, draft.StateCommitted, session.Snapshot().State)
	assert.Equal(t, 2, gateway.callCount())
}

func TestSession_GatewayReceivesSubmittableSnapshot(t *testing.T) {
	finder := &immediateFinder{rooms: []roomModel.Room{roomStandard}}
	gateway := &stubGateway{booking: bookingModel.Booking{BookingID: 7}}
	session := draft.New(draft.Deps{Finder: finder, Gateway: gateway}, testOptions())

	checkIn, checkOut := stayWindow()
	session.SetStay(context.Background(), checkIn, checkOut, 2)

	waitForState(t, session, draft.StateRoomsQueried)
	require.NoError(t, session.SelectRoom(roomStandard.ID))
	session.SetCustomer(draft.CustomerInfo{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+44 20 7946 0018"})

	_, err := session.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, gateway.received, 1)
	snap := gateway.received[0]
	assert.Equal(t, draft.StateSubmittable, snap.State)
	assert.Nil(t, snap.BookingID)
	require.NotNil(t, snap.CheckIn)
	assert.True(t, snap.CheckIn.Equal(checkIn))
}

func TestSession_SearchCustomersDebounced(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]customerModel.Customer{
		"ada": {{CustomerID: 5, Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+44 20 7946 0018"}},
	}}
	session := draft.New(draft.Deps{Finder: &immediateFinder{}, Searcher: searcher}, testOptions())

	session.SearchCustomers(context.Background(), "a")
	assert.Empty(t, session.Snapshot().CustomerMatches, "below-minimum query never hits the backend")

	session.SearchCustomers(context.Background(), "ada")

	require.Eventually(t, func() bool {
		return len(session.Snapshot().CustomerMatches) == 1
	}, time.Second, time.Millisecond)

	searcher.mu.Lock()
	assert.Equal(t, []string{"ada"}, searcher.queries)
	searcher.mu.Unlock()
}

func TestSession_SupersededSearchDiscarded(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]customerModel.Customer{
		"ada": {{CustomerID: 5, Name: "Ada Lovelace"}},
		"bob": {{CustomerID: 6, Name: "Bob Martin"}},
	}}

	opts := testOptions()
	opts.SearchDebounce = 30 * time.Millisecond
	session := draft.New(draft.Deps{Finder: &immediateFinder{}, Searcher: searcher}, opts)

	session.SearchCustomers(context.Background(), "ada")
	session.SearchCustomers(context.Background(), "bob")

	require.Eventually(t, func() bool {
		return len(session.Snapshot().CustomerMatches) == 1
	}, time.Second, time.Millisecond)

	assert.Equal(t, "Bob Martin", session.Snapshot().CustomerMatches[0].Name)
}

func TestSession_PickCustomerAdoptsIdentity(t *testing.T) {
	session := draft.New(draft.Deps{Finder: &immediateFinder{}}, testOptions())

	session.PickCustomer(customerModel.Customer{
		CustomerID: 5,
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Phone:      "+44 20 7946 0018",
	})

	snap := session.Snapshot()
	require.NotNil(t, snap.Customer.CustomerID)
	assert.Equal(t, int64(5), *snap.Customer.CustomerID)
	assert.Empty(t, snap.CustomerMatches)
}

func TestSession_NewFromBookingHydrates(t *testing.T) {
	checkIn, checkOut := stayWindow()
	room := roomFamily
	booking := bookingModel.Booking{
		BookingID:      42,
		CustomerID:     5,
		RoomID:         room.ID,
		Customer:       &customerModel.Customer{CustomerID: 5, Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+44 20 7946 0018"},
		Room:           &room,
		StartDate:      checkIn,
		EndDate:        checkOut,
		NumPersons:     3,
		ExtraBedsCount: 1,
	}

	session := draft.NewFromBooking(booking, draft.Deps{Finder: &immediateFinder{}}, testOptions())

	snap := session.Snapshot()
	assert.Equal(t, draft.StateSubmittable, snap.State)
	require.NotNil(t, snap.BookingID)
	assert.Equal(t, int64(42), *snap.BookingID)
	assert.Equal(t, 1, snap.ExtraBedsCount)
	assert.True(t, snap.ExtraBedsEnabled)
	require.NotNil(t, snap.SelectedRoom)
	assert.Equal(t, room.ID, snap.SelectedRoom.ID)
	require.NotNil(t, snap.Customer.CustomerID)
	assert.Equal(t, int64(5), *snap.Customer.CustomerID)
}

func TestSession_SubscriberReadsSessionBack(t *testing.T) {
	session := draft.New(draft.Deps{Finder: &immediateFinder{}}, testOptions())

	reread := make(chan draft.Snapshot, 1)
	session.Subscribe(func(draft.Snapshot) {
		reread <- session.Snapshot()
	})

	go session.SetCustomer(draft.CustomerInfo{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "0811"})

	select {
	case snap := <-reread:
		assert.Equal(t, "Ada Lovelace", snap.Customer.Name)
	case <-time.After(time.Second):
		t.Fatal("subscriber blocked reading the session back")
	}
}

func TestSession_SnapshotListsSerializeAsArrays(t *testing.T) {
	session := draft.New(draft.Deps{Finder: &immediateFinder{}}, testOptions())

	raw, err := json.Marshal(session.Snapshot())
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"candidateRooms":[]`)
	assert.Contains(t, string(raw), `"customerMatches":[]`)
}

func TestRegistry(t *testing.T) {
	registry := draft.NewRegistry()
	session := draft.New(draft.Deps{Finder: &immediateFinder{}}, testOptions())

	registry.Add(session)

	got, ok := registry.Get(session.ID())
	require.True(t, ok)
	assert.Same(t, session, got)

	registry.Remove(session.ID())

	_, ok = registry.Get(session.ID())
	assert.False(t, ok)
}
