package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	kafkaMocks "frontdesk/infras/kafka/mocks"
	"frontdesk/infras/otel/mocks"
	"frontdesk/internal/domains/booking/draft"
	bookingMocks "frontdesk/internal/domains/booking/mocks"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/service"
	customerModel "frontdesk/internal/domains/customer/model"
	roomModel "frontdesk/internal/domains/room/model"
	"frontdesk/shared/cache"
	cacheMocks "frontdesk/shared/cache/mocks"
	"frontdesk/shared/failure"
)

const testTopic = "frontdesk.bookings"

type serviceFixture struct {
	repo   *bookingMocks.MockBooking
	cache  *cacheMocks.MockRedisCache
	events *kafkaMocks.MockClient
	svc    service.Booking
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Events.Kafka.BookingTopic = testTopic

	f := &serviceFixture{
		repo:   bookingMocks.NewMockBooking(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		events: kafkaMocks.NewMockClient(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, f.events, mocks.NewOtel())

	return f
}

// expectAfterWrite arms the asynchronous invalidate-and-publish expectations
// and returns a channel that closes once the event has been published.
func (f *serviceFixture) expectAfterWrite() chan struct{} {
	done := make(chan struct{})

	f.cache.EXPECT().Clear(gomock.Any(), "booking:gets*").Return(nil)
	f.events.EXPECT().
		SendMessages(gomock.Any(), testTopic, gomock.Any()).
		DoAndReturn(func(context.Context, string, ...kafka.Message) error {
			close(done)

			return nil
		})

	return done
}

func waitFor(t *testing.T, done chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async after-write work")
	}
}

func submittableSnapshot() draft.Snapshot {
	checkIn := time.Date(2024, 3, 1, 21, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	checkOut := time.Date(2024, 3, 3, 18, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	room := roomModel.Room{ID: 7, RoomNumber: "701", BaseCapacity: 2, MaxExtraBeds: 2, Active: true}

	return draft.Snapshot{
		State:            draft.StateSubmittable,
		CheckIn:          &checkIn,
		CheckOut:         &checkOut,
		Guests:           2,
		SelectedRoom:     &room,
		ExtraBedsCount:   1,
		ExtraBedsEnabled: true,
		Customer: draft.CustomerInfo{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "+44 20 7946 0018",
		},
	}
}

func TestBookingService_Submit_CreatesNewBooking(t *testing.T) {
	f := newFixture(t)
	snap := submittableSnapshot()

	extraBeds := 1
	f.repo.EXPECT().
		Create(gomock.Any(), dto.CreateBookingRequest{
			RoomID:         7,
			StartDate:      "2024-03-01T14:00:00Z",
			EndDate:        "2024-03-03T11:00:00Z",
			Name:           "Ada Lovelace",
			Email:          "ada@example.com",
			Phone:          "+44 20 7946 0018",
			ExtraBedsCount: &extraBeds,
		}).
		Return(model.Booking{BookingID: 42}, nil)

	done := f.expectAfterWrite()

	booking, err := f.svc.Submit(context.Background(), snap)

	require.NoError(t, err)
	assert.Equal(t, int64(42), booking.BookingID)

	waitFor(t, done)
}

func TestBookingService_Submit_OmitsDisabledExtraBeds(t *testing.T) {
	f := newFixture(t)

	snap := submittableSnapshot()
	snap.ExtraBedsCount = 0
	snap.ExtraBedsEnabled = false

	f.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) (model.Booking, error) {
			assert.Nil(t, req.ExtraBedsCount)

			return model.Booking{BookingID: 43}, nil
		})

	done := f.expectAfterWrite()

	_, err := f.svc.Submit(context.Background(), snap)

	require.NoError(t, err)
	waitFor(t, done)
}

func TestBookingService_Submit_UpdatesExistingBooking(t *testing.T) {
	f := newFixture(t)

	snap := submittableSnapshot()
	bookingID := int64(42)
	customerID := int64(5)
	snap.BookingID = &bookingID
	snap.Customer.CustomerID = &customerID

	f.repo.EXPECT().
		Update(gomock.Any(), bookingID, dto.UpdateBookingRequest{
			CustomerID:     5,
			RoomID:         7,
			StartDate:      "2024-03-01T14:00:00Z",
			EndDate:        "2024-03-03T11:00:00Z",
			NumPersons:     2,
			ExtraBedsCount: 1,
		}).
		Return(model.Booking{BookingID: bookingID}, nil)

	done := f.expectAfterWrite()

	booking, err := f.svc.Submit(context.Background(), snap)

	require.NoError(t, err)
	assert.Equal(t, bookingID, booking.BookingID)

	waitFor(t, done)
}

func TestBookingService_Submit_Preconditions(t *testing.T) {
	t.Run("non-submittable state never reaches the repository", func(t *testing.T) {
		f := newFixture(t)

		snap := submittableSnapshot()
		snap.State = draft.StateRoomSelected

		_, err := f.svc.Submit(context.Background(), snap)

		require.Error(t, err)
		assert.Equal(t, failure.KindPrecondition, failure.GetKind(err))
	})

	t.Run("existing booking without customer identity is rejected", func(t *testing.T) {
		f := newFixture(t)

		snap := submittableSnapshot()
		bookingID := int64(42)
		snap.BookingID = &bookingID

		_, err := f.svc.Submit(context.Background(), snap)

		require.Error(t, err)
		assert.Equal(t, failure.KindPrecondition, failure.GetKind(err))
	})
}

func TestBookingService_Submit_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	snap := submittableSnapshot()

	f.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(model.Booking{}, errors.New("upstream rejected the booking"))

	_, err := f.svc.Submit(context.Background(), snap)

	require.Error(t, err)
	assert.Equal(t, failure.KindSubmission, failure.GetKind(err))
}

func TestBookingService_GetAll(t *testing.T) {
	customer := customerModel.Customer{CustomerID: 5, Name: "Ada Lovelace"}
	bookings := []model.Booking{{BookingID: 42, CustomerID: 5, Customer: &customer}}

	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		f := newFixture(t)
		saved := make(chan struct{})

		f.cache.EXPECT().Get(gomock.Any(), "booking:gets", gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().GetAll(gomock.Any()).Return(bookings, nil)
		f.cache.EXPECT().
			Save(gomock.Any(), "booking:gets", gomock.Any(), 3600).
			DoAndReturn(func(context.Context, string, any, int) error {
				close(saved)

				return nil
			})

		got, err := f.svc.GetAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, bookings, got)

		waitFor(t, saved)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), "booking:gets", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*[]model.Booking) = bookings

				return nil
			})

		got, err := f.svc.GetAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, bookings, got)
	})
}

func TestBookingService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Delete(gomock.Any(), int64(42)).Return(nil)
	done := f.expectAfterWrite()

	require.NoError(t, f.svc.Delete(context.Background(), 42))

	waitFor(t, done)
}

func TestBookingService_Search(t *testing.T) {
	f := newFixture(t)
	req := dto.SearchBookingsRequest{Customer: "ada", Guests: "2"}

	f.repo.EXPECT().
		Search(gomock.Any(), req).
		Return([]model.Booking{{BookingID: 42}}, nil)

	got, err := f.svc.Search(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0].BookingID)
}
