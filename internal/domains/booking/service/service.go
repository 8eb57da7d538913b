package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/draft"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/internal/domains/booking/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

const (
	cacheGetAllBooking = "booking:gets"
)

const (
	eventBookingCreated = "booking.created"
	eventBookingUpdated = "booking.updated"
	eventBookingDeleted = "booking.deleted"
)

type Booking interface {
	GetAll(ctx context.Context) ([]model.Booking, error)
	Search(ctx context.Context, req dto.SearchBookingsRequest) ([]model.Booking, error)
	Submit(ctx context.Context, snap draft.Snapshot) (model.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo   repository.Booking
	cfg    *config.Config
	cache  cache.RedisCache
	events kafka.Client
	otel   otel.Otel
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, events kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		cache:  cache,
		events: events,
		otel:   otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAllBooking, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllBooking).Msg("cache hit for bookings")

		return res, nil
	}

	res, err = s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllBooking, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Search(ctx context.Context, req dto.SearchBookingsRequest) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Search(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to search bookings")

		return res, fmt.Errorf("failed to search bookings: %w", err)
	}

	return res, nil
}

// Submit turns a submittable draft into a create or update against the
// backend. Dates are normalized to UTC instants at this boundary. Submission
// carries no idempotency key, so a retry after a false-negative failure can
// duplicate a booking; that matches the product's accepted risk.
func (s *serviceImpl) Submit(ctx context.Context, snap draft.Snapshot) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if snap.State != draft.StateSubmittable {
		return res, failure.Precondition("draft is not submittable") //nolint:wrapcheck
	}

	if snap.SelectedRoom == nil || snap.CheckIn == nil || snap.CheckOut == nil || !snap.Customer.Complete() {
		return res, failure.Precondition("draft is missing required fields") //nolint:wrapcheck
	}

	startDate := snap.CheckIn.UTC().Format(constant.DateFormat)
	endDate := snap.CheckOut.UTC().Format(constant.DateFormat)

	if snap.BookingID == nil {
		req := dto.CreateBookingRequest{
			RoomID:    snap.SelectedRoom.ID,
			StartDate: startDate,
			EndDate:   endDate,
			Name:      snap.Customer.Name,
			Email:     snap.Customer.Email,
			Phone:     snap.Customer.Phone,
		}

		if snap.ExtraBedsCount > 0 {
			extraBeds := snap.ExtraBedsCount
			req.ExtraBedsCount = &extraBeds
		}

		res, err = s.repo.Create(ctx, req)
		if err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return res, failure.Submission(err) //nolint:wrapcheck
		}

		s.afterWrite(ctx, eventBookingCreated, res.BookingID)

		return res, nil
	}

	if snap.Customer.CustomerID == nil {
		return res, failure.Precondition("existing booking draft is missing its customer identity") //nolint:wrapcheck
	}

	req := dto.UpdateBookingRequest{
		CustomerID:     *snap.Customer.CustomerID,
		RoomID:         snap.SelectedRoom.ID,
		StartDate:      startDate,
		EndDate:        endDate,
		NumPersons:     snap.Guests,
		ExtraBedsCount: snap.ExtraBedsCount,
	}

	res, err = s.repo.Update(ctx, *snap.BookingID, req)
	if err != nil {
		log.Error().Err(err).Int64("bookingID", *snap.BookingID).Msg("failed to update booking")

		return res, failure.Submission(err) //nolint:wrapcheck
	}

	s.afterWrite(ctx, eventBookingUpdated, *snap.BookingID)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("bookingID", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.afterWrite(ctx, eventBookingDeleted, id)

	return nil
}

type bookingEvent struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// afterWrite invalidates the cached list and publishes the lifecycle event.
// Callers are expected to reload the authoritative list afterwards.
func (s *serviceImpl) afterWrite(ctx context.Context, eventType string, bookingID int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)

		event := bookingEvent{
			Type:       eventType,
			BookingID:  bookingID,
			OccurredAt: time.Now().UTC(),
		}

		message := kafka.Message{
			Key:   fmt.Sprintf("%d", bookingID),
			Value: event,
		}

		if err := s.events.SendMessages(c, s.cfg.Events.Kafka.BookingTopic, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish booking event")
		}
	}()
}
