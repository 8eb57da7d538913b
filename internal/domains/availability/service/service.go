package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"frontdesk/infras/otel"
	roomModel "frontdesk/internal/domains/room/model"
	roomRepo "frontdesk/internal/domains/room/repository"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

// Availability answers "which rooms fit this stay". The backend does the
// capacity math over the interval; this service guards the preconditions and
// keeps inactive rooms out of the candidate list no matter what the backend
// returns.
type Availability interface {
	FindAvailableRooms(ctx context.Context, start, end time.Time, guests int) ([]roomModel.Room, error)
}

type serviceImpl struct {
	roomRepo roomRepo.Room
	otel     otel.Otel
}

func New(roomRepo roomRepo.Room, otel otel.Otel) Availability {
	return &serviceImpl{
		roomRepo: roomRepo,
		otel:     otel,
	}
}

// FindAvailableRooms returns the candidate rooms for the stay in backend
// order. An empty result is a valid answer, not an error. Precondition
// violations never reach the network.
func (s *serviceImpl) FindAvailableRooms(ctx context.Context, start, end time.Time, guests int) (res []roomModel.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindAvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	if start.IsZero() || end.IsZero() {
		return nil, failure.Validation("both start and end dates are required") //nolint:wrapcheck
	}

	if !start.Before(end) {
		return nil, failure.Validation("start date must be before end date") //nolint:wrapcheck
	}

	if guests < 1 {
		return nil, failure.Validation("guests must be at least 1") //nolint:wrapcheck
	}

	rooms, err := s.roomRepo.Available(ctx, start, end, guests)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch available rooms")

		return nil, failure.AvailabilityFetch(err) //nolint:wrapcheck
	}

	// Inactive rooms are never offered, even if the backend includes them.
	res = make([]roomModel.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Active {
			res = append(res, room)
		}
	}

	return res, nil
}
