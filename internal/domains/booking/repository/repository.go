package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"frontdesk/infras/hotelapi"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/booking/model"
	"frontdesk/internal/domains/booking/model/dto"
	"frontdesk/shared/constant"
)

type Booking interface {
	GetAll(ctx context.Context) ([]model.Booking, error)
	Search(ctx context.Context, req dto.SearchBookingsRequest) ([]model.Booking, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (model.Booking, error)
	Update(ctx context.Context, id int64, req dto.UpdateBookingRequest) (model.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type repositoryImpl struct {
	api  hotelapi.Client
	otel otel.Otel
}

func New(api hotelapi.Client, otel otel.Otel) Booking {
	return &repositoryImpl{
		api:  api,
		otel: otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (res []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Get(ctx, "/bookings", nil, &res)

	return res, err
}

func (r *repositoryImpl) Search(ctx context.Context, req dto.SearchBookingsRequest) (res []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SearchBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Get(ctx, "/bookings/search/existing", req.ToQuery(), &res)

	return res, err
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Post(ctx, "/bookings", req, &res)

	return res, err
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, req dto.UpdateBookingRequest) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpdateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Put(ctx, fmt.Sprintf("/bookings/%d", id), req, &res)

	return res, err
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".DeleteBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.api.Delete(ctx, fmt.Sprintf("/bookings/%d", id))
}
