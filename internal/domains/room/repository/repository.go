package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"frontdesk/infras/hotelapi"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/room/model"
	"frontdesk/internal/domains/room/model/dto"
	"frontdesk/shared/constant"
)

type Room interface {
	GetAll(ctx context.Context) ([]model.Room, error)
	Available(ctx context.Context, start, end time.Time, guests int) ([]model.Room, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (model.Room, error)
	Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (model.Room, error)
	Delete(ctx context.Context, id int64) error
}

type repositoryImpl struct {
	api  hotelapi.Client
	otel otel.Otel
}

func New(api hotelapi.Client, otel otel.Otel) Room {
	return &repositoryImpl{
		api:  api,
		otel: otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (res []model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetAllRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Get(ctx, "/rooms", nil, &res)

	return res, err
}

// Available asks the backend for rooms whose combined capacity fits the
// stay. Dates cross the boundary as ISO-8601 UTC instants.
func (r *repositoryImpl) Available(ctx context.Context, start, end time.Time, guests int) (res []model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".AvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := url.Values{}
	query.Set(constant.RequestParamStart, start.UTC().Format(constant.DateFormat))
	query.Set(constant.RequestParamEnd, end.UTC().Format(constant.DateFormat))
	query.Set(constant.RequestParamGuests, strconv.Itoa(guests))

	err = r.api.Get(ctx, "/rooms/available", query, &res)

	return res, err
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".CreateRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Post(ctx, "/rooms", req, &res)

	return res, err
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (res model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpdateRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Put(ctx, fmt.Sprintf("/rooms/%d", id), req, &res)

	return res, err
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".DeleteRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.api.Delete(ctx, fmt.Sprintf("/rooms/%d", id))
}
