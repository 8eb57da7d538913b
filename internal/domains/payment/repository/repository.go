package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"frontdesk/infras/hotelapi"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/payment/model"
	"frontdesk/internal/domains/payment/model/dto"
	"frontdesk/shared/constant"
)

type Payment interface {
	GetAll(ctx context.Context) ([]model.Payment, error)
	Create(ctx context.Context, req dto.CreatePaymentRequest) (model.Payment, error)
}

type repositoryImpl struct {
	api  hotelapi.Client
	otel otel.Otel
}

func New(api hotelapi.Client, otel otel.Otel) Payment {
	return &repositoryImpl{
		api:  api,
		otel: otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (res []model.Payment, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetAllPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Get(ctx, "/payments", nil, &res)

	return res, err
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (res model.Payment, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".CreatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Post(ctx, "/payments", req, &res)

	return res, err
}
