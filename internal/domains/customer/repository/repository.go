package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/url"

	"frontdesk/infras/hotelapi"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/customer/model"
	"frontdesk/internal/domains/customer/model/dto"
	"frontdesk/shared/constant"
)

type Customer interface {
	GetAll(ctx context.Context) ([]model.Customer, error)
	Search(ctx context.Context, query string) ([]model.Customer, error)
	Create(ctx context.Context, req dto.CreateCustomerRequest) (model.Customer, error)
	Update(ctx context.Context, id int64, req dto.UpdateCustomerRequest) (model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type repositoryImpl struct {
	api  hotelapi.Client
	otel otel.Otel
}

func New(api hotelapi.Client, otel otel.Otel) Customer {
	return &repositoryImpl{
		api:  api,
		otel: otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (res []model.Customer, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetAllCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Get(ctx, "/customers", nil, &res)

	return res, err
}

func (r *repositoryImpl) Search(ctx context.Context, query string) (res []model.Customer, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SearchCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := url.Values{}
	params.Set(constant.RequestParamQuery, query)

	err = r.api.Get(ctx, "/customers/search", params, &res)

	return res, err
}

func (r *repositoryImpl) Create(ctx context.Context, req dto.CreateCustomerRequest) (res model.Customer, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".CreateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Post(ctx, "/customers", req, &res)

	return res, err
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, req dto.UpdateCustomerRequest) (res model.Customer, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpdateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Put(ctx, fmt.Sprintf("/customers/%d", id), req, &res)

	return res, err
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".DeleteCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.api.Delete(ctx, fmt.Sprintf("/customers/%d", id))
}
