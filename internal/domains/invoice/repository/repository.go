package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"frontdesk/infras/hotelapi"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/invoice/model"
	"frontdesk/internal/domains/invoice/model/dto"
	"frontdesk/shared/constant"
)

type Invoice interface {
	GetAll(ctx context.Context) ([]model.Invoice, error)
	Search(ctx context.Context, req dto.SearchInvoicesRequest) ([]model.Invoice, error)
	Update(ctx context.Context, req dto.UpdateInvoiceRequest) (model.Invoice, error)
	VoidUnpaid(ctx context.Context) error
}

type repositoryImpl struct {
	api  hotelapi.Client
	otel otel.Otel
}

func New(api hotelapi.Client, otel otel.Otel) Invoice {
	return &repositoryImpl{
		api:  api,
		otel: otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (res []model.Invoice, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetAllInvoices")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Get(ctx, "/invoices", nil, &res)

	return res, err
}

func (r *repositoryImpl) Search(ctx context.Context, req dto.SearchInvoicesRequest) (res []model.Invoice, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SearchInvoices")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.api.Get(ctx, "/invoices/search", req.ToQuery(), &res)

	return res, err
}

func (r *repositoryImpl) Update(ctx context.Context, req dto.UpdateInvoiceRequest) (res model.Invoice, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpdateInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	// The backend keys the update on the invoiceId in the body.
	err = r.api.Put(ctx, "/invoices", req, &res)

	return res, err
}

func (r *repositoryImpl) VoidUnpaid(ctx context.Context) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".VoidUnpaidInvoices")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.api.Post(ctx, "/invoices/void-unpaid", nil, nil)
}
