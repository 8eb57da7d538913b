package invoice

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"frontdesk/infras/otel"
	"frontdesk/internal/domains/invoice/model/dto"
	"frontdesk/internal/domains/invoice/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Get("/search", handler.SearchInvoices)
		routerGroup.Put("/", handler.UpdateInvoice)
		routerGroup.Post("/void-unpaid", handler.VoidUnpaidInvoices)
	})
}

func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	invoices, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

func (handler *Handler) SearchInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchInvoices")
	defer scope.End()

	query := r.URL.Query()
	req := dto.SearchInvoicesRequest{
		Customer:  query.Get(constant.RequestParamCustomer),
		InvoiceID: query.Get(constant.RequestParamInvoiceID),
		Status:    query.Get(constant.RequestParamStatus),
	}

	invoices, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

func (handler *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInvoice")
	defer scope.End()

	req := dto.UpdateInvoiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update invoice")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoice updated successfully")

	response.WithJSON(w, http.StatusOK, invoice)
}

func (handler *Handler) VoidUnpaidInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VoidUnpaidInvoices")
	defer scope.End()

	if err := handler.service.VoidUnpaid(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to void unpaid invoices")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Unpaid invoices voided successfully")

	response.WithMessage(w, http.StatusOK, "Unpaid invoices voided successfully")
}
