package dto

import (
	"net/url"

	"frontdesk/shared/constant"
)

// UpdateInvoiceRequest is the PUT /invoices body. The backend takes the
// invoice identity in the body rather than the path.
type UpdateInvoiceRequest struct {
	InvoiceID int64   `json:"invoiceId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	DueDate   string  `json:"dueDate" validate:"required"`
	Status    string  `json:"status" validate:"required,oneof=unpaid paid void"`
}

// SearchInvoicesRequest carries the invoice screen filters. Empty fields are
// left out of the query entirely.
type SearchInvoicesRequest struct {
	Customer  string `json:"customer"`
	InvoiceID string `json:"invoiceId"`
	Status    string `json:"status"`
}

func (r SearchInvoicesRequest) ToQuery() url.Values {
	query := url.Values{}

	set := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}

	set(constant.RequestParamCustomer, r.Customer)
	set(constant.RequestParamInvoiceID, r.InvoiceID)
	set(constant.RequestParamStatus, r.Status)

	return query
}
