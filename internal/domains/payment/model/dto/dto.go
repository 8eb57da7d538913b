package dto

// CreatePaymentRequest is the POST /payments body. The customer name is a
// free-text field the backend records verbatim on the receipt.
type CreatePaymentRequest struct {
	InvoiceID int64   `json:"invoiceId" validate:"required"`
	Customer  string  `json:"customer" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    *string `json:"method"`
}
