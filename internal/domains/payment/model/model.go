package model

import "time"

type Payment struct {
	PaymentID     int64     `json:"paymentId"`
	InvoiceID     int64     `json:"invoiceId"`
	AmountPaid    float64   `json:"amountPaid"`
	PaymentDate   time.Time `json:"paymentDate"`
	PaymentMethod *string   `json:"paymentMethod"`
	CustomerName  string    `json:"customerName"`
}
