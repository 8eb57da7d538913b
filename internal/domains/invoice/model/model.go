package model

import "time"

// Invoice statuses as the backend reports them.
const (
	StatusUnpaid = "unpaid"
	StatusPaid   = "paid"
	StatusVoid   = "void"
)

type Invoice struct {
	InvoiceID    int64     `json:"invoiceId"`
	CustomerName string    `json:"customerName"`
	Amount       float64   `json:"amount"`
	IssueDate    time.Time `json:"issueDate"`
	DueDate      time.Time `json:"dueDate"`
	Status       string    `json:"status"`
}
