package model

const (
	EntityName = "customer"
)

type Customer struct {
	CustomerID int64  `json:"customerId,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}
