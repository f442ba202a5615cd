package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusPaid    TransactionStatus = "paid"
)

// Transaction is a payout event on an account. Amount is signed: positive
// amounts are withdrawals and reduce computed equity, negative amounts model
// deposits or refunds.
type Transaction struct {
	ID            string
	AccountNumber string
	Amount        float64
	Status        TransactionStatus
	PaidAt        time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
