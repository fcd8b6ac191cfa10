package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is the database row for one scheduled loan repayment.
type Installment struct {
	InstallmentID string          `json:"installmentID"` // Primary Key (UUID)
	LoanID        string          `json:"loanID"`        // FK to financial_requests
	InstallmentNo int             `json:"installmentNo"`
	DueDate       time.Time       `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	Status        string          `json:"status"`
	AuditFields
}
