package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus indicates the repayment state of a single installment.
// Transitions after creation are owned by the payroll-processing collaborator.
type InstallmentStatus string

const (
	InstallmentPending   InstallmentStatus = "PENDING"
	InstallmentPaid      InstallmentStatus = "PAID"
	InstallmentOverdue   InstallmentStatus = "OVERDUE"
	InstallmentPostponed InstallmentStatus = "POSTPONED"
)

// Installment is one scheduled partial repayment of an approved loan
// principal. The full schedule for a loan always sums exactly to the
// principal.
type Installment struct {
	ID            string            `json:"id"` // Primary Key (UUID)
	LoanID        string            `json:"loanID"`
	InstallmentNo int               `json:"installmentNo"` // 1-based
	DueDate       time.Time         `json:"dueDate"`
	Amount        decimal.Decimal   `json:"amount"`
	PaidDate      *time.Time        `json:"paidDate,omitempty"`
	Status        InstallmentStatus `json:"status"`
	AuditFields
}
