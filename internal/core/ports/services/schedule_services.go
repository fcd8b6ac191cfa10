package services

import (
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InstallmentSchedulerSvc derives an amortization schedule for an approved
// loan principal. The returned installments sum exactly to the principal,
// every amount is positive, and due dates advance by one calendar month with
// month-end clamping.
type InstallmentSchedulerSvc interface {
	GenerateSchedule(principal decimal.Decimal, installmentCount int, firstDueDate time.Time) ([]domain.Installment, error)
}
