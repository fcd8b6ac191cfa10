package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentStatus is the employment state of an employee at snapshot time.
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "ACTIVE"
	EmploymentSuspended  EmploymentStatus = "SUSPENDED"
	EmploymentTerminated EmploymentStatus = "TERMINATED"
)

// ActiveLoan summarizes one previously approved loan that still has an
// outstanding balance.
type ActiveLoan struct {
	LoanID             string          `json:"loanID"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	RemainingBalance   decimal.Decimal `json:"remainingBalance"`
}

// EmployeeSnapshot is a point-in-time view of an employee, supplied by the
// employee directory. Eligibility decisions are made against this snapshot
// only, never against ambient state.
type EmployeeSnapshot struct {
	EmployeeID       string           `json:"employeeID"`
	MonthlySalary    decimal.Decimal  `json:"monthlySalary"`
	HireDate         time.Time        `json:"hireDate"`
	TerminationDate  *time.Time       `json:"terminationDate,omitempty"`
	EmploymentStatus EmploymentStatus `json:"employmentStatus"`
	ActiveLoans      []ActiveLoan     `json:"activeLoans,omitempty"`
}

// TotalMonthlyInstallments sums the monthly installment of every active loan.
func (s EmployeeSnapshot) TotalMonthlyInstallments() decimal.Decimal {
	total := decimal.Zero
	for _, loan := range s.ActiveLoans {
		total = total.Add(loan.MonthlyInstallment)
	}
	return total
}

// HasActiveLoan reports whether any approved loan still carries a remaining
// balance. At most one such loan may exist per employee.
func (s EmployeeSnapshot) HasActiveLoan() bool {
	for _, loan := range s.ActiveLoans {
		if loan.RemainingBalance.IsPositive() {
			return true
		}
	}
	return false
}
