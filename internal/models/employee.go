package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the database row backing employee snapshots.
type Employee struct {
	EmployeeID       string          `json:"employeeID"` // Primary Key (UUID)
	MonthlySalary    decimal.Decimal `json:"monthlySalary"`
	HireDate         time.Time       `json:"hireDate"`
	TerminationDate  *time.Time      `json:"terminationDate,omitempty"`
	EmploymentStatus string          `json:"employmentStatus"`
	AuditFields
}

// EmployeeLoan is one approved loan with an outstanding balance, joined from
// the approved requests and their unpaid installments.
type EmployeeLoan struct {
	LoanID             string          `json:"loanID"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	RemainingBalance   decimal.Decimal `json:"remainingBalance"`
}
