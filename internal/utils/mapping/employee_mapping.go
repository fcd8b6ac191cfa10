package mapping

import (
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/mhgamal/hr_approvals_app/internal/models"
)

// ToDomainSnapshot builds an employee snapshot from an employee row and the
// employee's outstanding loans.
func ToDomainSnapshot(m models.Employee, loans []models.EmployeeLoan) domain.EmployeeSnapshot {
	activeLoans := make([]domain.ActiveLoan, len(loans))
	for i, l := range loans {
		activeLoans[i] = domain.ActiveLoan{
			LoanID:             l.LoanID,
			MonthlyInstallment: l.MonthlyInstallment,
			RemainingBalance:   l.RemainingBalance,
		}
	}
	return domain.EmployeeSnapshot{
		EmployeeID:       m.EmployeeID,
		MonthlySalary:    m.MonthlySalary,
		HireDate:         m.HireDate,
		TerminationDate:  m.TerminationDate,
		EmploymentStatus: domain.EmploymentStatus(m.EmploymentStatus),
		ActiveLoans:      activeLoans,
	}
}
