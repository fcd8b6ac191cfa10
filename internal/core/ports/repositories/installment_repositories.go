package repositories

import (
	"context"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// InstallmentReader defines read operations for installment data.
type InstallmentReader interface {
	// FindScheduleByLoanID retrieves the full installment schedule for a
	// loan, ordered by installment number.
	FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.Installment, error)
}

// InstallmentWriter defines write operations for installment data.
type InstallmentWriter interface {
	// SaveSchedule persists the full schedule generated at loan approval
	// time. Installment status/paidDate mutations afterwards belong to the
	// payroll-processing collaborator, not to this engine.
	SaveSchedule(ctx context.Context, installments []domain.Installment) error
}

// InstallmentRepositoryFacade combines all installment repository interfaces.
type InstallmentRepositoryFacade interface {
	InstallmentReader
	InstallmentWriter
}
