package services

import (
	"fmt"
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
	"github.com/mhgamal/hr_approvals_app/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// scheduleService derives installment schedules for approved loan principals.
type scheduleService struct{}

// NewScheduleService creates the installment scheduler.
func NewScheduleService() portssvc.InstallmentSchedulerSvc {
	return &scheduleService{}
}

var _ portssvc.InstallmentSchedulerSvc = (*scheduleService)(nil)

// GenerateSchedule splits the principal into installmentCount monthly
// installments starting at firstDueDate.
//
// Installments 1..n-1 carry round(principal/n, 2dp, half-up); the last
// installment absorbs the rounding residue so the schedule sums exactly to
// the principal. Due dates advance one calendar month each, clamped to the
// end of shorter months.
func (s *scheduleService) GenerateSchedule(principal decimal.Decimal, installmentCount int, firstDueDate time.Time) ([]domain.Installment, error) {
	if installmentCount < 1 {
		return nil, fmt.Errorf("%w: installment count must be at least 1", apperrors.ErrValidation)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}

	n := decimal.NewFromInt(int64(installmentCount))
	// decimal.Round rounds half away from zero, which is half-up for the
	// positive amounts handled here.
	base := principal.Div(n).Round(2)
	last := principal.Sub(base.Mul(decimal.NewFromInt(int64(installmentCount - 1))))

	if (installmentCount > 1 && !base.IsPositive()) || !last.IsPositive() {
		return nil, fmt.Errorf("%w: principal %s cannot be split into %d positive installments",
			apperrors.ErrRoundingInvariant, principal, installmentCount)
	}

	installments := make([]domain.Installment, installmentCount)
	sum := decimal.Zero
	for i := 0; i < installmentCount; i++ {
		amount := base
		if i == installmentCount-1 {
			amount = last
		}
		installments[i] = domain.Installment{
			InstallmentNo: i + 1,
			DueDate:       dates.AddMonthsClamped(firstDueDate, i),
			Amount:        amount,
			Status:        domain.InstallmentPending,
		}
		sum = sum.Add(amount)
	}

	// Exact-sum assertion; unreachable for a correct implementation.
	if !sum.Equal(principal) {
		return nil, fmt.Errorf("%w: schedule sums to %s, principal is %s",
			apperrors.ErrRoundingInvariant, sum, principal)
	}

	return installments, nil
}
