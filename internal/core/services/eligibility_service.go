package services

import (
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
	"github.com/mhgamal/hr_approvals_app/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// Loan policy constants.
const (
	maxPrincipalSalaryMultiple = 12
	minInstallmentCount        = 3
	maxInstallmentCount        = 60
	defaultContractMonths      = 12 // open-ended contracts
	minServiceMonths           = 6
)

// maxDeductionRatio caps total monthly loan deductions at 30% of salary.
var maxDeductionRatio = decimal.New(30, -2) // 0.30

// eligibilityService is the pure rule-checker for proposed requests. It
// mutates nothing and collects every violation instead of failing fast.
type eligibilityService struct{}

// NewEligibilityService creates the eligibility validator.
func NewEligibilityService() portssvc.EligibilityValidatorSvc {
	return &eligibilityService{}
}

var _ portssvc.EligibilityValidatorSvc = (*eligibilityService)(nil)

// Validate returns every policy violation for the request against the
// snapshot. An empty result means the request is eligible. The caller
// supplies `today` so the check is deterministic.
func (s *eligibilityService) Validate(request *domain.FinancialRequest, snapshot *domain.EmployeeSnapshot, today time.Time) []domain.ViolationCode {
	switch request.Type {
	case domain.RequestTypeLoan:
		return s.validateLoan(request, snapshot, today)
	case domain.RequestTypeLeave:
		return s.validateLeave(request, snapshot)
	case domain.RequestTypePurchaseOrder:
		return s.validatePurchaseOrder(request)
	case domain.RequestTypeManualAttendance:
		return s.validateManualAttendance(request, today)
	case domain.RequestTypePayrollRun:
		return s.validatePayrollRun(request)
	default:
		return nil
	}
}

func (s *eligibilityService) validateLoan(request *domain.FinancialRequest, snapshot *domain.EmployeeSnapshot, today time.Time) []domain.ViolationCode {
	var violations []domain.ViolationCode

	principal := request.Amount
	if !principal.IsPositive() {
		violations = append(violations, domain.ViolationPrincipalNotPositive)
	} else {
		principalCap := snapshot.MonthlySalary.Mul(decimal.NewFromInt(maxPrincipalSalaryMultiple))
		if principal.GreaterThan(principalCap) {
			violations = append(violations, domain.ViolationPrincipalExceedsCap)
		}
	}

	contractMonths := defaultContractMonths
	if snapshot.TerminationDate != nil {
		contractMonths = dates.MonthsBetween(snapshot.HireDate, *snapshot.TerminationDate)
	}
	maxCount := maxInstallmentCount
	if contractMonths < maxCount {
		maxCount = contractMonths
	}
	if request.InstallmentCount < minInstallmentCount || request.InstallmentCount > maxCount {
		violations = append(violations, domain.ViolationInstallmentCountOutOfRange)
	}

	if request.FirstDueDate == nil || request.FirstDueDate.Before(dates.AddMonthsClamped(today, 1)) {
		violations = append(violations, domain.ViolationFirstDueDateTooEarly)
	}

	if snapshot.EmploymentStatus != domain.EmploymentActive {
		violations = append(violations, domain.ViolationEmploymentNotActive)
	}

	if snapshot.HasActiveLoan() {
		violations = append(violations, domain.ViolationActiveLoanExists)
	}

	if dates.MonthsBetween(snapshot.HireDate, today) < minServiceMonths {
		violations = append(violations, domain.ViolationMinServiceNotMet)
	}

	// The new monthly deduction uses the same rounding the scheduler will
	// apply, so eligibility and the eventual schedule agree.
	if principal.IsPositive() && request.InstallmentCount > 0 {
		newMonthly := principal.Div(decimal.NewFromInt(int64(request.InstallmentCount))).Round(2)
		total := snapshot.TotalMonthlyInstallments().Add(newMonthly)
		deductionCap := snapshot.MonthlySalary.Mul(maxDeductionRatio)
		if total.GreaterThan(deductionCap) {
			violations = append(violations, domain.ViolationMonthlyDeductionExceedsCap)
		}
	}

	return violations
}

func (s *eligibilityService) validateLeave(request *domain.FinancialRequest, snapshot *domain.EmployeeSnapshot) []domain.ViolationCode {
	var violations []domain.ViolationCode
	if request.StartDate == nil || request.EndDate == nil || request.EndDate.Before(*request.StartDate) {
		violations = append(violations, domain.ViolationDateRangeInvalid)
	}
	if snapshot.EmploymentStatus != domain.EmploymentActive {
		violations = append(violations, domain.ViolationEmploymentNotActive)
	}
	return violations
}

func (s *eligibilityService) validatePurchaseOrder(request *domain.FinancialRequest) []domain.ViolationCode {
	if !request.Amount.IsPositive() {
		return []domain.ViolationCode{domain.ViolationAmountNotPositive}
	}
	return nil
}

func (s *eligibilityService) validateManualAttendance(request *domain.FinancialRequest, today time.Time) []domain.ViolationCode {
	if request.AttendanceDate == nil || request.AttendanceDate.After(today) {
		return []domain.ViolationCode{domain.ViolationAttendanceDateInFuture}
	}
	return nil
}

func (s *eligibilityService) validatePayrollRun(request *domain.FinancialRequest) []domain.ViolationCode {
	if request.PeriodYear <= 0 || request.PeriodMonth < 1 || request.PeriodMonth > 12 {
		return []domain.ViolationCode{domain.ViolationPayrollPeriodInvalid}
	}
	return nil
}
