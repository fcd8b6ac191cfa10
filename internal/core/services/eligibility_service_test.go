package services_test

import (
	"testing"
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
	"github.com/mhgamal/hr_approvals_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type EligibilityServiceTestSuite struct {
	suite.Suite
	validator portssvc.EligibilityValidatorSvc
	today     time.Time
}

func (s *EligibilityServiceTestSuite) SetupTest() {
	s.validator = services.NewEligibilityService()
	s.today = day(2025, time.January, 15)
}

func TestEligibilityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EligibilityServiceTestSuite))
}

// activeEmployee returns a snapshot that passes every loan rule for the
// default loan request built by loanRequest.
func (s *EligibilityServiceTestSuite) activeEmployee(salary string) *domain.EmployeeSnapshot {
	return &domain.EmployeeSnapshot{
		EmployeeID:       "emp-1",
		MonthlySalary:    dec(salary),
		HireDate:         day(2020, time.June, 1),
		EmploymentStatus: domain.EmploymentActive,
	}
}

func (s *EligibilityServiceTestSuite) loanRequest(principal string, count int) *domain.FinancialRequest {
	firstDue := day(2025, time.March, 1)
	return &domain.FinancialRequest{
		Type:              domain.RequestTypeLoan,
		SubjectEmployeeID: "emp-1",
		Amount:            dec(principal),
		InstallmentCount:  count,
		FirstDueDate:      &firstDue,
	}
}

func (s *EligibilityServiceTestSuite) TestLoan_Eligible() {
	violations := s.validator.Validate(s.loanRequest("24000", 12), s.activeEmployee("10000"), s.today)
	s.Empty(violations)
}

func (s *EligibilityServiceTestSuite) TestLoan_PrincipalExceedsCap() {
	// 130000 > 12 x 10000.
	violations := s.validator.Validate(s.loanRequest("130000", 12), s.activeEmployee("10000"), s.today)
	s.Contains(violations, domain.ViolationPrincipalExceedsCap)
}

func (s *EligibilityServiceTestSuite) TestLoan_MonthlyDeductionExceedsCap() {
	// Existing 600/mo plus a new 2000/mo is 2600 > 0.30 x 8000 = 2400.
	snapshot := s.activeEmployee("8000")
	snapshot.ActiveLoans = []domain.ActiveLoan{
		{LoanID: "loan-0", MonthlyInstallment: dec("600"), RemainingBalance: dec("0")},
	}
	violations := s.validator.Validate(s.loanRequest("24000", 12), snapshot, s.today)
	s.Contains(violations, domain.ViolationMonthlyDeductionExceedsCap)
	// The zero remaining balance means it is not an "active loan" violation.
	s.NotContains(violations, domain.ViolationActiveLoanExists)
}

func (s *EligibilityServiceTestSuite) TestLoan_ActiveLoanExists() {
	snapshot := s.activeEmployee("10000")
	snapshot.ActiveLoans = []domain.ActiveLoan{
		{LoanID: "loan-0", MonthlyInstallment: dec("100"), RemainingBalance: dec("1200")},
	}
	violations := s.validator.Validate(s.loanRequest("12000", 12), snapshot, s.today)
	s.Contains(violations, domain.ViolationActiveLoanExists)
}

func (s *EligibilityServiceTestSuite) TestLoan_PrincipalNotPositive() {
	violations := s.validator.Validate(s.loanRequest("0", 12), s.activeEmployee("10000"), s.today)
	s.Contains(violations, domain.ViolationPrincipalNotPositive)
	s.NotContains(violations, domain.ViolationPrincipalExceedsCap)
}

func (s *EligibilityServiceTestSuite) TestLoan_InstallmentCountOutOfRange() {
	// Below the minimum of 3.
	violations := s.validator.Validate(s.loanRequest("6000", 2), s.activeEmployee("10000"), s.today)
	s.Contains(violations, domain.ViolationInstallmentCountOutOfRange)

	// Above the default 12-month ceiling for open-ended contracts.
	violations = s.validator.Validate(s.loanRequest("6000", 24), s.activeEmployee("10000"), s.today)
	s.Contains(violations, domain.ViolationInstallmentCountOutOfRange)
}

func (s *EligibilityServiceTestSuite) TestLoan_InstallmentCountCappedByContract() {
	snapshot := s.activeEmployee("10000")
	termination := day(2028, time.June, 1) // 96 contract months, capped at 60
	snapshot.TerminationDate = &termination
	violations := s.validator.Validate(s.loanRequest("24000", 48), snapshot, s.today)
	s.NotContains(violations, domain.ViolationInstallmentCountOutOfRange)

	violations = s.validator.Validate(s.loanRequest("24000", 61), snapshot, s.today)
	s.Contains(violations, domain.ViolationInstallmentCountOutOfRange)
}

func (s *EligibilityServiceTestSuite) TestLoan_FirstDueDateTooEarly() {
	request := s.loanRequest("24000", 12)
	tooEarly := day(2025, time.February, 14) // today is Jan 15; cutoff is Feb 15
	request.FirstDueDate = &tooEarly
	violations := s.validator.Validate(request, s.activeEmployee("10000"), s.today)
	s.Contains(violations, domain.ViolationFirstDueDateTooEarly)

	onCutoff := day(2025, time.February, 15)
	request.FirstDueDate = &onCutoff
	violations = s.validator.Validate(request, s.activeEmployee("10000"), s.today)
	s.NotContains(violations, domain.ViolationFirstDueDateTooEarly)
}

func (s *EligibilityServiceTestSuite) TestLoan_EmploymentNotActive() {
	snapshot := s.activeEmployee("10000")
	snapshot.EmploymentStatus = domain.EmploymentSuspended
	violations := s.validator.Validate(s.loanRequest("24000", 12), snapshot, s.today)
	s.Contains(violations, domain.ViolationEmploymentNotActive)
}

func (s *EligibilityServiceTestSuite) TestLoan_MinServiceNotMet() {
	snapshot := s.activeEmployee("10000")
	snapshot.HireDate = day(2024, time.September, 1) // 4.5 months before today
	violations := s.validator.Validate(s.loanRequest("24000", 12), snapshot, s.today)
	s.Contains(violations, domain.ViolationMinServiceNotMet)
}

func (s *EligibilityServiceTestSuite) TestLoan_CollectsAllViolations() {
	// Never fail-fast: a thoroughly ineligible request reports every rule.
	snapshot := s.activeEmployee("1000")
	snapshot.EmploymentStatus = domain.EmploymentTerminated
	snapshot.HireDate = day(2024, time.December, 1)
	snapshot.ActiveLoans = []domain.ActiveLoan{
		{LoanID: "loan-0", MonthlyInstallment: dec("500"), RemainingBalance: dec("4000")},
	}
	request := s.loanRequest("130000", 2)
	tooEarly := day(2025, time.January, 20)
	request.FirstDueDate = &tooEarly

	violations := s.validator.Validate(request, snapshot, s.today)

	s.ElementsMatch([]domain.ViolationCode{
		domain.ViolationPrincipalExceedsCap,
		domain.ViolationInstallmentCountOutOfRange,
		domain.ViolationFirstDueDateTooEarly,
		domain.ViolationEmploymentNotActive,
		domain.ViolationActiveLoanExists,
		domain.ViolationMinServiceNotMet,
		domain.ViolationMonthlyDeductionExceedsCap,
	}, violations)
}

func (s *EligibilityServiceTestSuite) TestLeave_DateRangeInvalid() {
	start := day(2025, time.February, 10)
	end := day(2025, time.February, 5)
	request := &domain.FinancialRequest{
		Type:              domain.RequestTypeLeave,
		SubjectEmployeeID: "emp-1",
		StartDate:         &start,
		EndDate:           &end,
	}
	violations := s.validator.Validate(request, s.activeEmployee("10000"), s.today)
	s.Contains(violations, domain.ViolationDateRangeInvalid)
}

func (s *EligibilityServiceTestSuite) TestPurchaseOrder_AmountNotPositive() {
	request := &domain.FinancialRequest{
		Type:              domain.RequestTypePurchaseOrder,
		SubjectEmployeeID: "emp-1",
		Amount:            dec("0"),
	}
	violations := s.validator.Validate(request, s.activeEmployee("10000"), s.today)
	s.Equal([]domain.ViolationCode{domain.ViolationAmountNotPositive}, violations)
}

func (s *EligibilityServiceTestSuite) TestManualAttendance_FutureDate() {
	future := day(2025, time.January, 16)
	request := &domain.FinancialRequest{
		Type:              domain.RequestTypeManualAttendance,
		SubjectEmployeeID: "emp-1",
		AttendanceDate:    &future,
	}
	violations := s.validator.Validate(request, s.activeEmployee("10000"), s.today)
	s.Contains(violations, domain.ViolationAttendanceDateInFuture)
}

func (s *EligibilityServiceTestSuite) TestPayrollRun_PeriodInvalid() {
	request := &domain.FinancialRequest{
		Type:              domain.RequestTypePayrollRun,
		SubjectEmployeeID: "emp-1",
		PeriodYear:        2025,
		PeriodMonth:       13,
	}
	violations := s.validator.Validate(request, s.activeEmployee("10000"), s.today)
	s.Contains(violations, domain.ViolationPayrollPeriodInvalid)
}
