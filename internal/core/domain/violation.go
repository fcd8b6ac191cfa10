package domain

// ViolationCode is a stable, locale-independent identifier for one failed
// eligibility rule. The presentation layer localizes these; the core never
// carries display strings.
type ViolationCode string

const (
	// Loan eligibility.
	ViolationPrincipalNotPositive      ViolationCode = "PRINCIPAL_NOT_POSITIVE"
	ViolationPrincipalExceedsCap       ViolationCode = "PRINCIPAL_EXCEEDS_CAP"
	ViolationInstallmentCountOutOfRange ViolationCode = "INSTALLMENT_COUNT_OUT_OF_RANGE"
	ViolationFirstDueDateTooEarly      ViolationCode = "FIRST_DUE_DATE_TOO_EARLY"
	ViolationEmploymentNotActive       ViolationCode = "EMPLOYMENT_NOT_ACTIVE"
	ViolationActiveLoanExists          ViolationCode = "ACTIVE_LOAN_EXISTS"
	ViolationMinServiceNotMet          ViolationCode = "MIN_SERVICE_NOT_MET"
	ViolationMonthlyDeductionExceedsCap ViolationCode = "MONTHLY_DEDUCTION_EXCEEDS_CAP"

	// Structural checks shared by the remaining request types.
	ViolationAmountNotPositive      ViolationCode = "AMOUNT_NOT_POSITIVE"
	ViolationDateRangeInvalid       ViolationCode = "DATE_RANGE_INVALID"
	ViolationAttendanceDateInFuture ViolationCode = "ATTENDANCE_DATE_IN_FUTURE"
	ViolationPayrollPeriodInvalid   ViolationCode = "PAYROLL_PERIOD_INVALID"
)
