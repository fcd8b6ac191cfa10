package services

import (
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// EligibilityValidatorSvc is the pure rule-checker for a proposed request
// against an employee snapshot. It has no side effects and never fails fast:
// every violated rule is collected so callers can display all problems at
// once. An empty result means eligible.
type EligibilityValidatorSvc interface {
	Validate(request *domain.FinancialRequest, snapshot *domain.EmployeeSnapshot, today time.Time) []domain.ViolationCode
}
