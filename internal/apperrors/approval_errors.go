package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// ErrInvalidRejectionReason indicates a rejection was attempted without a reason.
var ErrInvalidRejectionReason = errors.New("rejection reason is required")

// ErrMissingApprover indicates the approval chain has no approver for the
// request's current level.
var ErrMissingApprover = errors.New("no approver configured for level")

// ErrRoundingInvariant is an internal assertion: a generated schedule failed
// the exact-sum or positivity checks. It must never surface from a correct
// scheduler.
var ErrRoundingInvariant = errors.New("installment rounding invariant violated")

// ValidationFailedError carries the complete set of violated eligibility
// rules, never just the first one.
type ValidationFailedError struct {
	Codes []domain.ViolationCode
}

func (e *ValidationFailedError) Error() string {
	codes := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		codes[i] = string(c)
	}
	return "eligibility validation failed: " + strings.Join(codes, ", ")
}

// NewValidationFailed wraps the collected violation codes.
func NewValidationFailed(codes []domain.ViolationCode) *ValidationFailedError {
	return &ValidationFailedError{Codes: codes}
}

// InvalidStateTransitionError indicates an operation was attempted against a
// request whose status does not permit it. The record is left untouched.
type InvalidStateTransitionError struct {
	From domain.RequestStatus
	Op   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: cannot %s a request in status %s", e.Op, e.From)
}

// BlockedError indicates approval is disabled by a currently failing
// eligibility rule, without changing the request's status.
type BlockedError struct {
	Code domain.ViolationCode
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("request blocked: %s", e.Code)
}
