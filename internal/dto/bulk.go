package dto

import (
	"context"
	"errors"

	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
)

// BulkApproveRequest is the payload for approving several requests in one
// call. Each id is decided independently.
type BulkApproveRequest struct {
	RequestIDs []string `json:"requestIDs" binding:"required,min=1"`
}

// BulkErrorKind classifies why one id in a bulk operation failed.
type BulkErrorKind string

const (
	BulkErrInvalidStateTransition BulkErrorKind = "INVALID_STATE_TRANSITION"
	BulkErrBlocked                BulkErrorKind = "BLOCKED"
	BulkErrValidationFailed       BulkErrorKind = "VALIDATION_FAILED"
	BulkErrNotFound               BulkErrorKind = "NOT_FOUND"
	BulkErrForbidden              BulkErrorKind = "FORBIDDEN"
	BulkErrMissingApprover        BulkErrorKind = "MISSING_APPROVER"
	BulkErrCancelled              BulkErrorKind = "CANCELLED"
	BulkErrInternal               BulkErrorKind = "INTERNAL"
)

// BulkFailure records one id that could not be approved.
type BulkFailure struct {
	RequestID string        `json:"requestID"`
	Kind      BulkErrorKind `json:"kind"`
}

// BulkApproveResult reports per-id outcomes. Failures never abort the
// remaining ids and succeeded items are never rolled back.
type BulkApproveResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// ClassifyBulkError maps an approval error to its bulk error kind.
func ClassifyBulkError(err error) BulkErrorKind {
	var transition *apperrors.InvalidStateTransitionError
	var blocked *apperrors.BlockedError
	var validation *apperrors.ValidationFailedError
	switch {
	case errors.As(err, &transition):
		return BulkErrInvalidStateTransition
	case errors.As(err, &blocked):
		return BulkErrBlocked
	case errors.As(err, &validation):
		return BulkErrValidationFailed
	case errors.Is(err, apperrors.ErrNotFound):
		return BulkErrNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return BulkErrForbidden
	case errors.Is(err, apperrors.ErrMissingApprover):
		return BulkErrMissingApprover
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return BulkErrCancelled
	default:
		return BulkErrInternal
	}
}
