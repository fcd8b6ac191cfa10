package repositories

import (
	"context"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// DecisionRecorder persists the audit trail of per-level decisions.
type DecisionRecorder interface {
	// RecordDecision appends one decision record. Decision records are never
	// updated or deleted.
	RecordDecision(ctx context.Context, decision domain.ApprovalDecision) error

	// ListDecisionsByRequestID returns the decision history for a request,
	// oldest first.
	ListDecisionsByRequestID(ctx context.Context, requestID string) ([]domain.ApprovalDecision, error)
}
