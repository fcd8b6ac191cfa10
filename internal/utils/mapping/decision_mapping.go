package mapping

import (
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/mhgamal/hr_approvals_app/internal/models"
)

// ToModelDecision converts a domain ApprovalDecision to its database model.
func ToModelDecision(d domain.ApprovalDecision) models.ApprovalDecision {
	return models.ApprovalDecision{
		DecisionID: d.ID,
		RequestID:  d.RequestID,
		Level:      d.Level,
		ApproverID: d.ApproverID,
		Action:     string(d.Action),
		Notes:      strPtrOrNil(d.Notes),
		DecidedAt:  d.DecidedAt,
	}
}

// ToDomainDecision converts a database model to a domain ApprovalDecision.
func ToDomainDecision(m models.ApprovalDecision) domain.ApprovalDecision {
	return domain.ApprovalDecision{
		ID:         m.DecisionID,
		RequestID:  m.RequestID,
		Level:      m.Level,
		ApproverID: m.ApproverID,
		Action:     domain.DecisionAction(m.Action),
		Notes:      strOrEmpty(m.Notes),
		DecidedAt:  m.DecidedAt,
	}
}
