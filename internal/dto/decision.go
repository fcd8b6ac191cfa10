package dto

import (
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// DecisionResponse defines the data returned for one audit-trail decision.
type DecisionResponse struct {
	Level      int                   `json:"level"`
	ApproverID string                `json:"approverID"`
	Action     domain.DecisionAction `json:"action"`
	Notes      string                `json:"notes,omitempty"`
	DecidedAt  time.Time             `json:"decidedAt"`
}

// ToDecisionResponses converts a decision history slice.
func ToDecisionResponses(decisions []domain.ApprovalDecision) []DecisionResponse {
	out := make([]DecisionResponse, len(decisions))
	for i, d := range decisions {
		out[i] = DecisionResponse{
			Level:      d.Level,
			ApproverID: d.ApproverID,
			Action:     d.Action,
			Notes:      d.Notes,
			DecidedAt:  d.DecidedAt,
		}
	}
	return out
}
