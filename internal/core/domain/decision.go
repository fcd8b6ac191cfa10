package domain

import "time"

// DecisionAction is the kind of decision taken at one approval level.
type DecisionAction string

const (
	DecisionApprove DecisionAction = "APPROVE"
	DecisionReject  DecisionAction = "REJECT"
)

// ApprovalDecision is the immutable record of one decision taken against a
// request, kept for audit. One is written per approve/reject call.
type ApprovalDecision struct {
	ID         string         `json:"id"` // Primary Key (UUID)
	RequestID  string         `json:"requestID"`
	Level      int            `json:"level"`
	ApproverID string         `json:"approverID"`
	Action     DecisionAction `json:"action"`
	Notes      string         `json:"notes,omitempty"`
	DecidedAt  time.Time      `json:"decidedAt"`
}
