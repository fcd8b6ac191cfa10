package models

import "time"

// ApprovalDecision is the append-only audit row for one approve/reject call.
type ApprovalDecision struct {
	DecisionID string    `json:"decisionID"` // Primary Key (UUID)
	RequestID  string    `json:"requestID"`
	Level      int       `json:"level"`
	ApproverID string    `json:"approverID"`
	Action     string    `json:"action"`
	Notes      *string   `json:"notes,omitempty"`
	DecidedAt  time.Time `json:"decidedAt"`
}
