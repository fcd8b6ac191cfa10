package models

// ApprovalLevel is one configured level row of an approval chain. Chains are
// grouped by (request_type, department, project_id) and ordered by level.
type ApprovalLevel struct {
	LevelID      string  `json:"levelID"` // Primary Key (UUID)
	RequestType  string  `json:"requestType"`
	Department   *string `json:"department,omitempty"`
	ProjectID    *string `json:"projectID,omitempty"`
	Level        int     `json:"level"`
	LevelName    string  `json:"levelName"`
	Role         string  `json:"role"`
	ApproverID   *string `json:"approverID,omitempty"`
	ApproverName *string `json:"approverName,omitempty"`
	AuditFields
}
