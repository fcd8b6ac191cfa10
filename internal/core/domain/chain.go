package domain

// ApprovalLevel is one position in the ordered required-approver chain for a
// request type. An approver is designated either by a specific employee or by
// role.
type ApprovalLevel struct {
	Level        int    `json:"level"` // 1-based
	LevelName    string `json:"levelName"`
	Role         Role   `json:"role"`
	ApproverID   string `json:"approverID,omitempty"` // empty when the level is role-based
	ApproverName string `json:"approverName,omitempty"`
}

// ApprovalLevelChain is the ordered sequence of approval levels configured
// for a request type, optionally scoped to a department or project.
type ApprovalLevelChain struct {
	RequestType RequestType     `json:"requestType"`
	Department  string          `json:"department,omitempty"`
	ProjectID   string          `json:"projectID,omitempty"`
	Levels      []ApprovalLevel `json:"levels"`
}

// Len returns the number of levels in the chain.
func (c ApprovalLevelChain) Len() int {
	return len(c.Levels)
}

// LevelAt returns the level descriptor for a 1-based level number.
func (c ApprovalLevelChain) LevelAt(level int) (ApprovalLevel, bool) {
	if level < 1 || level > len(c.Levels) {
		return ApprovalLevel{}, false
	}
	return c.Levels[level-1], true
}
