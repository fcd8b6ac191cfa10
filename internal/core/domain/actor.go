package domain

// Role is the closed set of roles known to the approval engine. Authorization
// decisions are made through CanActAtLevel only; no other code compares role
// strings.
type Role string

const (
	RoleEmployee       Role = "EMPLOYEE"
	RoleManager        Role = "MANAGER"
	RoleDepartmentHead Role = "DEPARTMENT_HEAD"
	RoleHRManager      Role = "HR_MANAGER"
	RoleFinanceManager Role = "FINANCE_MANAGER"
	RoleAdmin          Role = "ADMIN"
)

// SystemApproverID is the well-known identifier recorded when a decision is
// made by the system actor rather than a person with an employee record.
const SystemApproverID = "system"

// Actor is the explicit identity performing an operation. It is always passed
// in by the caller; the engine reads no ambient user state.
//
// An Actor without an employee record (an admin console account, a scheduled
// job) is represented as the system actor instead of a sentinel employee id.
type Actor struct {
	UserID     string `json:"userID"`
	EmployeeID string `json:"employeeID,omitempty"`
	Role       Role   `json:"role"`
	IsSystem   bool   `json:"isSystem,omitempty"`
}

// SystemActor returns the first-class system approver identity.
func SystemActor(userID string) Actor {
	return Actor{UserID: userID, Role: RoleAdmin, IsSystem: true}
}

// ApproverID returns the identifier to stamp on decisions made by this actor.
func (a Actor) ApproverID() string {
	if a.IsSystem || a.EmployeeID == "" {
		return SystemApproverID
	}
	return a.EmployeeID
}

// CanActAtLevel is the single authorization predicate consumed by the
// approval router. A level designating a specific approver requires that
// employee; a role-based level requires a matching role. Admins and the
// system actor may act at any level.
func (a Actor) CanActAtLevel(level ApprovalLevel) bool {
	if a.IsSystem || a.Role == RoleAdmin {
		return true
	}
	if level.ApproverID != "" {
		return a.EmployeeID == level.ApproverID
	}
	return a.Role == level.Role
}
