package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestType identifies the kind of financial request moving through the
// approval chain.
type RequestType string

const (
	RequestTypeLeave            RequestType = "LEAVE"
	RequestTypeLoan             RequestType = "LOAN"
	RequestTypePayrollRun       RequestType = "PAYROLL_RUN"
	RequestTypeManualAttendance RequestType = "MANUAL_ATTENDANCE"
	RequestTypePurchaseOrder    RequestType = "PURCHASE_ORDER"
)

// RequestStatus indicates the lifecycle state of a financial request.
// APPROVED and REJECTED are terminal.
type RequestStatus string

const (
	StatusNew       RequestStatus = "NEW"
	StatusInProcess RequestStatus = "INPROCESS"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
)

// IsTerminal reports whether no further decisions may be applied.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// FinancialRequest is a single request (leave, loan, payroll run, manual
// attendance or purchase order) routed through a multi-level approval chain.
//
// NextApproverID/NextApproverName/NextLevelName are populated iff the request
// is still NEW or INPROCESS; on reaching a terminal status they are cleared.
type FinancialRequest struct {
	ID                string        `json:"id"` // Primary Key (UUID)
	Type              RequestType   `json:"type"`
	SubjectEmployeeID string        `json:"subjectEmployeeID"`
	Department        string        `json:"department,omitempty"`
	ProjectID         string        `json:"projectID,omitempty"` // chain scoping for purchase orders

	// Amount carries the loan principal or purchase order total.
	Amount decimal.Decimal `json:"amount"`

	// Loan-specific fields.
	InstallmentCount int        `json:"installmentCount,omitempty"`
	FirstDueDate     *time.Time `json:"firstDueDate,omitempty"`

	// Leave-specific fields.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	// Manual-attendance-specific field.
	AttendanceDate *time.Time `json:"attendanceDate,omitempty"`

	// Payroll-run-specific fields.
	PeriodYear  int `json:"periodYear,omitempty"`
	PeriodMonth int `json:"periodMonth,omitempty"` // 1..12

	Status           RequestStatus  `json:"status"`
	CurrentLevel     int            `json:"currentLevel"` // 1-based position in the chain
	NextApproverID   string         `json:"nextApproverID,omitempty"`
	NextApproverName string         `json:"nextApproverName,omitempty"`
	NextLevelName    string         `json:"nextLevelName,omitempty"`
	BlockingReason   *ViolationCode `json:"blockingReason,omitempty"`
	RejectionReason  string         `json:"rejectionReason,omitempty"`
	ApprovedDate     *time.Time     `json:"approvedDate,omitempty"`
	ApproverID       string         `json:"approverID,omitempty"` // final approver

	// Version is the optimistic concurrency token owned by the persistence
	// layer; the engine never interprets it.
	Version int64 `json:"version"`

	AuditFields
}

// HasPendingApprover reports whether next-approver routing fields are set.
// Invariant: true iff Status is NEW or INPROCESS.
func (r *FinancialRequest) HasPendingApprover() bool {
	return r.NextApproverID != "" || r.NextLevelName != ""
}

// ClearRouting removes the next-approver fields when a terminal status is
// reached.
func (r *FinancialRequest) ClearRouting() {
	r.NextApproverID = ""
	r.NextApproverName = ""
	r.NextLevelName = ""
}
