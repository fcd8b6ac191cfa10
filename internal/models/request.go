package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRequest is the database row for a financial request. Type-specific
// columns are nullable; only the columns for the row's type carry values.
type FinancialRequest struct {
	RequestID         string          `json:"requestID"` // Primary Key (UUID)
	RequestType       string          `json:"requestType"`
	SubjectEmployeeID string          `json:"subjectEmployeeID"`
	Department        *string         `json:"department,omitempty"`
	ProjectID         *string         `json:"projectID,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	InstallmentCount  *int            `json:"installmentCount,omitempty"`
	FirstDueDate      *time.Time      `json:"firstDueDate,omitempty"`
	StartDate         *time.Time      `json:"startDate,omitempty"`
	EndDate           *time.Time      `json:"endDate,omitempty"`
	AttendanceDate    *time.Time      `json:"attendanceDate,omitempty"`
	PeriodYear        *int            `json:"periodYear,omitempty"`
	PeriodMonth       *int            `json:"periodMonth,omitempty"`
	Status            string          `json:"status"`
	CurrentLevel      int             `json:"currentLevel"`
	NextApproverID    *string         `json:"nextApproverID,omitempty"`
	NextApproverName  *string         `json:"nextApproverName,omitempty"`
	NextLevelName     *string         `json:"nextLevelName,omitempty"`
	BlockingReason    *string         `json:"blockingReason,omitempty"`
	RejectionReason   *string         `json:"rejectionReason,omitempty"`
	ApprovedDate      *time.Time      `json:"approvedDate,omitempty"`
	ApproverID        *string         `json:"approverID,omitempty"`
	Version           int64           `json:"version"`
	AuditFields
}
