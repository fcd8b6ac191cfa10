package dto

import (
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitRequestRequest is the payload for creating a new financial request.
// Type-specific fields are validated by the eligibility service; binding only
// enforces structure.
type SubmitRequestRequest struct {
	Type              domain.RequestType `json:"type" binding:"required,oneof=LEAVE LOAN PAYROLL_RUN MANUAL_ATTENDANCE PURCHASE_ORDER"`
	SubjectEmployeeID string             `json:"subjectEmployeeID" binding:"required"`
	Department        string             `json:"department,omitempty"`
	ProjectID         string             `json:"projectID,omitempty"`
	Amount            decimal.Decimal    `json:"amount,omitempty"`
	InstallmentCount  int                `json:"installmentCount,omitempty"`
	FirstDueDate      *time.Time         `json:"firstDueDate,omitempty"`
	StartDate         *time.Time         `json:"startDate,omitempty"`
	EndDate           *time.Time         `json:"endDate,omitempty"`
	AttendanceDate    *time.Time         `json:"attendanceDate,omitempty"`
	PeriodYear        int                `json:"periodYear,omitempty"`
	PeriodMonth       int                `json:"periodMonth,omitempty"`
}

// ApproveRequestRequest is the payload for a single approval decision.
type ApproveRequestRequest struct {
	Notes string `json:"notes,omitempty"`
}

// RejectRequestRequest is the payload for a rejection decision.
type RejectRequestRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RequestResponse defines the data returned for a financial request.
type RequestResponse struct {
	ID                string               `json:"id"`
	Type              domain.RequestType   `json:"type"`
	SubjectEmployeeID string               `json:"subjectEmployeeID"`
	Amount            decimal.Decimal      `json:"amount"`
	Status            domain.RequestStatus `json:"status"`
	StatusLabel       string               `json:"statusLabel"`
	StatusColor       string               `json:"statusColor"`
	CurrentLevel      int                  `json:"currentLevel"`
	NextApproverID    string               `json:"nextApproverID,omitempty"`
	NextApproverName  string               `json:"nextApproverName,omitempty"`
	NextLevelName     string               `json:"nextLevelName,omitempty"`
	BlockingReason    *domain.ViolationCode `json:"blockingReason,omitempty"`
	RejectionReason   string               `json:"rejectionReason,omitempty"`
	ApprovedDate      *time.Time           `json:"approvedDate,omitempty"`
	ApproverID        string               `json:"approverID,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// ToRequestResponse converts a domain.FinancialRequest to its response DTO,
// attaching the presentation-boundary status label and color.
func ToRequestResponse(r *domain.FinancialRequest) RequestResponse {
	label := StatusLabel(r.Status)
	return RequestResponse{
		ID:                r.ID,
		Type:              r.Type,
		SubjectEmployeeID: r.SubjectEmployeeID,
		Amount:            r.Amount,
		Status:            r.Status,
		StatusLabel:       label.Label,
		StatusColor:       label.Color,
		CurrentLevel:      r.CurrentLevel,
		NextApproverID:    r.NextApproverID,
		NextApproverName:  r.NextApproverName,
		NextLevelName:     r.NextLevelName,
		BlockingReason:    r.BlockingReason,
		RejectionReason:   r.RejectionReason,
		ApprovedDate:      r.ApprovedDate,
		ApproverID:        r.ApproverID,
		CreatedAt:         r.CreatedAt,
	}
}

// ToRequestResponses converts a slice of domain requests.
func ToRequestResponses(requests []domain.FinancialRequest) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToRequestResponse(&requests[i])
	}
	return responses
}

// ListRequestsParams carries token-based pagination and filters for listing
// requests.
type ListRequestsParams struct {
	Type      *domain.RequestType   `form:"type"`
	Status    *domain.RequestStatus `form:"status"`
	Limit     int                   `form:"limit"`
	NextToken *string               `form:"nextToken"`
}

// ListRequestsResponse is the paginated list payload.
type ListRequestsResponse struct {
	Requests  []RequestResponse `json:"requests"`
	NextToken *string           `json:"nextToken,omitempty"`
}
