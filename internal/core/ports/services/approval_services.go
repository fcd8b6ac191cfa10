package services

import (
	"context"
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/mhgamal/hr_approvals_app/internal/dto"
)

// ApprovalReaderSvc defines read operations for financial requests.
type ApprovalReaderSvc interface {
	// GetRequestByID retrieves a specific request by its ID.
	GetRequestByID(ctx context.Context, requestID string) (*domain.FinancialRequest, error)

	// ListRequests retrieves a paginated list of requests.
	ListRequests(ctx context.Context, params dto.ListRequestsParams) (*dto.ListRequestsResponse, error)

	// GetLoanSchedule retrieves the persisted installment schedule of an
	// approved loan, ordered by installment number.
	GetLoanSchedule(ctx context.Context, loanID string) ([]domain.Installment, error)

	// GetDecisionHistory retrieves the audit trail of decisions taken
	// against a request, oldest first.
	GetDecisionHistory(ctx context.Context, requestID string) ([]domain.ApprovalDecision, error)
}

// ApprovalWriterSvc defines the request lifecycle operations. Every operation
// takes the acting identity and the current time explicitly.
type ApprovalWriterSvc interface {
	// SubmitRequest validates and persists a new request at chain level 1.
	SubmitRequest(ctx context.Context, req dto.SubmitRequestRequest, actor domain.Actor, now time.Time) (*domain.FinancialRequest, error)

	// ApproveRequest applies one approval decision. At the final chain level
	// the request becomes APPROVED (and, for loans, the installment schedule
	// is generated and persisted); otherwise it advances one level.
	ApproveRequest(ctx context.Context, requestID string, actor domain.Actor, notes string, now time.Time) (*domain.FinancialRequest, error)

	// RejectRequest finalizes the request as REJECTED from any non-terminal
	// level, storing the reason verbatim.
	RejectRequest(ctx context.Context, requestID string, actor domain.Actor, reason string, now time.Time) (*domain.FinancialRequest, error)
}

// ApprovalSvcFacade combines all approval-related service interfaces.
type ApprovalSvcFacade interface {
	ApprovalReaderSvc
	ApprovalWriterSvc
}

// BulkApprovalSvc drives the approval router over a set of requests with
// per-item error isolation.
type BulkApprovalSvc interface {
	// BulkApprove processes ids sequentially in input order. A failure on
	// one id is recorded and processing continues; no rollback of prior
	// successes ever occurs. Cancellation is honored between items only.
	BulkApprove(ctx context.Context, requestIDs []string, actor domain.Actor, now time.Time) (*dto.BulkApproveResult, error)
}
