package repositories

import (
	"context"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// RequestReader defines read operations for financial request data.
type RequestReader interface {
	// FindRequestByID retrieves a specific request by its unique identifier.
	FindRequestByID(ctx context.Context, requestID string) (*domain.FinancialRequest, error)

	// ListRequests retrieves a paginated list of requests using token-based
	// pagination, optionally filtered by type and status. It returns the
	// requests, a token for the next page, and an error.
	ListRequests(ctx context.Context, requestType *domain.RequestType, status *domain.RequestStatus, limit int, nextToken *string) ([]domain.FinancialRequest, *string, error)
}

// RequestWriter defines write operations for financial request data.
type RequestWriter interface {
	// SaveRequest persists a newly submitted request.
	SaveRequest(ctx context.Context, request domain.FinancialRequest) error

	// UpdateRequest persists a routed decision. The update only applies when
	// the stored version matches request.Version; otherwise it returns
	// apperrors.ErrVersionConflict. This is the per-request concurrency
	// control contract the engine relies on.
	UpdateRequest(ctx context.Context, request domain.FinancialRequest) error
}

// RequestRepositoryFacade combines all request repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}
