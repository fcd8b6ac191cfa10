package repositories

import (
	"context"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// ApprovalChainProvider resolves the configured approval chain for a request
// type, optionally scoped by department or project. Falls back to the
// unscoped chain when no scoped one exists.
type ApprovalChainProvider interface {
	ChainFor(ctx context.Context, requestType domain.RequestType, department, projectID string) (*domain.ApprovalLevelChain, error)
}
