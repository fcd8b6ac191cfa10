package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
	"github.com/mhgamal/hr_approvals_app/internal/dto"
	"github.com/mhgamal/hr_approvals_app/internal/middleware"
)

// bulkApprovalService processes sets of approval decisions as independent,
// individually attributable operations. The continue-on-error behavior is
// business semantics (one approval per item), not a missing transaction.
type bulkApprovalService struct {
	approval portssvc.ApprovalWriterSvc
}

// NewBulkApprovalService creates the bulk approval coordinator.
func NewBulkApprovalService(approval portssvc.ApprovalWriterSvc) portssvc.BulkApprovalSvc {
	return &bulkApprovalService{approval: approval}
}

var _ portssvc.BulkApprovalSvc = (*bulkApprovalService)(nil)

// BulkApprove approves each id sequentially in input order. Per-id failures
// are recorded in the result and never abort the remaining ids; prior
// successes are never rolled back. Cancellation is only observed between
// items, never partway through one decision; remaining ids are then reported
// as CANCELLED.
func (s *bulkApprovalService) BulkApprove(ctx context.Context, requestIDs []string, actor domain.Actor, now time.Time) (*dto.BulkApproveResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result := &dto.BulkApproveResult{
		Succeeded: make([]string, 0, len(requestIDs)),
		Failed:    make([]dto.BulkFailure, 0),
	}

	for i, id := range requestIDs {
		if err := ctx.Err(); err != nil {
			for _, remaining := range requestIDs[i:] {
				result.Failed = append(result.Failed, dto.BulkFailure{RequestID: remaining, Kind: dto.BulkErrCancelled})
			}
			break
		}

		if _, err := s.approval.ApproveRequest(ctx, id, actor, "", now); err != nil {
			kind := dto.ClassifyBulkError(err)
			logger.Warn("Bulk approval item failed",
				slog.String("request_id", id),
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()),
			)
			result.Failed = append(result.Failed, dto.BulkFailure{RequestID: id, Kind: kind})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	logger.Info("Bulk approval completed",
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}
