package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portsrepo "github.com/mhgamal/hr_approvals_app/internal/core/ports/repositories"
	"github.com/mhgamal/hr_approvals_app/internal/models"
	"github.com/mhgamal/hr_approvals_app/internal/utils/mapping"
)

type PgxDecisionRepository struct {
	BaseRepository
}

// newPgxDecisionRepository creates a new repository for the decision audit trail.
func newPgxDecisionRepository(pool *pgxpool.Pool) portsrepo.DecisionRecorder {
	return &PgxDecisionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDecisionRepository implements portsrepo.DecisionRecorder
var _ portsrepo.DecisionRecorder = (*PgxDecisionRepository)(nil)

// RecordDecision appends one decision record. Rows are never updated or deleted.
func (r *PgxDecisionRepository) RecordDecision(ctx context.Context, decision domain.ApprovalDecision) error {
	m := mapping.ToModelDecision(decision)
	query := `
		INSERT INTO approval_decisions (decision_id, request_id, level, approver_id, action, notes, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DecisionID,
		m.RequestID,
		m.Level,
		m.ApproverID,
		m.Action,
		m.Notes,
		m.DecidedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert decision for request "+m.RequestID, err)
	}
	return nil
}

// ListDecisionsByRequestID returns the decision history for a request, oldest first.
func (r *PgxDecisionRepository) ListDecisionsByRequestID(ctx context.Context, requestID string) ([]domain.ApprovalDecision, error) {
	query := `
		SELECT decision_id, request_id, level, approver_id, action, notes, decided_at
		FROM approval_decisions
		WHERE request_id = $1
		ORDER BY decided_at;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query decisions for request "+requestID, err)
	}
	defer rows.Close()

	decisions := []domain.ApprovalDecision{}
	for rows.Next() {
		var m models.ApprovalDecision
		if err := rows.Scan(
			&m.DecisionID,
			&m.RequestID,
			&m.Level,
			&m.ApproverID,
			&m.Action,
			&m.Notes,
			&m.DecidedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan decision row for request "+requestID, err)
		}
		decisions = append(decisions, mapping.ToDomainDecision(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating decision rows for request "+requestID, err)
	}

	return decisions, nil
}
