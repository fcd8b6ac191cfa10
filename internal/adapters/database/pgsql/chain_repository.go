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

type PgxChainRepository struct {
	BaseRepository
}

// newPgxChainRepository creates a new repository for approval chain configuration.
func newPgxChainRepository(pool *pgxpool.Pool) portsrepo.ApprovalChainProvider {
	return &PgxChainRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxChainRepository implements portsrepo.ApprovalChainProvider
var _ portsrepo.ApprovalChainProvider = (*PgxChainRepository)(nil)

// ChainFor resolves the configured approval chain for a request type. A chain
// scoped to the request's department or project wins over the unscoped one;
// the unscoped chain is the fallback.
func (r *PgxChainRepository) ChainFor(ctx context.Context, requestType domain.RequestType, department, projectID string) (*domain.ApprovalLevelChain, error) {
	if projectID != "" {
		levels, err := r.findLevels(ctx, requestType, nil, &projectID)
		if err != nil {
			return nil, err
		}
		if len(levels) > 0 {
			chain := mapping.ToDomainChain(requestType, "", projectID, levels)
			return &chain, nil
		}
	}
	if department != "" {
		levels, err := r.findLevels(ctx, requestType, &department, nil)
		if err != nil {
			return nil, err
		}
		if len(levels) > 0 {
			chain := mapping.ToDomainChain(requestType, department, "", levels)
			return &chain, nil
		}
	}

	levels, err := r.findLevels(ctx, requestType, nil, nil)
	if err != nil {
		return nil, err
	}
	chain := mapping.ToDomainChain(requestType, "", "", levels)
	return &chain, nil
}

func (r *PgxChainRepository) findLevels(ctx context.Context, requestType domain.RequestType, department, projectID *string) ([]models.ApprovalLevel, error) {
	query := `
		SELECT level_id, request_type, department, project_id, level, level_name,
		       role, approver_id, approver_name,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM approval_levels
		WHERE request_type = $1
		  AND department IS NOT DISTINCT FROM $2
		  AND project_id IS NOT DISTINCT FROM $3
		ORDER BY level;
	`
	rows, err := r.Pool.Query(ctx, query, string(requestType), department, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query approval levels for type "+string(requestType), err)
	}
	defer rows.Close()

	levels := []models.ApprovalLevel{}
	for rows.Next() {
		var m models.ApprovalLevel
		if err := rows.Scan(
			&m.LevelID,
			&m.RequestType,
			&m.Department,
			&m.ProjectID,
			&m.Level,
			&m.LevelName,
			&m.Role,
			&m.ApproverID,
			&m.ApproverName,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan approval level row", err)
		}
		levels = append(levels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating approval level rows", err)
	}

	return levels, nil
}
