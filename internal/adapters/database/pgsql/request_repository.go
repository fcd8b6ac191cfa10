package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portsrepo "github.com/mhgamal/hr_approvals_app/internal/core/ports/repositories"
	"github.com/mhgamal/hr_approvals_app/internal/models"
	"github.com/mhgamal/hr_approvals_app/internal/utils/mapping"
	"github.com/mhgamal/hr_approvals_app/internal/utils/pagination"
)

type PgxRequestRepository struct {
	BaseRepository
}

// newPgxRequestRepository creates a new repository for financial request data.
func newPgxRequestRepository(pool *pgxpool.Pool) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRequestRepository implements portsrepo.RequestRepositoryFacade
var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

const requestColumns = `
	request_id, request_type, subject_employee_id, department, project_id, amount,
	installment_count, first_due_date, start_date, end_date, attendance_date,
	period_year, period_month, status, current_level,
	next_approver_id, next_approver_name, next_level_name,
	blocking_reason, rejection_reason, approved_date, approver_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

// scanRequest scans one row in requestColumns order into a model.
func scanRequest(row pgx.Row) (models.FinancialRequest, error) {
	var m models.FinancialRequest
	err := row.Scan(
		&m.RequestID,
		&m.RequestType,
		&m.SubjectEmployeeID,
		&m.Department,
		&m.ProjectID,
		&m.Amount,
		&m.InstallmentCount,
		&m.FirstDueDate,
		&m.StartDate,
		&m.EndDate,
		&m.AttendanceDate,
		&m.PeriodYear,
		&m.PeriodMonth,
		&m.Status,
		&m.CurrentLevel,
		&m.NextApproverID,
		&m.NextApproverName,
		&m.NextLevelName,
		&m.BlockingReason,
		&m.RejectionReason,
		&m.ApprovedDate,
		&m.ApproverID,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveRequest persists a newly submitted request.
func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request domain.FinancialRequest) error {
	m := mapping.ToModelRequest(request)
	query := `
		INSERT INTO financial_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.RequestType,
		m.SubjectEmployeeID,
		m.Department,
		m.ProjectID,
		m.Amount,
		m.InstallmentCount,
		m.FirstDueDate,
		m.StartDate,
		m.EndDate,
		m.AttendanceDate,
		m.PeriodYear,
		m.PeriodMonth,
		m.Status,
		m.CurrentLevel,
		m.NextApproverID,
		m.NextApproverName,
		m.NextLevelName,
		m.BlockingReason,
		m.RejectionReason,
		m.ApprovedDate,
		m.ApproverID,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert request "+m.RequestID, err)
	}
	return nil
}

// FindRequestByID retrieves a request by its ID.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.FinancialRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM financial_requests WHERE request_id = $1;`

	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find request by ID "+requestID, err)
	}

	d := mapping.ToDomainRequest(m)
	return &d, nil
}

// UpdateRequest persists a routed decision. The update only applies when the
// stored version matches request.Version; losing the race returns
// apperrors.ErrVersionConflict.
func (r *PgxRequestRepository) UpdateRequest(ctx context.Context, request domain.FinancialRequest) error {
	m := mapping.ToModelRequest(request)
	query := `
		UPDATE financial_requests
		SET status = $2,
		    current_level = $3,
		    next_approver_id = $4,
		    next_approver_name = $5,
		    next_level_name = $6,
		    blocking_reason = $7,
		    rejection_reason = $8,
		    approved_date = $9,
		    approver_id = $10,
		    version = version + 1,
		    last_updated_at = $11,
		    last_updated_by = $12
		WHERE request_id = $1 AND version = $13;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.Status,
		m.CurrentLevel,
		m.NextApproverID,
		m.NextApproverName,
		m.NextLevelName,
		m.BlockingReason,
		m.RejectionReason,
		m.ApprovedDate,
		m.ApproverID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update request "+m.RequestID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing row from a concurrent decision.
		var exists bool
		checkErr := r.Pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM financial_requests WHERE request_id = $1);`,
			m.RequestID,
		).Scan(&exists)
		if checkErr != nil {
			return apperrors.NewAppError(500, "failed to check request existence for "+m.RequestID, checkErr)
		}
		if exists {
			return apperrors.ErrVersionConflict
		}
		return apperrors.ErrNotFound
	}
	return nil
}

// ListRequests retrieves a paginated list of requests using token-based
// pagination, optionally filtered by type and status.
func (r *PgxRequestRepository) ListRequests(ctx context.Context, requestType *domain.RequestType, status *domain.RequestStatus, limit int, nextToken *string) ([]domain.FinancialRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + requestColumns + ` FROM financial_requests`

	filterClause := `WHERE 1=1`
	args := []interface{}{}
	if requestType != nil {
		args = append(args, string(*requestType))
		filterClause += ` AND request_type = $` + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, string(*status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}

	// Ordering must be stable; request_id breaks created_at ties.
	orderByClause := `ORDER BY created_at DESC, request_id DESC`

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		filterClause += ` AND (created_at, request_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query requests", err)
	}
	defer rows.Close()

	modelRequests := make([]models.FinancialRequest, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanRequest(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan request row", scanErr)
		}
		modelRequests = append(modelRequests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating request rows", err)
	}

	// Determine the next token.
	var nextTokenVal *string
	results := modelRequests
	if len(modelRequests) > limit {
		last := modelRequests[limit-1] // the last item included in this page
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		nextTokenVal = &token
		results = modelRequests[:limit]
	}

	return mapping.ToDomainRequestSlice(results), nextTokenVal, nil
}
