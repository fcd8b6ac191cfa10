package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portsrepo "github.com/mhgamal/hr_approvals_app/internal/core/ports/repositories"
	"github.com/mhgamal/hr_approvals_app/internal/models"
	"github.com/mhgamal/hr_approvals_app/internal/utils/mapping"
)

type PgxInstallmentRepository struct {
	BaseRepository
}

// newPgxInstallmentRepository creates a new repository for installment data.
func newPgxInstallmentRepository(pool *pgxpool.Pool) portsrepo.InstallmentRepositoryFacade {
	return &PgxInstallmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInstallmentRepository implements portsrepo.InstallmentRepositoryFacade
var _ portsrepo.InstallmentRepositoryFacade = (*PgxInstallmentRepository)(nil)

// SaveSchedule persists the full schedule for a just-approved loan in one
// database transaction. A schedule is written exactly once per loan.
func (r *PgxInstallmentRepository) SaveSchedule(ctx context.Context, installments []domain.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	query := `
		INSERT INTO installments (
			installment_id, loan_id, installment_no, due_date, amount, paid_date, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, inst := range installments {
		m := mapping.ToModelInstallment(inst)
		batch.Queue(query,
			m.InstallmentID,
			m.LoanID,
			m.InstallmentNo,
			m.DueDate,
			m.Amount,
			m.PaidDate,
			m.Status,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute installment batch for loan "+installments[0].LoanID, err)
	}

	return r.Commit(ctx, tx)
}

// FindScheduleByLoanID retrieves the full installment schedule for a loan,
// ordered by installment number.
func (r *PgxInstallmentRepository) FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.Installment, error) {
	query := `
		SELECT installment_id, loan_id, installment_no, due_date, amount, paid_date, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM installments
		WHERE loan_id = $1
		ORDER BY installment_no;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query installments for loan "+loanID, err)
	}
	defer rows.Close()

	installments := []models.Installment{}
	for rows.Next() {
		var m models.Installment
		if err := rows.Scan(
			&m.InstallmentID,
			&m.LoanID,
			&m.InstallmentNo,
			&m.DueDate,
			&m.Amount,
			&m.PaidDate,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan installment row for loan "+loanID, err)
		}
		installments = append(installments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating installment rows for loan "+loanID, err)
	}

	return mapping.ToDomainInstallmentSlice(installments), nil
}
