package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portsrepo "github.com/mhgamal/hr_approvals_app/internal/core/ports/repositories"
	"github.com/mhgamal/hr_approvals_app/internal/models"
	"github.com/mhgamal/hr_approvals_app/internal/utils/mapping"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employee snapshot data.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeDirectory {
	return &PgxEmployeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeDirectory
var _ portsrepo.EmployeeDirectory = (*PgxEmployeeRepository)(nil)

// GetSnapshot returns the employee snapshot including active loans. The
// employees table holds current state, so asOf only scopes which installments
// count as outstanding.
func (r *PgxEmployeeRepository) GetSnapshot(ctx context.Context, employeeID string, asOf time.Time) (*domain.EmployeeSnapshot, error) {
	employeeQuery := `
		SELECT employee_id, monthly_salary, hire_date, termination_date, employment_status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM employees
		WHERE employee_id = $1;
	`
	var m models.Employee
	err := r.Pool.QueryRow(ctx, employeeQuery, employeeID).Scan(
		&m.EmployeeID,
		&m.MonthlySalary,
		&m.HireDate,
		&m.TerminationDate,
		&m.EmploymentStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee "+employeeID, err)
	}

	loans, err := r.findActiveLoans(ctx, employeeID, asOf)
	if err != nil {
		return nil, err
	}

	snapshot := mapping.ToDomainSnapshot(m, loans)
	return &snapshot, nil
}

// findActiveLoans lists approved loans of the employee that still have
// installments unpaid as of the given time.
func (r *PgxEmployeeRepository) findActiveLoans(ctx context.Context, employeeID string, asOf time.Time) ([]models.EmployeeLoan, error) {
	query := `
		SELECT fr.request_id,
		       MAX(i.amount) FILTER (WHERE i.paid_date IS NULL OR i.paid_date > $2) AS monthly_installment,
		       SUM(i.amount) FILTER (WHERE i.paid_date IS NULL OR i.paid_date > $2) AS remaining_balance
		FROM financial_requests fr
		JOIN installments i ON i.loan_id = fr.request_id
		WHERE fr.subject_employee_id = $1
		  AND fr.request_type = 'LOAN'
		  AND fr.status = 'APPROVED'
		GROUP BY fr.request_id
		HAVING COUNT(*) FILTER (WHERE i.paid_date IS NULL OR i.paid_date > $2) > 0;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active loans for employee "+employeeID, err)
	}
	defer rows.Close()

	loans := []models.EmployeeLoan{}
	for rows.Next() {
		var l models.EmployeeLoan
		if err := rows.Scan(&l.LoanID, &l.MonthlyInstallment, &l.RemainingBalance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan active loan row for employee "+employeeID, err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating active loan rows for employee "+employeeID, err)
	}

	return loans, nil
}
