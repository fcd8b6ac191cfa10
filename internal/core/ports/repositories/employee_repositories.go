package repositories

import (
	"context"
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// EmployeeDirectory supplies point-in-time employee snapshots. Approvals
// always re-fetch a fresh snapshot so eligibility is judged against current
// salary and service data, not the data at submission time.
type EmployeeDirectory interface {
	// GetSnapshot returns the employee snapshot including active loans.
	GetSnapshot(ctx context.Context, employeeID string, asOf time.Time) (*domain.EmployeeSnapshot, error)
}
