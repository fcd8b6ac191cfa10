package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/mhgamal/hr_approvals_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	requestRepo := newPgxRequestRepository(dbPool)
	installmentRepo := newPgxInstallmentRepository(dbPool)
	employeeRepo := newPgxEmployeeRepository(dbPool)
	chainRepo := newPgxChainRepository(dbPool)
	decisionRepo := newPgxDecisionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		RequestRepo:     requestRepo,
		InstallmentRepo: installmentRepo,
		EmployeeDir:     employeeRepo,
		ChainProvider:   chainRepo,
		DecisionRepo:    decisionRepo,
	}
}
