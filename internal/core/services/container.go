package services

import (
	portsrepo "github.com/mhgamal/hr_approvals_app/internal/core/ports/repositories"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies. The validator and scheduler are pure and shared by the
// approval router.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	eligibility := NewEligibilityService()
	scheduler := NewScheduleService()

	approval := NewApprovalService(
		repos.RequestRepo,
		repos.InstallmentRepo,
		repos.EmployeeDir,
		repos.ChainProvider,
		repos.DecisionRepo,
		eligibility,
		scheduler,
	)

	return &portssvc.ServiceContainer{
		Eligibility: eligibility,
		Scheduler:   scheduler,
		Approval:    approval,
		Bulk:        NewBulkApprovalService(approval),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.EligibilityValidatorSvc = (*eligibilityService)(nil)
	_ portssvc.InstallmentSchedulerSvc = (*scheduleService)(nil)
	_ portssvc.ApprovalSvcFacade       = (*approvalService)(nil)
	_ portssvc.BulkApprovalSvc         = (*bulkApprovalService)(nil)
)
