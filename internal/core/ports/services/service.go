package services

// ServiceContainer holds all the service facades needed by the transport
// layer.
type ServiceContainer struct {
	Eligibility EligibilityValidatorSvc
	Scheduler   InstallmentSchedulerSvc
	Approval    ApprovalSvcFacade
	Bulk        BulkApprovalSvc
}
