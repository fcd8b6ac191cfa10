package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portsrepo "github.com/mhgamal/hr_approvals_app/internal/core/ports/repositories"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
	"github.com/mhgamal/hr_approvals_app/internal/dto"
	"github.com/mhgamal/hr_approvals_app/internal/middleware"
)

const defaultListLimit = 25

// approvalService owns the request lifecycle state machine:
// NEW -> INPROCESS* -> {APPROVED | REJECTED}. Terminal statuses are immutable.
type approvalService struct {
	requestRepo     portsrepo.RequestRepositoryFacade
	installmentRepo portsrepo.InstallmentRepositoryFacade
	employeeDir     portsrepo.EmployeeDirectory
	chainProvider   portsrepo.ApprovalChainProvider
	decisionRepo    portsrepo.DecisionRecorder
	validator       portssvc.EligibilityValidatorSvc
	scheduler       portssvc.InstallmentSchedulerSvc
}

// NewApprovalService creates the approval router.
func NewApprovalService(
	requestRepo portsrepo.RequestRepositoryFacade,
	installmentRepo portsrepo.InstallmentRepositoryFacade,
	employeeDir portsrepo.EmployeeDirectory,
	chainProvider portsrepo.ApprovalChainProvider,
	decisionRepo portsrepo.DecisionRecorder,
	validator portssvc.EligibilityValidatorSvc,
	scheduler portssvc.InstallmentSchedulerSvc,
) portssvc.ApprovalSvcFacade {
	return &approvalService{
		requestRepo:     requestRepo,
		installmentRepo: installmentRepo,
		employeeDir:     employeeDir,
		chainProvider:   chainProvider,
		decisionRepo:    decisionRepo,
		validator:       validator,
		scheduler:       scheduler,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// GetRequestByID retrieves a single request.
func (s *approvalService) GetRequestByID(ctx context.Context, requestID string) (*domain.FinancialRequest, error) {
	return s.requestRepo.FindRequestByID(ctx, requestID)
}

// ListRequests retrieves a token-paginated page of requests.
func (s *approvalService) ListRequests(ctx context.Context, params dto.ListRequestsParams) (*dto.ListRequestsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	requests, nextToken, err := s.requestRepo.ListRequests(ctx, params.Type, params.Status, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListRequestsResponse{
		Requests:  dto.ToRequestResponses(requests),
		NextToken: nextToken,
	}, nil
}

// GetLoanSchedule retrieves the persisted installment schedule of an approved
// loan.
func (s *approvalService) GetLoanSchedule(ctx context.Context, loanID string) ([]domain.Installment, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if request.Type != domain.RequestTypeLoan {
		return nil, fmt.Errorf("%w: request %s is not a loan", apperrors.ErrValidation, loanID)
	}
	return s.installmentRepo.FindScheduleByLoanID(ctx, loanID)
}

// GetDecisionHistory retrieves the decision audit trail for a request.
func (s *approvalService) GetDecisionHistory(ctx context.Context, requestID string) ([]domain.ApprovalDecision, error) {
	if _, err := s.requestRepo.FindRequestByID(ctx, requestID); err != nil {
		return nil, err
	}
	return s.decisionRepo.ListDecisionsByRequestID(ctx, requestID)
}

// SubmitRequest validates the proposed request and, when eligible, persists
// it at level 1 of its approval chain. Ineligible submissions are not
// persisted; the caller receives every violated rule at once.
func (s *approvalService) SubmitRequest(ctx context.Context, req dto.SubmitRequestRequest, actor domain.Actor, now time.Time) (*domain.FinancialRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request := newRequestFromDTO(req)

	snapshot, err := s.employeeDir.GetSnapshot(ctx, request.SubjectEmployeeID, now)
	if err != nil {
		return nil, fmt.Errorf("fetching employee snapshot: %w", err)
	}

	if violations := s.validator.Validate(&request, snapshot, now); len(violations) > 0 {
		return nil, apperrors.NewValidationFailed(violations)
	}

	chain, err := s.chainProvider.ChainFor(ctx, request.Type, request.Department, request.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("resolving approval chain: %w", err)
	}
	first, ok := chain.LevelAt(1)
	if !ok {
		return nil, apperrors.ErrMissingApprover
	}

	request.ID = uuid.NewString()
	request.Status = domain.StatusNew
	request.CurrentLevel = 1
	request.NextApproverID = first.ApproverID
	request.NextApproverName = first.ApproverName
	request.NextLevelName = first.LevelName
	request.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.UserID,
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("saving request: %w", err)
	}

	logger.Info("Request submitted",
		slog.String("request_id", request.ID),
		slog.String("type", string(request.Type)),
		slog.String("next_level", request.NextLevelName),
	)
	return &request, nil
}

// ApproveRequest applies one approval decision by the actor. Eligibility is
// re-checked against a fresh snapshot immediately before approving, since
// salary and service data may have changed after submission.
func (s *approvalService) ApproveRequest(ctx context.Context, requestID string, actor domain.Actor, notes string, now time.Time) (*domain.FinancialRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, &apperrors.InvalidStateTransitionError{From: request.Status, Op: "approve"}
	}

	chain, err := s.chainProvider.ChainFor(ctx, request.Type, request.Department, request.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("resolving approval chain: %w", err)
	}
	level, ok := chain.LevelAt(request.CurrentLevel)
	if !ok {
		return nil, apperrors.ErrMissingApprover
	}
	if !actor.CanActAtLevel(level) {
		return nil, apperrors.ErrForbidden
	}

	snapshot, err := s.employeeDir.GetSnapshot(ctx, request.SubjectEmployeeID, now)
	if err != nil {
		return nil, fmt.Errorf("fetching employee snapshot: %w", err)
	}
	if violations := s.validator.Validate(request, snapshot, now); len(violations) > 0 {
		// The request stays NEW/INPROCESS; only the blocking reason changes.
		request.BlockingReason = &violations[0]
		request.LastUpdatedAt = now
		request.LastUpdatedBy = actor.UserID
		if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
			return nil, fmt.Errorf("recording blocking reason: %w", err)
		}
		logger.Warn("Approval blocked by eligibility re-check",
			slog.String("request_id", request.ID),
			slog.String("blocking_reason", string(violations[0])),
		)
		return nil, &apperrors.BlockedError{Code: violations[0]}
	}
	request.BlockingReason = nil

	if request.CurrentLevel == chain.Len() {
		request.Status = domain.StatusApproved
		request.ApprovedDate = &now
		request.ApproverID = actor.ApproverID()
		request.ClearRouting()

		if request.Type == domain.RequestTypeLoan {
			if err := s.persistLoanSchedule(ctx, request, actor, now); err != nil {
				return nil, err
			}
		}
	} else {
		next, ok := chain.LevelAt(request.CurrentLevel + 1)
		if !ok {
			return nil, apperrors.ErrMissingApprover
		}
		request.CurrentLevel++
		request.Status = domain.StatusInProcess
		request.NextApproverID = next.ApproverID
		request.NextApproverName = next.ApproverName
		request.NextLevelName = next.LevelName
	}

	request.LastUpdatedAt = now
	request.LastUpdatedBy = actor.UserID
	if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
		return nil, fmt.Errorf("updating request: %w", err)
	}

	if err := s.recordDecision(ctx, request, level.Level, actor, domain.DecisionApprove, notes, now); err != nil {
		logger.Error("Failed to record approval decision", slog.String("request_id", request.ID), slog.String("error", err.Error()))
	}

	logger.Info("Request approved",
		slog.String("request_id", request.ID),
		slog.String("status", string(request.Status)),
		slog.Int("level", request.CurrentLevel),
	)
	return request, nil
}

// RejectRequest finalizes the request as REJECTED. Rejection is final at any
// non-terminal level; it never requires reaching the last approver. The
// reason is stored verbatim.
func (s *approvalService) RejectRequest(ctx context.Context, requestID string, actor domain.Actor, reason string, now time.Time) (*domain.FinancialRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return nil, apperrors.ErrInvalidRejectionReason
	}

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, &apperrors.InvalidStateTransitionError{From: request.Status, Op: "reject"}
	}

	chain, err := s.chainProvider.ChainFor(ctx, request.Type, request.Department, request.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("resolving approval chain: %w", err)
	}
	level, ok := chain.LevelAt(request.CurrentLevel)
	if !ok {
		return nil, apperrors.ErrMissingApprover
	}
	if !actor.CanActAtLevel(level) {
		return nil, apperrors.ErrForbidden
	}

	request.Status = domain.StatusRejected
	request.RejectionReason = reason
	request.ClearRouting()
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actor.UserID

	if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
		return nil, fmt.Errorf("updating request: %w", err)
	}

	if err := s.recordDecision(ctx, request, level.Level, actor, domain.DecisionReject, reason, now); err != nil {
		logger.Error("Failed to record rejection decision", slog.String("request_id", request.ID), slog.String("error", err.Error()))
	}

	logger.Info("Request rejected",
		slog.String("request_id", request.ID),
		slog.Int("level", level.Level),
	)
	return request, nil
}

// persistLoanSchedule generates and stores the installment schedule for a
// just-approved loan.
func (s *approvalService) persistLoanSchedule(ctx context.Context, request *domain.FinancialRequest, actor domain.Actor, now time.Time) error {
	if request.FirstDueDate == nil {
		return fmt.Errorf("%w: loan request has no first due date", apperrors.ErrValidation)
	}
	installments, err := s.scheduler.GenerateSchedule(request.Amount, request.InstallmentCount, *request.FirstDueDate)
	if err != nil {
		return fmt.Errorf("generating schedule for loan %s: %w", request.ID, err)
	}
	for i := range installments {
		installments[i].ID = uuid.NewString()
		installments[i].LoanID = request.ID
		installments[i].AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		}
	}
	if err := s.installmentRepo.SaveSchedule(ctx, installments); err != nil {
		return fmt.Errorf("saving schedule for loan %s: %w", request.ID, err)
	}
	return nil
}

func (s *approvalService) recordDecision(ctx context.Context, request *domain.FinancialRequest, level int, actor domain.Actor, action domain.DecisionAction, notes string, now time.Time) error {
	if s.decisionRepo == nil {
		return nil
	}
	return s.decisionRepo.RecordDecision(ctx, domain.ApprovalDecision{
		ID:         uuid.NewString(),
		RequestID:  request.ID,
		Level:      level,
		ApproverID: actor.ApproverID(),
		Action:     action,
		Notes:      notes,
		DecidedAt:  now,
	})
}

// newRequestFromDTO copies the submission payload into a domain request.
func newRequestFromDTO(req dto.SubmitRequestRequest) domain.FinancialRequest {
	return domain.FinancialRequest{
		Type:              req.Type,
		SubjectEmployeeID: req.SubjectEmployeeID,
		Department:        req.Department,
		ProjectID:         req.ProjectID,
		Amount:            req.Amount,
		InstallmentCount:  req.InstallmentCount,
		FirstDueDate:      req.FirstDueDate,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		AttendanceDate:    req.AttendanceDate,
		PeriodYear:        req.PeriodYear,
		PeriodMonth:       req.PeriodMonth,
	}
}
