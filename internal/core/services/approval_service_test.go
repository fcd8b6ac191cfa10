package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	portsrepo "github.com/mhgamal/hr_approvals_app/internal/core/ports/repositories"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
	"github.com/mhgamal/hr_approvals_app/internal/core/services"
	"github.com/mhgamal/hr_approvals_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RequestRepository ---

type MockRequestRepository struct {
	mock.Mock
}

var _ portsrepo.RequestRepositoryFacade = (*MockRequestRepository)(nil)

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.FinancialRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialRequest), args.Error(1)
}

func (m *MockRequestRepository) ListRequests(ctx context.Context, requestType *domain.RequestType, status *domain.RequestStatus, limit int, nextToken *string) ([]domain.FinancialRequest, *string, error) {
	args := m.Called(ctx, requestType, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.FinancialRequest), token, args.Error(2)
}

func (m *MockRequestRepository) SaveRequest(ctx context.Context, request domain.FinancialRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) UpdateRequest(ctx context.Context, request domain.FinancialRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// --- Mock InstallmentRepository ---

type MockInstallmentRepository struct {
	mock.Mock
}

var _ portsrepo.InstallmentRepositoryFacade = (*MockInstallmentRepository)(nil)

func (m *MockInstallmentRepository) FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.Installment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) SaveSchedule(ctx context.Context, installments []domain.Installment) error {
	args := m.Called(ctx, installments)
	return args.Error(0)
}

// --- Mock EmployeeDirectory ---

type MockEmployeeDirectory struct {
	mock.Mock
}

var _ portsrepo.EmployeeDirectory = (*MockEmployeeDirectory)(nil)

func (m *MockEmployeeDirectory) GetSnapshot(ctx context.Context, employeeID string, asOf time.Time) (*domain.EmployeeSnapshot, error) {
	args := m.Called(ctx, employeeID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeeSnapshot), args.Error(1)
}

// --- Mock ApprovalChainProvider ---

type MockChainProvider struct {
	mock.Mock
}

var _ portsrepo.ApprovalChainProvider = (*MockChainProvider)(nil)

func (m *MockChainProvider) ChainFor(ctx context.Context, requestType domain.RequestType, department, projectID string) (*domain.ApprovalLevelChain, error) {
	args := m.Called(ctx, requestType, department, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalLevelChain), args.Error(1)
}

// --- Mock DecisionRecorder ---

type MockDecisionRecorder struct {
	mock.Mock
}

var _ portsrepo.DecisionRecorder = (*MockDecisionRecorder)(nil)

func (m *MockDecisionRecorder) RecordDecision(ctx context.Context, decision domain.ApprovalDecision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

func (m *MockDecisionRecorder) ListDecisionsByRequestID(ctx context.Context, requestID string) ([]domain.ApprovalDecision, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalDecision), args.Error(1)
}

// --- Suite ---

type ApprovalServiceTestSuite struct {
	suite.Suite
	requestRepo     *MockRequestRepository
	installmentRepo *MockInstallmentRepository
	employeeDir     *MockEmployeeDirectory
	chainProvider   *MockChainProvider
	decisionRepo    *MockDecisionRecorder
	svc             portssvc.ApprovalSvcFacade
	ctx             context.Context
	now             time.Time
	hrActor         domain.Actor
	financeActor    domain.Actor
}

func (s *ApprovalServiceTestSuite) SetupTest() {
	s.requestRepo = new(MockRequestRepository)
	s.installmentRepo = new(MockInstallmentRepository)
	s.employeeDir = new(MockEmployeeDirectory)
	s.chainProvider = new(MockChainProvider)
	s.decisionRepo = new(MockDecisionRecorder)
	s.svc = services.NewApprovalService(
		s.requestRepo,
		s.installmentRepo,
		s.employeeDir,
		s.chainProvider,
		s.decisionRepo,
		services.NewEligibilityService(),
		services.NewScheduleService(),
	)
	s.ctx = context.Background()
	s.now = day(2025, time.January, 15)
	s.hrActor = domain.Actor{UserID: "user-hr", EmployeeID: "emp-hr", Role: domain.RoleHRManager}
	s.financeActor = domain.Actor{UserID: "user-fin", EmployeeID: "emp-fin", Role: domain.RoleFinanceManager}
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}

func (s *ApprovalServiceTestSuite) twoLevelChain() *domain.ApprovalLevelChain {
	return &domain.ApprovalLevelChain{
		RequestType: domain.RequestTypeLoan,
		Levels: []domain.ApprovalLevel{
			{Level: 1, LevelName: "HR Review", Role: domain.RoleHRManager},
			{Level: 2, LevelName: "Finance Review", Role: domain.RoleFinanceManager},
		},
	}
}

func (s *ApprovalServiceTestSuite) eligibleSnapshot() *domain.EmployeeSnapshot {
	return &domain.EmployeeSnapshot{
		EmployeeID:       "emp-1",
		MonthlySalary:    dec("10000"),
		HireDate:         day(2020, time.June, 1),
		EmploymentStatus: domain.EmploymentActive,
	}
}

func (s *ApprovalServiceTestSuite) pendingLoan(status domain.RequestStatus, level int) *domain.FinancialRequest {
	firstDue := day(2025, time.March, 1)
	levelNames := []string{"HR Review", "Finance Review"}
	return &domain.FinancialRequest{
		ID:                "req-1",
		Type:              domain.RequestTypeLoan,
		SubjectEmployeeID: "emp-1",
		Amount:            dec("24000"),
		InstallmentCount:  12,
		FirstDueDate:      &firstDue,
		Status:            status,
		CurrentLevel:      level,
		NextLevelName:     levelNames[level-1],
		Version:           1,
	}
}

func (s *ApprovalServiceTestSuite) TestSubmitRequest_Success() {
	submitReq := dto.SubmitRequestRequest{
		Type:              domain.RequestTypeLoan,
		SubjectEmployeeID: "emp-1",
		Amount:            dec("24000"),
		InstallmentCount:  12,
		FirstDueDate:      timePtr(day(2025, time.March, 1)),
	}

	s.employeeDir.On("GetSnapshot", s.ctx, "emp-1", s.now).Return(s.eligibleSnapshot(), nil)
	s.chainProvider.On("ChainFor", s.ctx, domain.RequestTypeLoan, "", "").Return(s.twoLevelChain(), nil)
	s.requestRepo.On("SaveRequest", s.ctx, mock.AnythingOfType("domain.FinancialRequest")).Return(nil)

	request, err := s.svc.SubmitRequest(s.ctx, submitReq, s.hrActor, s.now)

	s.Require().NoError(err)
	s.Equal(domain.StatusNew, request.Status)
	s.Equal(1, request.CurrentLevel)
	s.Equal("HR Review", request.NextLevelName)
	s.NotEmpty(request.ID)
	s.True(request.HasPendingApprover())
	s.requestRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestSubmitRequest_ValidationFailedNotPersisted() {
	submitReq := dto.SubmitRequestRequest{
		Type:              domain.RequestTypeLoan,
		SubjectEmployeeID: "emp-1",
		Amount:            dec("130000"), // over 12 x 10000
		InstallmentCount:  12,
		FirstDueDate:      timePtr(day(2025, time.March, 1)),
	}

	s.employeeDir.On("GetSnapshot", s.ctx, "emp-1", s.now).Return(s.eligibleSnapshot(), nil)

	_, err := s.svc.SubmitRequest(s.ctx, submitReq, s.hrActor, s.now)

	var validationErr *apperrors.ValidationFailedError
	s.Require().ErrorAs(err, &validationErr)
	s.Contains(validationErr.Codes, domain.ViolationPrincipalExceedsCap)
	s.requestRepo.AssertNotCalled(s.T(), "SaveRequest", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApproveRequest_AdvancesToNextLevel() {
	request := s.pendingLoan(domain.StatusNew, 1)

	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.chainProvider.On("ChainFor", s.ctx, domain.RequestTypeLoan, "", "").Return(s.twoLevelChain(), nil)
	s.employeeDir.On("GetSnapshot", s.ctx, "emp-1", s.now).Return(s.eligibleSnapshot(), nil)
	s.requestRepo.On("UpdateRequest", s.ctx, mock.AnythingOfType("domain.FinancialRequest")).Return(nil)
	s.decisionRepo.On("RecordDecision", s.ctx, mock.AnythingOfType("domain.ApprovalDecision")).Return(nil)

	updated, err := s.svc.ApproveRequest(s.ctx, "req-1", s.hrActor, "looks fine", s.now)

	s.Require().NoError(err)
	s.Equal(domain.StatusInProcess, updated.Status)
	s.Equal(2, updated.CurrentLevel)
	s.Equal("Finance Review", updated.NextLevelName)
	s.Nil(updated.ApprovedDate)
	s.installmentRepo.AssertNotCalled(s.T(), "SaveSchedule", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApproveRequest_FinalLevelApprovesAndSchedules() {
	request := s.pendingLoan(domain.StatusInProcess, 2)

	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.chainProvider.On("ChainFor", s.ctx, domain.RequestTypeLoan, "", "").Return(s.twoLevelChain(), nil)
	s.employeeDir.On("GetSnapshot", s.ctx, "emp-1", s.now).Return(s.eligibleSnapshot(), nil)
	s.requestRepo.On("UpdateRequest", s.ctx, mock.AnythingOfType("domain.FinancialRequest")).Return(nil)
	s.decisionRepo.On("RecordDecision", s.ctx, mock.AnythingOfType("domain.ApprovalDecision")).Return(nil)

	var savedSchedule []domain.Installment
	s.installmentRepo.On("SaveSchedule", s.ctx, mock.AnythingOfType("[]domain.Installment")).
		Run(func(args mock.Arguments) {
			savedSchedule = args.Get(1).([]domain.Installment)
		}).Return(nil)

	updated, err := s.svc.ApproveRequest(s.ctx, "req-1", s.financeActor, "", s.now)

	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, updated.Status)
	s.Require().NotNil(updated.ApprovedDate)
	s.Equal(s.now, *updated.ApprovedDate)
	s.Equal("emp-fin", updated.ApproverID)
	s.False(updated.HasPendingApprover())

	s.Require().Len(savedSchedule, 12)
	sum := decimal.Zero
	for _, in := range savedSchedule {
		s.Equal("req-1", in.LoanID)
		s.NotEmpty(in.ID)
		sum = sum.Add(in.Amount)
	}
	s.True(sum.Equal(dec("24000")))
}

func (s *ApprovalServiceTestSuite) TestApproveRequest_TerminalIsRejectedUnchanged() {
	request := s.pendingLoan(domain.StatusRejected, 2)
	request.ClearRouting()
	request.RejectionReason = "duplicate request"
	before := *request

	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)

	_, err := s.svc.ApproveRequest(s.ctx, "req-1", s.financeActor, "", s.now)

	var transitionErr *apperrors.InvalidStateTransitionError
	s.Require().ErrorAs(err, &transitionErr)
	s.Equal(domain.StatusRejected, transitionErr.From)
	s.Equal("approve", transitionErr.Op)
	// The record must be byte-for-byte unchanged.
	s.Equal(before, *request)
	s.requestRepo.AssertNotCalled(s.T(), "UpdateRequest", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApproveRequest_BlockedByStaleEligibility() {
	// The employee took another loan after this request was submitted.
	request := s.pendingLoan(domain.StatusInProcess, 2)
	snapshot := s.eligibleSnapshot()
	snapshot.ActiveLoans = []domain.ActiveLoan{
		{LoanID: "loan-0", MonthlyInstallment: dec("500"), RemainingBalance: dec("6000")},
	}

	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.chainProvider.On("ChainFor", s.ctx, domain.RequestTypeLoan, "", "").Return(s.twoLevelChain(), nil)
	s.employeeDir.On("GetSnapshot", s.ctx, "emp-1", s.now).Return(snapshot, nil)
	s.requestRepo.On("UpdateRequest", s.ctx, mock.AnythingOfType("domain.FinancialRequest")).Return(nil)

	_, err := s.svc.ApproveRequest(s.ctx, "req-1", s.financeActor, "", s.now)

	var blockedErr *apperrors.BlockedError
	s.Require().ErrorAs(err, &blockedErr)
	s.Equal(domain.ViolationActiveLoanExists, blockedErr.Code)
	// Status is untouched; only the blocking reason is recorded.
	s.Equal(domain.StatusInProcess, request.Status)
	s.Require().NotNil(request.BlockingReason)
	s.Equal(domain.ViolationActiveLoanExists, *request.BlockingReason)
	s.installmentRepo.AssertNotCalled(s.T(), "SaveSchedule", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApproveRequest_WrongRoleForbidden() {
	request := s.pendingLoan(domain.StatusNew, 1) // level 1 requires HR

	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.chainProvider.On("ChainFor", s.ctx, domain.RequestTypeLoan, "", "").Return(s.twoLevelChain(), nil)

	_, err := s.svc.ApproveRequest(s.ctx, "req-1", s.financeActor, "", s.now)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.requestRepo.AssertNotCalled(s.T(), "UpdateRequest", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApproveRequest_SystemActorMayActAnywhere() {
	request := s.pendingLoan(domain.StatusNew, 1)

	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.chainProvider.On("ChainFor", s.ctx, domain.RequestTypeLoan, "", "").Return(s.twoLevelChain(), nil)
	s.employeeDir.On("GetSnapshot", s.ctx, "emp-1", s.now).Return(s.eligibleSnapshot(), nil)
	s.requestRepo.On("UpdateRequest", s.ctx, mock.AnythingOfType("domain.FinancialRequest")).Return(nil)

	var recorded domain.ApprovalDecision
	s.decisionRepo.On("RecordDecision", s.ctx, mock.AnythingOfType("domain.ApprovalDecision")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(domain.ApprovalDecision)
		}).Return(nil)

	updated, err := s.svc.ApproveRequest(s.ctx, "req-1", domain.SystemActor("scheduler-job"), "", s.now)

	s.Require().NoError(err)
	s.Equal(domain.StatusInProcess, updated.Status)
	s.Equal(domain.SystemApproverID, recorded.ApproverID)
}

func (s *ApprovalServiceTestSuite) TestRejectRequest_FinalAtAnyLevel() {
	request := s.pendingLoan(domain.StatusNew, 1)

	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.chainProvider.On("ChainFor", s.ctx, domain.RequestTypeLoan, "", "").Return(s.twoLevelChain(), nil)
	s.requestRepo.On("UpdateRequest", s.ctx, mock.AnythingOfType("domain.FinancialRequest")).Return(nil)
	s.decisionRepo.On("RecordDecision", s.ctx, mock.AnythingOfType("domain.ApprovalDecision")).Return(nil)

	updated, err := s.svc.RejectRequest(s.ctx, "req-1", s.hrActor, "  incomplete paperwork ", s.now)

	s.Require().NoError(err)
	s.Equal(domain.StatusRejected, updated.Status)
	// The reason is stored verbatim, whitespace included.
	s.Equal("  incomplete paperwork ", updated.RejectionReason)
	s.False(updated.HasPendingApprover())
}

func (s *ApprovalServiceTestSuite) TestRejectRequest_EmptyReason() {
	_, err := s.svc.RejectRequest(s.ctx, "req-1", s.hrActor, "", s.now)
	s.ErrorIs(err, apperrors.ErrInvalidRejectionReason)
	s.requestRepo.AssertNotCalled(s.T(), "FindRequestByID", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestRejectRequest_TerminalIsRejected() {
	request := s.pendingLoan(domain.StatusApproved, 2)
	request.ClearRouting()

	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)

	_, err := s.svc.RejectRequest(s.ctx, "req-1", s.hrActor, "too late", s.now)

	var transitionErr *apperrors.InvalidStateTransitionError
	s.Require().ErrorAs(err, &transitionErr)
	s.Equal(domain.StatusApproved, transitionErr.From)
	s.requestRepo.AssertNotCalled(s.T(), "UpdateRequest", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestSubmitRequest_EmptyChainMissingApprover() {
	submitReq := dto.SubmitRequestRequest{
		Type:              domain.RequestTypeLoan,
		SubjectEmployeeID: "emp-1",
		Amount:            dec("24000"),
		InstallmentCount:  12,
		FirstDueDate:      timePtr(day(2025, time.March, 1)),
	}
	empty := &domain.ApprovalLevelChain{RequestType: domain.RequestTypeLoan}

	s.employeeDir.On("GetSnapshot", s.ctx, "emp-1", s.now).Return(s.eligibleSnapshot(), nil)
	s.chainProvider.On("ChainFor", s.ctx, domain.RequestTypeLoan, "", "").Return(empty, nil)

	_, err := s.svc.SubmitRequest(s.ctx, submitReq, s.hrActor, s.now)

	s.ErrorIs(err, apperrors.ErrMissingApprover)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
