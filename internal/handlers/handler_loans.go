package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
	"github.com/mhgamal/hr_approvals_app/internal/dto"
	"github.com/mhgamal/hr_approvals_app/internal/middleware"
)

// loanHandler handles HTTP requests for loan schedules.
type loanHandler struct {
	approvalService portssvc.ApprovalReaderSvc
	scheduler       portssvc.InstallmentSchedulerSvc
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(approvalService portssvc.ApprovalReaderSvc, scheduler portssvc.InstallmentSchedulerSvc) *loanHandler {
	return &loanHandler{
		approvalService: approvalService,
		scheduler:       scheduler,
	}
}

// previewSchedule godoc
// @Summary Preview an installment schedule
// @Description Computes the amortization schedule for a principal without persisting anything. The installments sum exactly to the principal.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   params body dto.SchedulePreviewRequest true "Principal, count and first due date"
// @Success 200 {object} dto.ScheduleResponse "The computed schedule"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /loans/schedule-preview [post]
func (h *loanHandler) previewSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	previewReq := dto.SchedulePreviewRequest{}
	if err := c.ShouldBindJSON(&previewReq); err != nil {
		logger.Error("Failed to bind JSON for PreviewSchedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	installments, err := h.scheduler.GenerateSchedule(previewReq.Principal, previewReq.InstallmentCount, previewReq.FirstDueDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrRoundingInvariant) {
			logger.Warn("Schedule preview rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate schedule preview", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate schedule"})
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse("", installments))
}

// getSchedule godoc
// @Summary Get the persisted schedule of an approved loan
// @Description Retrieves the installment schedule generated at final approval, ordered by installment number
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan request ID"
// @Success 200 {object} dto.ScheduleResponse "The persisted schedule"
// @Failure 400 {object} map[string]string "Request is not a loan"
// @Failure 404 {object} map[string]string "Loan not found"
// @Router /loans/{loanID}/schedule [get]
func (h *loanHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	installments, err := h.approvalService.GetLoanSchedule(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Loan not found", slog.String("loan_id", loanID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request is not a loan"})
			return
		}
		logger.Error("Failed to get loan schedule", slog.String("error", err.Error()), slog.String("loan_id", loanID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedule"})
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleResponse(loanID, installments))
}

// RegisterLoanRoutes registers loan schedule routes
func RegisterLoanRoutes(group *gin.RouterGroup, approvalService portssvc.ApprovalReaderSvc, scheduler portssvc.InstallmentSchedulerSvc) {
	handler := newLoanHandler(approvalService, scheduler)

	loans := group.Group("/loans")
	{
		loans.POST("/schedule-preview", handler.previewSchedule)
		loans.GET("/:loanID/schedule", handler.getSchedule)
	}
}
