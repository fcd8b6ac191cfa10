package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mhgamal/hr_approvals_app/internal/apperrors"
	portssvc "github.com/mhgamal/hr_approvals_app/internal/core/ports/services"
	"github.com/mhgamal/hr_approvals_app/internal/dto"
	"github.com/mhgamal/hr_approvals_app/internal/middleware"
)

// requestHandler handles HTTP requests for the approval request lifecycle.
type requestHandler struct {
	approvalService portssvc.ApprovalSvcFacade
	bulkService     portssvc.BulkApprovalSvc
}

// newRequestHandler creates a new requestHandler.
func newRequestHandler(approvalService portssvc.ApprovalSvcFacade, bulkService portssvc.BulkApprovalSvc) *requestHandler {
	return &requestHandler{
		approvalService: approvalService,
		bulkService:     bulkService,
	}
}

// submitRequest godoc
// @Summary Submit a new financial request
// @Description Validates eligibility and routes the request to level 1 of its approval chain. Ineligible requests are not persisted; all violated rules are returned at once.
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   request body dto.SubmitRequestRequest true "Request details"
// @Success 201 {object} dto.RequestResponse "The submitted request"
// @Failure 400 {object} map[string]interface{} "Invalid payload or eligibility violations"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /requests [post]
func (h *requestHandler) submitRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	submitReq := dto.SubmitRequestRequest{}
	if err := c.ShouldBindJSON(&submitReq); err != nil {
		logger.Error("Failed to bind JSON for SubmitRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.approvalService.SubmitRequest(c.Request.Context(), submitReq, actor, time.Now().UTC())
	if err != nil {
		var validationErr *apperrors.ValidationFailedError
		if errors.As(err, &validationErr) {
			logger.Warn("Request submission failed eligibility", slog.Any("violations", validationErr.Codes))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Eligibility validation failed", "violations": validationErr.Codes})
			return
		}
		if errors.Is(err, apperrors.ErrMissingApprover) {
			logger.Error("No approval chain configured", slog.String("type", string(submitReq.Type)))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No approver configured for this request type"})
			return
		}
		logger.Error("Failed to submit request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		return
	}

	logger.Info("Request submitted", slog.String("request_id", request.ID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(request))
}

// getRequest godoc
// @Summary Get a financial request
// @Description Retrieves a request by ID with its presentation status label
// @Tags requests
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Success 200 {object} dto.RequestResponse "The request"
// @Failure 404 {object} map[string]string "Request not found"
// @Router /requests/{requestID} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	request, err := h.approvalService.GetRequestByID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Request not found", slog.String("request_id", requestID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return
		}
		logger.Error("Failed to get request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// listRequests godoc
// @Summary List financial requests
// @Description Retrieves a token-paginated list of requests, optionally filtered by type and status
// @Tags requests
// @Produce  json
// @Param   type query string false "Request type filter"
// @Param   status query string false "Status filter"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListRequestsResponse "A page of requests"
// @Failure 400 {object} map[string]string "Invalid query or pagination token"
// @Router /requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListRequestsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.approvalService.ListRequests(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken"})
			return
		}
		logger.Error("Failed to list requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// approveRequest godoc
// @Summary Approve a request at its current level
// @Description Re-checks eligibility against a fresh employee snapshot, then either advances the request one level or finalizes it as APPROVED. Final approval of a loan persists its installment schedule.
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Param   decision body dto.ApproveRequestRequest false "Optional notes"
// @Success 200 {object} dto.RequestResponse "The updated request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor cannot act at the current level"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]interface{} "Terminal status or concurrent decision"
// @Failure 422 {object} map[string]interface{} "Approval blocked by an eligibility rule"
// @Router /requests/{requestID}/approve [post]
func (h *requestHandler) approveRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	decision := dto.ApproveRequestRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&decision); err != nil {
			logger.Error("Failed to bind JSON for ApproveRequest", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.approvalService.ApproveRequest(c.Request.Context(), requestID, actor, decision.Notes, time.Now().UTC())
	if err != nil {
		h.respondDecisionError(c, logger, requestID, "approve", err)
		return
	}

	logger.Info("Request approved", slog.String("request_id", requestID), slog.String("status", string(request.Status)))
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// rejectRequest godoc
// @Summary Reject a request
// @Description Finalizes the request as REJECTED from any non-terminal level. The reason is mandatory and stored verbatim.
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Param   decision body dto.RejectRequestRequest true "Rejection reason"
// @Success 200 {object} dto.RequestResponse "The rejected request"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor cannot act at the current level"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]interface{} "Terminal status or concurrent decision"
// @Router /requests/{requestID}/reject [post]
func (h *requestHandler) rejectRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	decision := dto.RejectRequestRequest{}
	if err := c.ShouldBindJSON(&decision); err != nil {
		logger.Error("Failed to bind JSON for RejectRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.approvalService.RejectRequest(c.Request.Context(), requestID, actor, decision.Reason, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRejectionReason) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
			return
		}
		h.respondDecisionError(c, logger, requestID, "reject", err)
		return
	}

	logger.Info("Request rejected", slog.String("request_id", requestID))
	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// bulkApprove godoc
// @Summary Approve several requests in one call
// @Description Approves each id sequentially in input order. Per-id failures are reported in the result and never abort the remaining ids; prior successes are never rolled back.
// @Tags requests
// @Accept  json
// @Produce  json
// @Param   payload body dto.BulkApproveRequest true "Request ids"
// @Success 200 {object} dto.BulkApproveResult "Per-id outcomes"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /requests/bulk-approve [post]
func (h *requestHandler) bulkApprove(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload := dto.BulkApproveRequest{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Error("Failed to bind JSON for BulkApprove", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.bulkService.BulkApprove(c.Request.Context(), payload.RequestIDs, actor, time.Now().UTC())
	if err != nil {
		logger.Error("Bulk approval failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process bulk approval"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getDecisionHistory godoc
// @Summary Get the decision history of a request
// @Description Retrieves the audit trail of approve/reject decisions, oldest first
// @Tags requests
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Success 200 {array} dto.DecisionResponse "The decision history"
// @Failure 404 {object} map[string]string "Request not found"
// @Router /requests/{requestID}/decisions [get]
func (h *requestHandler) getDecisionHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	decisions, err := h.approvalService.GetDecisionHistory(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return
		}
		logger.Error("Failed to get decision history", slog.String("error", err.Error()), slog.String("request_id", requestID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve decision history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDecisionResponses(decisions))
}

// respondDecisionError maps approve/reject service errors to HTTP responses.
func (h *requestHandler) respondDecisionError(c *gin.Context, logger *slog.Logger, requestID, op string, err error) {
	var transitionErr *apperrors.InvalidStateTransitionError
	var blockedErr *apperrors.BlockedError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Request not found", slog.String("request_id", requestID))
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
	case errors.As(err, &transitionErr):
		logger.Warn("Decision on terminal request", slog.String("request_id", requestID), slog.String("from", string(transitionErr.From)))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "status": transitionErr.From})
	case errors.As(err, &blockedErr):
		logger.Warn("Approval blocked", slog.String("request_id", requestID), slog.String("blocking_reason", string(blockedErr.Code)))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Approval blocked by eligibility rule", "blockingReason": blockedErr.Code})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Actor not authorized for level", slog.String("request_id", requestID))
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to decide at the current level"})
	case errors.Is(err, apperrors.ErrMissingApprover):
		logger.Error("No approver configured for current level", slog.String("request_id", requestID))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No approver configured for the current level"})
	case errors.Is(err, apperrors.ErrVersionConflict):
		logger.Warn("Concurrent decision lost the race", slog.String("request_id", requestID))
		c.JSON(http.StatusConflict, gin.H{"error": "Request was modified concurrently, retry"})
	default:
		logger.Error("Failed to "+op+" request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op + " request"})
	}
}

// RegisterRequestRoutes registers request lifecycle routes
func RegisterRequestRoutes(group *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade, bulkService portssvc.BulkApprovalSvc) {
	handler := newRequestHandler(approvalService, bulkService)

	requests := group.Group("/requests")
	{
		requests.POST("", handler.submitRequest)
		requests.GET("", handler.listRequests)
		requests.POST("/bulk-approve", handler.bulkApprove)
		requests.GET("/:requestID", handler.getRequest)
		requests.POST("/:requestID/approve", handler.approveRequest)
		requests.POST("/:requestID/reject", handler.rejectRequest)
		requests.GET("/:requestID/decisions", handler.getDecisionHistory)
	}
}
