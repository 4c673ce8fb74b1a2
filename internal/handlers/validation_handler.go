package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
	"github.com/SAP-F-2025/interactive-validation-service/internal/services"
	"github.com/SAP-F-2025/interactive-validation-service/internal/utils"
)

type ValidationHandler struct {
	BaseHandler
	validationService services.ValidationService
	exportService     services.ExportService
	validator         *utils.Validator
}

func NewValidationHandler(
	validationService services.ValidationService,
	exportService services.ExportService,
	validator *utils.Validator,
	logger utils.Logger,
) *ValidationHandler {
	return &ValidationHandler{
		BaseHandler:       NewBaseHandler(logger),
		validationService: validationService,
		exportService:     exportService,
		validator:         validator,
	}
}

// ValidateAnswer evaluates a submission against one block of an exercise
// @Summary Validate answer
// @Description Evaluates a student submission against the addressed exercise block
// @Tags validation
// @Accept json
// @Produce json
// @Param exercise_id path string true "Exercise ID"
// @Param block_id path string true "Block ID"
// @Param submission body services.ValidateAnswerRequest true "Submission payload"
// @Success 200 {object} SuccessResponse{data=services.ValidateAnswerResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /exercises/{exercise_id}/blocks/{block_id}/validate [post]
func (h *ValidationHandler) ValidateAnswer(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}
	blockID := ParseStringIDParam(c, "block_id")
	if blockID == "" {
		return
	}

	var req services.ValidateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Validating answer", "exercise_id", exerciseID, "block_id", blockID, "kind", req.Kind)

	resp, err := h.validationService.ValidateAnswer(c.Request.Context(), exerciseID, blockID, h.CurrentUserID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer validated", resp,
		"is_correct", resp.Verdict.IsCorrect,
		"points_earned", resp.Verdict.PointsEarned)
}

// GetBlockStats returns aggregate validation outcomes for one block
// @Summary Block statistics
// @Tags validation
// @Produce json
// @Param exercise_id path string true "Exercise ID"
// @Param block_id path string true "Block ID"
// @Success 200 {object} SuccessResponse{data=repositories.ValidationStats}
// @Router /exercises/{exercise_id}/blocks/{block_id}/stats [get]
func (h *ValidationHandler) GetBlockStats(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}
	blockID := ParseStringIDParam(c, "block_id")
	if blockID == "" {
		return
	}

	stats, err := h.validationService.GetStats(c.Request.Context(), exerciseID, blockID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Stats retrieved", stats)
}

// GetHistory lists stored validation records for an exercise
// @Summary Validation history
// @Tags validation
// @Produce json
// @Param exercise_id path string true "Exercise ID"
// @Param block_id query string false "Filter by block"
// @Param user_id query string false "Filter by user"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} SuccessResponse{data=services.ValidationHistoryResponse}
// @Router /exercises/{exercise_id}/history [get]
func (h *ValidationHandler) GetHistory(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	filters := repositories.ValidationRecordFilters{
		ExerciseID: &exerciseID,
	}
	if blockID := c.Query("block_id"); blockID != "" {
		filters.BlockID = &blockID
	}
	if userID := c.Query("user_id"); userID != "" {
		filters.UserID = &userID
	}
	if correct := c.Query("is_correct"); correct != "" {
		if parsed, err := strconv.ParseBool(correct); err == nil {
			filters.IsCorrect = &parsed
		}
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := h.validationService.GetHistory(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "History retrieved", history)
}

// GetLatestAttempt returns the newest stored record for the current user
// @Summary Latest attempt
// @Tags validation
// @Produce json
// @Param exercise_id path string true "Exercise ID"
// @Param block_id path string true "Block ID"
// @Success 200 {object} SuccessResponse{data=models.ValidationRecord}
// @Router /exercises/{exercise_id}/blocks/{block_id}/attempts/latest [get]
func (h *ValidationHandler) GetLatestAttempt(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}
	blockID := ParseStringIDParam(c, "block_id")
	if blockID == "" {
		return
	}

	record, err := h.validationService.GetLatestAttempt(c.Request.Context(), exerciseID, blockID, h.CurrentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Latest attempt retrieved", record)
}

// InferKind reports the block kind the engine would assume for an untagged
// content document
// @Summary Infer block kind
// @Tags validation
// @Produce json
// @Param exercise_id path string true "Exercise ID"
// @Success 200 {object} SuccessResponse
// @Router /exercises/{exercise_id}/kind [get]
func (h *ValidationHandler) InferKind(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	kind, err := h.validationService.InferKind(c.Request.Context(), exerciseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Kind inferred", gin.H{"kind": kind})
}

// ExportResults streams an Excel workbook of all stored outcomes
// @Summary Export results
// @Tags validation
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param exercise_id path string true "Exercise ID"
// @Success 200 {file} binary
// @Router /exercises/{exercise_id}/export [get]
func (h *ValidationHandler) ExportResults(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	payload, err := h.exportService.ExportValidationResults(c.Request.Context(), exerciseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="validation-results-`+exerciseID+`.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

func (h *ValidationHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrExerciseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Exercise not found",
		})
	case errors.Is(err, services.ErrBlockNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Block not found in exercise content",
		})
	case errors.Is(err, services.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Validation record not found",
		})
	case errors.Is(err, services.ErrBlockKindUnsupported):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Unsupported block kind",
		})
	case errors.Is(err, services.ErrSubmissionEmpty):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Submission contains no answer",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
