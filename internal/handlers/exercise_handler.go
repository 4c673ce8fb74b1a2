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

type ExerciseHandler struct {
	BaseHandler
	exerciseService services.ExerciseService
	validator       *utils.Validator
}

func NewExerciseHandler(
	exerciseService services.ExerciseService,
	validator *utils.Validator,
	logger utils.Logger,
) *ExerciseHandler {
	return &ExerciseHandler{
		BaseHandler:     NewBaseHandler(logger),
		exerciseService: exerciseService,
		validator:       validator,
	}
}

// CreateExercise stores a new exercise content document
// @Summary Create exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Param exercise body services.CreateExerciseRequest true "Exercise data"
// @Success 201 {object} SuccessResponse{data=models.ExerciseItem}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req services.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Creating exercise", "exercise_id", req.ID, "kind", req.Kind)

	exercise, err := h.exerciseService.Create(c.Request.Context(), h.CurrentUserID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Exercise created", exercise)
}

// GetExercise returns one exercise by id
// @Summary Get exercise
// @Tags exercises
// @Produce json
// @Param exercise_id path string true "Exercise ID"
// @Success 200 {object} SuccessResponse{data=models.ExerciseItem}
// @Failure 404 {object} ErrorResponse
// @Router /exercises/{exercise_id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), exerciseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Exercise retrieved", exercise)
}

// UpdateExercise replaces exercise metadata or content
// @Summary Update exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Param exercise_id path string true "Exercise ID"
// @Param exercise body services.UpdateExerciseRequest true "Fields to update"
// @Success 200 {object} SuccessResponse{data=models.ExerciseItem}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /exercises/{exercise_id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	var req services.UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), exerciseID, h.CurrentUserID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Exercise updated", exercise)
}

// DeleteExercise removes an exercise and its cached content
// @Summary Delete exercise
// @Tags exercises
// @Param exercise_id path string true "Exercise ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /exercises/{exercise_id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	exerciseID := ParseStringIDParam(c, "exercise_id")
	if exerciseID == "" {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), exerciseID, h.CurrentUserID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Exercise deleted", nil)
}

// ListExercises pages through stored exercises
// @Summary List exercises
// @Tags exercises
// @Produce json
// @Param course_id query string false "Filter by course"
// @Param kind query string false "Filter by block kind"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} SuccessResponse{data=services.ExerciseListResponse}
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filters := repositories.ExerciseFilters{
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	if courseID := c.Query("course_id"); courseID != "" {
		filters.CourseID = &courseID
	}
	if kind := c.Query("kind"); kind != "" {
		filters.Kind = &kind
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		filters.CreatedBy = &createdBy
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.exerciseService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Exercises retrieved", list)
}

func (h *ExerciseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
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
	case errors.Is(err, services.ErrExerciseDuplicateID):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Exercise with this id already exists",
		})
	case errors.Is(err, services.ErrExerciseInvalidContent):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Exercise content is not a valid document",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
