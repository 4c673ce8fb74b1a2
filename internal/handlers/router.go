package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/interactive-validation-service/internal/services"
	"github.com/SAP-F-2025/interactive-validation-service/internal/utils"
)

type HandlerManager struct {
	exerciseHandler   *ExerciseHandler
	validationHandler *ValidationHandler
	logger            utils.Logger
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		exerciseHandler:   NewExerciseHandler(serviceManager.Exercise(), validator, logger),
		validationHandler: NewValidationHandler(serviceManager.Validation(), serviceManager.Export(), validator, logger),
		logger:            logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "interactive-validation-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		exercises := v1.Group("/exercises")
		{
			// Authoring routes require a signed-in user
			authed := exercises.Group("", AuthMiddleware(hm.logger))
			{
				authed.POST("", hm.exerciseHandler.CreateExercise)
				authed.PUT("/:exercise_id", hm.exerciseHandler.UpdateExercise)
				authed.DELETE("/:exercise_id", hm.exerciseHandler.DeleteExercise)
				authed.GET("/:exercise_id/export", hm.validationHandler.ExportResults)
			}

			// Read and validation routes accept anonymous callers
			open := exercises.Group("", OptionalAuthMiddleware(hm.logger))
			{
				open.GET("", hm.exerciseHandler.ListExercises)
				open.GET("/:exercise_id", hm.exerciseHandler.GetExercise)
				open.POST("/:exercise_id/blocks/:block_id/validate", hm.validationHandler.ValidateAnswer)
				open.GET("/:exercise_id/blocks/:block_id/stats", hm.validationHandler.GetBlockStats)
				open.GET("/:exercise_id/blocks/:block_id/attempts/latest", hm.validationHandler.GetLatestAttempt)
				open.GET("/:exercise_id/history", hm.validationHandler.GetHistory)
				open.GET("/:exercise_id/kind", hm.validationHandler.InferKind)
			}
		}
	}
}
