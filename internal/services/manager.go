package services

import (
	"log/slog"

	"github.com/SAP-F-2025/interactive-validation-service/internal/cache"
	"github.com/SAP-F-2025/interactive-validation-service/internal/events"
	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
	"github.com/SAP-F-2025/interactive-validation-service/internal/utils"
)

// ServiceManager wires the service layer together behind one handle.
type ServiceManager struct {
	validation ValidationService
	exercise   ExerciseService
	export     ExportService
}

func NewServiceManager(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, v *utils.Validator, logger *slog.Logger) *ServiceManager {
	return &ServiceManager{
		validation: NewValidationService(repo, cacheService, publisher, logger),
		exercise:   NewExerciseService(repo, cacheService, publisher, v, logger),
		export:     NewExportService(repo, logger),
	}
}

func (m *ServiceManager) Validation() ValidationService { return m.validation }
func (m *ServiceManager) Exercise() ExerciseService     { return m.exercise }
func (m *ServiceManager) Export() ExportService         { return m.export }
