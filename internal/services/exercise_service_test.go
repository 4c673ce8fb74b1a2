package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/interactive-validation-service/internal/events"
	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/repositories"
	"github.com/SAP-F-2025/interactive-validation-service/internal/utils"
)

func newExerciseService(repo *mockRepository, publisher *events.MockEventPublisher) ExerciseService {
	return NewExerciseService(repo, newMemoryCache(), publisher, utils.NewValidator(), testLogger())
}

func TestCreateExercise_PublishesLifecycleEvent(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newExerciseService(repo, publisher)

	repo.exercise.On("GetByID", mock.Anything, "ex-1").Return(nil, gorm.ErrRecordNotFound)
	repo.exercise.On("Create", mock.Anything, mock.AnythingOfType("*models.ExerciseItem")).Return(nil)

	exercise, err := svc.Create(context.Background(), "teacher-1", CreateExerciseRequest{
		ID:      "ex-1",
		Title:   "Capitals of Europe",
		Kind:    "gap_fill",
		Content: json.RawMessage(`{"blocks":[]}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "teacher-1", exercise.CreatedBy)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventExerciseCreated, published[0].Type)
}

func TestCreateExercise_RejectsInvalidContent(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newExerciseService(repo, publisher)

	_, err := svc.Create(context.Background(), "teacher-1", CreateExerciseRequest{
		ID:      "ex-1",
		Title:   "Broken",
		Content: json.RawMessage(`{"blocks":`),
	})

	assert.ErrorIs(t, err, ErrExerciseInvalidContent)
	repo.exercise.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateExercise_RejectsMissingFields(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newExerciseService(repo, publisher)

	_, err := svc.Create(context.Background(), "teacher-1", CreateExerciseRequest{
		Content: json.RawMessage(`{}`),
	})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCreateExercise_DuplicateID(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newExerciseService(repo, publisher)

	repo.exercise.On("GetByID", mock.Anything, "ex-1").Return(gapFillExercise("ex-1"), nil)

	_, err := svc.Create(context.Background(), "teacher-1", CreateExerciseRequest{
		ID:      "ex-1",
		Title:   "Duplicate",
		Content: json.RawMessage(`{"blocks":[]}`),
	})

	assert.ErrorIs(t, err, ErrExerciseDuplicateID)
	assert.True(t, IsConflict(err))
}

func TestUpdateExercise_OnlyCreatorCanModify(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newExerciseService(repo, publisher)

	existing := gapFillExercise("ex-1")
	existing.CreatedBy = "teacher-1"
	repo.exercise.On("GetByID", mock.Anything, "ex-1").Return(existing, nil)

	title := "New title"
	_, err := svc.Update(context.Background(), "ex-1", "intruder", UpdateExerciseRequest{Title: &title})

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, "update", permErr.Action)
	repo.exercise.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteExercise_RemovesCachedContent(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	mem := newMemoryCache()
	svc := NewExerciseService(repo, mem, publisher, utils.NewValidator(), testLogger())

	existing := gapFillExercise("ex-1")
	existing.CreatedBy = "teacher-1"
	repo.exercise.On("GetByID", mock.Anything, "ex-1").Return(existing, nil)
	repo.exercise.On("Delete", mock.Anything, "ex-1").Return(nil)

	require.NoError(t, mem.Set(context.Background(), contentCacheKeyPrefix+"ex-1", json.RawMessage(existing.Content), 0))
	require.NoError(t, svc.Delete(context.Background(), "ex-1", "teacher-1"))

	var stale json.RawMessage
	err := mem.Get(context.Background(), contentCacheKeyPrefix+"ex-1", &stale)
	assert.Error(t, err)
}

func TestListExercises_DefaultsLimit(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newExerciseService(repo, publisher)

	repo.exercise.On("List", mock.Anything, mock.MatchedBy(func(f repositories.ExerciseFilters) bool {
		return f.Limit == 20
	})).Return([]*models.ExerciseItem{}, int64(0), nil)

	resp, err := svc.List(context.Background(), repositories.ExerciseFilters{})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Limit)
}
