package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of validation events
type EventType string

const (
	EventAnswerValidated  EventType = "validation.answer_validated"
	EventExerciseCreated  EventType = "validation.exercise_created"
	EventExerciseUpdated  EventType = "validation.exercise_updated"
	EventValidationFailed EventType = "validation.failed"
)

// ValidationEvent is the base event structure for all validation events
type ValidationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// AnswerValidatedEvent is published after every successful evaluation.
type AnswerValidatedEvent struct {
	ExerciseID   string    `json:"exercise_id"`
	BlockID      string    `json:"block_id"`
	UserID       string    `json:"user_id"`
	Kind         string    `json:"kind"`
	IsCorrect    bool      `json:"is_correct"`
	PointsEarned float64   `json:"points_earned"`
	MaxPoints    float64   `json:"max_points"`
	ValidatedAt  time.Time `json:"validated_at"`
}

// ValidationFailedEvent is published when a submission could not be
// evaluated at all (unknown block, unsupported kind, empty submission).
type ValidationFailedEvent struct {
	ExerciseID string    `json:"exercise_id"`
	BlockID    string    `json:"block_id"`
	UserID     string    `json:"user_id"`
	Reason     string    `json:"reason"`
	FailedAt   time.Time `json:"failed_at"`
}

// ExerciseLifecycleEvent is published when exercise content is created or
// replaced, so downstream consumers can refresh derived state.
type ExerciseLifecycleEvent struct {
	ExerciseID string    `json:"exercise_id"`
	CourseID   string    `json:"course_id"`
	Kind       string    `json:"kind"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Event factory functions

func NewAnswerValidatedEvent(exerciseID, blockID, userID, kind string, isCorrect bool, pointsEarned, maxPoints float64) *ValidationEvent {
	now := time.Now()
	return &ValidationEvent{
		ID:        watermill.NewUUID(),
		Type:      EventAnswerValidated,
		Timestamp: now,
		Source:    "interactive-validation-service",
		Version:   "1.0",
		Data: AnswerValidatedEvent{
			ExerciseID:   exerciseID,
			BlockID:      blockID,
			UserID:       userID,
			Kind:         kind,
			IsCorrect:    isCorrect,
			PointsEarned: pointsEarned,
			MaxPoints:    maxPoints,
			ValidatedAt:  now,
		},
	}
}

func NewExerciseLifecycleEvent(eventType EventType, exerciseID, courseID, kind, actorID string) *ValidationEvent {
	now := time.Now()
	return &ValidationEvent{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Timestamp: now,
		Source:    "interactive-validation-service",
		Version:   "1.0",
		Data: ExerciseLifecycleEvent{
			ExerciseID: exerciseID,
			CourseID:   courseID,
			Kind:       kind,
			ActorID:    actorID,
			OccurredAt: now,
		},
	}
}

func NewValidationFailedEvent(exerciseID, blockID, userID, reason string) *ValidationEvent {
	now := time.Now()
	return &ValidationEvent{
		ID:        watermill.NewUUID(),
		Type:      EventValidationFailed,
		Timestamp: now,
		Source:    "interactive-validation-service",
		Version:   "1.0",
		Data: ValidationFailedEvent{
			ExerciseID: exerciseID,
			BlockID:    blockID,
			UserID:     userID,
			Reason:     reason,
			FailedAt:   now,
		},
	}
}
