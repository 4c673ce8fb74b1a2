package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExerciseItem is one stored interactive exercise: an opaque, versioned
// content document plus addressing metadata. The engine never mutates the
// content; it is parsed fresh on every validation call.
type ExerciseItem struct {
	ID        string `json:"id" gorm:"primaryKey;size:64"`
	CourseID  string `json:"course_id" gorm:"index;size:64"`
	Title     string `json:"title" gorm:"size:200"`
	Kind      string `json:"kind" gorm:"size:32;index"` // optional hint, blocks may mix kinds
	CreatedBy string `json:"created_by" gorm:"size:64"`

	// The raw content document (current blocks[] schema or a legacy shape).
	Content datatypes.JSON `json:"content" gorm:"type:jsonb;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidationRecord is the persisted outcome of one validation call.
type ValidationRecord struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ExerciseID string `json:"exercise_id" gorm:"not null;index;size:64"`
	BlockID    string `json:"block_id" gorm:"not null;size:64"`
	UserID     string `json:"user_id" gorm:"index;size:64"`
	Kind       string `json:"kind" gorm:"size:32"`

	IsCorrect    bool    `json:"is_correct"`
	PointsEarned float64 `json:"points_earned"`
	MaxPoints    float64 `json:"max_points"`
	Feedback     string  `json:"feedback" gorm:"size:500"`

	SubmittedAnswer  datatypes.JSON `json:"submitted_answer" gorm:"type:jsonb"`
	CorrectAnswer    datatypes.JSON `json:"correct_answer" gorm:"type:jsonb"`
	DetailedFeedback datatypes.JSON `json:"detailed_feedback" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}
