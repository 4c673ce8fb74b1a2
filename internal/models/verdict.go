package models

// Verdict is the single structured result of evaluating one submission
// against one block. It is the only output that leaves the engine and is
// immutable once constructed; identical inputs always produce an identical
// verdict (no clock, no randomness).
type Verdict struct {
	IsCorrect        bool           `json:"is_correct"`
	PointsEarned     float64        `json:"points_earned"`
	MaxPoints        float64        `json:"max_points"`
	CorrectAnswer    map[string]any `json:"correct_answer"`
	SubmittedAnswer  map[string]any `json:"submitted_answer"`
	Feedback         string         `json:"feedback"`
	DetailedFeedback map[string]any `json:"detailed_feedback"`
}
