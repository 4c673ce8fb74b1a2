package validator

import (
	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/resolver"
	"github.com/SAP-F-2025/interactive-validation-service/internal/submission"
)

type multipleChoiceEvaluator struct{}

func (multipleChoiceEvaluator) Kind() models.BlockKind { return models.MultipleChoice }

func (multipleChoiceEvaluator) Evaluate(doc []byte, blockID string, rawSubmission any) (*models.Verdict, error) {
	block, err := resolver.ResolveMultipleChoice(doc, blockID)
	if err != nil {
		return nil, err
	}

	selected := submission.NormalizeChoice(rawSubmission)
	if len(selected) == 0 {
		return nil, ErrEmptySubmission
	}

	correctSet := make(map[int]bool, len(block.CorrectIndices))
	for _, idx := range block.CorrectIndices {
		correctSet[idx] = true
	}

	var isCorrect bool
	switch block.AnswerType {
	case models.ChoiceMultiple:
		// Set equality: extra and missing selections both fail.
		isCorrect = len(selected) == len(block.CorrectIndices)
		for _, idx := range selected {
			if !correctSet[idx] {
				isCorrect = false
				break
			}
		}
	default:
		// Single choice requires exactly one selection.
		isCorrect = len(selected) == 1 && correctSet[selected[0]]
	}

	earned := 0.0
	feedback := feedbackIncorrect()
	if isCorrect {
		earned = block.Points
		feedback = feedbackCorrect()
	}

	return &models.Verdict{
		IsCorrect:       isCorrect,
		PointsEarned:    earned,
		MaxPoints:       block.Points,
		CorrectAnswer:   map[string]any{"indices": block.CorrectIndices},
		SubmittedAnswer: map[string]any{"indices": []int(selected)},
		Feedback:        feedback,
		DetailedFeedback: map[string]any{
			"answer_type":    string(block.AnswerType),
			"selected_count": len(selected),
			"correct_count":  len(block.CorrectIndices),
		},
	}, nil
}
