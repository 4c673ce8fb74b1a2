package validator

import (
	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/resolver"
	"github.com/SAP-F-2025/interactive-validation-service/internal/submission"
)

type orderingEvaluator struct{}

func (orderingEvaluator) Kind() models.BlockKind { return models.Ordering }

func (orderingEvaluator) Evaluate(doc []byte, blockID string, rawSubmission any) (*models.Verdict, error) {
	block, err := resolver.ResolveOrdering(doc, blockID)
	if err != nil {
		return nil, err
	}

	submitted := submission.NormalizeOrdering(rawSubmission)
	if len(submitted) == 0 {
		return nil, ErrEmptySubmission
	}

	correctOrder := block.EffectiveOrder()

	// Item ids are opaque tokens, so comparison is positional and
	// case-sensitive: equal length, identical id at every position.
	matchedPositions := countMatchedPositions(submitted, correctOrder)
	isCorrect := len(submitted) == len(correctOrder) && matchedPositions == len(correctOrder)

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
		CorrectAnswer:   map[string]any{"order": correctOrder},
		SubmittedAnswer: map[string]any{"order": []string(submitted)},
		Feedback:        feedback,
		DetailedFeedback: map[string]any{
			"matched_positions": matchedPositions,
			"total_positions":   len(correctOrder),
		},
	}, nil
}

func countMatchedPositions(submitted models.OrderingSubmission, correct []string) int {
	count := 0
	for i, id := range correct {
		if i < len(submitted) && submitted[i] == id {
			count++
		}
	}
	return count
}
