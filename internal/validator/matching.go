package validator

import (
	"math"
	"strings"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/resolver"
	"github.com/SAP-F-2025/interactive-validation-service/internal/submission"
)

type matchingEvaluator struct{}

func (matchingEvaluator) Kind() models.BlockKind { return models.Matching }

func (matchingEvaluator) Evaluate(doc []byte, blockID string, rawSubmission any) (*models.Verdict, error) {
	block, err := resolver.ResolveMatching(doc, blockID)
	if err != nil {
		return nil, err
	}

	// A block with no items to pair is vacuously correct.
	if len(block.Items) == 0 {
		return &models.Verdict{
			IsCorrect:        true,
			PointsEarned:     block.Points,
			MaxPoints:        block.Points,
			CorrectAnswer:    map[string]any{"pairs": []map[string]any{}},
			SubmittedAnswer:  map[string]any{"pairs": []map[string]any{}},
			Feedback:         feedbackCorrect(),
			DetailedFeedback: map[string]any{"items": []map[string]any{}, "correct_count": 0, "total_count": 0},
		}, nil
	}

	responses := submission.NormalizeMatching(rawSubmission)
	if len(responses) == 0 {
		return nil, ErrEmptySubmission
	}

	// Pairing is identity-based: item N's left correctly pairs with item N's
	// right, both referenced by the shared item id.
	perItemPoints := roundPoints(block.Points / float64(len(block.Items)))
	correctCount := 0
	itemDetails := make([]map[string]any, 0, len(block.Items))
	submittedPairs := make([]map[string]any, 0, len(block.Items))
	correctPairs := make([]map[string]any, 0, len(block.Items))

	for i, item := range block.Items {
		response, found := findMatchResponse(responses, item.ID, i)
		correct := found && strings.EqualFold(response.SelectedPairID, item.ID)
		if correct {
			correctCount++
		}

		itemDetails = append(itemDetails, map[string]any{
			"item_id":    item.ID,
			"answered":   found,
			"is_correct": correct,
		})
		submittedPairs = append(submittedPairs, map[string]any{
			"left_item_id":     item.ID,
			"selected_pair_id": response.SelectedPairID,
		})
		correctPairs = append(correctPairs, map[string]any{
			"left_item_id":    item.ID,
			"correct_pair_id": item.ID,
		})
	}

	isCorrect := correctCount == len(block.Items)
	earned := roundPoints(perItemPoints * float64(correctCount))

	feedback := feedbackIncorrect()
	switch {
	case isCorrect:
		feedback = feedbackCorrect()
	case correctCount > 0:
		feedback = feedbackPartial(correctCount, len(block.Items))
	}

	return &models.Verdict{
		IsCorrect:       isCorrect,
		PointsEarned:    earned,
		MaxPoints:       block.Points,
		CorrectAnswer:   map[string]any{"pairs": correctPairs},
		SubmittedAnswer: map[string]any{"pairs": submittedPairs},
		Feedback:        feedback,
		DetailedFeedback: map[string]any{
			"items":           itemDetails,
			"correct_count":   correctCount,
			"total_count":     len(block.Items),
			"points_per_item": perItemPoints,
		},
	}, nil
}

func findMatchResponse(responses models.MatchingSubmission, itemID string, position int) (models.MatchResponse, bool) {
	for _, r := range responses {
		if r.LeftItemID != "" && strings.EqualFold(r.LeftItemID, itemID) {
			return r, true
		}
	}
	if position < len(responses) && responses[position].LeftItemID == "" {
		return responses[position], true
	}
	return models.MatchResponse{}, false
}

// roundPoints rounds to two decimals, halves away from zero. Per-item points
// are rounded before summation, so the total for an all-correct submission
// can drift a cent from the declared maximum when the division is not exact.
func roundPoints(value float64) float64 {
	return math.Round(value*100) / 100
}
