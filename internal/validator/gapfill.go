package validator

import (
	"strings"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/resolver"
	"github.com/SAP-F-2025/interactive-validation-service/internal/submission"
	"github.com/SAP-F-2025/interactive-validation-service/internal/textnorm"
)

type gapFillEvaluator struct{}

func (gapFillEvaluator) Kind() models.BlockKind { return models.GapFill }

func (gapFillEvaluator) Evaluate(doc []byte, blockID string, rawSubmission any) (*models.Verdict, error) {
	block, err := resolver.ResolveGapFill(doc, blockID)
	if err != nil {
		return nil, err
	}

	responses := submission.NormalizeGapFill(rawSubmission)
	if allBlanksEmpty(responses) {
		return nil, ErrEmptySubmission
	}

	correctCount := 0
	unanswered := 0
	blankDetails := make([]map[string]any, 0, len(block.Blanks))
	submittedBlanks := make([]map[string]any, 0, len(block.Blanks))
	correctBlanks := make([]map[string]any, 0, len(block.Blanks))

	for i, blank := range block.Blanks {
		response, answered := findBlankResponse(responses, blank, i)
		correct := false
		if answered {
			comparison := resolveComparisonValue(block, blank, response)
			correct = blankCorrect(block, blank, comparison, response.OptionID)
		} else {
			unanswered++
		}
		if correct {
			correctCount++
		}

		blankDetails = append(blankDetails, map[string]any{
			"blank_id":   blank.Identifier,
			"answered":   answered,
			"is_correct": correct,
		})
		submittedBlanks = append(submittedBlanks, map[string]any{
			"blank_id":  blank.Identifier,
			"value":     response.Value,
			"option_id": response.OptionID,
		})
		correctBlanks = append(correctBlanks, map[string]any{
			"blank_id":       blank.Identifier,
			"correct_answer": blank.CorrectAnswer,
			"alternatives":   blank.AlternativeAnswers,
		})
	}

	// All-or-nothing: every blank must be correct for any points at all.
	isCorrect := correctCount == len(block.Blanks)
	earned := 0.0
	if isCorrect {
		earned = block.Points
	}

	feedback := feedbackIncorrect()
	switch {
	case isCorrect:
		feedback = feedbackCorrect()
	case unanswered > 0:
		feedback = feedbackUnanswered()
	case correctCount > 0:
		feedback = feedbackPartial(correctCount, len(block.Blanks))
	}

	return &models.Verdict{
		IsCorrect:       isCorrect,
		PointsEarned:    earned,
		MaxPoints:       block.Points,
		CorrectAnswer:   map[string]any{"blanks": correctBlanks},
		SubmittedAnswer: map[string]any{"blanks": submittedBlanks},
		Feedback:        feedback,
		DetailedFeedback: map[string]any{
			"blanks":        blankDetails,
			"correct_count": correctCount,
			"total_count":   len(block.Blanks),
		},
	}, nil
}

func allBlanksEmpty(responses models.GapFillSubmission) bool {
	for _, r := range responses {
		if r.Value != "" || r.OptionID != "" {
			return false
		}
	}
	return true
}

// findBlankResponse locates the submitted response for a blank, first by id
// (case-insensitive), then by declared index, then by list position.
func findBlankResponse(responses models.GapFillSubmission, blank models.Blank, position int) (models.BlankResponse, bool) {
	for _, r := range responses {
		if r.BlankID != "" && strings.EqualFold(r.BlankID, blank.Identifier) {
			return r, r.Value != "" || r.OptionID != ""
		}
	}
	for _, r := range responses {
		if r.BlankID == "" && r.Index == blank.Index {
			return r, r.Value != "" || r.OptionID != ""
		}
	}
	for _, r := range responses {
		if r.BlankID == "" && r.Index == position {
			return r, r.Value != "" || r.OptionID != ""
		}
	}
	return models.BlankResponse{}, false
}

// resolveComparisonValue turns a submitted response into the text that gets
// compared: a picked option resolves to its value (blank-own options first,
// then global), free text is used as-is.
func resolveComparisonValue(block *models.GapFillBlock, blank models.Blank, response models.BlankResponse) string {
	if response.OptionID != "" {
		for _, option := range blank.Options {
			if strings.EqualFold(option.ID, response.OptionID) {
				return option.Value
			}
		}
		for _, option := range block.GlobalOptions {
			if strings.EqualFold(option.ID, response.OptionID) {
				return option.Value
			}
		}
	}
	return response.Value
}

// blankCorrect checks the comparison value against the correct answer, each
// configured alternative, and finally the correct option ids. First match
// wins.
func blankCorrect(block *models.GapFillBlock, blank models.Blank, comparison, optionID string) bool {
	if matches(comparison, blank.CorrectAnswer, block) {
		return true
	}
	for _, alternative := range blank.AlternativeAnswers {
		if matches(comparison, alternative, block) {
			return true
		}
	}
	if optionID != "" {
		if blank.CorrectOptionID != "" && strings.EqualFold(optionID, blank.CorrectOptionID) {
			return true
		}
		for _, id := range blank.AlternativeOptionIDs {
			if strings.EqualFold(optionID, id) {
				return true
			}
		}
	}
	return false
}

// matches is the fuzzy string comparison behind gap-fill grading. Both sides
// are canonicalized, then compared per the block's answer type. Persian text
// additionally gets the half-space rule: compound words written with a ZWNJ,
// a space, or nothing at all compare equal.
func matches(submitted, correct string, block *models.GapFillBlock) bool {
	normalizedSubmitted := textnorm.Normalize(submitted)
	normalizedCorrect := textnorm.Normalize(correct)

	if normalizedSubmitted == "" && normalizedCorrect == "" {
		return true
	}
	if normalizedSubmitted == "" || normalizedCorrect == "" {
		return false
	}
	if textnorm.EqualFolded(normalizedSubmitted, normalizedCorrect, block.CaseSensitive) {
		return true
	}

	if persianSpacingApplies(submitted) || persianSpacingApplies(correct) {
		stripped := textnorm.StripSpaces(normalizedSubmitted)
		strippedCorrect := textnorm.StripSpaces(normalizedCorrect)
		if textnorm.EqualFolded(stripped, strippedCorrect, block.CaseSensitive) {
			return true
		}
	}

	switch block.AnswerType {
	case models.GapAnswerKeyword:
		if block.CaseSensitive {
			return strings.Contains(normalizedSubmitted, normalizedCorrect)
		}
		return strings.Contains(strings.ToLower(normalizedSubmitted), strings.ToLower(normalizedCorrect))
	case models.GapAnswerSimilar:
		return textnorm.EqualFolded(
			textnorm.CollapseSpaces(normalizedSubmitted),
			textnorm.CollapseSpaces(normalizedCorrect),
			block.CaseSensitive,
		)
	}
	return false
}

func persianSpacingApplies(raw string) bool {
	return textnorm.HasJoinControl(raw) || textnorm.ContainsPersianArabic(raw)
}
