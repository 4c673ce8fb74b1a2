package resolver

import (
	"sort"
	"strings"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// ResolveMultipleChoice locates the multiple-choice block with the given id
// inside a content document and maps it to its canonical shape, resolving the
// correct index set from either an explicit list or per-option flags.
func ResolveMultipleChoice(doc []byte, blockID string) (*models.MultipleChoiceBlock, error) {
	root, ok := parseDocument(doc)
	if !ok {
		return nil, ErrBlockNotFound
	}
	return runProbes([]func(jsonObject, string) (*models.MultipleChoiceBlock, bool){
		probeChoiceBlocks,
		probeChoiceLegacyArray,
		probeChoiceLegacyDocument,
	}, root, blockID)
}

func probeChoiceBlocks(root jsonObject, blockID string) (*models.MultipleChoiceBlock, bool) {
	for _, data := range blockEntries(root, blockID, models.MultipleChoice) {
		if block, ok := mapMultipleChoice(data, blockID); ok {
			return block, true
		}
	}
	return nil, false
}

func probeChoiceLegacyArray(root jsonObject, blockID string) (*models.MultipleChoiceBlock, bool) {
	for _, data := range legacyArrayEntries(root, blockID, "multipleChoiceBlocks", "choiceBlocks", "questions") {
		if block, ok := mapMultipleChoice(data, blockID); ok {
			return block, true
		}
	}
	return nil, false
}

func probeChoiceLegacyDocument(root jsonObject, blockID string) (*models.MultipleChoiceBlock, bool) {
	if !legacyBlockIDs[blockID] {
		return nil, false
	}
	// The legacy single-exercise shape nests one question object, or carries
	// the options directly on the root.
	if question, ok := getObject(root, "question"); ok {
		merged := cloneWith(question, "points", root["points"])
		if block, ok := mapMultipleChoice(merged, blockID); ok {
			return block, true
		}
	}
	if _, ok := getArray(root, "options", "choices", "answers"); !ok {
		return nil, false
	}
	return mapMultipleChoice(root, blockID)
}

func mapMultipleChoice(data jsonObject, blockID string) (*models.MultipleChoiceBlock, bool) {
	block := &models.MultipleChoiceBlock{
		BlockHeader: mapHeader(data, blockID),
		AnswerType:  models.ChoiceSingle,
	}
	block.Question, _ = getString(data, "question", "questionText", "text", "prompt")

	rawOptions, ok := getArray(data, "options", "choices", "answers")
	if !ok {
		return nil, false
	}
	flagged := map[int]bool{}
	for i, raw := range rawOptions {
		option := models.ChoiceOption{Index: i}
		switch t := raw.(type) {
		case jsonObject:
			if idx, ok := getInt(t, "index", "position"); ok {
				option.Index = idx
			}
			option.Text, _ = getString(t, "text", "value", "label", "title")
			option.IsCorrect, _ = getBool(t, "isCorrect", "correct", "isAnswer")
		case string:
			option.Text = strings.TrimSpace(t)
		default:
			continue
		}
		if option.IsCorrect {
			flagged[option.Index] = true
		}
		block.Options = append(block.Options, option)
	}
	if len(block.Options) == 0 {
		return nil, false
	}

	// Explicit correct-index list wins over per-option flags.
	if arr, ok := getArray(data, "correctIndices", "correctAnswers", "correctIndexes"); ok {
		flagged = map[int]bool{}
		for _, raw := range arr {
			if f, ok := raw.(float64); ok {
				flagged[int(f)] = true
			}
		}
	} else if idx, ok := getInt(data, "correctIndex", "correctAnswer"); ok && len(flagged) == 0 {
		flagged[idx] = true
	}
	for idx := range flagged {
		block.CorrectIndices = append(block.CorrectIndices, idx)
	}
	sort.Ints(block.CorrectIndices)

	if tag, ok := getString(data, "answerType", "selectionMode", "mode"); ok {
		switch models.NormalizeTypeTag(tag) {
		case "multiple", "multi", "multiselect", "checkbox":
			block.AnswerType = models.ChoiceMultiple
		case "single", "radio":
			block.AnswerType = models.ChoiceSingle
		}
	} else if multi, ok := getBool(data, "isMultiple", "allowMultiple", "multipleAnswers"); ok && multi {
		block.AnswerType = models.ChoiceMultiple
	} else if len(block.CorrectIndices) > 1 {
		block.AnswerType = models.ChoiceMultiple
	}

	declared, explicitZero := pointsDeclaration(data)
	fallback := 1.0
	if block.AnswerType == models.ChoiceMultiple {
		fallback = float64(len(block.CorrectIndices))
	}
	block.Points = defaultPoints(declared, explicitZero, fallback)
	return block, true
}
