package resolver

import (
	"fmt"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// ResolveGapFill locates the gap-fill block with the given id inside a content
// document and maps it to its canonical shape.
func ResolveGapFill(doc []byte, blockID string) (*models.GapFillBlock, error) {
	root, ok := parseDocument(doc)
	if !ok {
		return nil, ErrBlockNotFound
	}
	return runProbes([]func(jsonObject, string) (*models.GapFillBlock, bool){
		probeGapFillBlocks,
		probeGapFillLegacyArray,
		probeGapFillLegacyDocument,
	}, root, blockID)
}

func probeGapFillBlocks(root jsonObject, blockID string) (*models.GapFillBlock, bool) {
	for _, data := range blockEntries(root, blockID, models.GapFill) {
		if block, ok := mapGapFill(data, blockID); ok {
			return block, true
		}
	}
	return nil, false
}

func probeGapFillLegacyArray(root jsonObject, blockID string) (*models.GapFillBlock, bool) {
	for _, data := range legacyArrayEntries(root, blockID, "gapFillBlocks", "fillBlankBlocks") {
		if block, ok := mapGapFill(data, blockID); ok {
			return block, true
		}
	}
	return nil, false
}

// probeGapFillLegacyDocument treats the whole document as one pre-multi-block
// gap-fill exercise when blockID refers to the legacy shape.
func probeGapFillLegacyDocument(root jsonObject, blockID string) (*models.GapFillBlock, bool) {
	if !legacyBlockIDs[blockID] {
		return nil, false
	}
	if _, ok := getArray(root, "blanks", "gaps"); !ok {
		return nil, false
	}
	return mapGapFill(root, blockID)
}

func mapGapFill(data jsonObject, blockID string) (*models.GapFillBlock, bool) {
	block := &models.GapFillBlock{
		BlockHeader: mapHeader(data, blockID),
		AnswerType:  models.GapAnswerExact,
	}
	if tag, ok := getString(data, "answerType", "matchMode", "comparisonMode"); ok {
		switch models.NormalizeTypeTag(tag) {
		case "keyword", "partial", "contains":
			block.AnswerType = models.GapAnswerKeyword
		case "similar", "fuzzy":
			block.AnswerType = models.GapAnswerSimilar
		}
	}
	block.CaseSensitive, _ = getBool(data, "caseSensitive", "isCaseSensitive")

	rawBlanks, ok := getArray(data, "blanks", "gaps")
	if !ok {
		return nil, false
	}
	for i, raw := range rawBlanks {
		obj, ok := raw.(jsonObject)
		if !ok {
			continue
		}
		block.Blanks = append(block.Blanks, mapBlank(obj, i))
	}
	if len(block.Blanks) == 0 {
		return nil, false
	}

	if rawOptions, ok := getArray(data, "globalOptions", "options", "wordBank"); ok {
		block.GlobalOptions = mapBlankOptions(rawOptions)
	}

	declared, explicitZero := pointsDeclaration(data)
	block.Points = defaultPoints(declared, explicitZero, float64(len(block.Blanks)))
	return block, true
}

func mapBlank(obj jsonObject, position int) models.Blank {
	blank := models.Blank{
		Index:              position,
		AllowManualInput:   true,
		AllowGlobalOptions: true,
	}
	blank.Identifier, _ = getString(obj, "identifier", "id", "blankId", "key")
	if blank.Identifier == "" {
		blank.Identifier = fmt.Sprintf("blank-%d", position)
	}
	if idx, ok := getInt(obj, "index", "position"); ok {
		blank.Index = idx
	}
	blank.CorrectAnswer, _ = getString(obj, "correctAnswer", "answer", "value")
	blank.AlternativeAnswers = getStringSlice(obj, "alternativeAnswers", "alternatives", "acceptedAnswers")
	blank.CorrectOptionID, _ = getString(obj, "correctOptionId", "correctOption")
	blank.AlternativeOptionIDs = getStringSlice(obj, "alternativeOptionIds", "alternativeOptions")
	if rawOptions, ok := getArray(obj, "options", "choices"); ok {
		blank.Options = mapBlankOptions(rawOptions)
	}
	if manual, ok := getBool(obj, "allowManualInput", "manualInput"); ok {
		blank.AllowManualInput = manual
	}
	if global, ok := getBool(obj, "allowGlobalOptions", "useGlobalOptions"); ok {
		blank.AllowGlobalOptions = global
	}
	blank.AllowBlankOptions, _ = getBool(obj, "allowBlankOptions", "useBlankOptions")
	return blank
}

func mapBlankOptions(raw []any) []models.BlankOption {
	options := make([]models.BlankOption, 0, len(raw))
	for i, entry := range raw {
		switch t := entry.(type) {
		case jsonObject:
			option := models.BlankOption{}
			option.ID, _ = getString(t, "id", "optionId", "key")
			option.Value, _ = getString(t, "value", "text", "answer")
			option.DisplayText, _ = getString(t, "displayText", "label", "display")
			if option.ID == "" {
				option.ID = fmt.Sprintf("option-%d", i)
			}
			if option.DisplayText == "" {
				option.DisplayText = option.Value
			}
			options = append(options, option)
		case string:
			// Bare string options use the value as their own id.
			options = append(options, models.BlankOption{ID: t, Value: t, DisplayText: t})
		}
	}
	return options
}
