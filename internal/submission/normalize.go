package submission

import (
	"sort"
	"strings"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// Envelope key aliases per kind. A submission may arrive wrapped in an object
// keyed by any of these; the wrapped value is then ingested again.
var (
	orderingKeys = []string{"order", "items", "sequence", "orderedItems", "answer"}
	choiceKeys   = []string{"selectedOptions", "selected", "selectedIndices", "answers", "answer"}
	gapFillKeys  = []string{"blanks", "answers", "values", "responses"}
	matchingKeys = []string{"matches", "pairs", "answers", "matchedPairs"}
)

func unwrap(v RawValue, keys []string) RawValue {
	if v.Kind != RawObject {
		return v
	}
	if inner, ok := fieldValue(v.Object, keys...); ok {
		return Ingest(inner)
	}
	return v
}

// NormalizeOrdering coerces a raw submitted value into the ordered list of
// item ids.
func NormalizeOrdering(raw any) models.OrderingSubmission {
	v := unwrap(Ingest(raw), orderingKeys)

	// Element objects carry the id under one of the usual names.
	if objs := v.Objects(); len(objs) > 0 {
		out := make(models.OrderingSubmission, 0, len(objs))
		for _, obj := range objs {
			if id, ok := fieldString(obj, "id", "itemId", "value"); ok {
				out = append(out, id)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return models.OrderingSubmission(v.Strings())
}

// NormalizeChoice coerces a raw submitted value into the deduplicated,
// ascending set of selected option indices.
func NormalizeChoice(raw any) models.ChoiceSubmission {
	v := unwrap(Ingest(raw), choiceKeys)

	var indices []int
	if objs := v.Objects(); len(objs) > 0 {
		for _, obj := range objs {
			if idx, ok := fieldInt(obj, "index", "optionIndex", "value"); ok {
				indices = append(indices, idx)
			}
		}
	}
	if len(indices) == 0 {
		indices = v.Ints()
	}

	seen := make(map[int]bool, len(indices))
	out := make(models.ChoiceSubmission, 0, len(indices))
	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

// NormalizeGapFill coerces a raw submitted value into the list of blank
// responses. Accepted shapes: a list of response objects, a map of blank id
// to answer, or a plain list of answer strings matched to blanks by position.
func NormalizeGapFill(raw any) models.GapFillSubmission {
	v := Ingest(raw)

	if v.Kind == RawObject {
		if inner, ok := fieldValue(v.Object, gapFillKeys...); ok {
			return normalizeGapFillValue(Ingest(inner))
		}
		// A bare map of blankId -> answer.
		out := make(models.GapFillSubmission, 0, len(v.Object))
		for key, value := range v.Object {
			if answer := scalarString(value); answer != "" {
				out = append(out, models.BlankResponse{BlankID: strings.TrimSpace(key), Index: -1, Value: answer})
			}
		}
		return out
	}
	return normalizeGapFillValue(v)
}

func normalizeGapFillValue(v RawValue) models.GapFillSubmission {
	if objs := v.Objects(); len(objs) > 0 {
		out := make(models.GapFillSubmission, 0, len(objs))
		for i, obj := range objs {
			resp := models.BlankResponse{Index: i}
			resp.BlankID, _ = fieldString(obj, "blankId", "id", "key", "identifier")
			if idx, ok := fieldInt(obj, "index", "position"); ok {
				resp.Index = idx
			}
			resp.Value, _ = fieldString(obj, "value", "answer", "text")
			resp.OptionID, _ = fieldString(obj, "optionId", "selectedOptionId", "option")
			out = append(out, resp)
		}
		return out
	}

	values := v.Strings()
	out := make(models.GapFillSubmission, 0, len(values))
	for i, value := range values {
		out = append(out, models.BlankResponse{Index: i, Value: value})
	}
	return out
}

// NormalizeMatching coerces a raw submitted value into the list of match
// responses. Accepted shapes: a list of pair objects, a map of left id to
// selected pair id, or "left:selected" strings.
func NormalizeMatching(raw any) models.MatchingSubmission {
	v := Ingest(raw)

	if v.Kind == RawObject {
		if inner, ok := fieldValue(v.Object, matchingKeys...); ok {
			return normalizeMatchingValue(Ingest(inner))
		}
		out := make(models.MatchingSubmission, 0, len(v.Object))
		for key, value := range v.Object {
			if selected := scalarString(value); selected != "" {
				out = append(out, models.MatchResponse{
					LeftItemID:     strings.TrimSpace(key),
					SelectedPairID: selected,
					OrderIndex:     -1,
				})
			}
		}
		return out
	}
	return normalizeMatchingValue(v)
}

func normalizeMatchingValue(v RawValue) models.MatchingSubmission {
	if objs := v.Objects(); len(objs) > 0 {
		out := make(models.MatchingSubmission, 0, len(objs))
		for i, obj := range objs {
			resp := models.MatchResponse{OrderIndex: i}
			resp.LeftItemID, _ = fieldString(obj, "leftItemId", "left", "itemId", "leftId")
			resp.SelectedPairID, _ = fieldString(obj, "selectedPairId", "selected", "rightItemId", "right", "pairId")
			if idx, ok := fieldInt(obj, "orderIndex", "index", "position"); ok {
				resp.OrderIndex = idx
			}
			out = append(out, resp)
		}
		return out
	}

	// "left:selected" pair strings, one pair per element.
	var out models.MatchingSubmission
	for i, pair := range v.Strings() {
		left, selected, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		left = strings.TrimSpace(left)
		selected = strings.TrimSpace(selected)
		if left == "" || selected == "" {
			continue
		}
		out = append(out, models.MatchResponse{LeftItemID: left, SelectedPairID: selected, OrderIndex: i})
	}
	return out
}
