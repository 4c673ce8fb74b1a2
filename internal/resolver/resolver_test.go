package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

func TestResolveGapFill_BlocksFormat(t *testing.T) {
	doc := []byte(`{
		"blocks": [
			{"id": "b1", "type": "multiple-choice", "data": {"options": [{"text": "x", "isCorrect": true}]}},
			{"id": "b2", "type": "interactive-gap-fill-block", "data": {
				"instruction": "Fill in the gaps",
				"points": "4",
				"answerType": "keyword",
				"caseSensitive": true,
				"blanks": [
					{"identifier": "g1", "correctAnswer": "Paris", "alternativeAnswers": ["paris city"]},
					{"id": "g2", "answer": "Lyon", "options": [{"id": "o1", "value": "Lyon"}]}
				],
				"globalOptions": [{"id": "go1", "value": "Nice", "label": "Nice"}]
			}}
		]
	}`)

	block, err := ResolveGapFill(doc, "B2")
	require.NoError(t, err)

	assert.Equal(t, "b2", block.ID)
	assert.Equal(t, "Fill in the gaps", block.Instruction)
	assert.Equal(t, 4.0, block.Points)
	assert.Equal(t, models.GapAnswerKeyword, block.AnswerType)
	assert.True(t, block.CaseSensitive)
	require.Len(t, block.Blanks, 2)
	assert.Equal(t, "g1", block.Blanks[0].Identifier)
	assert.Equal(t, "Paris", block.Blanks[0].CorrectAnswer)
	assert.Equal(t, []string{"paris city"}, block.Blanks[0].AlternativeAnswers)
	assert.Equal(t, "Lyon", block.Blanks[1].CorrectAnswer)
	require.Len(t, block.Blanks[1].Options, 1)
	require.Len(t, block.GlobalOptions, 1)
	assert.Equal(t, "Nice", block.GlobalOptions[0].DisplayText)
}

func TestResolveGapFill_EntryLevelHeaderFields(t *testing.T) {
	doc := []byte(`{
		"blocks": [{
			"id": "b1",
			"type": "gap_fill",
			"points": 2,
			"order": 3,
			"instruction": "Fill in the capital",
			"isRequired": false,
			"data": {
				"blanks": [{"id": "blank-1", "correctAnswer": "paris"}]
			}
		}]
	}`)

	block, err := ResolveGapFill(doc, "b1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, block.Points)
	assert.Equal(t, 3, block.Order)
	assert.Equal(t, "Fill in the capital", block.Instruction)
	assert.False(t, block.IsRequired)
}

func TestResolveGapFill_DataLevelHeaderWinsOverEntry(t *testing.T) {
	doc := []byte(`{
		"blocks": [{
			"id": "b1",
			"type": "gap_fill",
			"points": 9,
			"data": {
				"points": 5,
				"blanks": [{"id": "blank-1", "correctAnswer": "paris"}]
			}
		}]
	}`)

	block, err := ResolveGapFill(doc, "b1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, block.Points)
}

func TestResolveOrdering_EntryLevelPoints(t *testing.T) {
	doc := []byte(`{
		"blocks": [{
			"id": "seq",
			"type": "ordering",
			"score": 6,
			"data": {
				"items": ["a", "b", "c"],
				"correctOrder": ["a", "b", "c"]
			}
		}]
	}`)

	block, err := ResolveOrdering(doc, "seq")
	require.NoError(t, err)
	assert.Equal(t, 6.0, block.Points)
}

func TestResolveGapFill_PointsDefaultToBlankCount(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "g", "type": "gapFill", "data": {
		"blanks": [{"answer": "a"}, {"answer": "b"}, {"answer": "c"}]
	}}]}`)

	block, err := ResolveGapFill(doc, "g")
	require.NoError(t, err)
	assert.Equal(t, 3.0, block.Points)
}

func TestResolveGapFill_ExplicitZeroPointsKept(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "g", "type": "gap-fill", "data": {
		"points": 0,
		"blanks": [{"answer": "a"}]
	}}]}`)

	block, err := ResolveGapFill(doc, "g")
	require.NoError(t, err)
	assert.Equal(t, 0.0, block.Points)
}

func TestResolveGapFill_LegacyDocument(t *testing.T) {
	doc := []byte(`{"blanks": [{"identifier": "x", "correctAnswer": "42"}], "points": 2}`)

	block, err := ResolveGapFill(doc, "main")
	require.NoError(t, err)
	assert.Equal(t, 2.0, block.Points)
	require.Len(t, block.Blanks, 1)

	_, err = ResolveGapFill(doc, "other")
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestResolveMatching_BlocksFormat(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "m1", "type": "Matching", "data": {
		"points": 6,
		"items": [
			{"id": "p1", "left": {"type": "text", "text": "cat"}, "right": {"type": "image", "fileId": "f1"}},
			{"id": "p2", "leftText": "dog", "rightText": "سگ"}
		]
	}}]}`)

	block, err := ResolveMatching(doc, "m1")
	require.NoError(t, err)

	require.Len(t, block.Items, 2)
	assert.Equal(t, models.MatchSideText, block.Items[0].Left.Type)
	assert.Equal(t, "cat", block.Items[0].Left.Text)
	assert.Equal(t, models.MatchSideImage, block.Items[0].Right.Type)
	assert.Equal(t, "f1", block.Items[0].Right.FileID)
	assert.Equal(t, "dog", block.Items[1].Left.Text)
	assert.Equal(t, "سگ", block.Items[1].Right.Text)
	assert.Equal(t, 6.0, block.Points)
}

func TestResolveMatching_LegacyArray(t *testing.T) {
	doc := []byte(`{"matchingBlocks": [{"id": "m", "pairs": [
		{"id": "a", "leftText": "1", "rightText": "one"}
	]}]}`)

	block, err := ResolveMatching(doc, "m")
	require.NoError(t, err)
	require.Len(t, block.Items, 1)
	assert.Equal(t, 1.0, block.Points)
}

func TestResolveMatching_EmptyItemsStillResolves(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "m", "type": "matching", "data": {"items": []}}]}`)

	block, err := ResolveMatching(doc, "m")
	require.NoError(t, err)
	assert.Empty(t, block.Items)
}

func TestResolveMultipleChoice_FlaggedOptions(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "q1", "type": "multiple_choice", "data": {
		"question": "Capital of France?",
		"options": [
			{"text": "Paris", "isCorrect": true},
			{"text": "Lyon"},
			{"text": "Nice"}
		]
	}}]}`)

	block, err := ResolveMultipleChoice(doc, "q1")
	require.NoError(t, err)

	assert.Equal(t, "Capital of France?", block.Question)
	assert.Equal(t, []int{0}, block.CorrectIndices)
	assert.Equal(t, models.ChoiceSingle, block.AnswerType)
	assert.Equal(t, 1.0, block.Points)
}

func TestResolveMultipleChoice_ExplicitIndicesAndMultiple(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "q", "type": "MultipleChoice", "data": {
		"options": [{"text": "a"}, {"text": "b"}, {"text": "c"}],
		"correctIndices": [2, 0]
	}}]}`)

	block, err := ResolveMultipleChoice(doc, "q")
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, block.CorrectIndices)
	assert.Equal(t, models.ChoiceMultiple, block.AnswerType)
	assert.Equal(t, 2.0, block.Points)
}

func TestResolveMultipleChoice_LegacyDocument(t *testing.T) {
	doc := []byte(`{"question": {
		"questionText": "Pick one",
		"options": [{"text": "a"}, {"text": "b", "isCorrect": true}]
	}}`)

	block, err := ResolveMultipleChoice(doc, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "Pick one", block.Question)
	assert.Equal(t, []int{1}, block.CorrectIndices)
}

func TestResolveOrdering_BlocksFormat(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "o1", "type": "ordering", "data": {
		"items": [
			{"id": "a", "value": "first"},
			{"id": "b", "value": "second"},
			{"id": "c", "value": "skipped", "include": false}
		],
		"correctOrder": ["b", "a", "ghost"]
	}}]}`)

	block, err := ResolveOrdering(doc, "o1")
	require.NoError(t, err)

	require.Len(t, block.Items, 3)
	assert.Equal(t, []string{"b", "a"}, block.EffectiveOrder())
	assert.Equal(t, 3.0, block.Points)
}

func TestResolveOrdering_FallbackOrderExcludesItems(t *testing.T) {
	doc := []byte(`{"orderingBlocks": [{"id": "o", "items": [
		{"id": "a"}, {"id": "b", "include": false}, {"id": "c"}
	]}]}`)

	block, err := ResolveOrdering(doc, "o")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, block.EffectiveOrder())
}

func TestResolveOrdering_StringItems(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "o", "type": "sequencing", "data": {
		"items": ["x", "y", "z"]
	}}]}`)

	block, err := ResolveOrdering(doc, "o")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, block.EffectiveOrder())
}

func TestResolve_DefensiveParsing(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{name: "invalid json", doc: `{not json`},
		{name: "empty document", doc: ``},
		{name: "no recognizable shape", doc: `{"title": "nothing here"}`},
		{name: "blocks is not an array", doc: `{"blocks": "oops"}`},
		{name: "block entry is scalar", doc: `{"blocks": [42]}`},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveGapFill([]byte(tt.doc), "b")
			assert.ErrorIs(t, err, ErrBlockNotFound)

			_, err = ResolveMatching([]byte(tt.doc), "b")
			assert.ErrorIs(t, err, ErrBlockNotFound)

			_, err = ResolveMultipleChoice([]byte(tt.doc), "b")
			assert.ErrorIs(t, err, ErrBlockNotFound)

			_, err = ResolveOrdering([]byte(tt.doc), "b")
			assert.ErrorIs(t, err, ErrBlockNotFound)
		})
	}
}

func TestResolve_TypeTagVariants(t *testing.T) {
	variants := []string{"gap-fill", "GapFill", "gap_fill", "fillBlank", "interactive-gap-fill-block"}
	for _, tag := range variants {
		doc := []byte(`{"blocks": [{"id": "g", "type": "` + tag + `", "data": {"blanks": [{"answer": "a"}]}}]}`)
		_, err := ResolveGapFill(doc, "g")
		assert.NoError(t, err, "type tag %q should resolve", tag)
	}
}
