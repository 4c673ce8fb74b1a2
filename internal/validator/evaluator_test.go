package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
	"github.com/SAP-F-2025/interactive-validation-service/internal/resolver"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		tag  string
		want models.BlockKind
	}{
		{tag: "gap-fill", want: models.GapFill},
		{tag: "GapFill", want: models.GapFill},
		{tag: "matching", want: models.Matching},
		{tag: "multiple_choice", want: models.MultipleChoice},
		{tag: "MultipleChoice", want: models.MultipleChoice},
		{tag: "ordering", want: models.Ordering},
		{tag: "sequencing", want: models.Ordering},
	}
	for _, tt := range tests {
		evaluator, err := Dispatch(tt.tag)
		require.NoError(t, err, "tag %q", tt.tag)
		assert.Equal(t, tt.want, evaluator.Kind(), "tag %q", tt.tag)
	}
}

func TestDispatch_UnsupportedKind(t *testing.T) {
	for _, tag := range []string{"", "essay", "true-false", "garbage"} {
		_, err := Dispatch(tag)
		assert.ErrorIs(t, err, ErrUnsupportedKind, "tag %q", tag)
	}
}

func TestEvaluate_BlockNotFound(t *testing.T) {
	doc := []byte(`{"blocks": []}`)

	_, err := Evaluate(doc, "missing", "ordering", []any{"a"})
	assert.ErrorIs(t, err, resolver.ErrBlockNotFound)
	assert.NotErrorIs(t, err, ErrUnsupportedKind)
	assert.NotErrorIs(t, err, ErrEmptySubmission)
}

func TestEvaluate_Idempotent(t *testing.T) {
	doc := []byte(`{"blocks": [{"id": "m", "type": "matching", "data": {
		"points": 5,
		"items": [
			{"id": "a", "leftText": "1", "rightText": "one"},
			{"id": "b", "leftText": "2", "rightText": "two"},
			{"id": "c", "leftText": "3", "rightText": "three"}
		]
	}}]}`)
	sub := []any{
		map[string]any{"leftItemId": "a", "selectedPairId": "a"},
		map[string]any{"leftItemId": "b", "selectedPairId": "c"},
	}

	first, err := Evaluate(doc, "m", "matching", sub)
	require.NoError(t, err)
	second, err := Evaluate(doc, "m", "matching", sub)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want models.BlockKind
	}{
		{name: "questions array", doc: `{"questions": []}`, want: models.MultipleChoice},
		{name: "single question", doc: `{"question": {"options": []}}`, want: models.MultipleChoice},
		{name: "blanks", doc: `{"blanks": []}`, want: models.GapFill},
		{name: "two sided items", doc: `{"items": [{"leftType": "text", "rightType": "text"}]}`, want: models.Matching},
		{name: "nested sides", doc: `{"items": [{"left": {}, "right": {}}]}`, want: models.Matching},
		{name: "plain items", doc: `{"items": [{"id": "a"}]}`, want: models.Ordering},
		{name: "unparsable", doc: `nope`, want: models.Ordering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferKind([]byte(tt.doc)))
		})
	}
}

func TestEvaluate_InfersKindFromLegacyDocument(t *testing.T) {
	doc := []byte(`{"blanks": [{"identifier": "b1", "correctAnswer": "x"}]}`)

	verdict, err := Evaluate(doc, "main", "", []any{map[string]any{"blankId": "b1", "value": "x"}})
	require.NoError(t, err)
	assert.True(t, verdict.IsCorrect)
}
