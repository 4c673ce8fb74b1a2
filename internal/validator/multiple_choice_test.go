package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceDoc(data string) []byte {
	return []byte(`{"blocks": [{"id": "q", "type": "multiple-choice", "data": ` + data + `}]}`)
}

func TestMultipleChoice_SingleCorrect(t *testing.T) {
	doc := choiceDoc(`{
		"points": 2,
		"options": [{"text": "a"}, {"text": "b", "isCorrect": true}, {"text": "c"}, {"text": "d"}]
	}`)

	verdict, err := Evaluate(doc, "q", "multiple_choice", []any{float64(1)})
	require.NoError(t, err)

	assert.True(t, verdict.IsCorrect)
	assert.Equal(t, 2.0, verdict.PointsEarned)
}

func TestMultipleChoice_SingleRequiresExactlyOneSelection(t *testing.T) {
	doc := choiceDoc(`{
		"options": [{"text": "a"}, {"text": "b", "isCorrect": true}, {"text": "c"}, {"text": "d"}]
	}`)

	// Selecting the correct option plus another fails a single-answer block.
	verdict, err := Evaluate(doc, "q", "multiple_choice", []any{float64(1), float64(2)})
	require.NoError(t, err)

	assert.False(t, verdict.IsCorrect)
	assert.Equal(t, 0.0, verdict.PointsEarned)
}

func TestMultipleChoice_MultipleSetEquality(t *testing.T) {
	doc := choiceDoc(`{
		"answerType": "multiple",
		"options": [
			{"text": "a", "isCorrect": true},
			{"text": "b", "isCorrect": true},
			{"text": "c", "isCorrect": true},
			{"text": "d"}
		]
	}`)

	// Missing one correct selection fails.
	verdict, err := Evaluate(doc, "q", "multiple_choice", []any{float64(0), float64(2)})
	require.NoError(t, err)
	assert.False(t, verdict.IsCorrect)

	// The full set in any submission order passes.
	verdict, err = Evaluate(doc, "q", "multiple_choice", []any{float64(2), float64(0), float64(1)})
	require.NoError(t, err)
	assert.True(t, verdict.IsCorrect)

	// An extra selection fails.
	verdict, err = Evaluate(doc, "q", "multiple_choice", []any{float64(0), float64(1), float64(2), float64(3)})
	require.NoError(t, err)
	assert.False(t, verdict.IsCorrect)
}

func TestMultipleChoice_SubmissionShapes(t *testing.T) {
	doc := choiceDoc(`{
		"options": [{"text": "a"}, {"text": "b", "isCorrect": true}]
	}`)

	shapes := []any{
		float64(1),
		"1",
		`[1]`,
		[]any{float64(1)},
		map[string]any{"selectedOptions": []any{float64(1)}},
	}
	for _, shape := range shapes {
		verdict, err := Evaluate(doc, "q", "multiple_choice", shape)
		require.NoError(t, err, "shape %v", shape)
		assert.True(t, verdict.IsCorrect, "shape %v", shape)
	}
}

func TestMultipleChoice_EmptySubmission(t *testing.T) {
	doc := choiceDoc(`{"options": [{"text": "a", "isCorrect": true}]}`)

	_, err := Evaluate(doc, "q", "multiple_choice", nil)
	assert.ErrorIs(t, err, ErrEmptySubmission)

	_, err = Evaluate(doc, "q", "multiple_choice", "")
	assert.ErrorIs(t, err, ErrEmptySubmission)
}
