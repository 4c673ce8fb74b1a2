package submission

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

func TestIngest_Shapes(t *testing.T) {
	assert.Equal(t, RawNull, Ingest(nil).Kind)
	assert.Equal(t, RawNull, Ingest("   ").Kind)
	assert.Equal(t, RawArray, Ingest([]any{1, 2}).Kind)
	assert.Equal(t, RawArray, Ingest(`["a","b"]`).Kind)
	assert.Equal(t, RawArray, Ingest(json.RawMessage(`[1,2]`)).Kind)
	assert.Equal(t, RawObject, Ingest(`{"order":["a"]}`).Kind)
	assert.Equal(t, RawString, Ingest("a, b, c").Kind)
	assert.Equal(t, RawScalar, Ingest(3.5).Kind)
}

func TestIngest_MalformedJSONStringStaysString(t *testing.T) {
	v := Ingest(`[not json`)
	assert.Equal(t, RawString, v.Kind)
	assert.Equal(t, []string{"[not json"}, v.Strings())
}

func TestNormalizeOrdering(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want models.OrderingSubmission
	}{
		{name: "native array", raw: []any{"a", "b", "c"}, want: models.OrderingSubmission{"a", "b", "c"}},
		{name: "stringified json array", raw: `["b","a"]`, want: models.OrderingSubmission{"b", "a"}},
		{name: "comma joined", raw: "a, b ,c", want: models.OrderingSubmission{"a", "b", "c"}},
		{name: "single scalar", raw: "a", want: models.OrderingSubmission{"a"}},
		{name: "envelope object", raw: map[string]any{"order": []any{"x", "y"}}, want: models.OrderingSubmission{"x", "y"}},
		{name: "element objects", raw: []any{map[string]any{"id": "a"}, map[string]any{"itemId": "b"}}, want: models.OrderingSubmission{"a", "b"}},
		{name: "numeric ids", raw: []any{float64(1), float64(2)}, want: models.OrderingSubmission{"1", "2"}},
		{name: "empty entries dropped", raw: "a,, ,b", want: models.OrderingSubmission{"a", "b"}},
		{name: "nil", raw: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeOrdering(tt.raw)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestNormalizeChoice(t *testing.T) {
	assert.Equal(t, models.ChoiceSubmission{0, 2}, NormalizeChoice([]any{float64(2), float64(0)}))
	assert.Equal(t, models.ChoiceSubmission{1, 3}, NormalizeChoice("3,1"))
	assert.Equal(t, models.ChoiceSubmission{1}, NormalizeChoice(float64(1)))
	assert.Equal(t, models.ChoiceSubmission{0, 1}, NormalizeChoice(`[0,1,1,0]`))
	assert.Equal(t, models.ChoiceSubmission{2}, NormalizeChoice(map[string]any{"selectedOptions": []any{float64(2)}}))
	assert.Equal(t, models.ChoiceSubmission{4}, NormalizeChoice([]any{map[string]any{"index": float64(4)}}))
	assert.Empty(t, NormalizeChoice(nil))
	assert.Empty(t, NormalizeChoice("not a number"))
}

func TestNormalizeGapFill_ObjectList(t *testing.T) {
	raw := []any{
		map[string]any{"blankId": "g1", "value": " Paris "},
		map[string]any{"id": "g2", "optionId": "o3"},
		map[string]any{"index": float64(5), "answer": "Lyon"},
	}

	got := NormalizeGapFill(raw)
	require.Len(t, got, 3)
	assert.Equal(t, models.BlankResponse{BlankID: "g1", Index: 0, Value: "Paris"}, got[0])
	assert.Equal(t, models.BlankResponse{BlankID: "g2", Index: 1, OptionID: "o3"}, got[1])
	assert.Equal(t, models.BlankResponse{Index: 5, Value: "Lyon"}, got[2])
}

func TestNormalizeGapFill_MapForm(t *testing.T) {
	got := NormalizeGapFill(map[string]any{"g1": "Paris", "g2": "Lyon"})
	require.Len(t, got, 2)

	byID := map[string]string{}
	for _, resp := range got {
		byID[resp.BlankID] = resp.Value
	}
	assert.Equal(t, "Paris", byID["g1"])
	assert.Equal(t, "Lyon", byID["g2"])
}

func TestNormalizeGapFill_PositionalStrings(t *testing.T) {
	got := NormalizeGapFill("Paris, Lyon")
	require.Len(t, got, 2)
	assert.Equal(t, models.BlankResponse{Index: 0, Value: "Paris"}, got[0])
	assert.Equal(t, models.BlankResponse{Index: 1, Value: "Lyon"}, got[1])
}

func TestNormalizeGapFill_EnvelopeWithStringifiedList(t *testing.T) {
	raw := map[string]any{"blanks": `[{"blankId":"g1","value":"x"}]`}

	got := NormalizeGapFill(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "g1", got[0].BlankID)
	assert.Equal(t, "x", got[0].Value)
}

func TestNormalizeMatching_ObjectList(t *testing.T) {
	raw := []any{
		map[string]any{"leftItemId": "a", "selectedPairId": "a"},
		map[string]any{"left": "b", "right": "c", "orderIndex": float64(7)},
	}

	got := NormalizeMatching(raw)
	require.Len(t, got, 2)
	assert.Equal(t, models.MatchResponse{LeftItemID: "a", SelectedPairID: "a", OrderIndex: 0}, got[0])
	assert.Equal(t, models.MatchResponse{LeftItemID: "b", SelectedPairID: "c", OrderIndex: 7}, got[1])
}

func TestNormalizeMatching_PairStrings(t *testing.T) {
	got := NormalizeMatching("a:a, b:c")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].LeftItemID)
	assert.Equal(t, "a", got[0].SelectedPairID)
	assert.Equal(t, "b", got[1].LeftItemID)
	assert.Equal(t, "c", got[1].SelectedPairID)
}

func TestNormalizeMatching_MapForm(t *testing.T) {
	got := NormalizeMatching(map[string]any{"a": "a"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].LeftItemID)
	assert.Equal(t, "a", got[0].SelectedPairID)
}

func TestNormalizeMatching_UnrecognizedYieldsEmpty(t *testing.T) {
	assert.Empty(t, NormalizeMatching(nil))
	assert.Empty(t, NormalizeMatching("no separator here"))
	assert.Empty(t, NormalizeMatching(42))
}
