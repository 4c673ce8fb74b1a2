package errors

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidationErrorFormatting(t *testing.T) {
	err := NewValidationError("kind", "must not be empty", "")

	if err.Field != "kind" || err.Message != "must not be empty" {
		t.Errorf("unexpected fields: %+v", err)
	}
	if got, want := err.Error(), "validation error on field 'kind': must not be empty"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withRule := NewValidationErrorWithRule("points", "must be between 0 and 100", "points_range", 500)
	if withRule.Rule != "points_range" {
		t.Errorf("Rule = %q, want points_range", withRule.Rule)
	}
	if withRule.Value != 500 {
		t.Errorf("Value = %v, want 500", withRule.Value)
	}
}

func TestValidationErrorsSummary(t *testing.T) {
	var errs ValidationErrors
	if got := errs.Error(); got != "validation failed" {
		t.Errorf("empty collection: got %q", got)
	}

	errs = append(errs, *NewValidationError("content", "must be a valid JSON content document", nil))
	if got, want := errs.Error(), "validation failed: content must be a valid JSON content document"; got != want {
		t.Errorf("single error: got %q, want %q", got, want)
	}

	errs = append(errs, *NewValidationError("kind", "is required", nil))
	if got, want := errs.Error(), "validation failed: 2 field errors"; got != want {
		t.Errorf("multiple errors: got %q, want %q", got, want)
	}
}

// The message mapping keys off the rule tag, so a rule that always fails is
// enough to drive every branch.
func failingRule(fl validator.FieldLevel) bool { return false }

func TestToValidationErrors_CustomRuleMessages(t *testing.T) {
	validate := validator.New()
	for _, tag := range []string{"block_kind", "gap_answer_type", "content_document", "points_range", "mystery"} {
		if err := validate.RegisterValidation(tag, failingRule); err != nil {
			t.Fatalf("failed to register rule %s: %v", tag, err)
		}
	}

	type payload struct {
		Kind       string  `validate:"block_kind"`
		AnswerType string  `validate:"gap_answer_type"`
		Content    string  `validate:"content_document"`
		Points     float64 `validate:"points_range"`
		Extra      string  `validate:"mystery"`
	}

	err := validate.Struct(payload{Kind: "essay", AnswerType: "regex", Content: "{", Points: 500})
	if err == nil {
		t.Fatal("expected struct validation to fail")
	}

	converted := ToValidationErrors(err)
	if len(converted) != 5 {
		t.Fatalf("expected 5 validation errors, got %d", len(converted))
	}

	wantMessages := map[string]string{
		"block_kind":       "must be a valid block kind (gap_fill, matching, multiple_choice, ordering)",
		"gap_answer_type":  "must be exact, keyword, or similar",
		"content_document": "must be a valid JSON content document",
		"points_range":     "must be between 0 and 100",
		"mystery":          "validation failed for rule 'mystery'",
	}
	for _, ve := range converted {
		want, ok := wantMessages[ve.Rule]
		if !ok {
			t.Errorf("unexpected rule %q", ve.Rule)
			continue
		}
		if ve.Message != want {
			t.Errorf("rule %s: message = %q, want %q", ve.Rule, ve.Message, want)
		}
	}
}

func TestToValidationErrors_StandardRules(t *testing.T) {
	validate := validator.New()

	type payload struct {
		ID    string `validate:"required"`
		Title string `validate:"max=4"`
	}

	err := validate.Struct(payload{Title: "too long for four"})
	converted := ToValidationErrors(err)
	if len(converted) != 2 {
		t.Fatalf("expected 2 validation errors, got %d", len(converted))
	}

	byRule := map[string]ValidationError{}
	for _, ve := range converted {
		byRule[ve.Rule] = ve
	}
	if got := byRule["required"].Message; got != "is required" {
		t.Errorf("required message = %q", got)
	}
	if got := byRule["max"].Message; got != "must be at most 4" {
		t.Errorf("max message = %q", got)
	}
	if byRule["max"].Value != "too long for four" {
		t.Errorf("max value = %v, want the offending string", byRule["max"].Value)
	}
}

func TestToValidationErrors_IgnoresOtherErrorTypes(t *testing.T) {
	if converted := ToValidationErrors(errPlain); len(converted) != 0 {
		t.Errorf("expected no conversion for a non-validator error, got %d", len(converted))
	}
	if converted := ToValidationErrors(nil); len(converted) != 0 {
		t.Errorf("expected no conversion for nil, got %d", len(converted))
	}
}

var errPlain = &ValidationError{Field: "x", Message: "not from the validator"}
