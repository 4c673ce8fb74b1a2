// Package validator contains the answer evaluation engine: one evaluator per
// exercise block kind, a static dispatch registry, and the Evaluate entry
// point callers use. Evaluators are pure and stateless; identical inputs
// always produce identical verdicts, so the package is safe to call
// concurrently without coordination.
package validator

import (
	"encoding/json"

	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// Evaluator validates one submission against one block of its kind inside a
// content document.
type Evaluator interface {
	Kind() models.BlockKind
	Evaluate(doc []byte, blockID string, rawSubmission any) (*models.Verdict, error)
}

// registry is built once and never mutated; evaluators carry no state so the
// shared instances are safe under concurrency.
var registry = map[models.BlockKind]Evaluator{
	models.GapFill:        gapFillEvaluator{},
	models.Matching:       matchingEvaluator{},
	models.MultipleChoice: multipleChoiceEvaluator{},
	models.Ordering:       orderingEvaluator{},
}

// Dispatch resolves a free-form kind tag to its evaluator.
func Dispatch(kindTag string) (Evaluator, error) {
	kind, ok := models.ParseBlockKind(kindTag)
	if !ok {
		return nil, ErrUnsupportedKind
	}
	evaluator, ok := registry[kind]
	if !ok {
		return nil, ErrUnsupportedKind
	}
	return evaluator, nil
}

// Evaluate is the engine entry point: it picks the evaluator for the kind tag
// (inferring one from the document structure when the tag is empty) and runs
// it. Error conditions are distinguishable via errors.Is: ErrUnsupportedKind,
// ErrEmptySubmission, and resolver.ErrBlockNotFound.
func Evaluate(doc []byte, blockID string, kindTag string, rawSubmission any) (*models.Verdict, error) {
	if kindTag == "" {
		kindTag = string(InferKind(doc))
	}
	evaluator, err := Dispatch(kindTag)
	if err != nil {
		return nil, err
	}
	return evaluator.Evaluate(doc, blockID, rawSubmission)
}

// InferKind guesses the block kind from the structural fingerprint of a
// legacy content document: a questions/options shape is multiple-choice,
// blanks mean gap-fill, items with two sides mean matching, any other items
// list means ordering.
func InferKind(doc []byte) models.BlockKind {
	var root map[string]any
	if err := json.Unmarshal(doc, &root); err != nil {
		return models.Ordering
	}
	if _, ok := root["questions"]; ok {
		return models.MultipleChoice
	}
	if _, ok := root["question"]; ok {
		return models.MultipleChoice
	}
	if _, ok := root["blanks"]; ok {
		return models.GapFill
	}
	if items, ok := root["items"].([]any); ok {
		for _, raw := range items {
			obj, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if hasMatchSides(obj) {
				return models.Matching
			}
		}
	}
	return models.Ordering
}

func hasMatchSides(item map[string]any) bool {
	if _, ok := item["leftType"]; ok {
		return true
	}
	if _, ok := item["rightType"]; ok {
		return true
	}
	_, left := item["left"]
	_, right := item["right"]
	return left && right
}
