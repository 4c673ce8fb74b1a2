package utils

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/SAP-F-2025/interactive-validation-service/internal/errors"
	"github.com/SAP-F-2025/interactive-validation-service/internal/models"
)

// Validator wraps go-playground/validator with the custom rules and JSON tag
// names used across handlers and services.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate runs struct validation and converts failures to the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

// Custom validation functions

func ValidateBlockKind(fl validator.FieldLevel) bool {
	_, ok := models.ParseBlockKind(fl.Field().String())
	return ok
}

func ValidateGapAnswerType(fl validator.FieldLevel) bool {
	switch models.GapAnswerType(fl.Field().String()) {
	case models.GapAnswerExact, models.GapAnswerKeyword, models.GapAnswerSimilar:
		return true
	}
	return false
}

func ValidateContentDocument(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if strings.TrimSpace(raw) == "" {
		return false
	}
	return json.Valid([]byte(raw))
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("block_kind", ValidateBlockKind)
	validate.RegisterValidation("gap_answer_type", ValidateGapAnswerType)
	validate.RegisterValidation("content_document", ValidateContentDocument)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
