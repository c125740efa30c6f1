package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lingodrill/grading-service/internal/models"
)

// Validator is the central validator instance combining struct-tag validation
// with the question-metadata structural rules.
type Validator struct {
	structValidator   *validator.Validate
	metadataValidator *MetadataValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		metadataValidator: NewMetadataValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateMetadata validates question metadata for the given type
func (v *Validator) ValidateMetadata(questionType models.QuestionType, metadata interface{}) error {
	return v.metadataValidator.ValidateMetadata(questionType, metadata)
}

// Metadata returns the metadata validator
func (v *Validator) Metadata() *MetadataValidator {
	return v.metadataValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).IsValid()
}
