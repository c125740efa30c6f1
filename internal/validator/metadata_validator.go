package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingodrill/grading-service/internal/models"
)

// MetadataValidator checks that authored question metadata has the required
// shape and internal consistency for its type. It runs before a question is
// persisted (authoring, bulk import, AI-assisted import) and fails fast on
// the first violated rule with a field-specific message.
type MetadataValidator struct{}

// NewMetadataValidator creates a new metadata validator
func NewMetadataValidator() *MetadataValidator {
	return &MetadataValidator{}
}

// ValidateMetadata validates question metadata based on question type.
// Metadata may be a typed struct, a map, or raw JSON; it is re-marshalled and
// decoded into the canonical struct for the type before the rules run.
func (v *MetadataValidator) ValidateMetadata(questionType models.QuestionType, metadata interface{}) error {
	if metadata == nil {
		return NewValidationError("metadata", "cannot be nil", nil)
	}

	metadataBytes, err := toJSON(metadata)
	if err != nil {
		return NewValidationError("metadata", fmt.Sprintf("failed to marshal metadata: %v", err), nil)
	}
	if len(metadataBytes) == 0 || string(metadataBytes) == "null" {
		return NewValidationError("metadata", "cannot be empty", nil)
	}

	switch questionType {
	case models.MultipleChoice, models.TrueFalse, models.CompleteConversation:
		return v.validateMultipleChoiceMetadata(metadataBytes)
	case models.FillBlank, models.VerbForm:
		return v.validateFillBlankMetadata(metadataBytes)
	case models.TextAnswer:
		return v.validateTextAnswerMetadata(metadataBytes)
	case models.Matching:
		return v.validateMatchingMetadata(metadataBytes)
	case models.SentenceBuilding:
		return v.validateSentenceBuildingMetadata(metadataBytes)
	case models.SentenceTransformation:
		return v.validateSentenceTransformationMetadata(metadataBytes)
	case models.ErrorCorrection:
		return v.validateErrorCorrectionMetadata(metadataBytes)
	case models.Pronunciation:
		return v.validatePronunciationMetadata(metadataBytes)
	case models.ReadingComprehension:
		return v.validateReadingComprehensionMetadata(metadataBytes)
	case models.OpenEnded:
		return v.validateOpenEndedMetadata(metadataBytes)
	default:
		return NewValidationError("type", fmt.Sprintf("unsupported question type: %s", questionType), questionType)
	}
}

// ValidateQuestion validates a complete question object
func (v *MetadataValidator) ValidateQuestion(question *models.Question) error {
	if strings.TrimSpace(question.Text) == "" {
		return NewValidationError("text", "question text is required", question.Text)
	}

	if question.Points < 1 || question.Points > 100 {
		return NewValidationError("points", "must be between 1 and 100", question.Points)
	}

	return v.ValidateMetadata(question.Type, question.Metadata)
}

// ValidateBatch validates multiple questions
func (v *MetadataValidator) ValidateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return NewValidationError("questions", "question batch cannot be empty", nil)
	}

	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

// Per-type rule sets

func (v *MetadataValidator) validateMultipleChoiceMetadata(metadataBytes []byte) error {
	var meta models.MultipleChoiceMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid multiple choice metadata structure", err.Error())
	}

	if len(meta.Options) < 2 {
		return NewValidationError("metadata.options", "must have at least 2 options", len(meta.Options))
	}

	correctCount := 0
	seenOrders := make(map[int]bool)
	for i, option := range meta.Options {
		if strings.TrimSpace(option.Text) == "" {
			return NewValidationError(fmt.Sprintf("metadata.options[%d].text", i), "option text cannot be empty", nil)
		}
		if option.Order < 1 {
			return NewValidationError(fmt.Sprintf("metadata.options[%d].order", i), "order must be at least 1", option.Order)
		}
		if seenOrders[option.Order] {
			return NewValidationError(fmt.Sprintf("metadata.options[%d].order", i), "duplicate option order", option.Order)
		}
		seenOrders[option.Order] = true
		if option.IsCorrect {
			correctCount++
		}
	}

	if correctCount != 1 {
		return NewValidationError("metadata.options", "must have exactly one correct option", correctCount)
	}

	return nil
}

func (v *MetadataValidator) validateFillBlankMetadata(metadataBytes []byte) error {
	var meta models.FillBlankMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid fill-in-blank metadata structure", err.Error())
	}

	if len(meta.Blanks) == 0 {
		return NewValidationError("metadata.blanks", "must have at least 1 blank", 0)
	}

	seenPositions := make(map[int]bool)
	for i, blank := range meta.Blanks {
		if blank.Position < 1 {
			return NewValidationError(fmt.Sprintf("metadata.blanks[%d].position", i), "position must be at least 1", blank.Position)
		}
		if seenPositions[blank.Position] {
			return NewValidationError(fmt.Sprintf("metadata.blanks[%d].position", i), "duplicate blank position", blank.Position)
		}
		seenPositions[blank.Position] = true

		if len(blank.CorrectAnswers) == 0 {
			return NewValidationError(fmt.Sprintf("metadata.blanks[%d].correctAnswers", i), "must have at least 1 correct answer", 0)
		}
		for j, answer := range blank.CorrectAnswers {
			if strings.TrimSpace(answer) == "" {
				return NewValidationError(fmt.Sprintf("metadata.blanks[%d].correctAnswers[%d]", i, j), "correct answer cannot be empty", nil)
			}
		}
	}

	return nil
}

func (v *MetadataValidator) validateTextAnswerMetadata(metadataBytes []byte) error {
	var meta models.TextAnswerMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid text answer metadata structure", err.Error())
	}

	if len(meta.AcceptedAnswers()) == 0 {
		return NewValidationError("metadata.correctAnswer", "must have at least 1 accepted answer", nil)
	}

	for i, answer := range meta.AcceptedAnswers() {
		if strings.TrimSpace(answer) == "" {
			return NewValidationError(fmt.Sprintf("metadata.alternativeAnswers[%d]", i), "accepted answer cannot be empty", nil)
		}
	}

	return nil
}

func (v *MetadataValidator) validateMatchingMetadata(metadataBytes []byte) error {
	var meta models.MatchingMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid matching metadata structure", err.Error())
	}

	if len(meta.Pairs) < 2 {
		return NewValidationError("metadata.pairs", "must have at least 2 pairs", len(meta.Pairs))
	}

	seenLeft := make(map[string]bool)
	for i, pair := range meta.Pairs {
		if strings.TrimSpace(pair.Left) == "" || strings.TrimSpace(pair.Right) == "" {
			return NewValidationError(fmt.Sprintf("metadata.pairs[%d]", i), "pairs must have both left and right values", nil)
		}
		if seenLeft[pair.Left] {
			return NewValidationError(fmt.Sprintf("metadata.pairs[%d].left", i), "duplicate left value", pair.Left)
		}
		seenLeft[pair.Left] = true
	}

	return nil
}

func (v *MetadataValidator) validateSentenceBuildingMetadata(metadataBytes []byte) error {
	var meta models.SentenceBuildingMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid sentence building metadata structure", err.Error())
	}

	if len(meta.Words) < 2 {
		return NewValidationError("metadata.words", "must have at least 2 words", len(meta.Words))
	}

	if strings.TrimSpace(meta.CorrectSentence) == "" {
		return NewValidationError("metadata.correctSentence", "cannot be empty", nil)
	}

	return nil
}

func (v *MetadataValidator) validateSentenceTransformationMetadata(metadataBytes []byte) error {
	var meta models.SentenceTransformationMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid sentence transformation metadata structure", err.Error())
	}

	if len(meta.CorrectAnswers) == 0 {
		return NewValidationError("metadata.correctAnswers", "must have at least 1 correct answer", 0)
	}

	for i, answer := range meta.CorrectAnswers {
		if strings.TrimSpace(answer) == "" {
			return NewValidationError(fmt.Sprintf("metadata.correctAnswers[%d]", i), "correct answer cannot be empty", nil)
		}
	}

	return nil
}

func (v *MetadataValidator) validateErrorCorrectionMetadata(metadataBytes []byte) error {
	var meta models.ErrorCorrectionMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid error correction metadata structure", err.Error())
	}

	if strings.TrimSpace(meta.ErrorText) == "" {
		return NewValidationError("metadata.errorText", "cannot be empty", nil)
	}

	if strings.TrimSpace(meta.Correction) == "" {
		return NewValidationError("metadata.correction", "cannot be empty", nil)
	}

	return nil
}

func (v *MetadataValidator) validatePronunciationMetadata(metadataBytes []byte) error {
	var meta models.PronunciationMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid pronunciation metadata structure", err.Error())
	}

	if len(meta.Classifications) == 0 {
		return NewValidationError("metadata.classifications", "must have at least 1 classification", 0)
	}

	knownWords := make(map[string]bool, len(meta.Words))
	for _, word := range meta.Words {
		knownWords[word] = true
	}
	knownCategories := make(map[string]bool, len(meta.Categories))
	for _, category := range meta.Categories {
		knownCategories[category] = true
	}

	for i, classification := range meta.Classifications {
		if !knownWords[classification.Word] {
			return NewValidationError(fmt.Sprintf("metadata.classifications[%d].word", i), "references unknown word", classification.Word)
		}
		if !knownCategories[classification.Category] {
			return NewValidationError(fmt.Sprintf("metadata.classifications[%d].category", i), "references unknown category", classification.Category)
		}
	}

	return nil
}

func (v *MetadataValidator) validateReadingComprehensionMetadata(metadataBytes []byte) error {
	var meta models.ReadingComprehensionMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid reading comprehension metadata structure", err.Error())
	}

	if strings.TrimSpace(meta.Passage) == "" {
		return NewValidationError("metadata.passage", "cannot be empty", nil)
	}

	if len(meta.Blanks) == 0 {
		return NewValidationError("metadata.blanks", "must have at least 1 blank", 0)
	}

	for i, blank := range meta.Blanks {
		if blank.Position < 1 {
			return NewValidationError(fmt.Sprintf("metadata.blanks[%d].position", i), "position must be at least 1", blank.Position)
		}
		if strings.TrimSpace(blank.CorrectAnswer) == "" {
			return NewValidationError(fmt.Sprintf("metadata.blanks[%d].correctAnswer", i), "cannot be empty", nil)
		}
	}

	return nil
}

// Open-ended metadata is author-controlled free text graded by a human; only
// the mechanical word-count bounds are checked.
func (v *MetadataValidator) validateOpenEndedMetadata(metadataBytes []byte) error {
	var meta models.OpenEndedMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return NewValidationError("metadata", "invalid open-ended metadata structure", err.Error())
	}

	if meta.MinWords != nil && *meta.MinWords < 0 {
		return NewValidationError("metadata.minWords", "cannot be negative", *meta.MinWords)
	}

	if meta.MaxWords != nil && *meta.MaxWords < 0 {
		return NewValidationError("metadata.maxWords", "cannot be negative", *meta.MaxWords)
	}

	if meta.MinWords != nil && meta.MaxWords != nil && *meta.MinWords > *meta.MaxWords {
		return NewValidationError("metadata.minWords", "cannot be greater than maxWords", *meta.MinWords)
	}

	return nil
}

func toJSON(metadata interface{}) ([]byte, error) {
	switch m := metadata.(type) {
	case []byte:
		return m, nil
	case json.RawMessage:
		return m, nil
	default:
		return json.Marshal(metadata)
	}
}
