package grading

import (
	"io"
	"log/slog"
	"testing"

	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testProcessor() *Processor {
	return NewProcessor(utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestProcessor_Process(t *testing.T) {
	processor := testProcessor()

	metadata := datatypes.JSON([]byte(`{"options":[{"text":"Run","isCorrect":true,"order":1},{"text":"Blue","isCorrect":false,"order":2}]}`))
	question := &models.Question{ID: 1, Type: models.MultipleChoice, Text: "Pick the verb.", Points: 5, Metadata: metadata}

	t.Run("grades a valid question", func(t *testing.T) {
		result := processor.Process(question, []byte(`"Run"`))
		require.NotNil(t, result.IsCorrect)
		assert.True(t, *result.IsCorrect)
		assert.Equal(t, 5, result.Points)
	})

	t.Run("missing metadata becomes a data-missing result", func(t *testing.T) {
		broken := &models.Question{ID: 2, Type: models.MultipleChoice, Text: "Broken.", Points: 5}
		result := processor.Process(broken, []byte(`"Run"`))
		require.NotNil(t, result.IsCorrect)
		assert.False(t, *result.IsCorrect)
		assert.Equal(t, 0, result.Points)
		assert.Equal(t, feedbackDataMissing, result.Feedback)
	})

	t.Run("unparseable metadata becomes a data-missing result", func(t *testing.T) {
		broken := &models.Question{ID: 3, Type: models.MultipleChoice, Text: "Broken.", Points: 5, Metadata: datatypes.JSON([]byte(`{notjson`))}
		result := processor.Process(broken, []byte(`"Run"`))
		require.NotNil(t, result.IsCorrect)
		assert.False(t, *result.IsCorrect)
		assert.Equal(t, feedbackDataMissing, result.Feedback)
	})

	t.Run("metadata fault becomes a system-error result", func(t *testing.T) {
		// Decodes fine but has no single correct option, which the scorer
		// reports as a fault.
		faulty := datatypes.JSON([]byte(`{"options":[{"text":"A","isCorrect":true,"order":1},{"text":"B","isCorrect":true,"order":2}]}`))
		broken := &models.Question{ID: 4, Type: models.MultipleChoice, Text: "Broken.", Points: 5, Metadata: faulty}
		result := processor.Process(broken, []byte(`"A"`))
		require.NotNil(t, result.IsCorrect)
		assert.False(t, *result.IsCorrect)
		assert.Equal(t, 0, result.Points)
		assert.Equal(t, feedbackSystemError, result.Feedback)
	})

	t.Run("unknown type is not auto gradable", func(t *testing.T) {
		odd := &models.Question{ID: 5, Type: models.QuestionType("ESSAY_V2"), Text: "Odd.", Points: 5, Metadata: metadata}
		result := processor.Process(odd, []byte(`"Run"`))
		require.NotNil(t, result.IsCorrect)
		assert.False(t, *result.IsCorrect)
		assert.Equal(t, feedbackNotAutoGradable, result.Feedback)
	})
}

func TestProcessor_ProcessBatch(t *testing.T) {
	processor := testProcessor()

	questions := map[uint]*models.Question{
		1: {
			ID: 1, Type: models.MultipleChoice, Text: "Pick the verb.", Points: 5,
			Metadata: datatypes.JSON([]byte(`{"options":[{"text":"Run","isCorrect":true,"order":1},{"text":"Blue","isCorrect":false,"order":2}]}`)),
		},
		2: {
			ID: 2, Type: models.TextAnswer, Text: "Past tense of go?", Points: 4,
			Metadata: datatypes.JSON([]byte(`{"correctAnswer":"went"}`)),
		},
		3: {
			ID: 3, Type: models.MultipleChoice, Text: "No metadata.", Points: 5,
		},
	}

	answers := []models.SubmittedAnswer{
		{QuestionID: 2, Answer: []byte(`"went"`)},
		{QuestionID: 99, Answer: []byte(`"anything"`)},
		{QuestionID: 1, Answer: []byte(`"Blue"`)},
		{QuestionID: 3, Answer: []byte(`"Run"`)},
	}

	results := processor.ProcessBatch(questions, answers)
	require.Len(t, results, len(answers))

	// Results come back in submission order, one per answer, with faults
	// absorbed in place.
	assert.Equal(t, uint(2), results[0].QuestionID)
	assert.True(t, results[0].Correct())
	assert.Equal(t, 4, results[0].Points)

	assert.Equal(t, uint(99), results[1].QuestionID)
	assert.Equal(t, feedbackDataMissing, results[1].Feedback)

	assert.Equal(t, uint(1), results[2].QuestionID)
	assert.False(t, results[2].Correct())

	assert.Equal(t, uint(3), results[3].QuestionID)
	assert.Equal(t, feedbackDataMissing, results[3].Feedback)
}

func TestProcessor_SupportedTypes(t *testing.T) {
	processor := testProcessor()
	types := processor.SupportedTypes()
	assert.Len(t, types, len(models.AllQuestionTypes()))
	assert.Contains(t, types, models.VerbForm)
	assert.Contains(t, types, models.OpenEnded)
}
