package grading

import (
	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/utils"
)

// Processor is the single entry point for grading. It decodes question
// metadata, dispatches to the scorer registered for the question's type and
// absorbs every fault into a safe zero-point result, so one broken question
// can never abort a batch.
//
// A Processor is stateless after construction and safe for concurrent use.
type Processor struct {
	registry map[models.QuestionType]Scorer
	logger   utils.Logger
}

func NewProcessor(logger utils.Logger) *Processor {
	return &Processor{
		registry: newRegistry(),
		logger:   logger,
	}
}

// Process grades a single answer. It always returns a usable result, never
// an error: faults are logged and reported to the learner as a system or
// data problem with zero points awarded.
func (p *Processor) Process(question *models.Question, answer models.AnswerPayload) *models.QuestionResult {
	if question == nil {
		return &models.QuestionResult{
			IsCorrect: boolPtr(false),
			Feedback:  feedbackDataMissing,
		}
	}

	scorer, ok := p.registry[question.Type]
	if !ok {
		result := baseResult(question, string(answer))
		result.IsCorrect = boolPtr(false)
		result.Feedback = feedbackNotAutoGradable
		return result
	}

	metadata, err := models.DecodeMetadata(question.Type, question.Metadata)
	if err != nil {
		p.logger.Warn("question metadata unusable",
			"question_id", question.ID,
			"question_type", question.Type,
			"error", err)
		result := baseResult(question, string(answer))
		result.IsCorrect = boolPtr(false)
		result.Feedback = feedbackDataMissing
		return result
	}

	result, err := scorer.Score(question, metadata, answer)
	if err != nil {
		p.logger.Error("scoring failed",
			"question_id", question.ID,
			"question_type", question.Type,
			"error", err)
		result := baseResult(question, string(answer))
		result.IsCorrect = boolPtr(false)
		result.Feedback = feedbackSystemError
		return result
	}

	return result
}

// ProcessBatch grades a set of submitted answers against their questions and
// returns exactly one result per answer, in submission order. Answers whose
// question is absent from the map produce a data-missing result in place.
func (p *Processor) ProcessBatch(questions map[uint]*models.Question, answers []models.SubmittedAnswer) []*models.QuestionResult {
	results := make([]*models.QuestionResult, 0, len(answers))
	for _, submitted := range answers {
		question, ok := questions[submitted.QuestionID]
		if !ok {
			p.logger.Warn("submitted answer references unknown question",
				"question_id", submitted.QuestionID)
			results = append(results, &models.QuestionResult{
				QuestionID: submitted.QuestionID,
				UserAnswer: string(submitted.Answer),
				IsCorrect:  boolPtr(false),
				Feedback:   feedbackDataMissing,
			})
			continue
		}
		results = append(results, p.Process(question, submitted.Answer))
	}
	return results
}

// SupportedTypes lists the question types the processor can grade
// automatically.
func (p *Processor) SupportedTypes() []models.QuestionType {
	types := make([]models.QuestionType, 0, len(p.registry))
	for t := range p.registry {
		types = append(types, t)
	}
	return types
}
