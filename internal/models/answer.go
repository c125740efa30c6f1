package models

import "encoding/json"

// AnswerPayload is the raw submitted answer as it arrives on the wire. Its
// JSON shape depends on the question type: a plain string, an option index,
// or a string-keyed object. Each scorer parses the shape it expects and
// treats anything else as an invalid-format (incorrect, never crashing)
// answer.
type AnswerPayload = json.RawMessage

// ErrorCorrectionAnswer carries the learner's identification of the error
// and the corrected text. The map-based question families (fill-blank,
// matching, pronunciation, reading comprehension) submit a plain
// string-keyed object instead.
type ErrorCorrectionAnswer struct {
	Error      string `json:"error"`
	Correction string `json:"correction"`
}

// SubmittedAnswer pairs a question with its raw answer inside a lesson
// submission.
type SubmittedAnswer struct {
	QuestionID uint          `json:"question_id" validate:"required"`
	Answer     AnswerPayload `json:"answer"`
}
