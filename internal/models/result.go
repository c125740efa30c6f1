package models

// QuestionResult is the outcome of grading one submitted answer. It is built
// fresh per submission and handed to the caller; the engine never stores it.
//
// IsCorrect is a tri-state: true, false, or nil for answers that await
// manual grading (open-ended questions). Nil is a valid terminal state, not
// an error.
type QuestionResult struct {
	QuestionID    uint    `json:"questionId"`
	QuestionText  string  `json:"questionText"`
	UserAnswer    string  `json:"userAnswer"`
	CorrectAnswer *string `json:"correctAnswer,omitempty"`
	IsCorrect     *bool   `json:"isCorrect"`
	Points        int     `json:"points"`
	Explanation   *string `json:"explanation,omitempty"`
	Feedback      string  `json:"feedback"`
}

// Correct reports whether the result is a definitive pass. A nil IsCorrect
// (pending manual grading) counts as not correct for aggregation purposes.
func (r *QuestionResult) Correct() bool {
	return r.IsCorrect != nil && *r.IsCorrect
}

// Pending reports whether the result awaits manual grading.
func (r *QuestionResult) Pending() bool {
	return r.IsCorrect == nil
}
