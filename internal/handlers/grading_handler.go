package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/repositories"
	"github.com/lingodrill/grading-service/internal/services"
	"github.com/lingodrill/grading-service/internal/utils"
	"github.com/lingodrill/grading-service/internal/validator"
)

type GradingHandler struct {
	BaseHandler
	gradingService services.GradingService
	validator      *validator.Validator
}

type ScoreQuestionRequest struct {
	QuestionID uint                 `json:"question_id" validate:"required"`
	Answer     models.AnswerPayload `json:"answer"`
}

func NewGradingHandler(
	gradingService services.GradingService,
	v *validator.Validator,
	logger utils.Logger,
) *GradingHandler {
	return &GradingHandler{
		BaseHandler:    NewBaseHandler(logger),
		gradingService: gradingService,
		validator:      v,
	}
}

// ScoreQuestion grades one answer against a stored question without
// persisting anything.
func (h *GradingHandler) ScoreQuestion(c *gin.Context) {
	var req ScoreQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validator.ToValidationErrors(err),
		})
		return
	}

	result, err := h.gradingService.ScoreQuestion(c.Request.Context(), req.QuestionID, req.Answer)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SubmitLesson grades a whole lesson submission and persists the outcome.
func (h *GradingHandler) SubmitLesson(c *gin.Context) {
	var req services.SubmitLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validator.ToValidationErrors(err),
		})
		return
	}

	h.LogRequest(c, "Grading lesson submission",
		"lesson_id", req.LessonID,
		"learner_id", req.LearnerID,
		"answer_count", len(req.Answers))

	result, err := h.gradingService.SubmitLesson(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *GradingHandler) GetSubmission(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	submission, err := h.gradingService.GetSubmission(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

func (h *GradingHandler) ListSubmissions(c *gin.Context) {
	learnerID := c.Query("learner_id")
	if learnerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "learner_id query parameter is required",
		})
		return
	}

	filters := repositories.SubmissionFilters{
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}

	submissions, total, err := h.gradingService.ListSubmissions(c.Request.Context(), learnerID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       total,
	})
}
