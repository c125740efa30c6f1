package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/repositories"
	"github.com/lingodrill/grading-service/internal/services"
	"github.com/lingodrill/grading-service/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
	importExport    services.ImportExportService
}

func NewQuestionHandler(
	questionService services.QuestionService,
	importExport services.ImportExportService,
	logger utils.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
		importExport:    importExport,
	}
}

// ValidateQuestion checks a question definition without persisting it.
func (h *QuestionHandler) ValidateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.questionService.Validate(&question); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Question is valid"})
}

// CreateQuestion validates and persists a single question.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating question", "question_type", question.Type)

	if err := h.questionService.Create(c.Request.Context(), &question); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// CreateQuestionsBatch validates and persists several questions atomically.
func (h *QuestionHandler) CreateQuestionsBatch(c *gin.Context) {
	var questions []*models.Question
	if err := c.ShouldBindJSON(&questions); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating question batch", "count", len(questions))

	if err := h.questionService.CreateBatch(c.Request.Context(), questions); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, questions)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	filters := repositories.QuestionFilters{}

	if rawType := c.Query("type"); rawType != "" {
		questionType := models.QuestionType(strings.ToUpper(rawType))
		if !questionType.IsValid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid question type",
				Details: rawType,
			})
			return
		}
		filters.Type = &questionType
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		filters.CreatedBy = &createdBy
	}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}
	filters.Limit = queryInt(c, "limit", 50)
	filters.Offset = queryInt(c, "offset", 0)

	questions, total, err := h.questionService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     total,
	})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	question.ID = id

	if err := h.questionService.Update(c.Request.Context(), &question); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Question deleted"})
}

// ImportQuestions imports questions from an uploaded CSV or Excel file.
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file upload",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	creatorID := c.Query("creator_id")
	h.LogRequest(c, "Importing questions", "filename", header.Filename, "creator_id", creatorID)

	result, err := h.importExport.ImportQuestionsFromFile(c.Request.Context(), file, header.Filename, creatorID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.ErrorCount > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// ExportQuestions streams the selected questions as CSV or Excel.
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	var ids []uint
	for _, raw := range strings.Split(c.Query("ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid question id",
				Details: raw,
			})
			return
		}
		ids = append(ids, uint(id))
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	switch format {
	case "csv":
		data, err := h.importExport.ExportQuestionsToCSV(c.Request.Context(), ids)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="questions.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.importExport.ExportQuestionsToExcel(c.Request.Context(), ids)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="questions.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
	}
}

func queryInt(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}
