package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lingodrill/grading-service/internal/services"
	"github.com/lingodrill/grading-service/internal/utils"
	"github.com/lingodrill/grading-service/internal/validator"
)

type HandlerManager struct {
	questionHandler *QuestionHandler
	gradingHandler  *GradingHandler
}

func NewHandlerManager(
	questionService services.QuestionService,
	gradingService services.GradingService,
	importExport services.ImportExportService,
	v *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		questionHandler: NewQuestionHandler(questionService, importExport, logger),
		gradingHandler:  NewGradingHandler(gradingService, v, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		questions := v1.Group("/questions")
		{
			questions.POST("/validate", hm.questionHandler.ValidateQuestion)
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.POST("/batch", hm.questionHandler.CreateQuestionsBatch)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)

			questions.POST("/import", hm.questionHandler.ImportQuestions)
			questions.GET("/export", hm.questionHandler.ExportQuestions)
		}

		grading := v1.Group("/grading")
		{
			grading.POST("/score", hm.gradingHandler.ScoreQuestion)
			grading.POST("/submissions", hm.gradingHandler.SubmitLesson)
			grading.GET("/submissions", hm.gradingHandler.ListSubmissions)
			grading.GET("/submissions/:id", hm.gradingHandler.GetSubmission)
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "grading-service",
	})
}
