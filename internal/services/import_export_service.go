package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lingodrill/grading-service/internal/events"
	"github.com/lingodrill/grading-service/internal/models"
	"github.com/lingodrill/grading-service/internal/repositories"
	"github.com/lingodrill/grading-service/internal/utils"
	"github.com/lingodrill/grading-service/internal/validator"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

// ImportExportService handles bulk question import from CSV/Excel files and
// question export. Import files carry one question per row with the
// type-specific metadata as a JSON column; every row is validated with the
// same structural rules as single-question authoring.
type ImportExportService interface {
	ImportQuestionsFromFile(ctx context.Context, file multipart.File, filename string, creatorID string) (*ImportResult, error)
	ImportQuestionsFromCSV(ctx context.Context, reader io.Reader, creatorID string) (*ImportResult, error)
	ImportQuestionsFromExcel(ctx context.Context, reader io.Reader, creatorID string) (*ImportResult, error)

	ExportQuestionsToCSV(ctx context.Context, questionIDs []uint) ([]byte, error)
	ExportQuestionsToExcel(ctx context.Context, questionIDs []uint) ([]byte, error)
}

type ImportResult struct {
	TotalRows     int                            `json:"total_rows"`
	ProcessedRows int                            `json:"processed_rows"`
	SuccessCount  int                            `json:"success_count"`
	ErrorCount    int                            `json:"error_count"`
	Errors        []models.ImportValidationError `json:"errors"`
	Questions     []*models.Question             `json:"questions,omitempty"`
}

type importExportService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewImportExportService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger utils.Logger) ImportExportService {
	return &importExportService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

var importColumns = []string{"question_type", "question_text", "points", "metadata"}

func (s *importExportService) ImportQuestionsFromFile(ctx context.Context, file multipart.File, filename string, creatorID string) (*ImportResult, error) {
	s.logger.InfoContext(ctx, "starting file import", "filename", filename, "creator_id", creatorID)

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return s.ImportQuestionsFromCSV(ctx, file, creatorID)
	case ".xlsx", ".xls":
		return s.ImportQuestionsFromExcel(ctx, file, creatorID)
	default:
		return nil, NewValidationError("file", "unsupported file format", ext)
	}
}

func (s *importExportService) ImportQuestionsFromCSV(ctx context.Context, reader io.Reader, creatorID string) (*ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return s.importRows(ctx, records, creatorID)
}

func (s *importExportService) ImportQuestionsFromExcel(ctx context.Context, reader io.Reader, creatorID string) (*ImportResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	return s.importRows(ctx, rows, creatorID)
}

// importRows is the shared row pipeline: header check, per-row parse and
// validate, batch save of the valid rows, import event.
func (s *importExportService) importRows(ctx context.Context, rows [][]string, creatorID string) (*ImportResult, error) {
	if len(rows) < 2 {
		return nil, NewValidationError("file", "file must have a header row and at least one data row", len(rows))
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range importColumns {
		if _, exists := headerMap[col]; !exists {
			return nil, NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	result := &ImportResult{TotalRows: len(rows) - 1}

	var questions []*models.Question
	for rowIndex, row := range rows[1:] {
		question, rowErrors := s.parseRow(row, headerMap, rowIndex+2, creatorID)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorCount++
		} else {
			questions = append(questions, question)
			result.SuccessCount++
		}
		result.ProcessedRows++
	}

	if len(questions) > 0 {
		err := s.repo.WithTransaction(ctx, func(repo repositories.Repository) error {
			return repo.Question().CreateBatch(ctx, questions)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save imported questions: %w", err)
		}
	}
	result.Questions = questions

	event := events.NewQuestionsImportedEvent(creatorID, result.SuccessCount, result.ErrorCount)
	if err := s.publisher.PublishGradingEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish import event", "error", err)
	}

	s.logger.InfoContext(ctx, "import completed",
		"total_rows", result.TotalRows,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount)

	return result, nil
}

func (s *importExportService) parseRow(row []string, headerMap map[string]int, rowNum int, creatorID string) (*models.Question, []models.ImportValidationError) {
	var rowErrors []models.ImportValidationError

	cell := func(column string) string {
		idx, ok := headerMap[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	questionType := models.QuestionType(strings.ToUpper(cell("question_type")))
	if !questionType.IsValid() {
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row: rowNum, Field: "question_type", Message: "unsupported question type", Value: cell("question_type"),
		})
	}

	text := cell("question_text")
	if text == "" {
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row: rowNum, Field: "question_text", Message: "question text is required",
		})
	}

	points := 1
	if raw := cell("points"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			rowErrors = append(rowErrors, models.ImportValidationError{
				Row: rowNum, Field: "points", Message: "points must be a number", Value: raw,
			})
		} else {
			points = parsed
		}
	}

	metadata := cell("metadata")
	if metadata == "" {
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row: rowNum, Field: "metadata", Message: "metadata JSON is required",
		})
	}

	if len(rowErrors) > 0 {
		return nil, rowErrors
	}

	question := &models.Question{
		Type:      questionType,
		Text:      text,
		Points:    points,
		Metadata:  datatypes.JSON([]byte(metadata)),
		CreatedBy: creatorID,
	}

	if err := s.validator.Metadata().ValidateQuestion(question); err != nil {
		message := err.Error()
		field := "metadata"
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			message = vErr.Message
			field = vErr.Field
		}
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row: rowNum, Field: field, Message: message,
		})
		return nil, rowErrors
	}

	return question, nil
}

// ===== EXPORT OPERATIONS =====

var exportHeaders = []string{"ID", "Question Type", "Question Text", "Points", "Metadata", "Created By"}

func (s *importExportService) ExportQuestionsToCSV(ctx context.Context, questionIDs []uint) ([]byte, error) {
	questions, err := s.getQuestionsForExport(ctx, questionIDs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, question := range questions {
		if err := writer.Write(questionToRow(question)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *importExportService) ExportQuestionsToExcel(ctx context.Context, questionIDs []uint) ([]byte, error) {
	questions, err := s.getQuestionsForExport(ctx, questionIDs)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, question := range questions {
		for colIndex, value := range questionToRow(question) {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *importExportService) getQuestionsForExport(ctx context.Context, questionIDs []uint) ([]*models.Question, error) {
	if len(questionIDs) == 0 {
		questions, _, err := s.repo.Question().List(ctx, repositories.QuestionFilters{})
		return questions, err
	}
	return s.repo.Question().GetByIDs(ctx, questionIDs)
}

func questionToRow(question *models.Question) []string {
	return []string{
		strconv.FormatUint(uint64(question.ID), 10),
		string(question.Type),
		question.Text,
		strconv.Itoa(question.Points),
		string(question.Metadata),
		question.CreatedBy,
	}
}
