package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	"github.com/yourusername/quizexam-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
	"github.com/yourusername/quizexam-api/internal/service"
)

// ResultHandler обрабатывает запросы истории результатов пользователя
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler создает новый обработчик результатов
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// GetUserResults возвращает страницу результатов пользователя с фильтрами,
// пагинацией и сводной статистикой
// GET /user/passed-results?pass=&quizId=&level=&startDate=&endDate=&minScore=&maxScore=&page=&limit=
func (h *ResultHandler) GetUserResults(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	filters, err := parseResultFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resultPage, err := h.resultService.QueryForUser(userID, filters, page, limit)
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResultResponse(resultPage))
}

// GetResult возвращает один результат пользователя с детальным разбором
// GET /user/results/:resultId
func (h *ResultHandler) GetResult(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	resultID := c.MustGet("resultID").(uint)

	result, err := h.resultService.GetByIDForUser(userID, resultID)
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  dto.NewResultResponse(result, true),
	})
}

// ExportUserResults экспортирует историю результатов в CSV или Excel формате
// GET /user/results/export?format=csv|xlsx
func (h *ResultHandler) ExportUserResults(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	format := c.DefaultQuery("format", "csv")

	// Получаем ВСЕ результаты без пагинации для экспорта
	results, err := h.resultService.GetAllForUser(userID)
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	filename := fmt.Sprintf("results_%d_%s", userID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, results, filename)
	default:
		h.exportCSV(c, results, filename)
	}
}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *ResultHandler) exportCSV(c *gin.Context, results []entity.Result, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Заголовки
	writer.Write([]string{"Квиз", "Уровень", "Балл", "Правильных", "Неправильных", "Всего вопросов", "Сдан", "Дата"})

	// Данные
	for _, r := range results {
		passed := "Нет"
		if r.Pass {
			passed = "Да"
		}

		writer.Write([]string{
			sanitizeForExcel(r.QuizTitle),
			r.Level,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.CorrectCount),
			strconv.Itoa(r.WrongCount),
			strconv.Itoa(r.TotalQuestions),
			passed,
			r.CompletedAt.Format("02.01.2006 15:04"),
		})
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *ResultHandler) exportXLSX(c *gin.Context, results []entity.Result, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Результаты"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ResultHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Квиз", "Уровень", "Балл", "Правильных", "Неправильных", "Всего вопросов", "Сдан", "Дата"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ResultHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, r := range results {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		passed := "Нет"
		if r.Pass {
			passed = "Да"
		}

		row := []interface{}{sanitizeForExcel(r.QuizTitle), r.Level, r.Score, r.CorrectCount, r.WrongCount, r.TotalQuestions, passed, r.CompletedAt.Format("02.01.2006 15:04")}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ResultHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ResultHandler] Ошибка при Flush: %v", err)
	}

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ResultHandler] Ошибка записи Excel в response: %v", err)
	}
}

// parseResultFilters разбирает query-параметры фильтрации результатов.
// Некорректный формат значения — это ошибка клиента, а не пустой фильтр.
func parseResultFilters(c *gin.Context) (repository.ResultFilters, error) {
	var filters repository.ResultFilters

	if v := c.Query("pass"); v != "" {
		pass, err := strconv.ParseBool(v)
		if err != nil {
			return filters, fmt.Errorf("invalid pass value %q", v)
		}
		filters.Pass = &pass
	}

	if v := c.Query("quizId"); v != "" {
		quizID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filters, fmt.Errorf("invalid quizId value %q", v)
		}
		filters.QuizID = uint(quizID)
	}

	filters.Level = c.Query("level")

	if v := c.Query("startDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filters, fmt.Errorf("invalid startDate value %q, expected YYYY-MM-DD", v)
		}
		filters.DateFrom = &t
	}

	if v := c.Query("endDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filters, fmt.Errorf("invalid endDate value %q, expected YYYY-MM-DD", v)
		}
		// Конец дня: фильтр включает результаты за endDate целиком
		end := t.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &end
	}

	if v := c.Query("minScore"); v != "" {
		minScore, err := strconv.Atoi(v)
		if err != nil {
			return filters, fmt.Errorf("invalid minScore value %q", v)
		}
		filters.MinScore = &minScore
	}

	if v := c.Query("maxScore"); v != "" {
		maxScore, err := strconv.Atoi(v)
		if err != nil {
			return filters, fmt.Errorf("invalid maxScore value %q", v)
		}
		filters.MaxScore = &maxScore
	}

	return filters, nil
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleResultError обрабатывает типичные ошибки сервиса результатов
func (h *ResultHandler) handleResultError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in ResultHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
