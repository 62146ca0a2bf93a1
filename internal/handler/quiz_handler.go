package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	"github.com/yourusername/quizexam-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
	"github.com/yourusername/quizexam-api/internal/service"
)

// SessionHeader — заголовок, в котором клиент передает токен сессии
const SessionHeader = "x-exam-session"

// QuizHandler обрабатывает запросы каталога квизов и экзаменационных сессий
type QuizHandler struct {
	quizService *service.QuizService
	examService *service.ExamService
}

// NewQuizHandler создает новый обработчик квизов
func NewQuizHandler(quizService *service.QuizService, examService *service.ExamService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		examService: examService,
	}
}

// ListQuizzes возвращает список квизов с опциональной фильтрацией
// GET /quiz/list?level=&tech=&search=
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	filters := repository.QuizFilters{
		Level:      c.Query("level"),
		Technology: c.Query("tech"),
		Search:     c.Query("search"),
	}

	quizzes, err := h.quizService.ListQuizzes(filters)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quizzes": dto.NewListQuizResponse(quizzes),
	})
}

// GetQuizInfo возвращает метаданные квиза без вопросов
// GET /quiz/info/:quizId
func (h *QuizHandler) GetQuizInfo(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	quiz, err := h.quizService.GetQuizInfo(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quiz":    dto.NewQuizSummaryResponse(quiz),
	})
}

// StartExam выдает экзаменационную сессию для квиза
// POST /quiz/start/:quizId
func (h *QuizHandler) StartExam(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID := c.MustGet("user_id").(uint)

	session, err := h.examService.StartSession(userID, quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"examSessionId": session.SessionToken,
		"expiresAt":     session.ExpiresAt,
	})
}

// GetExamQuestions возвращает квиз с вопросами для активной сессии.
// Токен принимается из заголовка x-exam-session или query-параметра sessionId.
// GET /quiz/:quizId
func (h *QuizHandler) GetExamQuestions(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID := c.MustGet("user_id").(uint)

	token := c.GetHeader(SessionHeader)
	if token == "" {
		token = c.Query("sessionId")
	}

	questions, err := h.examService.GetQuestions(userID, quizID, token)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	quiz, err := h.quizService.GetQuizInfo(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	resp := dto.NewExamQuestionsResponse(quiz, questions)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"quiz":      resp.Quiz,
		"questions": resp.Questions,
	})
}

// SubmitQuizRequest представляет запрос на сдачу экзамена
type SubmitQuizRequest struct {
	QuizID        uint     `json:"quizId" binding:"required"`
	ExamSessionID string   `json:"examSessionId" binding:"required"`
	Answers       []string `json:"answers"`
}

// SubmitQuiz принимает ответы, оценивает их и возвращает результат с разбором
// POST /quiz/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.examService.Submit(userID, req.QuizID, req.ExamSessionID, req.Answers)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  dto.NewResultResponse(result, true),
	})
}

// CreateQuizRequest представляет запрос на создание квиза
type CreateQuizRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=100"`
	Description  string   `json:"description" binding:"omitempty,max=500"`
	Level        string   `json:"level" binding:"required"`
	TimeLimitMin int      `json:"time_limit_min" binding:"required,min=1"`
	PassMarks    int      `json:"pass_marks" binding:"min=0"`
	Technologies []string `json:"technologies"`
	Questions    []struct {
		Text          string   `json:"text" binding:"required,min=3,max=500"`
		Options       []string `json:"options" binding:"required,min=2,max=5"`
		CorrectAnswer string   `json:"correct_answer" binding:"required"`
	} `json:"questions" binding:"required,min=1"`
}

// CreateQuiz создает новый квиз с вопросами (только для администраторов)
// POST /admin/quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	quiz := &entity.Quiz{
		Title:        req.Title,
		Description:  req.Description,
		Level:        req.Level,
		TimeLimitMin: req.TimeLimitMin,
		PassMarks:    req.PassMarks,
		Technologies: entity.StringArray(req.Technologies),
	}

	questions := make([]entity.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, entity.Question{
			Text:          q.Text,
			Options:       entity.StringArray(q.Options),
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	created, err := h.quizService.CreateQuiz(quiz, questions)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"quiz":    dto.NewQuizSummaryResponse(created),
	})
}

// handleQuizError обрабатывает типичные ошибки сервисов квизов
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
