package dto

import (
	"time"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/service"
)

// AnswerDetailResponse представляет разбор одного вопроса в результате
type AnswerDetailResponse struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	UserAnswer    string   `json:"user_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// ResultResponse представляет результат экзамена в формате для ответа клиенту
type ResultResponse struct {
	ID             uint                   `json:"id"`
	UserID         uint                   `json:"user_id"`
	Username       string                 `json:"username"`
	QuizID         uint                   `json:"quiz_id"`
	QuizTitle      string                 `json:"quiz_title"`
	Level          string                 `json:"level"`
	Technologies   []string               `json:"technologies"`
	Score          int                    `json:"score"`
	Pass           bool                   `json:"pass"`
	CorrectCount   int                    `json:"correct_count"`
	WrongCount     int                    `json:"wrong_count"`
	TotalQuestions int                    `json:"total_questions"`
	Details        []AnswerDetailResponse `json:"details,omitempty"`
	CompletedAt    time.Time              `json:"completed_at"`
}

// UserStatsResponse представляет сводную статистику пользователя.
// Считается по всем результатам независимо от фильтров запроса.
type UserStatsResponse struct {
	TotalAttempts int64 `json:"totalAttempts"`
	PassedCount   int64 `json:"passedCount"`
	FailedCount   int64 `json:"failedCount"`
}

// PaginatedResultResponse представляет страницу результатов
// с метаданными пагинации и статистикой
type PaginatedResultResponse struct {
	Success      bool              `json:"success"`
	Results      []*ResultResponse `json:"results"`
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	TotalResults int64             `json:"totalResults"`
	TotalPages   int               `json:"totalPages"`
	Stats        UserStatsResponse `json:"stats"`
}

// NewResultResponse создает DTO для результата
func NewResultResponse(result *entity.Result, includeDetails bool) *ResultResponse {
	technologies := []string(result.Technologies)
	if technologies == nil {
		technologies = []string{}
	}

	resp := &ResultResponse{
		ID:             result.ID,
		UserID:         result.UserID,
		Username:       result.Username,
		QuizID:         result.QuizID,
		QuizTitle:      result.QuizTitle,
		Level:          result.Level,
		Technologies:   technologies,
		Score:          result.Score,
		Pass:           result.Pass,
		CorrectCount:   result.CorrectCount,
		WrongCount:     result.WrongCount,
		TotalQuestions: result.TotalQuestions,
		CompletedAt:    result.CompletedAt,
	}

	if includeDetails {
		details := make([]AnswerDetailResponse, 0, len(result.Details))
		for _, d := range result.Details {
			options := d.Options
			if options == nil {
				options = []string{}
			}
			details = append(details, AnswerDetailResponse{
				QuestionText:  d.QuestionText,
				Options:       options,
				CorrectAnswer: d.CorrectAnswer,
				UserAnswer:    d.UserAnswer,
				IsCorrect:     d.IsCorrect,
			})
		}
		resp.Details = details
	}

	return resp
}

// NewPaginatedResultResponse создает DTO страницы результатов
func NewPaginatedResultResponse(page *service.ResultPage) *PaginatedResultResponse {
	results := make([]*ResultResponse, 0, len(page.Results))
	for i := range page.Results {
		results = append(results, NewResultResponse(&page.Results[i], false))
	}

	return &PaginatedResultResponse{
		Success:      true,
		Results:      results,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalResults: page.TotalResults,
		TotalPages:   page.TotalPages,
		Stats: UserStatsResponse{
			TotalAttempts: page.Stats.TotalAttempts,
			PassedCount:   page.Stats.PassedCount,
			FailedCount:   page.Stats.FailedCount,
		},
	}
}
