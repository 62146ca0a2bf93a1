package dto

import (
	"time"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
)

// QuizSummaryResponse представляет метаданные квиза для ответа клиенту
type QuizSummaryResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Level          string    `json:"level"`
	TimeLimitMin   int       `json:"time_limit_min"`
	PassMarks      int       `json:"pass_marks"`
	TotalQuestions int       `json:"total_questions"`
	Technologies   []string  `json:"technologies"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// QuestionResponse представляет вопрос в формате для прохождения экзамена.
// Правильный ответ в этой структуре отсутствует намеренно: клиент
// не должен видеть его до завершения экзамена.
type QuestionResponse struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// ExamSessionResponse представляет выданную экзаменационную сессию
type ExamSessionResponse struct {
	ExamSessionID string    `json:"examSessionId"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// ExamQuestionsResponse представляет квиз с вопросами для активной сессии
type ExamQuestionsResponse struct {
	Quiz      *QuizSummaryResponse `json:"quiz"`
	Questions []QuestionResponse   `json:"questions"`
}

// NewQuizSummaryResponse создает DTO для квиза
func NewQuizSummaryResponse(quiz *entity.Quiz) *QuizSummaryResponse {
	technologies := []string(quiz.Technologies)
	if technologies == nil {
		technologies = []string{}
	}

	return &QuizSummaryResponse{
		ID:             quiz.ID,
		Title:          quiz.Title,
		Description:    quiz.Description,
		Level:          quiz.Level,
		TimeLimitMin:   quiz.TimeLimitMin,
		PassMarks:      quiz.PassMarks,
		TotalQuestions: quiz.TotalQuestions,
		Technologies:   technologies,
		CreatedAt:      quiz.CreatedAt,
		UpdatedAt:      quiz.UpdatedAt,
	}
}

// NewListQuizResponse создает список DTO квизов
func NewListQuizResponse(quizzes []entity.Quiz) []*QuizSummaryResponse {
	responses := make([]*QuizSummaryResponse, 0, len(quizzes))
	for i := range quizzes {
		responses = append(responses, NewQuizSummaryResponse(&quizzes[i]))
	}
	return responses
}

// NewQuestionResponse создает DTO для вопроса без правильного ответа
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	options := []string(q.Options)
	if options == nil {
		options = []string{}
	}
	return QuestionResponse{
		ID:      q.ID,
		Text:    q.Text,
		Options: options,
	}
}

// NewExamSessionResponse создает DTO выданной сессии
func NewExamSessionResponse(session *entity.ExamSession) *ExamSessionResponse {
	return &ExamSessionResponse{
		ExamSessionID: session.SessionToken,
		ExpiresAt:     session.ExpiresAt,
	}
}

// NewExamQuestionsResponse создает DTO квиза с вопросами для сессии
func NewExamQuestionsResponse(quiz *entity.Quiz, questions []entity.Question) *ExamQuestionsResponse {
	questionDTOs := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		questionDTOs = append(questionDTOs, NewQuestionResponse(&questions[i]))
	}
	return &ExamQuestionsResponse{
		Quiz:      NewQuizSummaryResponse(quiz),
		Questions: questionDTOs,
	}
}
