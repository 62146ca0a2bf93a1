package service

import (
	"time"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
)

// GradeResult содержит итог проверки одной попытки сдачи экзамена
type GradeResult struct {
	Score          int
	Pass           bool
	CorrectCount   int
	WrongCount     int
	TotalQuestions int
	Details        []entity.AnswerDetail
}

// Grade проверяет ответы пользователя против вопросов квиза.
// Функция детерминирована: одинаковый вход всегда дает одинаковый итог.
// Ответы сопоставляются с вопросами по позиции; лишние ответы игнорируются,
// недостающие считаются неверными (пустая строка никогда не совпадает
// с правильным ответом).
func Grade(quiz *entity.Quiz, questions []entity.Question, answers []string) GradeResult {
	total := len(questions)
	details := make([]entity.AnswerDetail, 0, total)
	correct := 0

	for i, q := range questions {
		var userAnswer string
		if i < len(answers) {
			userAnswer = answers[i]
		}

		isCorrect := q.IsCorrect(userAnswer)
		if isCorrect {
			correct++
		}

		details = append(details, entity.AnswerDetail{
			QuestionText:  q.Text,
			Options:       []string(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    userAnswer,
			IsCorrect:     isCorrect,
		})
	}

	// Балл равен числу правильных ответов, порог сдачи сравнивается с ним напрямую
	return GradeResult{
		Score:          correct,
		Pass:           correct >= quiz.PassMarks,
		CorrectCount:   correct,
		WrongCount:     total - correct,
		TotalQuestions: total,
		Details:        details,
	}
}

// BuildResult формирует неизменяемую запись результата со снапшотом
// метаданных квиза на момент завершения экзамена.
func BuildResult(user *entity.User, quiz *entity.Quiz, grade GradeResult, completedAt time.Time) *entity.Result {
	return &entity.Result{
		UserID:         user.ID,
		Username:       user.Username,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Level:          quiz.Level,
		Technologies:   quiz.Technologies,
		Score:          grade.Score,
		Pass:           grade.Pass,
		CorrectCount:   grade.CorrectCount,
		WrongCount:     grade.WrongCount,
		TotalQuestions: grade.TotalQuestions,
		Details:        entity.AnswerDetailArray(grade.Details),
		CompletedAt:    completedAt,
	}
}
