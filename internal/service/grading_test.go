package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
)

func makeTestQuiz(passMarks int, correctAnswers ...string) (*entity.Quiz, []entity.Question) {
	questions := make([]entity.Question, 0, len(correctAnswers))
	for i, answer := range correctAnswers {
		questions = append(questions, entity.Question{
			ID:            uint(i + 1),
			QuizID:        1,
			Position:      i,
			Text:          "Вопрос",
			Options:       entity.StringArray{answer, "другой вариант"},
			CorrectAnswer: answer,
		})
	}
	quiz := &entity.Quiz{
		ID:             1,
		Title:          "Go Basics",
		Level:          entity.QuizLevelEasy,
		PassMarks:      passMarks,
		TotalQuestions: len(questions),
	}
	return quiz, questions
}

func TestGrade_FourQuestionsThreeCorrect(t *testing.T) {
	// Arrange: 4 вопроса, порог сдачи 3
	quiz, questions := makeTestQuiz(3, "a", "b", "c", "d")

	// Act: 3 правильных, 1 неправильный
	grade := Grade(quiz, questions, []string{"a", "b", "c", "wrong"})

	// Assert
	assert.Equal(t, 3, grade.Score)
	assert.True(t, grade.Pass)
	assert.Equal(t, 3, grade.CorrectCount)
	assert.Equal(t, 1, grade.WrongCount)
	assert.Equal(t, 4, grade.TotalQuestions)
	require.Len(t, grade.Details, 4)
	assert.True(t, grade.Details[0].IsCorrect)
	assert.False(t, grade.Details[3].IsCorrect)
	assert.Equal(t, "wrong", grade.Details[3].UserAnswer)
	assert.Equal(t, "d", grade.Details[3].CorrectAnswer)
}

func TestGrade_PassThreshold(t *testing.T) {
	tests := []struct {
		name      string
		passMarks int
		answers   []string
		wantScore int
		wantPass  bool
	}{
		{
			name:      "score equals threshold",
			passMarks: 2,
			answers:   []string{"a", "b", "wrong"},
			wantScore: 2,
			wantPass:  true,
		},
		{
			name:      "score below threshold",
			passMarks: 3,
			answers:   []string{"a", "wrong", "wrong"},
			wantScore: 1,
			wantPass:  false,
		},
		{
			name:      "all correct",
			passMarks: 3,
			answers:   []string{"a", "b", "c"},
			wantScore: 3,
			wantPass:  true,
		},
		{
			name:      "zero threshold passes with zero score",
			passMarks: 0,
			answers:   []string{"wrong", "wrong", "wrong"},
			wantScore: 0,
			wantPass:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz, questions := makeTestQuiz(tt.passMarks, "a", "b", "c")

			grade := Grade(quiz, questions, tt.answers)

			assert.Equal(t, tt.wantScore, grade.Score)
			assert.Equal(t, tt.wantPass, grade.Pass)
			assert.Equal(t, grade.Pass, grade.Score >= quiz.PassMarks)
		})
	}
}

func TestGrade_ShortAnswersScoredWrong(t *testing.T) {
	// Arrange: ответов меньше, чем вопросов
	quiz, questions := makeTestQuiz(2, "a", "b", "c", "d")

	// Act: только два ответа на четыре вопроса
	grade := Grade(quiz, questions, []string{"a", "b"})

	// Assert: недостающие ответы считаются неверными, не ошибкой
	assert.Equal(t, 2, grade.Score)
	assert.Equal(t, 2, grade.WrongCount)
	require.Len(t, grade.Details, 4)
	assert.Equal(t, "", grade.Details[2].UserAnswer)
	assert.False(t, grade.Details[2].IsCorrect)
	assert.Equal(t, "", grade.Details[3].UserAnswer)
	assert.False(t, grade.Details[3].IsCorrect)
}

func TestGrade_ExtraAnswersIgnored(t *testing.T) {
	quiz, questions := makeTestQuiz(1, "a", "b")

	grade := Grade(quiz, questions, []string{"a", "b", "лишний", "еще один"})

	assert.Equal(t, 2, grade.Score)
	assert.Len(t, grade.Details, 2)
}

func TestGrade_EmptyAnswersSlice(t *testing.T) {
	quiz, questions := makeTestQuiz(1, "a", "b", "c")

	grade := Grade(quiz, questions, nil)

	assert.Equal(t, 0, grade.Score)
	assert.False(t, grade.Pass)
	assert.Equal(t, 3, grade.WrongCount)
	assert.Len(t, grade.Details, 3)
}

func TestGrade_Deterministic(t *testing.T) {
	// Оценка не зависит ни от времени, ни от случайности:
	// одинаковый вход всегда дает одинаковый результат
	quiz, questions := makeTestQuiz(2, "a", "b", "c")
	answers := []string{"a", "wrong", "c"}

	first := Grade(quiz, questions, answers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Grade(quiz, questions, answers))
	}
}

func TestBuildResult_SnapshotsQuizMetadata(t *testing.T) {
	quiz, questions := makeTestQuiz(1, "a", "b")
	quiz.Technologies = entity.StringArray{"go", "sql"}
	user := &entity.User{ID: 7, Username: "alice", Email: "alice@test.com"}

	grade := Grade(quiz, questions, []string{"a", "b"})
	completedAt := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	result := BuildResult(user, quiz, grade, completedAt)

	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, quiz.ID, result.QuizID)
	assert.Equal(t, "Go Basics", result.QuizTitle)
	assert.Equal(t, entity.QuizLevelEasy, result.Level)
	assert.Equal(t, entity.StringArray{"go", "sql"}, result.Technologies)
	assert.Equal(t, 2, result.Score)
	assert.True(t, result.Pass)
	assert.Equal(t, completedAt, result.CompletedAt)
	assert.Len(t, result.Details, 2)
}
