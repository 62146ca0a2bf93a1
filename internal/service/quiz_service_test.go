package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
)

// newPassthroughCache возвращает мок кеша, в котором все чтения — промахи
func newPassthroughCache() *MockCacheRepository {
	cache := new(MockCacheRepository)
	cache.On("GetJSON", mock.Anything, mock.Anything).Return(apperrors.ErrNotFound)
	cache.On("SetJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cache.On("Delete", mock.Anything).Return(nil)
	return cache
}

func validQuizInput() (*entity.Quiz, []entity.Question) {
	quiz := &entity.Quiz{
		Title:        "Go Basics",
		Description:  "Основы языка",
		Level:        "easy",
		TimeLimitMin: 30,
		PassMarks:    2,
		Technologies: entity.StringArray{"go"},
	}
	questions := []entity.Question{
		{Text: "Что возвращает len(nil slice)?", Options: entity.StringArray{"0", "panic"}, CorrectAnswer: "0"},
		{Text: "Какой тип у литерала 1.0?", Options: entity.StringArray{"float64", "float32"}, CorrectAnswer: "float64"},
		{Text: "Ключевое слово для горутины?", Options: entity.StringArray{"go", "async"}, CorrectAnswer: "go"},
	}
	return quiz, questions
}

func TestQuizService_ListQuizzes_FiltersPassedToRepo(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	filters := repository.QuizFilters{Level: "Easy", Technology: "go"}

	mockQuizRepo.On("List", filters).Return([]entity.Quiz{{ID: 1, Title: "Go Basics"}}, nil)

	svc := NewQuizService(mockQuizRepo, newPassthroughCache())

	quizzes, err := svc.ListQuizzes(filters)

	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "Go Basics", quizzes[0].Title)
}

func TestQuizService_ListQuizzes_EmptyFilterCachesResult(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	cache := newPassthroughCache()

	mockQuizRepo.On("List", repository.QuizFilters{}).Return([]entity.Quiz{{ID: 1}}, nil)

	svc := NewQuizService(mockQuizRepo, cache)

	_, err := svc.ListQuizzes(repository.QuizFilters{})

	require.NoError(t, err)
	cache.AssertCalled(t, "SetJSON", quizListCacheKey, mock.Anything, quizCacheDuration)
}

func TestQuizService_ListQuizzes_NoMatchIsEmptyNotError(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	filters := repository.QuizFilters{Search: "nonexistent"}

	mockQuizRepo.On("List", filters).Return([]entity.Quiz{}, nil)

	svc := NewQuizService(mockQuizRepo, newPassthroughCache())

	quizzes, err := svc.ListQuizzes(filters)

	require.NoError(t, err)
	assert.Empty(t, quizzes)
}

func TestQuizService_CreateQuiz_Success(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)

	mockQuizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(nil)

	svc := NewQuizService(mockQuizRepo, newPassthroughCache())
	quiz, questions := validQuizInput()

	// Act
	created, err := svc.CreateQuiz(quiz, questions)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.QuizLevelEasy, created.Level, "уровень приводится к каноническому виду")
	assert.Equal(t, 3, created.TotalQuestions)
	mockQuizRepo.AssertExpectations(t)
}

func TestQuizService_CreateQuiz_SingleWriteWithQuestions(t *testing.T) {
	// Квиз и вопросы уходят в хранилище одним вызовом Create:
	// при сбое записи не остается квиза-сироты без вопросов
	mockQuizRepo := new(MockQuizRepository)

	var written *entity.Quiz
	mockQuizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).
		Run(func(args mock.Arguments) {
			written = args.Get(0).(*entity.Quiz)
		}).
		Return(nil)

	svc := NewQuizService(mockQuizRepo, newPassthroughCache())
	quiz, questions := validQuizInput()

	_, err := svc.CreateQuiz(quiz, questions)

	require.NoError(t, err)
	require.NotNil(t, written)
	require.Len(t, written.Questions, 3, "вопросы приложены к квизу до записи")
	for i, q := range written.Questions {
		assert.Equal(t, i, q.Position, "позиции проставлены по порядку входа")
	}
	mockQuizRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestQuizService_CreateQuiz_WriteFailureReturnsError(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	cache := newPassthroughCache()

	mockQuizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).Return(errors.New("connection reset"))

	svc := NewQuizService(mockQuizRepo, cache)
	quiz, questions := validQuizInput()

	_, err := svc.CreateQuiz(quiz, questions)

	require.Error(t, err)
	cache.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestQuizService_CreateQuiz_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *entity.Quiz, questions []entity.Question) ([]entity.Question, *entity.Quiz)
	}{
		{
			name: "empty title",
			mutate: func(q *entity.Quiz, questions []entity.Question) ([]entity.Question, *entity.Quiz) {
				q.Title = ""
				return questions, q
			},
		},
		{
			name: "unknown level",
			mutate: func(q *entity.Quiz, questions []entity.Question) ([]entity.Question, *entity.Quiz) {
				q.Level = "impossible"
				return questions, q
			},
		},
		{
			name: "no questions",
			mutate: func(q *entity.Quiz, questions []entity.Question) ([]entity.Question, *entity.Quiz) {
				return nil, q
			},
		},
		{
			name: "pass marks above question count",
			mutate: func(q *entity.Quiz, questions []entity.Question) ([]entity.Question, *entity.Quiz) {
				q.PassMarks = 10
				return questions, q
			},
		},
		{
			name: "correct answer not among options",
			mutate: func(q *entity.Quiz, questions []entity.Question) ([]entity.Question, *entity.Quiz) {
				questions[0].CorrectAnswer = "не вариант"
				return questions, q
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQuizRepo := new(MockQuizRepository)
			svc := NewQuizService(mockQuizRepo, newPassthroughCache())

			quiz, questions := validQuizInput()
			questions, quiz = tt.mutate(quiz, questions)

			_, err := svc.CreateQuiz(quiz, questions)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			mockQuizRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}
