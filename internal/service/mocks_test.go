package service

import (
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисного слоя
// ============================================================================

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(filters repository.QuizFilters) ([]entity.Quiz, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByQuizID(quizID uint) ([]entity.Question, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

// MockExamSessionRepository реализует repository.ExamSessionRepository
type MockExamSessionRepository struct {
	mock.Mock
}

func (m *MockExamSessionRepository) Create(session *entity.ExamSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockExamSessionRepository) GetActive(userID, quizID uint) (*entity.ExamSession, error) {
	args := m.Called(userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExamSession), args.Error(1)
}

func (m *MockExamSessionRepository) GetByToken(userID, quizID uint, token string) (*entity.ExamSession, error) {
	args := m.Called(userID, quizID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExamSession), args.Error(1)
}

func (m *MockExamSessionRepository) Close(sessionID uint) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockExamSessionRepository) MarkSubmitted(tx *gorm.DB, sessionID uint) error {
	args := m.Called(tx, sessionID)
	return args.Error(0)
}

// MockResultRepository реализует repository.ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Save(tx *gorm.DB, result *entity.Result) error {
	args := m.Called(tx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetByID(id uint) (*entity.Result, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Result), args.Error(1)
}

func (m *MockResultRepository) GetUserResults(userID uint, filters repository.ResultFilters, limit, offset int) ([]entity.Result, int64, error) {
	args := m.Called(userID, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Result), args.Get(1).(int64), args.Error(2)
}

func (m *MockResultRepository) GetAllUserResults(userID uint) ([]entity.Result, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepository) GetUserStats(userID uint) (repository.UserStats, error) {
	args := m.Called(userID)
	return args.Get(0).(repository.UserStats), args.Error(1)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// ============================================================================
// Вспомогательные заглушки
// ============================================================================

// fakeIDGenerator выдает предсказуемые идентификаторы для тестов
type fakeIDGenerator struct {
	counter int
}

func (g *fakeIDGenerator) NewToken() string {
	g.counter++
	return fmt.Sprintf("test-token-%d", g.counter)
}

func (g *fakeIDGenerator) NewCertificateSerial() string {
	g.counter++
	return fmt.Sprintf("CERT-%08d", g.counter)
}
